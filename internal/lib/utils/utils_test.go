package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string][]int{"a": {1}}))
	assert.Equal(t, "{\n\t\"a\": [\n\t\t1\n\t]\n}\n", buf.String())

	assert.Error(t, WriteJSON(&buf, make(chan int)))
}

package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewDataRendersEveryTemplate(t *testing.T) {
	templates, err := parseTemplates()
	require.NoError(t, err)

	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			html, err := render(templates, name, data)
			require.NoError(t, err)
			assert.Contains(t, html, "<html>")
		})
	}
}

func TestRenderContactEscapesInput(t *testing.T) {
	templates, err := parseTemplates()
	require.NoError(t, err)

	msg := ContactMessage{Email: "x@example.com", Message: "<script>alert(1)</script>"}
	html, err := render(templates, TemplateContact, msg.templateData())
	require.NoError(t, err)

	assert.Contains(t, html, "Anonymous &lt;x@example.com&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderMissingKey(t *testing.T) {
	templates, err := parseTemplates()
	require.NoError(t, err)

	_, err = render(templates, TemplateContact, map[string]string{"SenderName": "x"})
	assert.Error(t, err)
}

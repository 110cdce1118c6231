package checker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/checker"
)

const meetHeader = "Federation,Date,MeetCountry,MeetState,MeetTown,MeetName\n"

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func newEngine() *checker.Engine {
	return checker.New(checker.WithClock(fixedClock()))
}

func texts(messages []checker.Message) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.String())
	}
	return out
}

func TestCheckMeet_Valid(t *testing.T) {
	text := meetHeader + "USAPL,2019-03-16,USA,CA,Sacramento,Spring Classic\n"

	result, err := newEngine().CheckMeet(context.Background(), text)
	require.NoError(t, err)

	assert.Empty(t, result.Report.Messages)
	parsed, ok := result.Meet.(checker.ParsedMeet)
	require.True(t, ok, "expected a parsed meet, got %T", result.Meet)
	assert.Equal(t, "USAPL", parsed.Meet.Federation)
	assert.Equal(t, time.Date(2019, time.March, 16, 0, 0, 0, 0, time.UTC), parsed.Meet.Date)
	assert.Equal(t, "Spring Classic", parsed.Meet.Name)
}

func TestCheckMeet_ByteOrderMark(t *testing.T) {
	text := "\ufeff" + meetHeader + "USAPL,2019-03-16,USA,CA,Sacramento,Spring Classic\n"

	result, err := newEngine().CheckMeet(context.Background(), text)
	require.NoError(t, err)

	assert.Empty(t, result.Report.Messages)
	assert.IsType(t, checker.ParsedMeet{}, result.Meet)
}

func TestCheckMeet_ShortRowAfterBlankLines(t *testing.T) {
	text := meetHeader + "\n\nUSAPL,2019-03-16,USA\n"

	result, err := newEngine().CheckMeet(context.Background(), text)
	require.NoError(t, err)

	assert.IsType(t, checker.NoMeet{}, result.Meet)
	assert.Equal(t, []string{"Error: Line 4: Expected 6 fields, found 3"}, texts(result.Report.Messages))
}

func TestCheckMeet_EmptyText(t *testing.T) {
	result, err := newEngine().CheckMeet(context.Background(), "")
	require.NoError(t, err)

	assert.IsType(t, checker.NoMeet{}, result.Meet)
	assert.Equal(t, []string{
		"Error: Missing required column 'Federation'",
		"Error: Missing required column 'Date'",
		"Error: Missing required column 'MeetCountry'",
		"Error: Missing required column 'MeetState'",
		"Error: Missing required column 'MeetTown'",
		"Error: Missing required column 'MeetName'",
	}, texts(result.Report.Messages))
}

func TestCheckMeet_MalformedCSVIsAnError(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "unterminated quote", text: meetHeader + "\"USAPL,2019-03-16,USA,CA,Sacramento,Spring Classic\n"},
		{name: "bare quote", text: meetHeader + "US\"APL,2019-03-16,USA,CA,Sacramento,Spring Classic\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newEngine().CheckMeet(context.Background(), tt.text)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "meet.csv")
			assert.IsType(t, checker.NoMeet{}, result.Meet)
		})
	}
}

func TestCheckMeet_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine().CheckMeet(ctx, meetHeader+"USAPL,2019-03-16,USA,CA,Sacramento,Spring Classic\n")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckMeet_Problems(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantParsed bool
		want       []string
	}{
		{
			name:       "no data row",
			text:       meetHeader,
			wantParsed: false,
			want:       []string{"Error: meet.csv has no data row"},
		},
		{
			name:       "two data rows",
			text:       meetHeader + "USAPL,2019-03-16,USA,CA,Sacramento,A\nUSAPL,2019-03-17,USA,CA,Sacramento,B\n",
			wantParsed: false,
			want:       []string{"Error: meet.csv must have exactly one data row, found 2"},
		},
		{
			name:       "short row",
			text:       meetHeader + "USAPL,2019-03-16,USA\n",
			wantParsed: false,
			want:       []string{"Error: Line 2: Expected 6 fields, found 3"},
		},
		{
			name:       "invalid date",
			text:       meetHeader + "USAPL,2019-02-30,USA,CA,Sacramento,Spring Classic\n",
			wantParsed: false,
			want:       []string{"Error: Invalid date '2019-02-30', expected YYYY-MM-DD"},
		},
		{
			name:       "unknown federation",
			text:       meetHeader + "NOPE,2019-03-16,USA,CA,Sacramento,Spring Classic\n",
			wantParsed: false,
			want:       []string{"Error: Unknown federation 'NOPE'"},
		},
		{
			name:       "future date keeps the meet",
			text:       meetHeader + "USAPL,2021-03-16,USA,CA,Sacramento,Spring Classic\n",
			wantParsed: true,
			want:       []string{"Error: Date '2021-03-16' is in the future"},
		},
		{
			name:       "name with year keeps the meet",
			text:       meetHeader + "USAPL,2019-03-16,USA,CA,Sacramento,Spring Classic 2019\n",
			wantParsed: true,
			want:       []string{"Error: MeetName 'Spring Classic 2019' must not contain the year"},
		},
		{
			name:       "bad state and spacing",
			text:       meetHeader + "USAPL,2019-03-16,USA,ZZ,Sacramento ,Spring  Classic\n",
			wantParsed: true,
			want: []string{
				"Error: Unknown MeetState 'ZZ' for country 'USA'",
				"Error: MeetTown 'Sacramento ' has leading or trailing whitespace",
				"Error: MeetName 'Spring  Classic' contains consecutive spaces",
			},
		},
		{
			name:       "federation in name is a warning",
			text:       meetHeader + "USAPL,2019-03-16,USA,CA,Sacramento,USAPL Spring Classic\n",
			wantParsed: true,
			want:       []string{"Warning: MeetName 'USAPL Spring Classic' should not repeat the federation"},
		},
		{
			name:       "unknown and duplicate columns",
			text:       "Federation,Date,MeetCountry,MeetState,MeetTown,MeetName,Foo,Date\nUSAPL,2019-03-16,USA,CA,Sacramento,Spring Classic,x,2019-03-16\n",
			wantParsed: true,
			want: []string{
				"Error: Unknown column 'Foo'",
				"Error: Duplicate column 'Date'",
			},
		},
		{
			name:       "rule set",
			text:       "Federation,Date,MeetCountry,MeetState,MeetTown,MeetName,RuleSet\nUSAPL,2019-03-16,USA,CA,Sacramento,Spring Classic,CombineRawAndWraps Bogus\n",
			wantParsed: true,
			want:       []string{"Error: Unknown RuleSet 'Bogus'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newEngine().CheckMeet(context.Background(), tt.text)
			require.NoError(t, err)

			assert.Equal(t, tt.want, texts(result.Report.Messages))
			_, parsed := result.Meet.(checker.ParsedMeet)
			assert.Equal(t, tt.wantParsed, parsed)
		})
	}
}

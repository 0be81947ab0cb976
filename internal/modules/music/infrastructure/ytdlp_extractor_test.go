package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mwestergaard/minstrel/internal/modules/music/application/ports"
)

func TestParseMediaLines(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   []ports.MediaEntry
	}{
		{
			name:   "single entry",
			stdout: "https://media.example/watch?v=abc\tSome Song\t215\thttps://img.example/abc.jpg\n",
			want: []ports.MediaEntry{
				{
					Locator:      "https://media.example/watch?v=abc",
					Title:        "Some Song",
					Duration:     215 * time.Second,
					ThumbnailURL: "https://img.example/abc.jpg",
				},
			},
		},
		{
			name: "multiple entries",
			stdout: "https://media.example/watch?v=a\tFirst\t60\tNA\n" +
				"https://media.example/watch?v=b\tSecond\t125.5\tNA\n",
			want: []ports.MediaEntry{
				{Locator: "https://media.example/watch?v=a", Title: "First", Duration: time.Minute},
				{Locator: "https://media.example/watch?v=b", Title: "Second", Duration: 125*time.Second + 500*time.Millisecond},
			},
		},
		{
			name:   "missing duration and thumbnail",
			stdout: "https://media.example/live\tLive Stream\tNA\tNA\n",
			want: []ports.MediaEntry{
				{Locator: "https://media.example/live", Title: "Live Stream"},
			},
		},
		{
			name:   "malformed line skipped",
			stdout: "garbage line without tabs\nhttps://media.example/watch?v=c\tThird\t30\tNA\n",
			want: []ports.MediaEntry{
				{Locator: "https://media.example/watch?v=c", Title: "Third", Duration: 30 * time.Second},
			},
		},
		{
			name:   "empty output",
			stdout: "",
			want:   []ports.MediaEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMediaLines(tt.stdout)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintedField(t *testing.T) {
	assert.Equal(t, "", printedField("NA"))
	assert.Equal(t, "value", printedField("value"))
}

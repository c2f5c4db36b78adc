package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-journal/backend/internal/ai"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "first output_text content wins",
			body: `{"output":[
				{"type":"reasoning","content":[]},
				{"type":"message","content":[
					{"type":"refusal","text":"no"},
					{"type":"output_text","text":"Kyoto overview"},
					{"type":"output_text","text":"second"}
				]}
			],"output_text":"flattened"}`,
			want: "Kyoto overview",
		},
		{
			name: "non-string text is skipped",
			body: `{"output":[{"content":[{"type":"output_text","text":42}]}],"output_text":"flattened"}`,
			want: "flattened",
		},
		{
			name: "flattened output_text",
			body: `{"output_text":"flattened"}`,
			want: "flattened",
		},
		{
			name: "nothing usable",
			body: `{"output":[{"content":[{"type":"output_text"}]}]}`,
			want: ai.NoTextReturned,
		},
		{
			name: "output is not an array",
			body: `{"output":"oops"}`,
			want: ai.NoTextReturned,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ai.Extract([]byte(tc.body), ai.DefaultExtractors...))
		})
	}
}

package ai

import "github.com/tidwall/gjson"

// NoTextReturned is the answer used when no extractor finds any text.
const NoTextReturned = "No text returned."

// Extractor pulls the answer text out of a raw Responses API body.
// The boolean is false when the strategy does not apply.
type Extractor func(body []byte) (string, bool)

// DefaultExtractors is the order ResponsesClient tries strategies in.
var DefaultExtractors = []Extractor{FromOutputContent, FromOutputText}

// FromOutputContent returns the text of the first output[].content[] entry
// whose type is "output_text" and whose text is a string.
func FromOutputContent(body []byte) (string, bool) {
	var (
		text  string
		found bool
	)
	gjson.GetBytes(body, "output").ForEach(func(_, item gjson.Result) bool {
		item.Get("content").ForEach(func(_, c gjson.Result) bool {
			t := c.Get("text")
			if c.Get("type").String() == "output_text" && t.Type == gjson.String {
				text, found = t.String(), true
				return false
			}
			return true
		})
		return !found
	})
	return text, found
}

// FromOutputText returns the flattened top-level output_text string.
func FromOutputText(body []byte) (string, bool) {
	t := gjson.GetBytes(body, "output_text")
	if t.Type != gjson.String {
		return "", false
	}
	return t.String(), true
}

// Extract runs extractors in order and falls back to NoTextReturned.
func Extract(body []byte, extractors ...Extractor) string {
	for _, ex := range extractors {
		if text, ok := ex(body); ok {
			return text
		}
	}
	return NoTextReturned
}

package analysis

import (
	"encoding/json"
	"strings"

	"github.com/vbonduro/mealai/internal/domain"
)

// Sanitize cuts text down to the span between the first '{' and the last '}'.
// It does not match nested braces, so prose containing stray braces around the
// object can be mis-trimmed. Text without such a span is returned unchanged.
func Sanitize(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

// Decode parses a single JSON object into an AnalysisResult. It returns nil on
// any failure and leaves the error decision to the caller.
func Decode(text string) *domain.AnalysisResult {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil
	}
	return &result
}

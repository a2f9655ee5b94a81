package inference

import (
	"context"

	"github.com/vbonduro/mealai/internal/domain"
)

// Decoding parameters shared by every adapter.
const (
	Temperature         = 0.0
	MaxCompletionTokens = 600
)

// Client sends one system instruction and one user prompt, optionally with
// images, and returns the raw text the model produced. Adapters must fail with
// domain.ErrAuth before any network call when their API key is empty, and with
// a *domain.RequestError on non-2xx answers.
type Client interface {
	SendPrompt(ctx context.Context, systemInstruction, userPrompt string, images []domain.Image) (string, error)
}

// NormaliseMIME maps image MIME types to the values the inference APIs accept.
// Unknown types are coerced to jpeg.
func NormaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}

package claude

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/inference"
)

const DefaultModel = "claude-sonnet-4-5"

type Client struct {
	apiKey string
	model  string
	client *anthropic.Client
}

// failureKey is the context key for the failure of the current call.
type failureKey struct{}

// failure holds the status and raw body of a non-2xx answer.
type failure struct {
	statusCode int
	body       string
}

// recordingTransport copies the body of non-2xx answers into the failure
// attached to the request context and hands an identical body on to the
// anthropic client.
type recordingTransport struct {
	base http.RoundTripper
}

func (t recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || (resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		return resp, err
	}
	f, ok := req.Context().Value(failureKey{}).(*failure)
	if !ok {
		return resp, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read claude error body: %w", err)
	}
	f.statusCode, f.body = resp.StatusCode, string(raw)
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}

// NewClient builds a Claude adapter. opts are passed to the underlying
// anthropic client after the recording HTTP client (tests use
// anthropic.WithBaseURL).
func NewClient(apiKey, model string, opts ...anthropic.ClientOption) *Client {
	if model == "" {
		model = DefaultModel
	}
	httpClient := &http.Client{Transport: recordingTransport{base: http.DefaultTransport}}
	opts = append([]anthropic.ClientOption{anthropic.WithHTTPClient(httpClient)}, opts...)
	return &Client{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(apiKey, opts...),
	}
}

// buildContent places images ahead of the prompt text.
func buildContent(userPrompt string, images []domain.Image) []anthropic.MessageContent {
	content := make([]anthropic.MessageContent, 0, len(images)+1)
	for _, img := range images {
		content = append(content, anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(
				anthropic.MessagesContentSourceTypeBase64,
				inference.NormaliseMIME(img.MimeType),
				base64.StdEncoding.EncodeToString(img.Data),
			),
		))
	}
	return append(content, anthropic.NewTextMessageContent(userPrompt))
}

func (c *Client) SendPrompt(ctx context.Context, systemInstruction, userPrompt string, images []domain.Image) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domain.ErrAuth
	}

	failed := &failure{}
	ctx = context.WithValue(ctx, failureKey{}, failed)

	temperature := float32(inference.Temperature)
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(c.model),
		System: systemInstruction + "\nRespond with a single JSON object and nothing else.",
		Messages: []anthropic.Message{{
			Role:    anthropic.RoleUser,
			Content: buildContent(userPrompt, images),
		}},
		MaxTokens:   inference.MaxCompletionTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", translateError(err, failed)
	}

	for _, blk := range resp.Content {
		if blk.Type == anthropic.MessagesContentTypeText && blk.Text != nil {
			return *blk.Text, nil
		}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to encode claude response: %w", err)
	}
	return string(raw), nil
}

// translateError reports non-2xx answers as domain.RequestError with the
// status and raw body the transport recorded. Transport errors stay wrapped.
func translateError(err error, failed *failure) error {
	if failed.statusCode != 0 {
		return &domain.RequestError{Service: "claude", StatusCode: failed.statusCode, Body: failed.body}
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &domain.RequestError{Service: "claude", StatusCode: reqErr.StatusCode, Body: err.Error()}
	}
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		return &domain.RequestError{Service: "claude", Body: err.Error()}
	}
	return fmt.Errorf("failed to call claude: %w", err)
}

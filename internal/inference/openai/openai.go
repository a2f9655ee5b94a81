package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/inference"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

// Vision completions can take a long time to start streaming back.
const (
	requestTimeout  = 120 * time.Second
	resourceTimeout = 240 * time.Second
)

type request struct {
	Model               string          `json:"model"`
	Messages            []message       `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens"`
	Temperature         float64         `json:"temperature"`
	ResponseFormat      *responseFormat `json:"response_format,omitempty"`
}

// message content is either a plain string or a list of parts.
type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = requestTimeout
	return &Client{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Transport: transport, Timeout: resourceTimeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// buildMessages returns the system message and a user message. With images the
// user content becomes one text part followed by one inline image part each.
func buildMessages(systemInstruction, userPrompt string, images []domain.Image) []message {
	msgs := []message{{Role: "system", Content: systemInstruction}}
	if len(images) == 0 {
		return append(msgs, message{Role: "user", Content: userPrompt})
	}

	parts := make([]part, 0, len(images)+1)
	parts = append(parts, part{Type: "text", Text: userPrompt})
	for _, img := range images {
		parts = append(parts, part{
			Type: "image_url",
			ImageURL: &imageURL{URL: fmt.Sprintf("data:%s;base64,%s",
				inference.NormaliseMIME(img.MimeType), base64.StdEncoding.EncodeToString(img.Data))},
		})
	}
	return append(msgs, message{Role: "user", Content: parts})
}

func (c *Client) SendPrompt(ctx context.Context, systemInstruction, userPrompt string, images []domain.Image) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", domain.ErrAuth
	}

	body := request{
		Model:               c.model,
		Messages:            buildMessages(systemInstruction, userPrompt, images),
		MaxCompletionTokens: inference.MaxCompletionTokens,
		Temperature:         inference.Temperature,
		ResponseFormat:      &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call openai: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close openai response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.RequestError{Service: "openai", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return extractContent(raw), nil
}

// extractContent returns the first choice's message content, or the raw body
// when the response does not carry one.
func extractContent(raw []byte) string {
	var respBody response
	if err := json.Unmarshal(raw, &respBody); err != nil {
		return string(raw)
	}
	if len(respBody.Choices) == 0 || respBody.Choices[0].Message.Content == nil {
		return string(raw)
	}
	return *respBody.Choices[0].Message.Content
}

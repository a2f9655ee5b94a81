package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/inference"
)

// MaxImages is the number of photos of one meal a single analysis accepts.
const MaxImages = 3

// SystemInstruction is shared by every prompt.
const SystemInstruction = `You are a nutrition assistant. Reply strictly as one JSON object with keys:
mealName (string), mealDescription (string), calories (kcal, number),
carbohydrates (g, number), protein (g, number), fat (g, number), fiber (g, number),
portionDescription (string), diabetesNotes (string).
Omit a key when you cannot estimate it. Do not add any text outside the JSON object.`

const queryPrompt = `Food query: %s
Return nutrition (grams) for the consumed portion.
Describe the meal, the portion you assumed, and anything relevant for diabetes management.
JSON keys: mealName, mealDescription, calories, carbohydrates, protein, fat, fiber, portionDescription, diabetesNotes.`

const imagePrompt = `Inspect the %d photo(s) of the same meal and estimate nutrition (grams) for the pictured portion.
Describe the meal, the portion you see, and anything relevant for diabetes management.
Output strict JSON: mealName, mealDescription, calories, carbohydrates, protein, fat, fiber, portionDescription, diabetesNotes.`

// unknownHint stands in for a baseline macro the database did not report.
const unknownHint = "-1"

// Provider names an AI backend selectable in configuration.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
	ProviderGemini Provider = "gemini"
)

// ParseProvider maps a configuration value to a Provider. Unknown values
// select OpenAI.
func ParseProvider(s string) Provider {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderOpenAI, ProviderClaude, ProviderGemini:
		return p
	default:
		return ProviderOpenAI
	}
}

type Service struct {
	provider Provider
	clients  map[Provider]inference.Client
	logger   *slog.Logger
}

// NewService selects the client registered for provider. Providers without a
// registered client, gemini among them, fall back to the OpenAI client.
func NewService(provider Provider, clients map[Provider]inference.Client, logger *slog.Logger) *Service {
	return &Service{provider: provider, clients: clients, logger: logger}
}

func (s *Service) client() (inference.Client, error) {
	if c, ok := s.clients[s.provider]; ok {
		return c, nil
	}
	if c, ok := s.clients[ProviderOpenAI]; ok {
		s.logger.Debug("provider has no client, using openai", "provider", s.provider)
		return c, nil
	}
	return nil, fmt.Errorf("no inference client registered for %q", s.provider)
}

// AnalyzeQuery asks the model about a described food portion. A non-nil base
// is appended as hint text.
func (s *Service) AnalyzeQuery(ctx context.Context, base *domain.BaseInfo, query string) (*domain.AnalysisResult, error) {
	return s.analyze(ctx, BuildQueryPrompt(base, query), nil)
}

// AnalyzeImages asks the model to estimate nutrition from 1 to MaxImages
// photos of the same meal, sent in one request.
func (s *Service) AnalyzeImages(ctx context.Context, images []domain.Image) (*domain.AnalysisResult, error) {
	if len(images) == 0 || len(images) > MaxImages {
		return nil, fmt.Errorf("%w: expected 1 to %d images, got %d", domain.ErrInvalidInput, MaxImages, len(images))
	}
	return s.analyze(ctx, fmt.Sprintf(imagePrompt, len(images)), images)
}

func (s *Service) analyze(ctx context.Context, prompt string, images []domain.Image) (*domain.AnalysisResult, error) {
	client, err := s.client()
	if err != nil {
		return nil, err
	}

	raw, err := client.SendPrompt(ctx, SystemInstruction, prompt, images)
	if err != nil {
		return nil, err
	}

	result := Decode(Sanitize(raw))
	if result == nil {
		s.logger.Warn("analysis response not decodable", "provider", s.provider, "bytes", len(raw))
		return nil, domain.ErrParse
	}
	return result, nil
}

// BuildQueryPrompt renders the text prompt, with the baseline hint line when
// base is non-nil.
func BuildQueryPrompt(base *domain.BaseInfo, query string) string {
	prompt := fmt.Sprintf(queryPrompt, query)
	if base != nil {
		prompt += fmt.Sprintf("\nBase: name=%s, carbs=%s, protein=%s, fat=%s.",
			base.Name, hint(base.Carbs), hint(base.Protein), hint(base.Fat))
	}
	return prompt
}

func hint(v *float64) string {
	if v == nil {
		return unknownHint
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}


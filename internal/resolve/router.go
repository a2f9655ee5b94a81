package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/mealai/internal/domain"
)

// MaxImages bounds an Images input.
const MaxImages = 3

type QuerySearcher interface {
	FetchByQuery(ctx context.Context, query string) domain.BaseInfo
}

type BarcodeLookup interface {
	FetchByBarcode(ctx context.Context, code string) (domain.BaseInfo, error)
}

type Analyzer interface {
	AnalyzeQuery(ctx context.Context, base *domain.BaseInfo, query string) (*domain.AnalysisResult, error)
	AnalyzeImages(ctx context.Context, images []domain.Image) (*domain.AnalysisResult, error)
}

// Router turns an Input into a MealResult. Each call runs its steps in
// sequence and shares no state with other calls.
type Router struct {
	search   QuerySearcher
	barcodes BarcodeLookup
	analyzer Analyzer
	logger   *slog.Logger
}

func NewRouter(search QuerySearcher, barcodes BarcodeLookup, analyzer Analyzer, logger *slog.Logger) *Router {
	return &Router{search: search, barcodes: barcodes, analyzer: analyzer, logger: logger}
}

// Resolve runs the pipeline for in. Errors from the providers and the
// analyzer are returned as is.
func (r *Router) Resolve(ctx context.Context, in Input) (*domain.MealResult, error) {
	r.logger.Debug("resolving input", "input_kind", Kind(in))

	switch v := in.(type) {
	case Text:
		return r.resolveQuery(ctx, string(v))
	case Voice:
		return r.resolveQuery(ctx, string(v))
	case Barcode:
		return r.resolveBarcode(ctx, string(v))
	case Images:
		return r.resolveImages(ctx, v)
	default:
		return nil, fmt.Errorf("%w: unsupported input %T", domain.ErrInvalidInput, in)
	}
}

func (r *Router) resolveQuery(ctx context.Context, query string) (*domain.MealResult, error) {
	base := r.search.FetchByQuery(ctx, query)
	ai, err := r.analyzer.AnalyzeQuery(ctx, &base, query)
	if err != nil {
		return nil, err
	}
	return Merge(&base, ai), nil
}

func (r *Router) resolveBarcode(ctx context.Context, code string) (*domain.MealResult, error) {
	base, err := r.barcodes.FetchByBarcode(ctx, code)
	if err != nil {
		r.logger.Warn("barcode lookup failed", "barcode", code, "error", err)
		return nil, err
	}
	ai, err := r.analyzer.AnalyzeQuery(ctx, &base, base.Name)
	if err != nil {
		return nil, err
	}
	return Merge(&base, ai), nil
}

func (r *Router) resolveImages(ctx context.Context, images Images) (*domain.MealResult, error) {
	if len(images) == 0 || len(images) > MaxImages {
		return nil, fmt.Errorf("%w: expected 1 to %d images, got %d", domain.ErrInvalidInput, MaxImages, len(images))
	}
	ai, err := r.analyzer.AnalyzeImages(ctx, images)
	if err != nil {
		return nil, err
	}
	return Merge(nil, ai), nil
}

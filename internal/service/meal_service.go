package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/photostore"
	"github.com/vbonduro/mealai/internal/resolve"
	"github.com/vbonduro/mealai/internal/shortcut"
)

// thumbnailPrefix groups history thumbnails in the photo store.
const thumbnailPrefix = "history"

// resolver is the subset of resolve.Router that MealService requires.
type resolver interface {
	Resolve(ctx context.Context, in resolve.Input) (*domain.MealResult, error)
}

// historyRepository is the subset of store.HistoryStore that MealService requires.
type historyRepository interface {
	Create(ctx context.Context, entry domain.HistoryEntry) (*domain.HistoryEntry, error)
	GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error)
	List(ctx context.Context) ([]*domain.HistoryEntry, error)
	Delete(ctx context.Context, id string) error
}

// favoriteRepository is the subset of store.FavoriteStore that MealService requires.
type favoriteRepository interface {
	Create(ctx context.Context, name string, result domain.MealResult) (*domain.Favorite, error)
	List(ctx context.Context) ([]*domain.Favorite, error)
	Delete(ctx context.Context, id string) error
}

type MealService struct {
	router    resolver
	history   historyRepository
	favorites favoriteRepository
	photoStg  photostore.Store
	logger    *slog.Logger
	now       func() time.Time
}

func NewMealService(
	router resolver,
	history historyRepository,
	favorites favoriteRepository,
	photoStg photostore.Store,
	logger *slog.Logger,
) *MealService {
	return &MealService{
		router:    router,
		history:   history,
		favorites: favorites,
		photoStg:  photoStg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MealService) Resolve(ctx context.Context, in resolve.Input) (*domain.MealResult, error) {
	s.logger.Info("resolve started", "input_kind", resolve.Kind(in))
	result, err := s.router.Resolve(ctx, in)
	if err != nil {
		s.logger.Warn("resolve failed", "input_kind", resolve.Kind(in), "error", err)
		return nil, err
	}
	s.logger.Info("resolve complete", "input_kind", resolve.Kind(in), "meal", result.Name())
	return result, nil
}

// SaveHistory records a possibly edited result. A non-nil thumbnail is kept in
// the photo store and removed again if the entry cannot be written.
func (s *MealService) SaveHistory(ctx context.Context, result domain.MealResult, thumbnail *domain.Image) (*domain.HistoryEntry, error) {
	entry := domain.HistoryEntry{
		Name:    result.Name(),
		Protein: result.Analysis.ProteinG,
		Carbs:   result.Analysis.CarbsG,
		Fat:     result.Analysis.FatG,
		Date:    s.now(),
	}
	if result.Analysis.CaloriesKcal != nil {
		entry.Calories = *result.Analysis.CaloriesKcal
	}

	if thumbnail != nil && len(thumbnail.Data) > 0 {
		key, err := s.photoStg.Save(ctx, thumbnailPrefix, *thumbnail)
		if err != nil {
			return nil, fmt.Errorf("failed to save thumbnail: %w", err)
		}
		s.logger.Debug("thumbnail saved", "storage_key", key)
		entry.ThumbnailKey = key
	}

	saved, err := s.history.Create(ctx, entry)
	if err != nil {
		if entry.ThumbnailKey != "" {
			if stgErr := s.photoStg.Delete(ctx, entry.ThumbnailKey); stgErr != nil {
				s.logger.Error("failed to roll back thumbnail", "storage_key", entry.ThumbnailKey, "error", stgErr)
			}
		}
		return nil, fmt.Errorf("failed to save history entry: %w", err)
	}

	s.logger.Info("history entry saved", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

func (s *MealService) ListHistory(ctx context.Context) ([]*domain.HistoryEntry, error) {
	return s.history.List(ctx)
}

func (s *MealService) GetHistory(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	return s.history.GetByID(ctx, id)
}

// DeleteHistory removes the entry and then its thumbnail. A thumbnail that
// cannot be removed is logged, not returned.
func (s *MealService) DeleteHistory(ctx context.Context, id string) error {
	entry, err := s.history.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.history.Delete(ctx, id); err != nil {
		return err
	}
	if entry.ThumbnailKey != "" {
		if err := s.photoStg.Delete(ctx, entry.ThumbnailKey); err != nil {
			s.logger.Error("failed to delete thumbnail", "id", id, "storage_key", entry.ThumbnailKey, "error", err)
		}
	}
	return nil
}

func (s *MealService) Thumbnail(ctx context.Context, id string) (domain.Image, error) {
	entry, err := s.history.GetByID(ctx, id)
	if err != nil {
		return domain.Image{}, err
	}
	if entry.ThumbnailKey == "" {
		return domain.Image{}, fmt.Errorf("thumbnail for %s: %w", id, domain.ErrNotFound)
	}
	return s.photoStg.Get(ctx, entry.ThumbnailKey)
}

// AddFavorite stores result under name, or under the meal name when name is blank.
func (s *MealService) AddFavorite(ctx context.Context, name string, result domain.MealResult) (*domain.Favorite, error) {
	if name == "" {
		name = result.Name()
	}
	return s.favorites.Create(ctx, name, result)
}

func (s *MealService) ListFavorites(ctx context.Context) ([]*domain.Favorite, error) {
	return s.favorites.List(ctx)
}

func (s *MealService) DeleteFavorite(ctx context.Context, id string) error {
	return s.favorites.Delete(ctx, id)
}

func (s *MealService) ShortcutPayload(result domain.MealResult) shortcut.Payload {
	return shortcut.FromResult(result)
}

package photostore

import (
	"context"

	"github.com/vbonduro/mealai/internal/domain"
)

// Store keeps meal thumbnails. Keys are opaque to callers and are formed as
// <prefix>/<name><ext>.
type Store interface {
	Save(ctx context.Context, prefix string, img domain.Image) (key string, err error)
	Get(ctx context.Context, key string) (domain.Image, error)
	Delete(ctx context.Context, key string) error
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/mealai/internal/domain"
)

// FavoriteStore keeps each favorite's MealResult as its JSON contract.
type FavoriteStore struct {
	db *sql.DB
}

func NewFavoriteStore(db *sql.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

func (s *FavoriteStore) Create(ctx context.Context, name string, result domain.MealResult) (*domain.Favorite, error) {
	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorite: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, name, result, created_at) VALUES (?, ?, ?, ?)
	`, id, name, string(encoded), time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *FavoriteStore) GetByID(ctx context.Context, id string) (*domain.Favorite, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, result, created_at FROM favorites WHERE id = ?
	`, id)

	fav, err := scanFavorite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("favorite %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return fav, nil
}

// List returns all favorites, newest first.
func (s *FavoriteStore) List(ctx context.Context) ([]*domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, result, created_at FROM favorites ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer closeRows(rows)

	var favorites []*domain.Favorite
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}

func (s *FavoriteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return requireAffected(result, "favorite", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row scanner) (*domain.Favorite, error) {
	fav := &domain.Favorite{}
	var encoded string
	if err := row.Scan(&fav.ID, &fav.Name, &encoded, &fav.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(encoded), &fav.Result); err != nil {
		return nil, fmt.Errorf("failed to decode favorite %s: %w", fav.ID, err)
	}
	return fav, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vbonduro/mealai/internal/domain"
)

type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Create stores entry under a fresh ID and returns the stored copy.
func (s *HistoryStore) Create(ctx context.Context, entry domain.HistoryEntry) (*domain.HistoryEntry, error) {
	entry.ID = uuid.NewString()
	entry.Date = entry.Date.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, name, calories, protein, carbs, fat, date, thumbnail_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Name, entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Date, entry.ThumbnailKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create history entry: %w", err)
	}

	return s.GetByID(ctx, entry.ID)
}

func (s *HistoryStore) GetByID(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	entry := &domain.HistoryEntry{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, calories, protein, carbs, fat, date, thumbnail_key FROM history WHERE id = ?
	`, id).Scan(&entry.ID, &entry.Name, &entry.Calories, &entry.Protein, &entry.Carbs, &entry.Fat, &entry.Date, &entry.ThumbnailKey)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history entry %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}

	return entry, nil
}

// List returns all entries, newest first.
func (s *HistoryStore) List(ctx context.Context) ([]*domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, calories, protein, carbs, fat, date, thumbnail_key
		FROM history ORDER BY date DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer closeRows(rows)

	var entries []*domain.HistoryEntry
	for rows.Next() {
		entry := &domain.HistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Calories, &entry.Protein, &entry.Carbs, &entry.Fat, &entry.Date, &entry.ThumbnailKey); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return entries, nil
}

func (s *HistoryStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return requireAffected(result, "history entry", id)
}

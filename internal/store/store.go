// internal/store/store.go

// Package store persists generated pitches.
package store

import (
	"context"
	"errors"

	"pitchforge/internal/models"
)

var (
	ErrNotFound = errors.New("PITCH_NOT_FOUND")
)

// PitchStore is the persistence surface the API and quota layers depend on.
type PitchStore interface {
	Create(ctx context.Context, record *models.PitchRecord) error
	Get(ctx context.Context, id string) (*models.PitchRecord, error)
	CountThisMonth(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.PitchRecord, error)
}

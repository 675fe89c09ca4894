package store

import (
	"context"
	"errors"
	"time"

	"github.com/Simplici0/orchard.works/internal/model"
)

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrUnknownFertilizer is returned when a calculation references a missing catalog entry.
var ErrUnknownFertilizer = errors.New("unknown fertilizer")

// CatalogStore persists fertilizer catalog entries.
type CatalogStore interface {
	List(ctx context.Context) ([]model.Fertilizer, error)
	Get(ctx context.Context, id int64) (model.Fertilizer, error)
	Create(ctx context.Context, in model.NewFertilizer) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// CalculationStore persists saved calculations.
type CalculationStore interface {
	List(ctx context.Context) ([]model.Calculation, error)
	Get(ctx context.Context, id int64) (model.Calculation, error)
	Create(ctx context.Context, fields model.CalculationFields) (int64, error)
	Update(ctx context.Context, id int64, fields model.CalculationFields) error
	Delete(ctx context.Context, id int64) error
}

// Clock returns the current time. Stores record timestamps in UTC.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

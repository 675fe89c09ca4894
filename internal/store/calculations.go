package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Simplici0/orchard.works/internal/model"
)

type calculationRow struct {
	ID           int64     `db:"id"`
	FertilizerID int64     `db:"fertilizer_id"`
	Name         string    `db:"calculation_name"`
	Trees        int       `db:"trees"`
	Rate         float64   `db:"rate"`
	Frequency    int       `db:"frequency"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r calculationRow) toModel() model.Calculation {
	return model.Calculation{
		ID:           r.ID,
		FertilizerID: r.FertilizerID,
		Name:         r.Name,
		Trees:        r.Trees,
		Rate:         r.Rate,
		Frequency:    r.Frequency,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Calculations is the SQLite-backed CalculationStore.
type Calculations struct {
	db  *sqlx.DB
	now Clock
}

// NewCalculations returns a Calculations store over db.
func NewCalculations(db *sqlx.DB) *Calculations {
	return &Calculations{db: db, now: utcNow}
}

// List returns every calculation, newest first.
func (c *Calculations) List(ctx context.Context) ([]model.Calculation, error) {
	var rows []calculationRow
	err := c.db.SelectContext(ctx, &rows, `
		SELECT id, fertilizer_id, calculation_name, trees, rate, frequency, created_at, updated_at
		FROM calculations
		ORDER BY julianday(created_at) DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}

	calcs := make([]model.Calculation, 0, len(rows))
	for _, r := range rows {
		calcs = append(calcs, r.toModel())
	}
	return calcs, nil
}

// Get returns the calculation with id, or ErrNotFound.
func (c *Calculations) Get(ctx context.Context, id int64) (model.Calculation, error) {
	var row calculationRow
	err := c.db.GetContext(ctx, &row, `
		SELECT id, fertilizer_id, calculation_name, trees, rate, frequency, created_at, updated_at
		FROM calculations
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Calculation{}, ErrNotFound
	}
	if err != nil {
		return model.Calculation{}, fmt.Errorf("query calculation %d: %w", id, err)
	}
	return row.toModel(), nil
}

// Create validates and inserts a calculation, returning its id.
func (c *Calculations) Create(ctx context.Context, fields model.CalculationFields) (int64, error) {
	if err := fields.Validate(); err != nil {
		return 0, err
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin calculation insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ensureFertilizer(ctx, tx, fields.FertilizerID); err != nil {
		return 0, err
	}

	now := c.now()
	result, err := tx.ExecContext(ctx, `
		INSERT INTO calculations (fertilizer_id, calculation_name, trees, rate, frequency, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, fields.FertilizerID, fields.Name, fields.Trees, fields.Rate, fields.Frequency, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert calculation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read calculation id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit calculation insert: %w", err)
	}
	return id, nil
}

// Update replaces the editable fields of calculation id.
func (c *Calculations) Update(ctx context.Context, id int64, fields model.CalculationFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin calculation update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := ensureFertilizer(ctx, tx, fields.FertilizerID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE calculations
		SET
			fertilizer_id = ?,
			calculation_name = ?,
			trees = ?,
			rate = ?,
			frequency = ?,
			updated_at = ?
		WHERE id = ?
	`, fields.FertilizerID, fields.Name, fields.Trees, fields.Rate, fields.Frequency, c.now(), id)
	if err != nil {
		return fmt.Errorf("update calculation %d: %w", id, err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit calculation update: %w", err)
	}
	return nil
}

// Delete removes calculation id.
func (c *Calculations) Delete(ctx context.Context, id int64) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calculation %d: %w", id, err)
	}
	return requireAffected(result)
}

func ensureFertilizer(ctx context.Context, tx *sqlx.Tx, id int64) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM fertilizers WHERE id = ?)`, id); err != nil {
		return fmt.Errorf("check fertilizer existence: %w", err)
	}
	if !exists {
		return ErrUnknownFertilizer
	}
	return nil
}

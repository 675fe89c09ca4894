package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cast"

	"github.com/Simplici0/orchard.works/internal/model"
)

type fertilizerRow struct {
	ID           int64     `db:"id"`
	Brand        string    `db:"brand"`
	PacketWeight float64   `db:"packet_weight"`
	PacketPrice  float64   `db:"packet_price"`
	Nutrients    string    `db:"nutrients"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r fertilizerRow) toModel() model.Fertilizer {
	return model.Fertilizer{
		ID:           r.ID,
		Brand:        r.Brand,
		PacketWeight: r.PacketWeight,
		PacketPrice:  r.PacketPrice,
		Nutrients:    decodeNutrients(r.Nutrients),
		CreatedAt:    r.CreatedAt,
	}
}

// decodeNutrients reads the stored JSON object. Values that are not numbers
// become 0 and an unreadable document yields an empty map.
func decodeNutrients(raw string) map[string]float64 {
	var values map[string]any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return map[string]float64{}
	}

	nutrients := make(map[string]float64, len(values))
	for name, v := range values {
		pct, err := cast.ToFloat64E(v)
		if err != nil {
			pct = 0
		}
		nutrients[name] = pct
	}
	return nutrients
}

// Catalog is the SQLite-backed CatalogStore.
type Catalog struct {
	db  *sqlx.DB
	now Clock
}

// NewCatalog returns a Catalog over db.
func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{db: db, now: utcNow}
}

// List returns every entry ordered by brand.
func (c *Catalog) List(ctx context.Context) ([]model.Fertilizer, error) {
	var rows []fertilizerRow
	err := c.db.SelectContext(ctx, &rows, `
		SELECT id, brand, packet_weight, packet_price, nutrients, created_at
		FROM fertilizers
		ORDER BY brand COLLATE NOCASE, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query fertilizers: %w", err)
	}

	entries := make([]model.Fertilizer, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toModel())
	}
	return entries, nil
}

// Get returns the entry with id, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, id int64) (model.Fertilizer, error) {
	var row fertilizerRow
	err := c.db.GetContext(ctx, &row, `
		SELECT id, brand, packet_weight, packet_price, nutrients, created_at
		FROM fertilizers
		WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fertilizer{}, ErrNotFound
	}
	if err != nil {
		return model.Fertilizer{}, fmt.Errorf("query fertilizer %d: %w", id, err)
	}
	return row.toModel(), nil
}

// Create validates and inserts a new entry, returning its id.
func (c *Catalog) Create(ctx context.Context, in model.NewFertilizer) (int64, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return 0, err
	}

	nutrients, err := json.Marshal(in.Nutrients)
	if err != nil {
		return 0, fmt.Errorf("encode nutrients: %w", err)
	}

	result, err := c.db.ExecContext(ctx, `
		INSERT INTO fertilizers (brand, packet_weight, packet_price, nutrients, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, in.Brand, in.PacketWeight, in.PacketPrice, string(nutrients), c.now())
	if err != nil {
		return 0, fmt.Errorf("insert fertilizer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read fertilizer id: %w", err)
	}
	return id, nil
}

// Delete removes an entry. Calculations that reference it are left in place.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM fertilizers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete fertilizer %d: %w", id, err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

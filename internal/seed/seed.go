package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Sample is a catalog entry inserted by Run when missing.
type Sample struct {
	Brand        string
	PacketWeight float64
	PacketPrice  float64
	Nutrients    map[string]float64
}

// Samples is the demo catalog used in development.
var Samples = []Sample{
	{Brand: "Baja Sebatian 15-15-15", PacketWeight: 50, PacketPrice: 145, Nutrients: map[string]float64{"Nitrogen (N)": 15, "Phosphorus (P)": 15, "Potassium (K)": 15}},
	{Brand: "Urea 46", PacketWeight: 50, PacketPrice: 120, Nutrients: map[string]float64{"Nitrogen (N)": 46}},
	{Brand: "Kieserite", PacketWeight: 50, PacketPrice: 95, Nutrients: map[string]float64{"Magnesium (Mg)": 16, "Sulfur (S)": 22}},
	{Brand: "Kompos Organik", PacketWeight: 25, PacketPrice: 18},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts every sample whose brand is not yet in the catalog. It is idempotent.
func Run(db *sql.DB, samples []Sample) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, s := range samples {
		if err := ensureFertilizer(tx, s, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureFertilizer(tx *sql.Tx, s Sample, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM fertilizers WHERE brand = ? LIMIT 1)`, s.Brand).Scan(&exists); err != nil {
		return fmt.Errorf("check fertilizer %q existence: %w", s.Brand, err)
	}
	if exists {
		return nil
	}

	nutrients := s.Nutrients
	if nutrients == nil {
		nutrients = map[string]float64{}
	}
	encoded, err := json.Marshal(nutrients)
	if err != nil {
		return fmt.Errorf("encode nutrients for %q: %w", s.Brand, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO fertilizers (brand, packet_weight, packet_price, nutrients)
		VALUES (?, ?, ?, ?)
	`, s.Brand, s.PacketWeight, s.PacketPrice, string(encoded)); err != nil {
		return fmt.Errorf("insert fertilizer %q: %w", s.Brand, err)
	}
	stats.Inserts++
	return nil
}

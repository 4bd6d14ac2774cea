package repositories

import (
	"context"
	"database/sql"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
)

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BusRepository) Insert(ctx context.Context, b models.Bus) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO buses (reg_number, capacity, bus_type)
		VALUES (?, ?, ?)
	`, b.RegNumber, b.Capacity, b.BusType)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Capacity returns the seat capacity of one bus, or sql.ErrNoRows when
// the bus does not exist.
func (r BusRepository) Capacity(ctx context.Context, id int64) (int, error) {
	var capacity int
	err := r.db().QueryRowContext(ctx,
		`SELECT capacity FROM buses WHERE id = ?`, id,
	).Scan(&capacity)
	return capacity, err
}

func (r BusRepository) List(ctx context.Context) ([]models.Bus, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, reg_number, capacity, bus_type
		FROM buses
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		var b models.Bus
		if err := rows.Scan(&b.ID, &b.RegNumber, &b.Capacity, &b.BusType); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

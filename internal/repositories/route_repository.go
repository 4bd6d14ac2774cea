package repositories

import (
	"context"
	"database/sql"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) Insert(ctx context.Context, rt models.Route) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO routes (source, destination)
		VALUES (?, ?)
	`, rt.Source, rt.Destination)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, source, destination
		FROM routes
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Source, &rt.Destination); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

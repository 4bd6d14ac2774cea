package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ScheduleRepository) Insert(ctx context.Context, s models.Schedule) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO schedules (bus_id, route_id, departure_time, arrival_time, fare, available_seats)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.BusID, s.RouteID, s.DepartureTime, s.ArrivalTime, s.Fare, s.AvailableSeats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepository) List(ctx context.Context) ([]models.ScheduleRow, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT s.id, b.reg_number, b.bus_type, rt.source, rt.destination,
		       s.departure_time, s.arrival_time, s.fare, s.available_seats
		FROM schedules s
		JOIN buses b ON s.bus_id = b.id
		JOIN routes rt ON s.route_id = rt.id
		ORDER BY s.departure_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduleRows(rows)
}

// Search returns schedules with seats left, matching source, destination
// and departure date exactly. The caller receives the full result set.
func (r ScheduleRepository) Search(ctx context.Context, source, destination, date string) ([]models.ScheduleRow, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT s.id, b.reg_number, b.bus_type, rt.source, rt.destination,
		       s.departure_time, s.arrival_time, s.fare, s.available_seats
		FROM schedules s
		JOIN buses b ON s.bus_id = b.id
		JOIN routes rt ON s.route_id = rt.id
		WHERE rt.source = ? AND rt.destination = ? AND DATE(s.departure_time) = ?
		  AND s.available_seats > 0
		ORDER BY s.departure_time ASC
	`, source, destination, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanScheduleRows(rows)
}

func scanScheduleRows(rows *sql.Rows) ([]models.ScheduleRow, error) {
	out := []models.ScheduleRow{}
	for rows.Next() {
		var (
			row      models.ScheduleRow
			dep, arr time.Time
		)
		if err := rows.Scan(&row.ScheduleID, &row.RegNumber, &row.BusType,
			&row.Source, &row.Destination, &dep, &arr, &row.Fare, &row.AvailableSeats); err != nil {
			return nil, err
		}
		row.DepartureTime = utils.FormatDateTime(dep)
		row.ArrivalTime = utils.FormatDateTime(arr)
		out = append(out, row)
	}
	return out, rows.Err()
}

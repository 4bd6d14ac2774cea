package repositories

import (
	"context"
	"database/sql"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByUser returns all of a user's bookings joined with route and
// schedule info, most recent departure first.
func (r BookingRepository) ListByUser(ctx context.Context, userID int64) ([]models.BookingRow, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT b.id, rt.source, rt.destination, s.departure_time,
		       b.num_seats, b.total_amount, b.status, b.booking_date
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN routes rt ON s.route_id = rt.id
		WHERE b.user_id = ?
		ORDER BY s.departure_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingRow{}
	for rows.Next() {
		var (
			row          models.BookingRow
			status       string
			dep, created time.Time
		)
		if err := rows.Scan(&row.BookingID, &row.Source, &row.Destination, &dep,
			&row.NumSeats, &row.TotalAmount, &status, &created); err != nil {
			return nil, err
		}
		row.Status = models.BookingStatus(status)
		row.DepartureTime = utils.FormatDateTime(dep)
		row.BookingDate = utils.FormatDateTime(created)
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetDetails loads one booking joined with schedule, route and bus,
// constrained to the owning user. A missing row and a row owned by
// someone else both come back as sql.ErrNoRows.
func (r BookingRepository) GetDetails(ctx context.Context, bookingID, userID int64) (models.BookingDetails, error) {
	var (
		d                 models.BookingDetails
		status            string
		dep, arr, created time.Time
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT b.id, b.num_seats, b.total_amount, b.status, b.booking_date,
		       s.departure_time, s.arrival_time, s.fare,
		       rt.source, rt.destination,
		       bu.reg_number, bu.bus_type
		FROM bookings b
		JOIN schedules s ON b.schedule_id = s.id
		JOIN routes rt ON s.route_id = rt.id
		JOIN buses bu ON s.bus_id = bu.id
		WHERE b.id = ? AND b.user_id = ?
	`, bookingID, userID).Scan(
		&d.BookingID, &d.NumSeats, &d.TotalAmount, &status, &created,
		&dep, &arr, &d.Fare,
		&d.Source, &d.Destination,
		&d.RegNumber, &d.BusType,
	)
	if err != nil {
		return models.BookingDetails{}, err
	}
	d.Status = models.BookingStatus(status)
	d.BookingDate = utils.FormatDateTime(created)
	d.DepartureTime = utils.FormatDateTime(dep)
	d.ArrivalTime = utils.FormatDateTime(arr)
	return d, nil
}

func (r BookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]models.Passenger, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT name, age, gender, seat_number
		FROM passengers
		WHERE booking_id = ?
		ORDER BY seat_number ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Name, &p.Age, &p.Gender, &p.SeatNumber); err != nil {
			return nil, err
		}
		p.BookingID = bookingID
		out = append(out, p)
	}
	return out, rows.Err()
}

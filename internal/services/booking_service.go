package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	intdb "busbooking/internal/db"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

type BookingService struct {
	Bookings  repositories.BookingRepository
	DB        *sql.DB
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.Bookings.DB != nil {
		return s.Bookings
	}
	return repositories.BookingRepository{DB: s.db()}
}

type BookTicketInput struct {
	UserID     int64                   `json:"userId"`
	ScheduleID int64                   `json:"scheduleId"`
	NumOfSeats int                     `json:"numOfSeats"`
	Passengers []models.PassengerInput `json:"passengers"`
}

// BookTicket reserves seats on a schedule in one transaction. The seat
// counter is re-read under a row lock so two concurrent bookings for the
// last seats cannot both succeed; on any failure nothing persists.
func (s BookingService) BookTicket(ctx context.Context, callerID int64, in BookTicketInput) (models.BookingSummary, error) {
	if in.UserID != callerID {
		return models.BookingSummary{}, domain.ForbiddenError{Msg: "not authorized to book for this user"}
	}
	if in.ScheduleID <= 0 {
		return models.BookingSummary{}, domain.ValidationError{Field: "scheduleId", Msg: "invalid id"}
	}
	if in.NumOfSeats <= 0 {
		return models.BookingSummary{}, domain.ValidationError{Field: "numOfSeats", Msg: "must be positive"}
	}
	if len(in.Passengers) != in.NumOfSeats {
		return models.BookingSummary{}, domain.ValidationError{Msg: "number of seats does not match number of passengers"}
	}
	for _, p := range in.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return models.BookingSummary{}, domain.ValidationError{Field: "passengers", Msg: "every passenger needs a name"}
		}
	}

	var out models.BookingSummary
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		var (
			available int
			capacity  int
			fare      float64
		)
		// Row lock on the schedule serializes concurrent bookings.
		err := tx.QueryRowContext(ctx, `
			SELECT s.available_seats, s.fare, b.capacity
			FROM schedules s
			JOIN buses b ON s.bus_id = b.id
			WHERE s.id = ?
			FOR UPDATE
		`, in.ScheduleID).Scan(&available, &fare, &capacity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "schedule"}
			}
			return err
		}

		if available < in.NumOfSeats {
			return domain.ConflictError{Resource: "schedule", Msg: "not enough seats available"}
		}

		seats, err := freeSeats(ctx, tx, in.ScheduleID, capacity, in.NumOfSeats)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE schedules SET available_seats = available_seats - ? WHERE id = ?
		`, in.NumOfSeats, in.ScheduleID); err != nil {
			return err
		}

		total := fare * float64(in.NumOfSeats)
		res, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (user_id, schedule_id, num_seats, total_amount, status, booking_date)
			VALUES (?, ?, ?, ?, ?, NOW())
		`, in.UserID, in.ScheduleID, in.NumOfSeats, total, string(models.StatusConfirmed))
		if err != nil {
			return err
		}
		bookingID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for i, p := range in.Passengers {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO passengers (booking_id, name, age, gender, seat_number)
				VALUES (?, ?, ?, ?, ?)
			`, bookingID, strings.TrimSpace(p.Name), p.Age, p.Gender, seats[i]); err != nil {
				return err
			}
		}

		out = models.BookingSummary{
			BookingID:   bookingID,
			NumSeats:    in.NumOfSeats,
			TotalAmount: total,
			Status:      models.StatusConfirmed,
		}
		return nil
	})
	if err != nil {
		return models.BookingSummary{}, domain.Internalize(err)
	}

	utils.LogEvent(s.RequestID, "booking", "book",
		fmt.Sprintf("booking_id=%d schedule_id=%d seats=%d", out.BookingID, in.ScheduleID, in.NumOfSeats))
	return out, nil
}

// freeSeats returns the n lowest seat numbers not occupied by passengers
// of a Confirmed booking on the schedule. Cancelled bookings release their
// numbers for reuse. Must run under the schedule row lock so two bookings
// cannot pick the same seats.
func freeSeats(ctx context.Context, tx *sql.Tx, scheduleID int64, capacity, n int) ([]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT p.seat_number
		FROM passengers p
		JOIN bookings bk ON p.booking_id = bk.id
		WHERE bk.schedule_id = ? AND bk.status = ?
	`, scheduleID, string(models.StatusConfirmed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taken := map[int]bool{}
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		taken[seat] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	seats := make([]int, 0, n)
	for seat := 1; seat <= capacity && len(seats) < n; seat++ {
		if !taken[seat] {
			seats = append(seats, seat)
		}
	}
	if len(seats) < n {
		return nil, domain.ConflictError{Resource: "schedule", Msg: "not enough seats available"}
	}
	return seats, nil
}

// CancelTicket marks a booking cancelled and releases its seats back to
// the schedule, atomically. Cancelling an already-cancelled booking is a
// no-op success and never increments the seat counter twice.
func (s BookingService) CancelTicket(ctx context.Context, callerID int64, isAdmin bool, bookingID int64) (string, error) {
	if bookingID <= 0 {
		return "", domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}

	var message string
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		var (
			scheduleID int64
			ownerID    int64
			numSeats   int
			status     string
		)
		err := tx.QueryRowContext(ctx, `
			SELECT schedule_id, user_id, num_seats, status
			FROM bookings
			WHERE id = ?
			FOR UPDATE
		`, bookingID).Scan(&scheduleID, &ownerID, &numSeats, &status)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "booking"}
			}
			return err
		}

		// Someone else's booking looks exactly like a missing one.
		if !isAdmin && ownerID != callerID {
			return domain.NotFoundError{Resource: "booking"}
		}

		if models.BookingStatus(status) == models.StatusCancelled {
			message = "Booking was already cancelled"
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE bookings SET status = ? WHERE id = ?
		`, string(models.StatusCancelled), bookingID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE schedules SET available_seats = available_seats + ? WHERE id = ?
		`, numSeats, scheduleID); err != nil {
			return err
		}

		message = fmt.Sprintf("Booking cancelled, %d seat(s) released", numSeats)
		return nil
	})
	if err != nil {
		return "", domain.Internalize(err)
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%d", bookingID))
	return message, nil
}

// GetBookingDetails returns the full joined view of one booking plus its
// passenger list. A booking that does not exist and one that belongs to
// another user are indistinguishable to the caller.
func (s BookingService) GetBookingDetails(ctx context.Context, callerID, bookingID int64) (models.BookingDetails, []models.Passenger, error) {
	if bookingID <= 0 {
		return models.BookingDetails{}, nil, domain.ValidationError{Field: "bookingId", Msg: "invalid id"}
	}

	details, err := s.bookings().GetDetails(ctx, bookingID, callerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingDetails{}, nil, domain.NotFoundError{Resource: "booking"}
		}
		return models.BookingDetails{}, nil, domain.InternalError{Err: err}
	}

	passengers, err := s.bookings().ListPassengers(ctx, bookingID)
	if err != nil {
		return models.BookingDetails{}, nil, domain.InternalError{Err: err}
	}
	return details, passengers, nil
}

// ListUserBookings returns a user's booking history; callers may only see
// their own unless they are admins.
func (s BookingService) ListUserBookings(ctx context.Context, callerID int64, isAdmin bool, userID int64) ([]models.BookingRow, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "userId", Msg: "invalid id"}
	}
	if !isAdmin && userID != callerID {
		return nil, domain.ForbiddenError{Msg: "not authorized to view these bookings"}
	}

	rows, err := s.bookings().ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return rows, nil
}

package services

import (
	"context"
	"errors"
	"testing"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return BookingService{DB: db}, mock, func() { db.Close() }
}

func twoPassengers() []models.PassengerInput {
	return []models.PassengerInput{
		{Name: "Asha", Age: 29, Gender: "F"},
		{Name: "Ravi", Age: 31, Gender: "M"},
	}
}

func TestBookTicketSuccess(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.available_seats, s.fare, b.capacity").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "fare", "capacity"}).
			AddRow(38, 100.0, 40))
	mock.ExpectQuery("SELECT p.seat_number").
		WithArgs(int64(5), "Confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(1).AddRow(2))
	mock.ExpectExec("UPDATE schedules SET available_seats = available_seats -").
		WithArgs(2, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(9), int64(5), 2, 200.0, "Confirmed").
		WillReturnResult(sqlmock.NewResult(11, 1))
	// Seats 1 and 2 are occupied, so the lowest free seats are 3 and 4.
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(11), "Asha", 29, "F", 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(11), "Ravi", 31, "M", 4).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	summary, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if summary.BookingID != 11 {
		t.Fatalf("booking id: got %d want 11", summary.BookingID)
	}
	if summary.TotalAmount != 200.0 {
		t.Fatalf("total amount: got %v want 200", summary.TotalAmount)
	}
	if summary.Status != models.StatusConfirmed {
		t.Fatalf("status: got %s want Confirmed", summary.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTicketSkipsSeatsHeldByConfirmedBookings(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// Seats 3 and 4 belong to another confirmed booking; an earlier
	// cancellation freed 1 and 2, so those must be handed out instead of
	// reassigning 3 and 4 from the raw counter.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.available_seats, s.fare, b.capacity").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "fare", "capacity"}).
			AddRow(38, 100.0, 40))
	mock.ExpectQuery("SELECT p.seat_number").
		WithArgs(int64(5), "Confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow(3).AddRow(4))
	mock.ExpectExec("UPDATE schedules SET available_seats = available_seats -").
		WithArgs(2, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(9), int64(5), 2, 200.0, "Confirmed").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(11), "Asha", 29, "F", 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO passengers").
		WithArgs(int64(11), "Ravi", 31, "M", 2).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	_, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTicketInsufficientSeatsRollsBack(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.available_seats, s.fare, b.capacity").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "fare", "capacity"}).
			AddRow(1, 100.0, 40))
	mock.ExpectRollback()

	_, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTicketScheduleNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.available_seats, s.fare, b.capacity").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "fare", "capacity"}))
	mock.ExpectRollback()

	_, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 404, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookTicketPassengerCountMismatchHitsNoDB(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	_, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2,
		Passengers: []models.PassengerInput{{Name: "Asha", Age: 29, Gender: "F"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// No transaction may have been opened.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestBookTicketForAnotherUserForbidden(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	_, err := svc.BookTicket(context.Background(), 7, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestBookTicketInsertFailureRollsBack(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT s.available_seats, s.fare, b.capacity").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "fare", "capacity"}).
			AddRow(5, 100.0, 40))
	mock.ExpectQuery("SELECT p.seat_number").
		WithArgs(int64(5), "Confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).
			AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectExec("UPDATE schedules SET available_seats = available_seats -").
		WithArgs(2, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("connection lost"))
	mock.ExpectRollback()

	_, err := svc.BookTicket(context.Background(), 9, BookTicketInput{
		UserID: 9, ScheduleID: 5, NumOfSeats: 2, Passengers: twoPassengers(),
	})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketRestoresSeats(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT schedule_id, user_id, num_seats, status").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "user_id", "num_seats", "status"}).
			AddRow(7, 9, 3, "Confirmed"))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("Cancelled", int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules SET available_seats = available_seats \+`).
		WithArgs(3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, err := svc.CancelTicket(context.Background(), 9, false, 77)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if msg == "" {
		t.Fatalf("expected a confirmation message")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketAlreadyCancelledIsNoOp(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT schedule_id, user_id, num_seats, status").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "user_id", "num_seats", "status"}).
			AddRow(7, 9, 3, "Cancelled"))
	mock.ExpectCommit()

	msg, err := svc.CancelTicket(context.Background(), 9, false, 77)
	if err != nil {
		t.Fatalf("expected no-op success, got %v", err)
	}
	if msg != "Booking was already cancelled" {
		t.Fatalf("unexpected message: %q", msg)
	}

	// No seat counter update may have been issued.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT schedule_id, user_id, num_seats, status").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "user_id", "num_seats", "status"}))
	mock.ExpectRollback()

	_, err := svc.CancelTicket(context.Background(), 9, false, 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelTicketOtherUsersBookingLooksMissing(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT schedule_id, user_id, num_seats, status").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"schedule_id", "user_id", "num_seats", "status"}).
			AddRow(7, 42, 3, "Confirmed"))
	mock.ExpectRollback()

	_, err := svc.CancelTicket(context.Background(), 9, false, 77)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found for foreign booking, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

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

type CatalogService struct {
	Buses     repositories.BusRepository
	Routes    repositories.RouteRepository
	Schedules repositories.ScheduleRepository
	DB        *sql.DB
	RequestID string
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) buses() repositories.BusRepository {
	if s.Buses.DB != nil {
		return s.Buses
	}
	return repositories.BusRepository{DB: s.db()}
}

func (s CatalogService) routes() repositories.RouteRepository {
	if s.Routes.DB != nil {
		return s.Routes
	}
	return repositories.RouteRepository{DB: s.db()}
}

func (s CatalogService) schedules() repositories.ScheduleRepository {
	if s.Schedules.DB != nil {
		return s.Schedules
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

type BusInput struct {
	RegNumber string `json:"regNumber"`
	Capacity  int    `json:"capacity"`
	BusType   string `json:"busType"`
}

func (s CatalogService) CreateBus(ctx context.Context, in BusInput) (int64, error) {
	reg := strings.TrimSpace(in.RegNumber)
	busType := strings.TrimSpace(in.BusType)
	if reg == "" || busType == "" || in.Capacity <= 0 {
		return 0, domain.ValidationError{Msg: "regNumber, capacity and busType are required"}
	}

	id, err := s.buses().Insert(ctx, models.Bus{RegNumber: reg, Capacity: in.Capacity, BusType: busType})
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "bus", Msg: "registration number already exists"}
		}
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (s CatalogService) ListBuses(ctx context.Context) ([]models.Bus, error) {
	out, err := s.buses().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type RouteInput struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func (s CatalogService) CreateRoute(ctx context.Context, in RouteInput) (int64, error) {
	src := strings.TrimSpace(in.Source)
	dst := strings.TrimSpace(in.Destination)
	if src == "" || dst == "" {
		return 0, domain.ValidationError{Msg: "source and destination are required"}
	}

	id, err := s.routes().Insert(ctx, models.Route{Source: src, Destination: dst})
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (s CatalogService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	out, err := s.routes().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type ScheduleInput struct {
	BusID          int64   `json:"busId"`
	RouteID        int64   `json:"routeId"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"availableSeats"`
}

func (in ScheduleInput) normalize() (models.Schedule, error) {
	if in.BusID <= 0 || in.RouteID <= 0 || in.Fare <= 0 || in.AvailableSeats <= 0 {
		return models.Schedule{}, domain.ValidationError{Msg: "busId, routeId, fare and availableSeats are required"}
	}
	dep, err := utils.NormalizeDateTime(in.DepartureTime)
	if err != nil {
		return models.Schedule{}, domain.ValidationError{Field: "departureTime", Msg: "invalid datetime", Err: err}
	}
	arr, err := utils.NormalizeDateTime(in.ArrivalTime)
	if err != nil {
		return models.Schedule{}, domain.ValidationError{Field: "arrivalTime", Msg: "invalid datetime", Err: err}
	}
	return models.Schedule{
		BusID:          in.BusID,
		RouteID:        in.RouteID,
		DepartureTime:  dep,
		ArrivalTime:    arr,
		Fare:           in.Fare,
		AvailableSeats: in.AvailableSeats,
	}, nil
}

func (s CatalogService) CreateSchedule(ctx context.Context, in ScheduleInput) (int64, error) {
	sched, err := in.normalize()
	if err != nil {
		return 0, err
	}

	// The seat counter may never start above the bus's capacity.
	capacity, err := s.buses().Capacity(ctx, in.BusID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "bus"}
		}
		return 0, domain.InternalError{Err: err}
	}
	if in.AvailableSeats > capacity {
		return 0, domain.ValidationError{
			Field: "availableSeats",
			Msg:   fmt.Sprintf("exceeds bus capacity of %d", capacity),
		}
	}

	id, err := s.schedules().Insert(ctx, sched)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (s CatalogService) ListSchedules(ctx context.Context) ([]models.ScheduleRow, error) {
	out, err := s.schedules().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type ScheduleUpdateInput struct {
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"availableSeats"`
}

// UpdateSchedule replaces fare, times and seat count. All fields are
// required; datetimes are normalized to the canonical storage format. The
// existence check and the update run under one row lock so a concurrent
// delete cannot turn the update into a silent no-op.
func (s CatalogService) UpdateSchedule(ctx context.Context, id int64, in ScheduleUpdateInput) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	if in.Fare <= 0 || in.AvailableSeats < 0 {
		return domain.ValidationError{Msg: "fare, departureTime, arrivalTime and availableSeats are required"}
	}
	dep, err := utils.NormalizeDateTime(in.DepartureTime)
	if err != nil {
		return domain.ValidationError{Field: "departureTime", Msg: "invalid datetime", Err: err}
	}
	arr, err := utils.NormalizeDateTime(in.ArrivalTime)
	if err != nil {
		return domain.ValidationError{Field: "arrivalTime", Msg: "invalid datetime", Err: err}
	}

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		var capacity int
		err := tx.QueryRowContext(ctx, `
			SELECT b.capacity
			FROM schedules s
			JOIN buses b ON s.bus_id = b.id
			WHERE s.id = ?
			FOR UPDATE
		`, id).Scan(&capacity)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFoundError{Resource: "schedule"}
			}
			return err
		}
		if in.AvailableSeats > capacity {
			return domain.ValidationError{
				Field: "availableSeats",
				Msg:   fmt.Sprintf("exceeds bus capacity of %d", capacity),
			}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE schedules
			SET fare = ?, departure_time = ?, arrival_time = ?, available_seats = ?
			WHERE id = ?
		`, in.Fare, dep, arr, in.AvailableSeats, id)
		return err
	})
	return domain.Internalize(err)
}

func (s CatalogService) Search(ctx context.Context, source, destination, date string) ([]models.ScheduleRow, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	date = strings.TrimSpace(date)
	if source == "" || destination == "" || date == "" {
		return nil, domain.ValidationError{Msg: "source, destination and date are required"}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}

	out, err := s.schedules().Search(ctx, source, destination, date)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// DeleteSchedule removes a schedule together with every booking that
// references it; passenger rows cascade off their bookings at the schema
// level. All-or-nothing: a missing schedule rolls the bookings back too.
func (s CatalogService) DeleteSchedule(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookings WHERE schedule_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.NotFoundError{Resource: "schedule"}
		}
		return nil
	})
	if err != nil {
		return domain.Internalize(err)
	}

	utils.LogEvent(s.RequestID, "catalog", "delete_schedule", fmt.Sprintf("schedule_id=%d", id))
	return nil
}

// DeleteBus removes a bus plus every schedule that uses it and every
// booking on those schedules, in one transaction.
func (s CatalogService) DeleteBus(ctx context.Context, id int64) error {
	if err := s.deleteCascade(ctx, "buses", "bus_id", id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "bus"}
		}
		return err
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_bus", fmt.Sprintf("bus_id=%d", id))
	return nil
}

// DeleteRoute removes a route plus its schedules and their bookings, in
// one transaction.
func (s CatalogService) DeleteRoute(ctx context.Context, id int64) error {
	if err := s.deleteCascade(ctx, "routes", "route_id", id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "route"}
		}
		return err
	}
	utils.LogEvent(s.RequestID, "catalog", "delete_route", fmt.Sprintf("route_id=%d", id))
	return nil
}

// deleteCascade deletes the root row in table and everything below it:
// bookings referencing its schedules first (passengers cascade via FK),
// then the schedules, then the root. Any failure, including a missing
// root, rolls the whole chain back.
func (s CatalogService) deleteCascade(ctx context.Context, table, fkColumn string, id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "invalid id"}
	}

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookings WHERE schedule_id IN (SELECT id FROM schedules WHERE `+fkColumn+` = ?)`,
			id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM schedules WHERE `+fkColumn+` = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.NotFoundError{}
		}
		return nil
	})
	return domain.Internalize(err)
}

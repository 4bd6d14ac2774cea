package models

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID          int64         `json:"bookingId"`
	UserID      int64         `json:"userId"`
	ScheduleID  int64         `json:"scheduleId"`
	NumSeats    int           `json:"numOfSeats"`
	TotalAmount float64       `json:"totalAmount"`
	Status      BookingStatus `json:"status"`
	BookingDate string        `json:"bookingDate"`
}

// PassengerInput is one passenger entry in a booking request; seat numbers
// are assigned server-side.
type PassengerInput struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

type Passenger struct {
	ID         int64  `json:"-"`
	BookingID  int64  `json:"-"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	SeatNumber int    `json:"seatNumber"`
}

// BookingSummary is the confirmation payload returned from a booking.
type BookingSummary struct {
	BookingID   int64         `json:"bookingId"`
	NumSeats    int           `json:"numOfSeats"`
	TotalAmount float64       `json:"totalAmount"`
	Status      BookingStatus `json:"status"`
}

// BookingRow is one entry of a user's booking list, joined with route and
// schedule info.
type BookingRow struct {
	BookingID     int64         `json:"bookingId"`
	Source        string        `json:"source"`
	Destination   string        `json:"destination"`
	DepartureTime string        `json:"departureTime"`
	NumSeats      int           `json:"numOfSeats"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        BookingStatus `json:"status"`
	BookingDate   string        `json:"bookingDate"`
}

// BookingDetails joins a booking with its schedule, route and bus.
type BookingDetails struct {
	BookingID     int64         `json:"bookingId"`
	NumSeats      int           `json:"numOfSeats"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        BookingStatus `json:"status"`
	BookingDate   string        `json:"bookingDate"`
	DepartureTime string        `json:"departureTime"`
	ArrivalTime   string        `json:"arrivalTime"`
	Fare          float64       `json:"fare"`
	Source        string        `json:"source"`
	Destination   string        `json:"destination"`
	RegNumber     string        `json:"regNumber"`
	BusType       string        `json:"busType"`
}

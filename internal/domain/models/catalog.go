package models

type Bus struct {
	ID        int64  `json:"busId"`
	RegNumber string `json:"regNumber"`
	Capacity  int    `json:"capacity"`
	BusType   string `json:"busType"`
}

type Route struct {
	ID          int64  `json:"routeId"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Schedule times are canonical "YYYY-MM-DD HH:MM:SS" strings.
type Schedule struct {
	ID             int64   `json:"scheduleId"`
	BusID          int64   `json:"busId"`
	RouteID        int64   `json:"routeId"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"availableSeats"`
}

// ScheduleRow is a schedule joined with its bus and route, as returned by
// the search and admin listing endpoints.
type ScheduleRow struct {
	ScheduleID     int64   `json:"scheduleId"`
	RegNumber      string  `json:"regNumber"`
	BusType        string  `json:"busType"`
	Source         string  `json:"source"`
	Destination    string  `json:"destination"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	Fare           float64 `json:"fare"`
	AvailableSeats int     `json:"availableSeats"`
}

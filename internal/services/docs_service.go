package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders booking documents. Ownership rules are the same as
// for booking details: the requesting user only ever sees their own.
type DocsService struct {
	Booking   BookingService
	RequestID string
}

// ETicket renders the e-ticket PDF for one booking and returns the bytes
// plus a safe download filename.
func (s DocsService) ETicket(ctx context.Context, callerID, bookingID int64) ([]byte, string, error) {
	details, passengers, err := s.Booking.GetBookingDetails(ctx, callerID, bookingID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(details, passengers)
}

func buildETicketPDF(d models.BookingDetails, passengers []models.Passenger) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Code : #%d", d.BookingID),
		fmt.Sprintf("Status       : %s", d.Status),
		fmt.Sprintf("Route        : %s -> %s", d.Source, d.Destination),
		fmt.Sprintf("Departure    : %s", d.DepartureTime),
		fmt.Sprintf("Arrival      : %s", d.ArrivalTime),
		fmt.Sprintf("Bus          : %s (%s)", d.RegNumber, d.BusType),
		fmt.Sprintf("Seats        : %d", d.NumSeats),
		fmt.Sprintf("Total        : %s", utils.FormatMoney(d.TotalAmount)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	for _, p := range passengers {
		pdf.Cell(0, 7, fmt.Sprintf("Seat %-3d %s (%d, %s)", p.SeatNumber, p.Name, p.Age, p.Gender))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this e-ticket at boarding. Valid only for the passengers and seats listed above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Source+"_"+d.Destination))
	return buf.Bytes(), filename, nil
}

func safeFilenamePart(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out.WriteRune(r)
		case r == ' ':
			out.WriteByte('-')
		}
	}
	if out.Len() == 0 {
		return "ticket"
	}
	return out.String()
}

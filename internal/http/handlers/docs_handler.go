package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/booking/:bookingId/e-ticket
// Returns the booking's e-ticket PDF (inline), owner only.
func GetBookingETicket(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}

	bookingID, ok := ParseIDParam(c, "bookingId")
	if !ok {
		return
	}

	svc := services.DocsService{
		Booking:   bookingService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.ETicket(c.Request.Context(), claims.UserID, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

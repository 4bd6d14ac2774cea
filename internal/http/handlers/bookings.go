package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/book
func BookTicket(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}

	var req services.BookTicketInput
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	summary, err := bookingService(c).BookTicket(ctx, claims.UserID, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type cancelRequest struct {
	BookingID int64 `json:"bookingId"`
}

// POST /api/cancel
func CancelTicket(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}

	var req cancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	isAdmin := claims.Role == models.RoleAdmin
	message, err := bookingService(c).CancelTicket(ctx, claims.UserID, isAdmin, req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GET /api/bookings/:userId
func GetMyBookings(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}

	userID, ok := ParseIDParam(c, "userId")
	if !ok {
		return
	}

	isAdmin := claims.Role == models.RoleAdmin
	rows, err := bookingService(c).ListUserBookings(c.Request.Context(), claims.UserID, isAdmin, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/booking/:bookingId
func GetBookingDetails(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		RespondError(c, http.StatusUnauthorized, "not authorized, no token", nil)
		return
	}

	bookingID, ok := ParseIDParam(c, "bookingId")
	if !ok {
		return
	}

	details, passengers, err := bookingService(c).GetBookingDetails(c.Request.Context(), claims.UserID, bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"details":    details,
		"passengers": passengers,
	})
}

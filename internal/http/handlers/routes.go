package handlers

import (
	"net/http"

	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/admin/route
func CreateRoute(c *gin.Context) {
	var req services.RouteInput
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := catalogService(c).CreateRoute(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "route added successfully", "routeId": id})
}

// GET /api/admin/route
func GetRoutes(c *gin.Context) {
	routes, err := catalogService(c).ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// DELETE /api/admin/route/:id
// Removes the route together with its schedules and their bookings.
func DeleteRoute(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := catalogService(c).DeleteRoute(ctx, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route and all related schedules/bookings deleted"})
}

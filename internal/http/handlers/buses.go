package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

func catalogService(c *gin.Context) services.CatalogService {
	return services.CatalogService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/admin/bus
func CreateBus(c *gin.Context) {
	var req services.BusInput
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := catalogService(c).CreateBus(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "bus added successfully", "busId": id})
}

// GET /api/admin/bus
func GetBuses(c *gin.Context) {
	buses, err := catalogService(c).ListBuses(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// DELETE /api/admin/bus/:id
// Removes the bus together with its schedules and their bookings.
func DeleteBus(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := catalogService(c).DeleteBus(ctx, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus and all related schedules/bookings deleted"})
}

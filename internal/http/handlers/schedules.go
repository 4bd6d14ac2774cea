package handlers

import (
	"net/http"

	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/admin/schedule
func CreateSchedule(c *gin.Context) {
	var req services.ScheduleInput
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := catalogService(c).CreateSchedule(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "schedule added successfully", "scheduleId": id})
}

// GET /api/admin/schedule
func GetSchedules(c *gin.Context) {
	schedules, err := catalogService(c).ListSchedules(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// PUT /api/admin/schedule/:id
func UpdateSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.ScheduleUpdateInput
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := catalogService(c).UpdateSchedule(c.Request.Context(), id, req); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule updated successfully"})
}

// DELETE /api/admin/schedule/:id
// Removes the schedule together with its bookings.
func DeleteSchedule(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := opContext(c)
	defer cancel()

	if err := catalogService(c).DeleteSchedule(ctx, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule and all associated bookings deleted successfully"})
}

// GET /api/search?source=&destination=&date=
func SearchSchedules(c *gin.Context) {
	rows, err := catalogService(c).Search(c.Request.Context(),
		c.Query("source"), c.Query("destination"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

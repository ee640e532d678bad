package api

import (
	"net/http"

	reqdto "github.com/deanb221/caravan/internal/handler/dto/request"
	"github.com/deanb221/caravan/internal/handler/httperr"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Availability calendar
// @Description Per-day booked flag and check-in eligibility. Defaults to six weeks from today.
// @Tags availability
// @Produce json
// @Param slug path string true "Caravan slug"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} queries.CalendarView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /caravans/{slug}/calendar [get]
func (h *AvailabilityHandler) Calendar(c *gin.Context) {
	var q reqdto.CalendarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	from, to, err := q.Dates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	view, err := h.q.Calendar(c.Request.Context(), c.Param("slug"), from, to)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Check-out options
// @Description Valid check-out dates for a check-in, with booking type and price
// @Tags availability
// @Produce json
// @Param slug path string true "Caravan slug"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Success 200 {object} queries.CheckOutOptionsView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /caravans/{slug}/checkouts [get]
func (h *AvailabilityHandler) CheckOuts(c *gin.Context) {
	var q reqdto.CheckOutQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "checkIn is required", nil)
		return
	}
	checkIn, err := civil.ParseDate(q.CheckIn)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	view, err := h.q.CheckOutOptions(c.Request.Context(), c.Param("slug"), checkIn)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Quote a stay
// @Description Booking type and flat total for a check-in/check-out pair
// @Tags availability
// @Accept json
// @Produce json
// @Param slug path string true "Caravan slug"
// @Param request body reqdto.QuoteRequest true "Stay dates"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /caravans/{slug}/quote [post]
func (h *AvailabilityHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	checkIn, checkOut, err := req.Dates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	view, err := h.q.Quote(c.Request.Context(), c.Param("slug"), checkIn, checkOut)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

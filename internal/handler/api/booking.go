package api

import (
	"context"
	"net/http"
	"strings"

	reqdto "github.com/deanb221/caravan/internal/handler/dto/request"
	resdto "github.com/deanb221/caravan/internal/handler/dto/response"
	"github.com/deanb221/caravan/internal/handler/httperr"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const replayedHeader = "Idempotent-Replayed"

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Submit booking request
// @Description Re-validates the stay against current bookings and reserves the dates
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.SubmitBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed request"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	var req reqdto.SubmitBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	result, err := h.cmds.Submit(c.Request.Context(), cmd, key)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.Header("Location", "/api/bookings/"+result.Booking.ID.String())
	if result.IsReplayed {
		c.Header(replayedHeader, "true")
		c.JSON(http.StatusOK, resdto.FromBookingView(result.Booking))
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(result.Booking))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Newest first, cursor paginated
// @Tags bookings
// @Produce json
// @Param caravan query string false "Caravan slug"
// @Param status query string false "pending, confirmed or cancelled"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var q reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	var filters queries.BookingFilters
	if slug := strings.TrimSpace(q.Caravan); slug != "" {
		filters.CaravanSlug = &slug
	}
	if q.Status != "" {
		filters.Status = &q.Status
	}
	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}

	items, next, err := h.q.List(c.Request.Context(), filters, cursor, q.Limit)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Confirm booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.Confirm)
}

// @Summary Cancel booking
// @Description Cancels the booking and frees its dates
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cmds.Cancel)
}

func (h *BookingHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*queries.BookingView, error)) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := apply(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

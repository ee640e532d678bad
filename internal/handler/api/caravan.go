package api

import (
	"net/http"

	resdto "github.com/deanb221/caravan/internal/handler/dto/response"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CaravanHandler struct {
	q queries.CaravanQueries
}

func NewCaravanHandler(q queries.CaravanQueries) *CaravanHandler {
	return &CaravanHandler{q: q}
}

// @Summary List caravans
// @Description Catalog of hireable caravans with package prices
// @Tags caravans
// @Produce json
// @Success 200 {object} resdto.CaravanListResponse
// @Router /caravans [get]
func (h *CaravanHandler) List(c *gin.Context) {
	items, err := h.q.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCaravanList(items))
}

// @Summary Get caravan
// @Description One caravan with pricing, booked dates and the season gate
// @Tags caravans
// @Produce json
// @Param slug path string true "Caravan slug"
// @Success 200 {object} queries.CaravanView
// @Failure 404 {object} map[string]string
// @Router /caravans/{slug} [get]
func (h *CaravanHandler) Get(c *gin.Context) {
	view, err := h.q.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

package handlers

import (
	"net/http"
	"strconv"

	response "copiadora_xpto/internal/adapter/http/dto/response"
	"copiadora_xpto/internal/usecase"
	"copiadora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidForce  = pkg.NewDomainErrorSimple("INVALID_QUERY", "force must be a boolean", http.StatusBadRequest)
	errInvalidPeriod = pkg.NewDomainErrorSimple("INVALID_PERIOD", "year and month must be integers", http.StatusBadRequest)
)

// DashboardHandler serves the monthly statistics snapshot (admin only).
type DashboardHandler struct {
	usecase usecase.IDashboardUseCase
}

func NewDashboardHandler(uc usecase.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// GetStats godoc
// @Summary      Current month statistics
// @Description  Served from the monthly snapshot unless force=true or no snapshot exists yet.
// @Tags         dashboard
// @Produce      json
// @Param        force  query  bool  false  "Recompute and overwrite the snapshot"
// @Success      200  {object}  response.DashboardStatsResponse
// @Failure      403  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	force := false
	if raw := c.Query("force"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondAppError(c, errInvalidForce)
			return
		}
		force = v
	}

	stats, err := h.usecase.GetStats(c.Request.Context(), force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDashboardStats(stats))
}

// GetHistory godoc
// @Summary      Every stored snapshot, newest first
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}  response.DashboardStatsResponse
// @Security     Bearer
// @Router       /dashboard/stats/history [get]
func (h *DashboardHandler) GetHistory(c *gin.Context) {
	history, err := h.usecase.ListHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromDashboardHistory(history))
}

// GetStatsForMonth godoc
// @Summary      Snapshot of a given month
// @Description  Returns null when the month was never computed.
// @Tags         dashboard
// @Produce      json
// @Param        year   path  int  true  "Year"
// @Param        month  path  int  true  "Month (1-12)"
// @Success      200  {object}  response.DashboardStatsResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /dashboard/stats/{year}/{month} [get]
func (h *DashboardHandler) GetStatsForMonth(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		respondAppError(c, errInvalidPeriod)
		return
	}

	stats, err := h.usecase.GetStatsForMonth(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	if stats == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, response.FromDashboardStats(*stats))
}

package handlers

import (
	"net/http"

	request "copiadora_xpto/internal/adapter/http/dto/request"
	response "copiadora_xpto/internal/adapter/http/dto/response"
	"copiadora_xpto/internal/usecase"
	"copiadora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidQuery = pkg.NewDomainErrorSimple("INVALID_QUERY", "page and limit must be integers", http.StatusBadRequest)

// ServiceHandler serves the aggregated service resources.
type ServiceHandler struct {
	usecase usecase.IServiceUseCase
}

func NewServiceHandler(uc usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc}
}

// ListServices godoc
// @Summary      List services
// @Description  Filters are combined with AND. Results are ordered by creation date, newest first.
// @Tags         services
// @Produce      json
// @Param        category_id             query  string  false  "Category"
// @Param        client_id               query  string  false  "Client"
// @Param        client_copy_machine_id  query  string  false  "Equipment"
// @Param        city_id                 query  string  false  "City of the client's address"
// @Param        acquisition_type        query  string  false  "RENT | SOLD | OWNED"
// @Param        page                    query  int     false  "Page (default 1)"
// @Param        limit                   query  int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  response.ServicePageResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	var q request.ServiceQueryRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		respondAppError(c, errInvalidQuery)
		return
	}
	page, err := h.usecase.FindAll(c.Request.Context(), q.ToQuery())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServicePage(page))
}

// GetServiceStats godoc
// @Summary      Service health breakdown
// @Tags         services
// @Produce      json
// @Success      200  {object}  entities.ServiceStats
// @Security     Bearer
// @Router       /services/stats [get]
func (h *ServiceHandler) GetServiceStats(c *gin.Context) {
	stats, err := h.usecase.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetService godoc
// @Summary      Get a service with client, category, equipment and steps
// @Tags         services
// @Produce      json
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  response.ServiceResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /services/{id} [get]
func (h *ServiceHandler) GetService(c *gin.Context) {
	svc, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

// CreateService godoc
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CreateServiceRequest  true  "Service"
// @Success      201  {object}  response.ServiceResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var payload request.CreateServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	svc, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromService(svc))
}

// UpdateService godoc
// @Summary      Update a service
// @Description  Sending "steps" reconciles the step collection by id.
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Service ID"
// @Param        payload  body  request.UpdateServiceRequest  true  "Changes"
// @Success      200  {object}  response.ServiceResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /services/{id} [patch]
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var payload request.UpdateServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	svc, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromService(svc))
}

// DeleteService godoc
// @Summary      Delete a service with its steps and images
// @Tags         services
// @Param        id   path  string  true  "Service ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /services/{id} [delete]
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if err := h.usecase.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

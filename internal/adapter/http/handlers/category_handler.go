package handlers

import (
	"net/http"

	request "copiadora_xpto/internal/adapter/http/dto/request"
	response "copiadora_xpto/internal/adapter/http/dto/response"
	"copiadora_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
)

// CategoryHandler manages categories and their step templates. Mutations are
// mounted behind the admin middleware.
type CategoryHandler struct {
	usecase usecase.ICategoryUseCase
}

func NewCategoryHandler(uc usecase.ICategoryUseCase) *CategoryHandler {
	return &CategoryHandler{usecase: uc}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  response.CategoryResponse
// @Security     Bearer
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.usecase.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCategories(categories))
}

// GetCategory godoc
// @Summary      Get a category with its step templates
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.CategoryResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCategory(category))
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        payload  body  request.CreateCategoryRequest  true  "Category"
// @Success      201  {object}  response.CategoryResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var payload request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	category, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCategory(category))
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Category ID"
// @Param        payload  body  request.UpdateCategoryRequest  true  "Changes"
// @Success      200  {object}  response.CategoryResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var payload request.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	category, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCategory(category))
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Fails with 409 while any service references the category.
// @Tags         categories
// @Param        id   path  string  true  "Category ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

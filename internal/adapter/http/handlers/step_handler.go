package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	request "copiadora_xpto/internal/adapter/http/dto/request"
	response "copiadora_xpto/internal/adapter/http/dto/response"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase"
	"copiadora_xpto/pkg"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 10 << 20

var (
	errImageTooLarge = pkg.NewDomainErrorSimple("IMAGE_TOO_LARGE", "Image exceeds 10MB", http.StatusRequestEntityTooLarge)
	errInvalidUserID = pkg.NewDomainErrorSimple("INVALID_USER_ID", "User id must be a positive integer", http.StatusBadRequest)
)

// StepHandler exposes step reads, notes, status transitions and images.
type StepHandler struct {
	usecase usecase.IStepUseCase
}

func NewStepHandler(uc usecase.IStepUseCase) *StepHandler {
	return &StepHandler{usecase: uc}
}

// ListMySteps godoc
// @Summary      List the caller's steps
// @Tags         steps
// @Produce      json
// @Param        filter  query  string  false  "created_today | expires_today"
// @Success      200  {array}   response.StepResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/my-steps [get]
func (h *StepHandler) ListMySteps(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	steps, err := h.usecase.ListMySteps(c.Request.Context(), actor, c.Query("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSteps(steps))
}

// GetStep godoc
// @Summary      Get a step
// @Tags         steps
// @Produce      json
// @Param        id   path      string  true  "Step ID"
// @Success      200  {object}  response.StepResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id} [get]
func (h *StepHandler) GetStep(c *gin.Context) {
	step, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStep(step))
}

// UpdateStep godoc
// @Summary      Edit observation and responsable client
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Step ID"
// @Param        payload  body  request.UpdateStepRequest  true  "Notes"
// @Success      200  {object}  response.StepResponse
// @Failure      403  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id} [patch]
func (h *StepHandler) UpdateStep(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var payload request.UpdateStepRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	step, err := h.usecase.UpdateNotes(c.Request.Context(), actor, c.Param("id"), payload.ToNotes())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStep(step))
}

// StartStep godoc
// @Summary      Start a step
// @Tags         steps
// @Produce      json
// @Param        id   path      string  true  "Step ID"
// @Success      200  {object}  response.StepResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/start [patch]
func (h *StepHandler) StartStep(c *gin.Context) {
	h.transition(c, h.usecase.Start)
}

// ConcludeStep godoc
// @Summary      Conclude a step
// @Tags         steps
// @Produce      json
// @Param        id   path      string  true  "Step ID"
// @Success      200  {object}  response.StepResponse
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/conclude [patch]
func (h *StepHandler) ConcludeStep(c *gin.Context) {
	h.transition(c, h.usecase.Conclude)
}

// CancelStep godoc
// @Summary      Cancel a step
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "Step ID"
// @Param        payload  body  request.CancelStepRequest  true  "Reason"
// @Success      200  {object}  response.StepResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/cancel [patch]
func (h *StepHandler) CancelStep(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var payload request.CancelStepRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondAppError(c, errInvalidPayload)
		return
	}
	step, err := h.usecase.Cancel(c.Request.Context(), actor, c.Param("id"), payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStep(step))
}

func (h *StepHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, actor entities.Actor, id string) (entities.Step, error),
) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	step, err := apply(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStep(step))
}

// UploadImage godoc
// @Summary      Attach an image to a step
// @Tags         steps
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "Step ID"
// @Param        image  formData  file    true  "Image file"
// @Success      201  {object}  response.ImageResponse
// @Failure      400  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/images [post]
func (h *StepHandler) UploadImage(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var upload usecase.ImageUpload
	file, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// an empty upload is rejected by the use case
	case err != nil:
		respondAppError(c, errInvalidPayload)
		return
	default:
		if file.Size > maxImageBytes {
			respondAppError(c, errImageTooLarge)
			return
		}
		f, err := file.Open()
		if err != nil {
			respondAppError(c, errInvalidPayload)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		_ = f.Close()
		if err != nil {
			respondAppError(c, errInvalidPayload)
			return
		}
		upload = usecase.ImageUpload{
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	img, err := h.usecase.AttachImage(c.Request.Context(), actor, c.Param("id"), upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromImage(img))
}

// ListImages godoc
// @Summary      List a step's images, newest first
// @Tags         steps
// @Produce      json
// @Param        id   path  string  true  "Step ID"
// @Success      200  {array}   response.ImageResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/images [get]
func (h *StepHandler) ListImages(c *gin.Context) {
	images, err := h.usecase.ListImages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromImages(images))
}

// DeleteImage godoc
// @Summary      Delete a step image
// @Tags         steps
// @Param        id       path  string  true  "Step ID"
// @Param        imageId  path  string  true  "Image ID"
// @Success      204
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /steps/{id}/images/{imageId} [delete]
func (h *StepHandler) DeleteImage(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.usecase.DeleteImage(c.Request.Context(), actor, c.Param("id"), c.Param("imageId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnassignUser godoc
// @Summary      Clear a user's step assignments
// @Description  Called by the users service before a user is deleted.
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "User ID"
// @Success      200  {object}  response.UnassignResponse
// @Failure      403  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /users/{id}/assignments [delete]
func (h *StepHandler) UnassignUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		respondAppError(c, errInvalidUserID)
		return
	}
	n, err := h.usecase.UnassignUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.UnassignResponse{UserID: userID, Steps: n})
}

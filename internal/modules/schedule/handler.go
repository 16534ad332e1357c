package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/schedules", h.List)
	rg.GET("/schedules/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/schedules", h.Create)
	rg.PUT("/schedules/:id", h.Update)
	rg.DELETE("/schedules/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	schedules, total, err := h.service.List(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list schedules")
		return
	}
	response.Paginated(c, http.StatusOK, schedules, total, q.Limit, q.Offset)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sched, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sched)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sched, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sched)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Schedule not found")
	case errors.Is(err, ErrTrainNotFound):
		response.Error(c, http.StatusBadRequest, "TRAIN_NOT_FOUND", "Train not found")
	case errors.Is(err, ErrRouteNotFound):
		response.Error(c, http.StatusBadRequest, "ROUTE_NOT_FOUND", "Route not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid schedule data")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "SCHEDULE_CONFLICT", "Train schedule conflicts with an existing schedule")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

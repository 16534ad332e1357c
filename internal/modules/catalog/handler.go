package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/pkg/response"
	"railbook/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes catalog reads.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/stations", h.ListStations)
	rg.GET("/stations/:id", h.GetStation)
	rg.GET("/trains", h.ListTrains)
	rg.GET("/trains/:id", h.GetTrain)
	rg.GET("/routes", h.ListRoutes)
	rg.GET("/routes/:id", h.GetRoute)
}

// RegisterAdminRoutes exposes catalog writes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/stations", h.CreateStation)
	rg.PUT("/stations/:id", h.UpdateStation)
	rg.DELETE("/stations/:id", h.DeleteStation)
	rg.POST("/trains", h.CreateTrain)
	rg.PUT("/trains/:id", h.UpdateTrain)
	rg.DELETE("/trains/:id", h.DeleteTrain)
	rg.POST("/routes", h.CreateRoute)
	rg.PUT("/routes/:id", h.UpdateRoute)
	rg.DELETE("/routes/:id", h.DeleteRoute)
}

func (h *Handler) ListStations(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	stations, total, err := h.service.ListStations(c.Request.Context(), repository.StationFilters{
		City:   q.City,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list stations")
		return
	}
	response.Paginated(c, http.StatusOK, stations, total, q.Limit, q.Offset)
}

func (h *Handler) GetStation(c *gin.Context) {
	st, err := h.service.GetStation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, "station")
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) CreateStation(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	st, err := h.service.CreateStation(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err, "station")
		return
	}
	response.Success(c, http.StatusCreated, st)
}

func (h *Handler) UpdateStation(c *gin.Context) {
	var req UpdateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	st, err := h.service.UpdateStation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err, "station")
		return
	}
	response.Success(c, http.StatusOK, st)
}

func (h *Handler) DeleteStation(c *gin.Context) {
	if err := h.service.DeleteStation(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err, "station")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListTrains(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	trains, total, err := h.service.ListTrains(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list trains")
		return
	}
	response.Paginated(c, http.StatusOK, trains, total, q.Limit, q.Offset)
}

func (h *Handler) GetTrain(c *gin.Context) {
	t, err := h.service.GetTrain(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, "train")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) CreateTrain(c *gin.Context) {
	var req CreateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.CreateTrain(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err, "train")
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) UpdateTrain(c *gin.Context) {
	var req UpdateTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateTrain(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err, "train")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) DeleteTrain(c *gin.Context) {
	if err := h.service.DeleteTrain(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err, "train")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListRoutes(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	routes, total, err := h.service.ListRoutes(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list routes")
		return
	}
	response.Paginated(c, http.StatusOK, routes, total, q.Limit, q.Offset)
}

func (h *Handler) GetRoute(c *gin.Context) {
	rt, err := h.service.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err, "route")
		return
	}
	response.Success(c, http.StatusOK, rt)
}

func (h *Handler) CreateRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rt, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err, "route")
		return
	}
	response.Success(c, http.StatusCreated, rt)
}

func (h *Handler) UpdateRoute(c *gin.Context) {
	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rt, err := h.service.UpdateRoute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err, "route")
		return
	}
	response.Success(c, http.StatusOK, rt)
}

func (h *Handler) DeleteRoute(c *gin.Context) {
	if err := h.service.DeleteRoute(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err, "route")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", entity+" not found")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+entity+" data")
	case errors.Is(err, ErrSameStation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Origin and destination must differ")
	case errors.Is(err, ErrStationInUse):
		response.Error(c, http.StatusConflict, "STATION_IN_USE", "Station is referenced by active routes")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

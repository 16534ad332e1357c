package dashboard

import (
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

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, overview)
}

package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/pkg/response"
	"railbook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/history", h.History)
	rg.GET("/bookings/:id", h.Get)
	rg.PUT("/bookings/:id", h.Update)
	rg.DELETE("/bookings/:id", h.Delete)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := validator.Details(err); details != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", details)
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) ListAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	bookings, total, err := h.service.ListAll(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}
	response.Paginated(c, http.StatusOK, bookings, total, q.Limit, q.Offset)
}

func (h *Handler) History(c *gin.Context) {
	bookings, err := h.service.History(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking history")
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrScheduleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Schedule not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrTrainFull):
		response.Error(c, http.StatusBadRequest, "TRAIN_FULL", "Train is full")
	case errors.Is(err, ErrInvalidPassenger):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid passenger data")
	case errors.Is(err, ErrUnpaidOrder):
		response.Error(c, http.StatusConflict, "UNPAID_ORDER", "You have an unpaid order. Please complete it first.")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Unauthorized access")
	case errors.Is(err, ErrPaidImmutable):
		response.Error(c, http.StatusUnprocessableEntity, "PAID_IMMUTABLE", "Cannot modify a paid booking")
	case errors.Is(err, ErrPaymentGateway):
		response.Error(c, http.StatusInternalServerError, "PAYMENT_GATEWAY_ERROR", "Payment gateway error. Please try again later.")
	case errors.Is(err, ErrPersistence):
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Error creating payment record")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}

package payment

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"railbook/internal/domain"
	"railbook/internal/pkg/response"
)

var resultPage = template.Must(template.New("payment_result").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
  <h1>{{.Title}}</h1>
  <p>{{.Message}}</p>
  <p>Booking: {{.BookingID}}</p>
</body>
</html>`))

type Handler struct {
	service       *Service
	callbackToken string
}

func NewHandler(service *Service, callbackToken string) *Handler {
	return &Handler{service: service, callbackToken: callbackToken}
}

// RegisterWebRoutes exposes the gateway redirect landing pages and the
// invoice callback webhook.
func (h *Handler) RegisterWebRoutes(rg *gin.RouterGroup) {
	rg.GET("/payment/success/:id", h.Success)
	rg.GET("/payment/failure/:id", h.Failure)
	rg.POST("/payment/notification", h.Notification)
}

// RegisterAdminRoutes exposes the reconciliation batch entry point.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/check-unpaid", h.CheckUnpaid)
}

func (h *Handler) Success(c *gin.Context) {
	h.renderRedirect(c, true)
}

func (h *Handler) Failure(c *gin.Context) {
	h.renderRedirect(c, false)
}

func (h *Handler) renderRedirect(c *gin.Context, succeeded bool) {
	b, err := h.service.MarkRedirectResult(c.Request.Context(), c.Param("id"), succeeded)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		return
	}

	data := struct {
		Title     string
		Message   string
		BookingID string
	}{
		Title:     "Payment successful",
		Message:   "Your booking has been paid. Have a nice trip!",
		BookingID: b.ID,
	}
	if !succeeded {
		data.Title = "Payment failed"
		data.Message = "Your payment did not go through. The booking was not charged."
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = resultPage.Execute(c.Writer, data)
}

type invoiceCallback struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// Notification receives Xendit's invoice callback and applies the reported
// status. Unknown statuses are acknowledged without effect so the gateway
// does not keep retrying them.
func (h *Handler) Notification(c *gin.Context) {
	if h.callbackToken != "" && c.GetHeader("x-callback-token") != h.callbackToken {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid callback token")
		return
	}

	var cb invoiceCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid callback payload")
		return
	}

	var status domain.PaymentStatus
	switch cb.Status {
	case "PAID", "SETTLED":
		status = domain.PaymentPaid
	case "EXPIRED":
		status = domain.PaymentExpired
	case "FAILED":
		status = domain.PaymentFailed
	default:
		response.Success(c, http.StatusOK, gin.H{"ignored": true})
		return
	}

	if err := h.service.UpdatePaymentStatus(c.Request.Context(), cb.ID, status); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to apply payment status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ignored": false})
}

func (h *Handler) CheckUnpaid(c *gin.Context) {
	result, err := h.service.CheckUnpaidOrders(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check unpaid orders")
		return
	}
	response.Success(c, http.StatusOK, result)
}

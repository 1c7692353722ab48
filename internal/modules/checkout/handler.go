package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atvtours/internal/modules/booking"
	"atvtours/internal/pkg/response"
	"atvtours/internal/repository"
)

type Handler struct {
	service  *Service
	sessions sessionStore
}

func NewHandler(service *Service, sessions sessionStore) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/sessions/:id/submit", h.Submit)
	rg.GET("/bookings/:transaction_id", h.GetBooking)
}

func (h *Handler) Submit(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Unknown checkout session")
		return
	}

	fb, fields, err := h.service.Submit(c.Request.Context(), sess)
	if len(fields) > 0 {
		response.FieldErrors(c, "Payment step is not valid", fields)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotOnPaymentStep):
			response.Error(c, http.StatusConflict, "WRONG_STEP", "Session is not on the payment step")
		case errors.Is(err, booking.ErrSubmissionInFlight):
			response.Error(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", "A payment submission is already in flight")
		case errors.Is(err, booking.ErrSessionClosed), errors.Is(err, booking.ErrStaleResult):
			response.Error(c, http.StatusGone, "SESSION_CLOSED", "Checkout session is no longer active")
		case errors.Is(err, ErrStaleSubmission):
			response.Error(c, http.StatusConflict, "STALE_SUBMISSION", "The price changed during submission; please submit again")
		case errors.Is(err, ErrGatewayDeclined):
			response.Error(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", err.Error())
		case errors.Is(err, ErrGatewayTimeout), errors.Is(err, ErrGatewayUnreachable):
			response.Error(c, http.StatusBadGateway, "GATEWAY_UNAVAILABLE", TimeoutMessage)
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": fb})
}

func (h *Handler) GetBooking(c *gin.Context) {
	fb, err := h.service.GetBooking(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "No booking for that transaction")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": fb})
}

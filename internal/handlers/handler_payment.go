package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
	"github.com/SscSPs/invoice_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests that run the payment saga.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	posthogClient  *utils.PosthogClientWrapper
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper) *paymentHandler {
	return &paymentHandler{paymentService: ps, posthogClient: posthogClient}
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newPaymentHandler(paymentService, posthogClient)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.GET("/:intentID", h.getPaymentIntent)
		payments.POST("/:intentID/resume", h.resumePayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records a payment invoice and a journal entry, then updates the party balance.
// @Description When a step fails the partial result is returned with status 500 and can be resumed.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount, method or party reference"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Party not found"
// @Failure 500 {object} dto.PaymentResponse "A saga step failed"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	authorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Author user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("party_id", req.PartyID), slog.String("party_kind", string(req.PartyKind)))
	logger.Info("Received request to record payment", slog.String("amount", req.Amount.String()), slog.String("method", string(req.Method)))

	result, err := h.paymentService.RecordPayment(c.Request.Context(), req, authorID)
	h.writePaymentResult(c, logger, result, err, http.StatusCreated)
	if err == nil {
		middleware.PosthogEvent(c, h.posthogClient, "payment_recorded", map[string]any{
			"party_kind": string(req.PartyKind),
			"method":     string(req.Method),
		})
	}
}

// resumePayment godoc
// @Summary Resume a payment
// @Description Re-drives an incomplete payment from its last completed stage
// @Tags payments
// @Produce  json
// @Param   intentID path string true "Payment intent ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed intent ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment intent not found"
// @Failure 500 {object} dto.PaymentResponse "A saga step failed again"
// @Security BearerAuth
// @Router /payments/{intentID}/resume [post]
func (h *paymentHandler) resumePayment(c *gin.Context) {
	intentID := c.Param("intentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("intent_id", intentID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.paymentService.ResumePayment(c.Request.Context(), intentID, userID)
	h.writePaymentResult(c, logger, result, err, http.StatusOK)
}

// getPaymentIntent godoc
// @Summary Get payment status
// @Description Returns the persisted saga state of a payment
// @Tags payments
// @Produce  json
// @Param   intentID path string true "Payment intent ID"
// @Success 200 {object} domain.PaymentIntent
// @Failure 400 {object} dto.ErrorResponse "Malformed intent ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Payment intent not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get payment intent"
// @Security BearerAuth
// @Router /payments/{intentID} [get]
func (h *paymentHandler) getPaymentIntent(c *gin.Context) {
	intentID := c.Param("intentID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("intent_id", intentID))

	intent, err := h.paymentService.GetPaymentIntent(c.Request.Context(), intentID)
	if err != nil {
		respondError(c, logger, err, "get payment intent")
		return
	}
	c.JSON(http.StatusOK, intent)
}

// writePaymentResult answers with the saga result. A stage failure keeps the partial
// result in the body so the caller can see how far the payment got.
func (h *paymentHandler) writePaymentResult(c *gin.Context, logger *slog.Logger, result *domain.PaymentResult, err error, okStatus int) {
	var stageErr *apperrors.StageError
	switch {
	case err == nil:
		c.JSON(okStatus, dto.PaymentResponse{Payment: *result})
	case errors.As(err, &stageErr) && result != nil:
		logger.Error("Payment saga step failed", slog.String("stage", stageErr.Stage), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.PaymentResponse{Payment: *result, Error: err.Error()})
	default:
		respondError(c, logger, err, "record payment")
	}
}

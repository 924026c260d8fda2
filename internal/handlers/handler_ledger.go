package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the cash-flow journal and party balance histories.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/transactions", h.listTransactions)
	rg.GET("/customers/:partyID/ledger", h.partyLedger(domain.CustomerParty))
	rg.GET("/suppliers/:partyID/ledger", h.partyLedger(domain.SupplierParty))
}

// listTransactions godoc
// @Summary List journal entries
// @Description Lists transactions newest first using a continuation token
// @Tags ledger
// @Produce  json
// @Param   type query string false "Income or Expense"
// @Param   category query string false "customerPayment or supplierPayment"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters or token"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// partyLedger godoc
// @Summary Party balance ledger
// @Description Returns the balance entries of a customer or supplier and whether they reconcile with its balance
// @Tags ledger
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Success 200 {object} dto.PartyLedgerResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed party ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Party not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to load ledger"
// @Security BearerAuth
// @Router /customers/{partyID}/ledger [get]
// @Router /suppliers/{partyID}/ledger [get]
func (h *ledgerHandler) partyLedger(kind domain.PartyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		partyID := c.Param("partyID")
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("party_id", partyID),
			slog.String("party_kind", string(kind)),
		)

		resp, err := h.ledgerService.GetPartyLedger(c.Request.Context(), kind, partyID)
		if err != nil {
			respondError(c, logger, err, "load ledger")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

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

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.POST("/search", h.searchInvoices)
		invoices.POST("/customer-statement", h.customerStatement)
		invoices.POST("/supplier-statement", h.supplierStatement)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Records a sale, purchase or production invoice. Shift and bills are computed by the server.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Referenced customer or supplier not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	authorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Author user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create invoice", slog.String("kind", string(req.Kind)))

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, authorID)
	if err != nil {
		respondError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("shift", string(invoice.Shift)))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves an invoice with the current names of its customer and supplier
// @Tags invoices
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed invoice ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to get invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "get invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Changes the status and/or bills of an invoice. Derived bill fields are recomputed.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoiceID path string true "Invoice ID"
// @Param   invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondError(c, logger, err, "update invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// searchInvoices godoc
// @Summary Search invoices
// @Description Filtered, sorted and paginated invoice listing. Filter values of "all" are ignored.
// @Description A failed read still answers 200 with an empty page and the error message.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   query body dto.SearchInvoicesRequest true "Search parameters"
// @Success 200 {object} dto.SearchInvoicesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices/search [post]
func (h *invoiceHandler) searchInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SearchInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SearchInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.SearchInvoices(c.Request.Context(), req)
	if err != nil {
		if resp == nil {
			respondError(c, logger, err, "search invoices")
			return
		}
		logger.Error("Invoice search degraded", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, resp)
}

// customerStatement godoc
// @Summary Customer statement
// @Description Invoices of one customer with page subtotals
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   query body dto.StatementRequest true "Statement parameters"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed partyRef"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices/customer-statement [post]
func (h *invoiceHandler) customerStatement(c *gin.Context) {
	h.statement(c, domain.CustomerParty)
}

// supplierStatement godoc
// @Summary Supplier statement
// @Description Invoices of one supplier with page subtotals
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   query body dto.StatementRequest true "Statement parameters"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed partyRef"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /invoices/supplier-statement [post]
func (h *invoiceHandler) supplierStatement(c *gin.Context) {
	h.statement(c, domain.SupplierParty)
}

func (h *invoiceHandler) statement(c *gin.Context, kind domain.PartyKind) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("party_kind", string(kind)))
	var req dto.StatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for statement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.GetPartyStatement(c.Request.Context(), kind, req)
	if err != nil {
		if resp == nil {
			respondError(c, logger, err, "build statement")
			return
		}
		logger.Error("Statement read degraded", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
	}

	c.JSON(http.StatusOK, resp)
}

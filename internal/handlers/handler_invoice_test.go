package handlers_test

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) sampleInvoice(kind domain.InvoiceKind) *domain.Invoice {
	total := decimal.NewFromInt(100)
	return &domain.Invoice{
		InvoiceID:     uuid.NewString(),
		Kind:          kind,
		InvoiceNumber: "INV-1",
		Status:        domain.StatusPending,
		Shift:         domain.Morning,
		Items:         []byte(`[{"sku":"A1","qty":2}]`),
		Bills:         domain.CalculateBills(domain.BillsInput{Total: &total}),
	}
}

func (suite *HandlerTestSuite) TestCreateInvoice_Success() {
	customerID := uuid.NewString()
	created := suite.sampleInvoice(domain.SaleInvoice)
	created.CustomerID = &customerID

	suite.mockInvoiceService.On("CreateInvoice", mock.Anything,
		mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
			return req.Kind == domain.SaleInvoice && req.CustomerID != nil && *req.CustomerID == customerID &&
				req.Total != nil && req.Total.Equal(decimal.NewFromInt(100))
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices", fmt.Sprintf(
		`{"kind":"SaleInvoice","customerRef":%q,"items":[{"sku":"A1","qty":2}],"total":"100"}`, customerID))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.InvoiceResponse
	suite.decode(w, &resp)
	suite.Equal(created.InvoiceID, resp.InvoiceID)
	suite.NotNil(resp.SaleBills)
	suite.Nil(resp.BuyBills)
	suite.True(resp.Bills.Balance.Equal(decimal.NewFromInt(100)))
}

func (suite *HandlerTestSuite) TestCreateInvoice_BindingRejects() {
	cases := map[string]string{
		"payment kind":   `{"kind":"CustomerPayment","items":[]}`,
		"unknown kind":   `{"kind":"Refund","items":[]}`,
		"missing items":  `{"kind":"SaleInvoice"}`,
		"bad status":     `{"kind":"SaleInvoice","items":[],"status":"Lost"}`,
		"malformed ref":  `{"kind":"SaleInvoice","items":[],"customerRef":"abc"}`,
		"malformed json": `{"kind":`,
	}
	for name, body := range cases {
		w := suite.do(http.MethodPost, "/api/v1/invoices", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateInvoice_ServiceErrors() {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: a sale invoice references exactly one customer", apperrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: Customer x", apperrors.ErrPartyNotFound), http.StatusNotFound},
		{apperrors.NewAppError(500, "failed to insert invoice", errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.Anything, suite.userID).Return(nil, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/invoices", `{"kind":"SaleInvoice","items":[]}`)

		suite.Equal(tc.want, w.Code, tc.err.Error())
		var body dto.ErrorResponse
		suite.decode(w, &body)
		suite.NotEmpty(body.Error)
		if tc.want == http.StatusInternalServerError {
			suite.NotContains(body.Error, "boom")
		}
	}
}

func (suite *HandlerTestSuite) TestGetInvoice() {
	found := suite.sampleInvoice(domain.PurchaseInvoice)
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, found.InvoiceID).Return(found, nil).Once()
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, "missing").Return(nil, apperrors.ErrInvalidID).Once()
	unknown := uuid.NewString()
	suite.mockInvoiceService.On("GetInvoiceByID", mock.Anything, unknown).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices/"+found.InvoiceID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InvoiceResponse
	suite.decode(w, &resp)
	suite.NotNil(resp.BuyBills)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/invoices/missing", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/invoices/"+unknown, nil).Code)
}

func (suite *HandlerTestSuite) TestUpdateInvoice() {
	updated := suite.sampleInvoice(domain.SaleInvoice)
	updated.Status = domain.StatusCompleted

	suite.mockInvoiceService.On("UpdateInvoice", mock.Anything, updated.InvoiceID,
		mock.MatchedBy(func(req dto.UpdateInvoiceRequest) bool {
			return req.Status != nil && *req.Status == domain.StatusCompleted &&
				req.Bills != nil && req.Bills.Payed != nil && req.Bills.Payed.Equal(decimal.NewFromInt(40))
		}),
		suite.userID,
	).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/invoices/"+updated.InvoiceID, `{"status":"Completed","bills":{"payed":40}}`)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPut, "/api/v1/invoices/"+updated.InvoiceID, `{"status":"Archived"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSearchInvoices() {
	page := &domain.InvoicePage{Invoices: []domain.Invoice{*suite.sampleInvoice(domain.SaleInvoice)}, TotalCount: 11}
	suite.mockInvoiceService.On("SearchInvoices", mock.Anything,
		mock.MatchedBy(func(req dto.SearchInvoicesRequest) bool {
			return req.Kind == "all" && req.Page == 2 && req.Limit == 10 && req.Search == "acme"
		}),
	).Return(dto.NewSearchInvoicesResponse(page, 2, 10), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/search", `{"kind":"all","page":"2","limit":10,"search":"acme"}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.SearchInvoicesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Data, 1)
	suite.Equal(dto.SearchPagination{CurrentPage: 2, Limit: 10, Total: 11, TotalPages: 2}, resp.Pagination)
	suite.Empty(resp.Error)
}

func (suite *HandlerTestSuite) TestSearchInvoices_AnySortOrderReachesService() {
	for _, order := range []string{"Desc", "sideways"} {
		suite.mockInvoiceService.On("SearchInvoices", mock.Anything,
			mock.MatchedBy(func(req dto.SearchInvoicesRequest) bool { return req.SortOrder == order }),
		).Return(dto.NewSearchInvoicesResponse(&domain.InvoicePage{}, 1, 10), nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/invoices/search", map[string]any{"sortOrder": order})

		suite.Equal(http.StatusOK, w.Code, order)
	}
}

func (suite *HandlerTestSuite) TestSearchInvoices_DegradedRead() {
	degraded := dto.NewSearchInvoicesResponse(&domain.InvoicePage{}, 1, 10)
	degraded.Error = "failed to search invoices"
	suite.mockInvoiceService.On("SearchInvoices", mock.Anything, mock.Anything).
		Return(degraded, apperrors.NewAppError(500, "failed to query invoices", errors.New("timeout"))).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/search", `{}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SearchInvoicesResponse
	suite.decode(w, &resp)
	suite.Empty(resp.Data)
	suite.Equal("failed to search invoices", resp.Error)
}

func (suite *HandlerTestSuite) TestStatements_RouteByPartyKind() {
	partyID := uuid.NewString()
	empty := dto.NewStatementResponse(&domain.InvoicePage{Invoices: []domain.Invoice{}}, 1, 10)
	suite.mockInvoiceService.On("GetPartyStatement", mock.Anything, domain.CustomerParty,
		mock.MatchedBy(func(req dto.StatementRequest) bool { return req.PartyID == partyID }),
	).Return(empty, nil).Once()
	suite.mockInvoiceService.On("GetPartyStatement", mock.Anything, domain.SupplierParty, mock.Anything).
		Return(nil, fmt.Errorf("%w: partyRef is required", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/invoices/customer-statement", map[string]any{"partyRef": partyID})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/invoices/supplier-statement", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

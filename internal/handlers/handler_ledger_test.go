package handlers_test

import (
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListTransactions() {
	next := "eyJ0IjoxfQ"
	suite.mockLedgerService.On("ListTransactions", mock.Anything,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Type == domain.Income && p.Limit == 2 && p.NextToken != nil && *p.NextToken == "abc"
		}),
	).Return(&dto.ListTransactionsResponse{
		Transactions: []domain.Transaction{{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(50)}},
		NextToken:    &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?type=Income&limit=2&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListTransactionsResponse
	suite.decode(w, &resp)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListTransactions_BadQuery() {
	for _, q := range []string{"?limit=1000", "?type=Refund", "?category=rent"} {
		w := suite.do(http.MethodGet, "/api/v1/transactions"+q, nil)
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
	suite.mockLedgerService.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListTransactions_BadToken() {
	suite.mockLedgerService.On("ListTransactions", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(400, "invalid nextToken", nil)).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?nextToken=not-base64!", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPartyLedger_RoutesByKind() {
	customerID := uuid.NewString()
	supplierID := uuid.NewString()
	ledger := &dto.PartyLedgerResponse{
		Party:   domain.Party{PartyID: customerID, Kind: domain.CustomerParty, Balance: decimal.NewFromInt(150)},
		Entries: []domain.BalanceEntry{},
		Reconciliation: domain.BalanceReconciliation{
			PartyID:        customerID,
			StoredBalance:  decimal.NewFromInt(150),
			DerivedBalance: decimal.NewFromInt(150),
			Reconciled:     true,
		},
	}
	suite.mockLedgerService.On("GetPartyLedger", mock.Anything, domain.CustomerParty, customerID).Return(ledger, nil).Once()
	suite.mockLedgerService.On("GetPartyLedger", mock.Anything, domain.SupplierParty, supplierID).
		Return(nil, apperrors.ErrPartyNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/"+customerID+"/ledger", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PartyLedgerResponse
	suite.decode(w, &resp)
	suite.True(resp.Reconciliation.Reconciled)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/suppliers/"+supplierID+"/ledger", nil).Code)
}

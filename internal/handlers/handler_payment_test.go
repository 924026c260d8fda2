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

func paymentResult(partyID string, stage domain.PaymentStage) *domain.PaymentResult {
	return &domain.PaymentResult{
		Intent: domain.PaymentIntent{
			IntentID:      uuid.NewString(),
			PartyID:       partyID,
			PartyKind:     domain.CustomerParty,
			Amount:        decimal.NewFromInt(50),
			Method:        domain.Cash,
			Stage:         stage,
			LastStage:     stage,
			InvoiceID:     uuid.NewString(),
			TransactionID: uuid.NewString(),
		},
		BalanceBefore: decimal.NewFromInt(200),
		BalanceAfter:  decimal.NewFromInt(150),
	}
}

func (suite *HandlerTestSuite) TestRecordPayment_Created() {
	partyID := uuid.NewString()
	result := paymentResult(partyID, domain.StageBalanceUpdated)

	suite.mockPaymentService.On("RecordPayment", mock.Anything,
		mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
			return req.PartyID == partyID && req.PartyKind == domain.CustomerParty &&
				req.Amount.Equal(decimal.NewFromInt(50)) && req.Method == domain.Cash &&
				req.IdempotencyKey != nil && *req.IdempotencyKey == "till-7-0042"
		}),
		suite.userID,
	).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", fmt.Sprintf(
		`{"partyRef":%q,"partyKind":"Customer","amount":50,"method":"Cash","idempotencyKey":"till-7-0042"}`, partyID))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PaymentResponse
	suite.decode(w, &resp)
	suite.Equal(domain.StageBalanceUpdated, resp.Payment.Intent.Stage)
	suite.True(resp.Payment.BalanceAfter.Equal(decimal.NewFromInt(150)))
	suite.Empty(resp.Error)
}

func (suite *HandlerTestSuite) TestRecordPayment_StageFailureKeepsResult() {
	partyID := uuid.NewString()
	result := paymentResult(partyID, domain.StageFailed)
	result.Intent.LastStage = domain.StageInvoiceRecorded
	stageErr := &apperrors.StageError{
		Stage: string(domain.StageTransactionRecorded),
		Err:   apperrors.NewAppError(500, "failed to insert transaction", errors.New("connection reset")),
	}
	suite.mockPaymentService.On("RecordPayment", mock.Anything, mock.Anything, suite.userID).Return(result, stageErr).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments", fmt.Sprintf(
		`{"partyRef":%q,"partyKind":"Customer","amount":"50","method":"Online"}`, partyID))

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.PaymentResponse
	suite.decode(w, &resp)
	suite.Equal(domain.StageFailed, resp.Payment.Intent.Stage)
	suite.Equal(domain.StageInvoiceRecorded, resp.Payment.Intent.LastStage)
	suite.Contains(resp.Error, "TransactionRecorded")
}

func (suite *HandlerTestSuite) TestRecordPayment_Rejections() {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"amount", apperrors.ErrInvalidAmount, http.StatusBadRequest},
		{"method", apperrors.ErrInvalidMethod, http.StatusBadRequest},
		{"party id", apperrors.ErrInvalidID, http.StatusBadRequest},
		{"unknown party", fmt.Errorf("%w: Customer x", apperrors.ErrPartyNotFound), http.StatusNotFound},
	}
	for _, tc := range tests {
		suite.mockPaymentService.On("RecordPayment", mock.Anything, mock.Anything, suite.userID).Return(nil, tc.err).Once()

		w := suite.do(http.MethodPost, "/api/v1/payments", `{"partyRef":"p","partyKind":"Customer","amount":0,"method":"Cash"}`)

		suite.Equal(tc.want, w.Code, tc.name)
	}
}

func (suite *HandlerTestSuite) TestRecordPayment_BindingRejects() {
	for _, body := range []string{
		`{"partyKind":"Customer","amount":5,"method":"Cash"}`,
		`{"partyRef":"p","partyKind":"Vendor","amount":5,"method":"Cash"}`,
		`{"partyRef":"p","amount":5,"method":"Cash"}`,
	} {
		w := suite.do(http.MethodPost, "/api/v1/payments", body)
		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
	suite.mockPaymentService.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestResumePayment() {
	result := paymentResult(uuid.NewString(), domain.StageBalanceUpdated)
	intentID := result.Intent.IntentID
	suite.mockPaymentService.On("ResumePayment", mock.Anything, intentID, suite.userID).Return(result, nil).Once()
	suite.mockPaymentService.On("ResumePayment", mock.Anything, "bogus", suite.userID).Return(nil, apperrors.ErrInvalidID).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments/"+intentID+"/resume", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PaymentResponse
	suite.decode(w, &resp)
	suite.Equal(intentID, resp.Payment.Intent.IntentID)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/payments/bogus/resume", nil).Code)
}

func (suite *HandlerTestSuite) TestGetPaymentIntent() {
	intent := paymentResult(uuid.NewString(), domain.StageInvoiceRecorded).Intent
	missing := uuid.NewString()
	suite.mockPaymentService.On("GetPaymentIntent", mock.Anything, intent.IntentID).Return(&intent, nil).Once()
	suite.mockPaymentService.On("GetPaymentIntent", mock.Anything, missing).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/payments/"+intent.IntentID, nil)
	suite.Equal(http.StatusOK, w.Code)
	var got domain.PaymentIntent
	suite.decode(w, &got)
	suite.Equal(domain.StageInvoiceRecorded, got.Stage)
	suite.Equal(intent.InvoiceID, got.InvoiceID)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/payments/"+missing, nil).Code)
}

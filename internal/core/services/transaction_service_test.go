package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	categoryRepo *MockCategoryRepository
	fx           *MockFxCalculator
	service      portssvc.TransactionSvcFacade
	ctx          context.Context
	user         domain.User
	now          time.Time
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.fx = new(MockFxCalculator)
	s.ctx = context.Background()
	s.user = testUser()
	s.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.service = services.NewTransactionService(s.txnRepo, s.categoryRepo, s.fx,
		services.WithTransactionClock(func() time.Time { return s.now }),
		services.WithPageSizes(2, 5),
	)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) expenseCategory() *domain.Category {
	return &domain.Category{ID: "cat-food", UserID: s.user.UserID, Type: domain.Expense, Name: "Groceries"}
}

func usdFields(cents, baseCents int64, rate string, d time.Time) *domain.FxFields {
	return &domain.FxFields{
		OriginalAmount: domain.MoneyAmount{Cents: cents, Currency: "USD"},
		BaseAmount:     domain.MoneyAmount{Cents: baseCents, Currency: "UAH"},
		FxRate:         decimal.RequireFromString(rate),
		FxDate:         d,
	}
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	occurred := time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{
		Type:       domain.Expense,
		CategoryID: "cat-food",
		Amount:     "25.00",
		Currency:   "USD",
		OccurredAt: occurred,
		Note:       strPtr("  groceries  "),
		ClientRef:  strPtr("ref-1"),
	}

	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()
	s.txnRepo.On("FindTransactionByClientRef", s.ctx, "user-1", "ref-1").Return(nil, apperrors.ErrNotFound).Once()
	s.fx.On("ComputeFxFields", s.ctx, "UAH", date(2025, 3, 7), "25.00", "USD").
		Return(usdFields(2500, 100000, "40", date(2025, 3, 7)), nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.UserID == "user-1" &&
			t.BaseAmount.Cents == 100000 &&
			t.PaymentMethod == domain.PaymentCard &&
			*t.Note == "groceries" &&
			t.CreatedAt.Equal(s.now) &&
			t.ID != ""
	})).Return(nil).Once()

	txn, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.Require().NoError(err)
	s.Equal(int64(2500), txn.OriginalAmount.Cents)
	s.Equal("USD", txn.OriginalAmount.Currency)
	s.Equal(date(2025, 3, 7), txn.FxDate)
	s.Equal(domain.PaymentCard, txn.PaymentMethod)
	s.txnRepo.AssertExpectations(s.T())
	s.fx.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_FxDateUsesUserTimezone() {
	s.user.Timezone = "Europe/Kyiv"
	// 23:30 UTC on the 7th is already the 8th in Kyiv.
	occurred := time.Date(2025, 3, 7, 23, 30, 0, 0, time.UTC)
	req := dto.CreateTransactionRequest{Type: domain.Expense, CategoryID: "cat-food", Amount: "10", Currency: "USD", OccurredAt: occurred}

	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()
	s.fx.On("ComputeFxFields", s.ctx, "UAH", date(2025, 3, 8), "10", "USD").
		Return(usdFields(1000, 40000, "40", date(2025, 3, 8)), nil).Once()
	s.txnRepo.On("SaveTransaction", s.ctx, mock.Anything).Return(nil).Once()

	txn, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.Require().NoError(err)
	s.Equal(date(2025, 3, 8), txn.FxDate)
	s.Equal(occurred, txn.OccurredAt)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InvalidAmountSkipsLookups() {
	req := dto.CreateTransactionRequest{Type: domain.Expense, CategoryID: "cat-food", Amount: "0.00", Currency: "USD", OccurredAt: s.now}

	_, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.categoryRepo.AssertNotCalled(s.T(), "FindCategoryByID", mock.Anything, mock.Anything, mock.Anything)
	s.fx.AssertNotCalled(s.T(), "ComputeFxFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_CategoryTypeMismatch() {
	req := dto.CreateTransactionRequest{Type: domain.Income, CategoryID: "cat-food", Amount: "10", Currency: "UAH", OccurredAt: s.now}
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()

	_, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_ArchivedOrMissingCategory() {
	archived := s.expenseCategory()
	archived.IsArchived = true
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(archived, nil).Once()
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-other-user").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateTransactionRequest{Type: domain.Expense, CategoryID: "cat-food", Amount: "10", Currency: "UAH", OccurredAt: s.now}
	_, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrValidation)

	req.CategoryID = "cat-other-user"
	_, err = s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_DuplicateClientRef() {
	req := dto.CreateTransactionRequest{Type: domain.Expense, CategoryID: "cat-food", Amount: "10", Currency: "UAH", OccurredAt: s.now, ClientRef: strPtr("ref-1")}
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()
	s.txnRepo.On("FindTransactionByClientRef", s.ctx, "user-1", "ref-1").
		Return(&domain.Transaction{LedgerEntry: domain.LedgerEntry{ID: "txn-old"}}, nil).Once()

	_, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Equal("CONFLICT", apperrors.Kind(err))
	s.fx.AssertNotCalled(s.T(), "ComputeFxFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_FxUnavailableStoresNothing() {
	req := dto.CreateTransactionRequest{Type: domain.Expense, CategoryID: "cat-food", Amount: "10", Currency: "USD", OccurredAt: s.now}
	fxErr := apperrors.NewFxUnavailableError(date(2025, 3, 3), date(2025, 3, 10), nil, "USD", "UAH")
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()
	s.fx.On("ComputeFxFields", s.ctx, "UAH", date(2025, 3, 10), "10", "USD").Return(nil, fxErr).Once()

	_, err := s.service.CreateTransaction(s.ctx, s.user, req)
	s.ErrorIs(err, apperrors.ErrFxUnavailable)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_RejectsBadEnums() {
	_, err := s.service.CreateTransaction(s.ctx, s.user, dto.CreateTransactionRequest{Type: "debit", Amount: "1", OccurredAt: s.now})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateTransaction(s.ctx, s.user, dto.CreateTransactionRequest{Type: domain.Expense, Amount: "1", OccurredAt: s.now, PaymentMethod: "crypto"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateTransaction(s.ctx, s.user, dto.CreateTransactionRequest{Type: domain.Expense, Amount: "1"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceTestSuite) existingTxn() *domain.Transaction {
	return &domain.Transaction{
		LedgerEntry: domain.LedgerEntry{
			ID:         "txn-1",
			UserID:     "user-1",
			CategoryID: "cat-food",
			FxFields:   *usdFields(2500, 100000, "40", date(2025, 3, 7)),
		},
		Type:          domain.Expense,
		OccurredAt:    time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC),
		PaymentMethod: domain.PaymentCash,
		Note:          strPtr("lunch"),
	}
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_NoteOnlyKeepsFx() {
	s.txnRepo.On("FindTransactionByID", s.ctx, "user-1", "txn-1").Return(s.existingTxn(), nil).Once()
	s.txnRepo.On("UpdateTransaction", s.ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Note == nil && t.BaseAmount.Cents == 100000 && t.FxRate.Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(s.ctx, s.user, "txn-1", domain.TransactionPatch{Note: strPtr("   ")})
	s.Require().NoError(err)
	s.Nil(updated.Note)
	s.Equal(s.now, updated.LastUpdatedAt)
	s.fx.AssertNotCalled(s.T(), "ComputeFxFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_OccurredAtRecomputesWithExistingAmount() {
	newOccurred := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	s.txnRepo.On("FindTransactionByID", s.ctx, "user-1", "txn-1").Return(s.existingTxn(), nil).Once()
	s.fx.On("ComputeFxFields", s.ctx, "UAH", date(2025, 3, 3), "25.00", "USD").
		Return(usdFields(2500, 102500, "41", date(2025, 3, 3)), nil).Once()
	s.txnRepo.On("UpdateTransaction", s.ctx, mock.Anything).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(s.ctx, s.user, "txn-1", domain.TransactionPatch{OccurredAt: &newOccurred})
	s.Require().NoError(err)
	s.Equal(int64(102500), updated.BaseAmount.Cents)
	s.Equal(date(2025, 3, 3), updated.FxDate)
	s.Equal(newOccurred, updated.OccurredAt)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_CurrencyToBase() {
	s.txnRepo.On("FindTransactionByID", s.ctx, "user-1", "txn-1").Return(s.existingTxn(), nil).Once()
	s.fx.On("ComputeFxFields", s.ctx, "UAH", date(2025, 3, 7), "1000.00", "UAH").Return(&domain.FxFields{
		OriginalAmount: domain.MoneyAmount{Cents: 100000, Currency: "UAH"},
		BaseAmount:     domain.MoneyAmount{Cents: 100000, Currency: "UAH"},
		FxRate:         decimal.NewFromInt(1),
		FxDate:         date(2025, 3, 7),
	}, nil).Once()
	s.txnRepo.On("UpdateTransaction", s.ctx, mock.Anything).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(s.ctx, s.user, "txn-1",
		domain.TransactionPatch{Amount: strPtr("1000.00"), Currency: strPtr("UAH")})
	s.Require().NoError(err)
	s.False(updated.IsConverted())
	s.True(updated.FxRate.Equal(decimal.NewFromInt(1)))
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_TypeChangeNeedsMatchingCategory() {
	income := domain.Income
	s.txnRepo.On("FindTransactionByID", s.ctx, "user-1", "txn-1").Return(s.existingTxn(), nil).Once()
	s.categoryRepo.On("FindCategoryByID", s.ctx, "user-1", "cat-food").Return(s.expenseCategory(), nil).Once()

	_, err := s.service.UpdateTransaction(s.ctx, s.user, "txn-1", domain.TransactionPatch{Type: &income})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "UpdateTransaction", mock.Anything, mock.Anything)
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	s.txnRepo.On("FindTransactionByID", s.ctx, "user-1", "nope").Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	_, err := s.service.UpdateTransaction(s.ctx, s.user, "nope", domain.TransactionPatch{Note: strPtr("x")})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestDeleteTransaction() {
	s.txnRepo.On("DeleteTransaction", s.ctx, "user-1", "txn-1").Return(nil).Once()
	s.txnRepo.On("DeleteTransaction", s.ctx, "user-1", "txn-2").Return(apperrors.NewNotFoundError("transaction not found")).Once()

	s.NoError(s.service.DeleteTransaction(s.ctx, s.user, "txn-1"))
	s.ErrorIs(s.service.DeleteTransaction(s.ctx, s.user, "txn-2"), apperrors.ErrNotFound)
}

func (s *TransactionServiceTestSuite) TestListTransactions_FullPageHasCursor() {
	rows := []domain.Transaction{
		{LedgerEntry: domain.LedgerEntry{ID: "b"}, OccurredAt: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{LedgerEntry: domain.LedgerEntry{ID: "a"}, OccurredAt: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
	}
	month := date(2025, 3, 1)
	end := date(2025, 4, 1)
	s.txnRepo.On("ListTransactions", s.ctx, "user-1", &month, &end, domain.TransactionFilter{}, 2, (*pagination.Cursor)(nil)).
		Return(rows, nil).Once()

	page, err := s.service.ListTransactions(s.ctx, s.user, dto.ListTransactionsParams{Month: "2025-03"})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
	s.Require().NotNil(page.NextCursor)

	c, err := pagination.DecodeToken(*page.NextCursor)
	s.Require().NoError(err)
	s.Equal("a", c.ID)
	s.True(c.OccurredAt.Equal(rows[1].OccurredAt))
}

func (s *TransactionServiceTestSuite) TestListTransactions_ShortPageNoCursorAndLimitClamp() {
	cursor := pagination.EncodeToken(time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), "b")
	s.txnRepo.On("ListTransactions", s.ctx, "user-1", (*time.Time)(nil), (*time.Time)(nil), mock.Anything, 5, mock.MatchedBy(func(c *pagination.Cursor) bool {
		return c != nil && c.ID == "b"
	})).Return([]domain.Transaction{{LedgerEntry: domain.LedgerEntry{ID: "a"}}}, nil).Once()

	page, err := s.service.ListTransactions(s.ctx, s.user, dto.ListTransactionsParams{Limit: 500, Cursor: cursor})
	s.Require().NoError(err)
	s.Len(page.Items, 1)
	s.Nil(page.NextCursor)
}

func (s *TransactionServiceTestSuite) TestListTransactions_InvalidInput() {
	_, err := s.service.ListTransactions(s.ctx, s.user, dto.ListTransactionsParams{Cursor: "%%%"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ListTransactions(s.ctx, s.user, dto.ListTransactionsParams{Month: "2025-03", From: "2025-03-01"})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.ListTransactions(s.ctx, s.user, dto.ListTransactionsParams{From: "2025-03-10", To: "2025-03-01"})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.txnRepo.AssertNotCalled(s.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/dto"
	"github.com/SscSPs/expense_tracker/internal/utils/money"
	"github.com/SscSPs/expense_tracker/internal/utils/pagination"
	"github.com/SscSPs/expense_tracker/internal/utils/period"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 30
	maxPageSize     = 100
)

// transactionService records income and expense entries with their FX bundle.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	fx           portssvc.FxFieldsCalculator
	pageDefault  int
	pageMax      int
}

// TransactionServiceOption is a function that configures a transactionService
type TransactionServiceOption func(*transactionService)

// WithPageSizes sets the default and maximum listing page sizes.
func WithPageSizes(def, max int) TransactionServiceOption {
	return func(s *transactionService) {
		if max > 0 {
			s.pageMax = max
		}
		if def > 0 {
			s.pageDefault = def
		}
		if s.pageDefault > s.pageMax {
			s.pageDefault = s.pageMax
		}
	}
}

// WithTransactionLocation sets the timezone used for users without one.
func WithTransactionLocation(loc *time.Location) TransactionServiceOption {
	return func(s *transactionService) {
		if loc != nil {
			s.DefaultLocation = loc
		}
	}
}

// WithTransactionClock replaces the service clock.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.Now = now
	}
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryReader,
	fx portssvc.FxFieldsCalculator,
	opts ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	s := &transactionService{
		BaseService:  newBaseService(nil),
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		fx:           fx,
		pageDefault:  defaultPageSize,
		pageMax:      maxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates the category, guards the idempotency key and
// resolves FX at the calendar date of occurredAt in the user's timezone.
func (s *transactionService) CreateTransaction(ctx context.Context, user domain.User, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if req.OccurredAt.IsZero() {
		return nil, fmt.Errorf("%w: occurredAt is required", apperrors.ErrValidation)
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCard
	}
	if !paymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", apperrors.ErrValidation, paymentMethod)
	}
	note, err := normalizeNote(req.Note)
	if err != nil {
		return nil, err
	}
	clientRef, err := normalizeClientRef(req.ClientRef)
	if err != nil {
		return nil, err
	}
	// Amount shape is checked before any lookup or rate resolution.
	if _, err := money.ParseAmount(req.Amount); err != nil {
		return nil, err
	}

	if _, err := requireCategory(ctx, s.categoryRepo, user.UserID, req.CategoryID, req.Type); err != nil {
		return nil, err
	}
	if clientRef != nil {
		if err := s.ensureClientRefFree(ctx, user.UserID, *clientRef, ""); err != nil {
			return nil, err
		}
	}

	fxDate := period.Date(req.OccurredAt, s.userLocation(user))
	fields, err := s.fx.ComputeFxFields(ctx, user.BaseCurrency, fxDate, req.Amount, req.Currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute FX fields",
			slog.String("currency", req.Currency), slog.String("fx_date", fxDate.Format(time.DateOnly)))
		return nil, err
	}

	txn := domain.Transaction{
		LedgerEntry: domain.LedgerEntry{
			ID:         uuid.NewString(),
			UserID:     user.UserID,
			CategoryID: req.CategoryID,
			FxFields:   *fields,
		},
		Type:          req.Type,
		OccurredAt:    req.OccurredAt.UTC(),
		PaymentMethod: paymentMethod,
		Note:          note,
		ClientRef:     clientRef,
		AuditFields:   domain.NewAuditFields(user.UserID, s.now()),
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save transaction")
		}
		return nil, err
	}
	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.ID))
	return &txn, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, user domain.User, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, user.UserID, transactionID)
}

// UpdateTransaction applies patch. When amount, currency or occurredAt is
// present the whole FX bundle is recomputed from the merged values.
func (s *transactionService) UpdateTransaction(ctx context.Context, user domain.User, transactionID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, user.UserID, transactionID)
	if err != nil {
		return nil, err
	}
	updated := *existing

	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return nil, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, *patch.Type)
		}
		updated.Type = *patch.Type
	}
	if patch.CategoryID != nil {
		updated.CategoryID = *patch.CategoryID
	}
	if patch.PaymentMethod != nil {
		if !patch.PaymentMethod.IsValid() {
			return nil, fmt.Errorf("%w: invalid payment method %q", apperrors.ErrValidation, *patch.PaymentMethod)
		}
		updated.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Note != nil {
		if updated.Note, err = normalizeNote(patch.Note); err != nil {
			return nil, err
		}
	}
	if patch.ClientRef != nil {
		if updated.ClientRef, err = normalizeClientRef(patch.ClientRef); err != nil {
			return nil, err
		}
	}
	if patch.Amount != nil {
		if _, err := money.ParseAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}

	if patch.TouchesCategory() {
		if _, err := requireCategory(ctx, s.categoryRepo, user.UserID, updated.CategoryID, updated.Type); err != nil {
			return nil, err
		}
	}
	if updated.ClientRef != nil && (existing.ClientRef == nil || *existing.ClientRef != *updated.ClientRef) {
		if err := s.ensureClientRefFree(ctx, user.UserID, *updated.ClientRef, existing.ID); err != nil {
			return nil, err
		}
	}

	if patch.TouchesFx() {
		amount := money.FormatCents(existing.OriginalAmount.Cents)
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		currency := existing.OriginalAmount.Currency
		if patch.Currency != nil {
			currency = *patch.Currency
		}
		if patch.OccurredAt != nil {
			if patch.OccurredAt.IsZero() {
				return nil, fmt.Errorf("%w: occurredAt must not be empty", apperrors.ErrValidation)
			}
			updated.OccurredAt = patch.OccurredAt.UTC()
		}

		fxDate := period.Date(updated.OccurredAt, s.userLocation(user))
		fields, err := s.fx.ComputeFxFields(ctx, user.BaseCurrency, fxDate, amount, currency)
		if err != nil {
			s.LogError(ctx, err, "Failed to recompute FX fields", slog.String("transaction_id", transactionID))
			return nil, err
		}
		updated.FxFields = *fields
	}

	updated.Touch(user.UserID, s.now())
	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, user domain.User, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, user.UserID, transactionID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// ListTransactions returns one keyset page. A next cursor is issued whenever
// the page is full.
func (s *transactionService) ListTransactions(ctx context.Context, user domain.User, params dto.ListTransactionsParams) (*domain.TransactionPage, error) {
	limit := pagination.ClampLimit(params.Limit, s.pageDefault, s.pageMax)

	var cursor *pagination.Cursor
	if params.Cursor != "" {
		c, err := pagination.DecodeToken(params.Cursor)
		if err != nil {
			return nil, err
		}
		cursor = c
	}

	from, to, err := listRange(params, s.userLocation(user))
	if err != nil {
		return nil, err
	}

	filter := params.Filter()
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, *filter.Type)
	}
	if filter.PaymentMethod != nil && !filter.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", apperrors.ErrValidation, *filter.PaymentMethod)
	}

	rows, err := s.txnRepo.ListTransactions(ctx, user.UserID, from, to, filter, limit, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}

	page := &domain.TransactionPage{Items: rows}
	if n := len(rows); n > 0 {
		last := rows[n-1]
		page.NextCursor = pagination.NextCursor(n, limit, pagination.Cursor{OccurredAt: last.OccurredAt, ID: last.ID})
	}
	return page, nil
}

// listRange converts month or from/to parameters into an optional half-open range.
func listRange(params dto.ListTransactionsParams, loc *time.Location) (*time.Time, *time.Time, error) {
	if params.Month != "" {
		if params.From != "" || params.To != "" {
			return nil, nil, fmt.Errorf("%w: month cannot be combined with from/to", apperrors.ErrValidation)
		}
		r, err := period.MonthRange(params.Month, loc)
		if err != nil {
			return nil, nil, err
		}
		return &r.Start, &r.End, nil
	}

	var from, to *time.Time
	var fromDate, toDate time.Time
	if params.From != "" {
		d, err := period.ParseDate(params.From)
		if err != nil {
			return nil, nil, err
		}
		fromDate = d
	}
	if params.To != "" {
		d, err := period.ParseDate(params.To)
		if err != nil {
			return nil, nil, err
		}
		toDate = d
	}
	switch {
	case params.From != "" && params.To != "":
		r, err := period.DayRange(fromDate, toDate, loc)
		if err != nil {
			return nil, nil, err
		}
		from, to = &r.Start, &r.End
	case params.From != "":
		r, _ := period.DayRange(fromDate, fromDate, loc)
		from = &r.Start
	case params.To != "":
		r, _ := period.DayRange(toDate, toDate, loc)
		to = &r.End
	}
	return from, to, nil
}

func (s *transactionService) ensureClientRefFree(ctx context.Context, userID, clientRef, selfID string) error {
	found, err := s.txnRepo.FindTransactionByClientRef(ctx, userID, clientRef)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if found.ID == selfID {
		return nil
	}
	return apperrors.NewConflictError(fmt.Sprintf("transaction with clientRef %q already exists", clientRef))
}

func normalizeNote(note *string) (*string, error) {
	n := trimmedOrNil(note)
	if n != nil && len([]rune(*n)) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: note must be at most %d characters", apperrors.ErrValidation, domain.MaxNoteLength)
	}
	return n, nil
}

func normalizeClientRef(ref *string) (*string, error) {
	r := trimmedOrNil(ref)
	if r != nil && len(*r) > domain.MaxClientRefLength {
		return nil, fmt.Errorf("%w: clientRef must be at most %d characters", apperrors.ErrValidation, domain.MaxClientRefLength)
	}
	return r, nil
}

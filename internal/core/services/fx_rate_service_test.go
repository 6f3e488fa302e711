package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/apperrors"
	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/providers"
	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func onDate(d time.Time) interface{} {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(d) })
}

func dayTable(d time.Time, rates map[string]string) *domain.DayTable {
	t := &domain.DayTable{Reference: "UAH", ResolvedDate: d, Rates: map[string]decimal.Decimal{"UAH": decimal.NewFromInt(1)}}
	for k, v := range rates {
		t.Rates[k] = decimal.RequireFromString(v)
	}
	return t
}

type FxRateServiceTestSuite struct {
	suite.Suite
	provider *MockFxProvider
	service  portssvc.FxRateSvcFacade
	mu       sync.Mutex
	clock    time.Time
	ctx      context.Context
}

func (s *FxRateServiceTestSuite) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

func (s *FxRateServiceTestSuite) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(d)
}

func (s *FxRateServiceTestSuite) SetupTest() {
	s.clock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) // Monday
	s.ctx = context.Background()
	s.provider = new(MockFxProvider)

	caches, err := services.NewFxCaches(128, s.now)
	s.Require().NoError(err)

	cfg := services.DefaultFxConfig()
	cfg.AttemptTimeout = time.Second
	cfg.Now = s.now
	s.service = services.NewFxRateService(s.provider, caches, cfg)
}

func TestFxRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxRateServiceTestSuite))
}

func (s *FxRateServiceTestSuite) TestGetRate_SameCurrencyNeedsNoProvider() {
	q, err := s.service.GetRate(s.ctx, "usd", " USD ", date(2025, 3, 7))
	s.Require().NoError(err)
	s.True(q.Rate.Equal(decimal.NewFromInt(1)))
	s.Equal("USD", q.Base)
	s.provider.AssertNotCalled(s.T(), "FetchDayTable", mock.Anything, mock.Anything)
}

func (s *FxRateServiceTestSuite) TestGetRate_CrossRateAndPairCache() {
	friday := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(friday)).
		Return(dayTable(friday, map[string]string{"USD": "40.00", "EUR": "44.00"}), nil).Once()

	q, err := s.service.GetRate(s.ctx, "USD", "UAH", friday)
	s.Require().NoError(err)
	s.Equal("40", q.Rate.String())
	s.Equal(friday, q.ResolvedDate)

	cross, err := s.service.GetRate(s.ctx, "EUR", "USD", friday)
	s.Require().NoError(err)
	s.Equal("1.1", cross.Rate.String())

	again, err := s.service.GetRate(s.ctx, "USD", "UAH", friday)
	s.Require().NoError(err)
	s.True(again.Rate.Equal(q.Rate))
	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 1)
}

func (s *FxRateServiceTestSuite) TestGetRate_InverseIsReciprocal() {
	d := date(2025, 3, 3)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).
		Return(dayTable(d, map[string]string{"USD": "41.4523", "EUR": "43.7781"}), nil).Once()

	ab, err := s.service.GetRate(s.ctx, "USD", "EUR", d)
	s.Require().NoError(err)
	ba, err := s.service.GetRate(s.ctx, "EUR", "USD", d)
	s.Require().NoError(err)

	product := ab.Rate.Mul(ba.Rate)
	s.True(product.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.RequireFromString("0.000000001")), product.String())
}

func (s *FxRateServiceTestSuite) TestGetRate_WeekendFallsBackToFriday() {
	saturday := date(2025, 3, 8)
	friday := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(saturday)).Return(nil, providers.ErrNoData).Once()
	s.provider.On("FetchDayTable", mock.Anything, onDate(friday)).
		Return(dayTable(friday, map[string]string{"USD": "40.00", "EUR": "44.00"}), nil).Once()

	q, err := s.service.GetRate(s.ctx, "USD", "UAH", saturday)
	s.Require().NoError(err)
	s.Equal(saturday, q.AsOfRequested)
	s.Equal(friday, q.ResolvedDate)
	s.Equal("40", q.Rate.String())

	// The fallback table is cached under the Saturday key.
	eur, err := s.service.GetRate(s.ctx, "EUR", "UAH", saturday)
	s.Require().NoError(err)
	s.Equal(friday, eur.ResolvedDate)

	// The pair is also cached under the resolved date.
	fri, err := s.service.GetRate(s.ctx, "USD", "UAH", friday)
	s.Require().NoError(err)
	s.Equal(friday, fri.ResolvedDate)

	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 2)
}

func (s *FxRateServiceTestSuite) TestGetRate_ProviderErrorIsOneFailedAttempt() {
	d := date(2025, 3, 5)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).Return(nil, errors.New("connection reset")).Once()
	s.provider.On("FetchDayTable", mock.Anything, onDate(d.AddDate(0, 0, -1))).
		Return(dayTable(d.AddDate(0, 0, -1), map[string]string{"USD": "41.00"}), nil).Once()

	q, err := s.service.GetRate(s.ctx, "USD", "UAH", d)
	s.Require().NoError(err)
	s.Equal(d.AddDate(0, 0, -1), q.ResolvedDate)
}

func (s *FxRateServiceTestSuite) TestGetRate_ExhaustedWalkIsFxUnavailable() {
	asOf := date(2025, 1, 10)
	s.provider.On("FetchDayTable", mock.Anything, mock.Anything).Return(nil, providers.ErrNoData)

	_, err := s.service.GetRate(s.ctx, "USD", "UAH", asOf)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrFxUnavailable)

	var fxErr *apperrors.FxUnavailableError
	s.Require().True(errors.As(err, &fxErr))
	s.Equal(asOf, fxErr.To)
	s.Equal(asOf.AddDate(0, 0, -7), fxErr.From)
	s.Equal([]string{"USD", "UAH"}, fxErr.Currencies)
	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 8)
}

func (s *FxRateServiceTestSuite) TestGetRate_CurrencyMissingFromTable() {
	d := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).Return(dayTable(d, map[string]string{"USD": "40"}), nil).Once()

	_, err := s.service.GetRate(s.ctx, "XAU", "UAH", d)
	s.ErrorIs(err, apperrors.ErrFxUnavailable)
}

func (s *FxRateServiceTestSuite) TestGetRate_InvalidCodeIsValidation() {
	_, err := s.service.GetRate(s.ctx, "U$", "UAH", date(2025, 3, 7))
	s.ErrorIs(err, apperrors.ErrValidation)
	s.provider.AssertNotCalled(s.T(), "FetchDayTable", mock.Anything, mock.Anything)
}

func (s *FxRateServiceTestSuite) TestGetRate_CallerCancellationNotPropagated() {
	d := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			assert.NoError(s.T(), ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(s.T(), hasDeadline)
		}).
		Return(dayTable(d, map[string]string{"USD": "40"}), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q, err := s.service.GetRate(ctx, "USD", "UAH", d)
	s.Require().NoError(err)
	s.Equal("40", q.Rate.String())
}

func (s *FxRateServiceTestSuite) TestGetRate_ConcurrentMissesShareOneFetch() {
	d := date(2025, 3, 7)
	release := make(chan struct{})
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).
		Run(func(mock.Arguments) { <-release }).
		Return(dayTable(d, map[string]string{"USD": "40"}), nil).Once()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.GetRate(s.ctx, "USD", "UAH", d)
			errs <- err
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 1)
}

func (s *FxRateServiceTestSuite) TestTTL_TodayExpiresHistoricalStays() {
	today := date(2025, 3, 10)
	past := date(2025, 3, 3)
	s.provider.On("FetchDayTable", mock.Anything, onDate(today)).Return(dayTable(today, map[string]string{"USD": "41"}), nil).Twice()
	s.provider.On("FetchDayTable", mock.Anything, onDate(past)).Return(dayTable(past, map[string]string{"USD": "40"}), nil).Once()

	_, err := s.service.GetRate(s.ctx, "USD", "UAH", today)
	s.Require().NoError(err)
	_, err = s.service.GetRate(s.ctx, "USD", "UAH", past)
	s.Require().NoError(err)

	s.advance(31 * time.Minute)

	_, err = s.service.GetRate(s.ctx, "USD", "UAH", today)
	s.Require().NoError(err)
	_, err = s.service.GetRate(s.ctx, "USD", "UAH", past)
	s.Require().NoError(err)

	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 3)
}

func (s *FxRateServiceTestSuite) TestGetLatestRate_UsesToday() {
	today := date(2025, 3, 10)
	s.provider.On("FetchDayTable", mock.Anything, onDate(today)).Return(dayTable(today, map[string]string{"USD": "41.5"}), nil).Once()

	q, err := s.service.GetLatestRate(s.ctx, "USD", "UAH", time.UTC)
	s.Require().NoError(err)
	s.Equal(today, q.AsOfRequested)
	s.Equal("41.5", q.Rate.String())
}

func (s *FxRateServiceTestSuite) TestGetRates_BatchOmitsUnknown() {
	d := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).
		Return(dayTable(d, map[string]string{"USD": "40", "EUR": "44"}), nil).Once()

	set, err := s.service.GetRates(s.ctx, "UAH", []string{"usd", "EUR", "XYZ", "UAH", "USD"}, d)
	s.Require().NoError(err)
	s.Equal("UAH", set.Base)
	s.Len(set.Rates, 3)
	s.Equal("0.025", set.Rates["USD"].String())
	s.Equal("1", set.Rates["UAH"].String())
	_, ok := set.Rates["XYZ"]
	s.False(ok)

	// Pairs were cached by the batch call.
	q, err := s.service.GetRate(s.ctx, "UAH", "EUR", d)
	s.Require().NoError(err)
	s.True(q.Rate.Equal(set.Rates["EUR"]))
	s.provider.AssertNumberOfCalls(s.T(), "FetchDayTable", 1)
}

func (s *FxRateServiceTestSuite) TestGetRates_RequiresQuotes() {
	_, err := s.service.GetRates(s.ctx, "UAH", []string{" "}, date(2025, 3, 7))
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *FxRateServiceTestSuite) TestComputeFxFields_ConvertsAtAnchor() {
	d := date(2025, 3, 7)
	s.provider.On("FetchDayTable", mock.Anything, onDate(d)).
		Return(dayTable(d, map[string]string{"USD": "40.00"}), nil).Once()

	f, err := s.service.ComputeFxFields(s.ctx, "uah", d, "25.00", "usd")
	s.Require().NoError(err)
	s.Equal(domain.MoneyAmount{Cents: 2500, Currency: "USD"}, f.OriginalAmount)
	s.Equal(domain.MoneyAmount{Cents: 100000, Currency: "UAH"}, f.BaseAmount)
	s.Equal("40", f.FxRate.String())
	s.Equal(d, f.FxDate)
}

func (s *FxRateServiceTestSuite) TestComputeFxFields_BaseCurrencyHasRateOne() {
	f, err := s.service.ComputeFxFields(s.ctx, "UAH", date(2025, 3, 7), "12.34", "UAH")
	s.Require().NoError(err)
	s.True(f.FxRate.Equal(decimal.NewFromInt(1)))
	s.Equal(int64(1234), f.BaseAmount.Cents)
	s.Equal(f.OriginalAmount.Cents, f.BaseAmount.Cents)
	s.provider.AssertNotCalled(s.T(), "FetchDayTable", mock.Anything, mock.Anything)
}

func (s *FxRateServiceTestSuite) TestComputeFxFields_InvalidAmountBeforeNetwork() {
	for _, amount := range []string{"", "0", "0.00", "-5", "1.234", "abc"} {
		_, err := s.service.ComputeFxFields(s.ctx, "UAH", date(2025, 3, 7), amount, "USD")
		s.ErrorIs(err, apperrors.ErrValidation, amount)
	}
	s.provider.AssertNotCalled(s.T(), "FetchDayTable", mock.Anything, mock.Anything)
}

func TestFxCaches_Cleaners(t *testing.T) {
	caches, err := services.NewFxCaches(8, nil)
	require.NoError(t, err)
	assert.Len(t, caches.Cleaners(), 2)

	_, err = services.NewFxCaches(0, nil)
	assert.Error(t, err)
}

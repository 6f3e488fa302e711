// Package nbu fetches daily official exchange rates from the National Bank of Ukraine.
package nbu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/core/ports/providers"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBaseURL is the public NBU statistics endpoint.
	DefaultBaseURL = "https://bank.gov.ua/NBUStatService/v1/statdirectory/exchange"
	// ReferenceCurrency is the currency NBU rates are quoted in.
	ReferenceCurrency = "UAH"
	DefaultTimeout    = 10 * time.Second

	maxBodyBytes    = 2 << 20
	queryDateLayout = "20060102"
	rowDateLayout   = "02.01.2006"
)

// ErrMalformedPayload is returned when the response is not a list of rate rows.
var ErrMalformedPayload = errors.New("malformed exchange rate payload")

type rateRow struct {
	Code         string          `json:"cc"`
	Rate         json.RawMessage `json:"rate"`
	ExchangeDate string          `json:"exchangedate"`
}

// Client is an HTTP implementation of providers.FxTableProvider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ providers.FxTableProvider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an NBU client. Empty baseURL and non-positive timeout use defaults.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReferenceCurrency implements providers.FxTableProvider.
func (c *Client) ReferenceCurrency() string {
	return ReferenceCurrency
}

// FetchDayTable implements providers.FxTableProvider.
func (c *Client) FetchDayTable(ctx context.Context, date time.Time) (*domain.DayTable, error) {
	q := url.Values{}
	q.Set("date", date.Format(queryDateLayout))
	reqURL := c.baseURL + "?" + q.Encode() + "&json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build NBU request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NBU request for %s failed: %w", date.Format(time.DateOnly), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		return nil, providers.ErrNoData
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("NBU responded with status %d for %s", resp.StatusCode, date.Format(time.DateOnly))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read NBU response: %w", err)
	}
	return parseDayTable(body, date, c.logger)
}

// parseDayTable decodes an NBU payload. Rows without a code or with a
// non-numeric or non-positive rate are skipped.
func parseDayTable(body []byte, requested time.Time, logger *slog.Logger) (*domain.DayTable, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, providers.ErrNoData
	}
	var rows []rateRow
	if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(rows) == 0 {
		return nil, providers.ErrNoData
	}

	table := &domain.DayTable{
		Reference:    ReferenceCurrency,
		ResolvedDate: time.Date(requested.Year(), requested.Month(), requested.Day(), 0, 0, 0, 0, time.UTC),
		Rates:        map[string]decimal.Decimal{ReferenceCurrency: decimal.NewFromInt(1)},
	}
	if d, err := time.Parse(rowDateLayout, rows[0].ExchangeDate); err == nil {
		table.ResolvedDate = d
	}

	for _, row := range rows {
		code := domain.NormalizeCurrency(row.Code)
		if code == "" {
			continue
		}
		rate, err := parseRate(row.Rate)
		if err != nil || !rate.IsPositive() {
			logger.Debug("Skipping NBU row with unusable rate", slog.String("currency", code), slog.String("rate", string(row.Rate)))
			continue
		}
		table.Rates[code] = rate
	}
	if len(table.Rates) == 1 {
		return nil, fmt.Errorf("%w: no usable rate rows", ErrMalformedPayload)
	}
	return table, nil
}

func parseRate(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if s == "" || s == "null" {
		return decimal.Zero, errors.New("empty rate")
	}
	return decimal.NewFromString(s)
}

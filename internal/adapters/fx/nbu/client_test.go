package nbu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/ports/providers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, body string, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDayTable_Success(t *testing.T) {
	var query string
	body := `[
		{"r030":840,"txt":"Долар США","rate":41.4567,"cc":"USD","exchangedate":"07.03.2025"},
		{"r030":978,"txt":"Євро","rate":44.9,"cc":"EUR","exchangedate":"07.03.2025"},
		{"r030":0,"txt":"bad","rate":"n/a","cc":"XXX","exchangedate":"07.03.2025"},
		{"r030":0,"txt":"blank","rate":1,"cc":"","exchangedate":"07.03.2025"}
	]`
	srv := newTestServer(t, http.StatusOK, body, &query)
	client := NewClient(srv.URL, time.Second)

	table, err := client.FetchDayTable(context.Background(), time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Contains(t, query, "date=20250307")
	assert.Contains(t, query, "json")
	assert.Equal(t, "UAH", table.Reference)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), table.ResolvedDate)
	assert.True(t, decimal.RequireFromString("41.4567").Equal(table.Rates["USD"]))
	assert.True(t, decimal.NewFromInt(1).Equal(table.Rates["UAH"]))
	assert.Len(t, table.Rates, 3, "non-numeric and blank rows are skipped")
	assert.Equal(t, "UAH", client.ReferenceCurrency())
}

func TestFetchDayTable_EmptyListIsNoData(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`, nil)
	_, err := NewClient(srv.URL, time.Second).FetchDayTable(context.Background(), time.Now())
	assert.ErrorIs(t, err, providers.ErrNoData)
}

func TestFetchDayTable_NotFoundIsNoData(t *testing.T) {
	srv := newTestServer(t, http.StatusNotFound, ``, nil)
	_, err := NewClient(srv.URL, time.Second).FetchDayTable(context.Background(), time.Now())
	assert.ErrorIs(t, err, providers.ErrNoData)
}

func TestFetchDayTable_MalformedPayload(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"error":"oops"}`, nil)
	_, err := NewClient(srv.URL, time.Second).FetchDayTable(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrMalformedPayload)

	srv = newTestServer(t, http.StatusOK, `[{"cc":"USD","rate":"abc"}]`, nil)
	_, err = NewClient(srv.URL, time.Second).FetchDayTable(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestFetchDayTable_ServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusBadGateway, `bad gateway`, nil)
	_, err := NewClient(srv.URL, time.Second).FetchDayTable(context.Background(), time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrNoData)
}

func TestFetchDayTable_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 20*time.Millisecond).FetchDayTable(context.Background(), time.Now())
	require.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrNoData)
}

func TestParseDayTable_FallsBackToRequestedDate(t *testing.T) {
	requested := time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC)
	table, err := parseDayTable([]byte(`[{"cc":"usd","rate":"40.00","exchangedate":"garbage"}]`), requested, testLogger())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), table.ResolvedDate)
	assert.True(t, decimal.NewFromInt(40).Equal(table.Rates["USD"]), "quoted and lower-case values are normalized")
}

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("bad base64")
	err := NewAppError(http.StatusBadRequest, "invalid cursor", cause)

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invalid cursor: bad base64", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestConstructorsMapToKinds(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", Kind(NewNotFoundError("transaction not found")))
	assert.Equal(t, "CONFLICT", Kind(NewConflictError("duplicate budget")))
	assert.Equal(t, "VALIDATION_ERROR", Kind(fmt.Errorf("%w: amount must be positive", ErrValidation)))
	assert.Equal(t, "INTERNAL_ERROR", Kind(errors.New("boom")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(NewConflictError("x")))
}

func TestFxUnavailableError(t *testing.T) {
	to := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -7)
	cause := errors.New("provider timeout")

	err := fmt.Errorf("create transaction: %w", NewFxUnavailableError(from, to, cause, "USD", "UAH"))

	assert.ErrorIs(t, err, ErrFxUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
	assert.Equal(t, "FX_UNAVAILABLE", Kind(err))

	var fxErr *FxUnavailableError
	assert.True(t, errors.As(err, &fxErr))
	assert.Equal(t, []string{"USD", "UAH"}, fxErr.Currencies)
	assert.Contains(t, err.Error(), "USD/UAH between 2025-03-01 and 2025-03-08")
}

package http

import (
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botfolio/internal/domain"
)

func domainErrorStatus(t *testing.T, err error) (int, Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, DomainErrorResponse(c, err))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestDomainErrorResponse(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid amount", domain.ErrInvalidAmount, nethttp.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, nethttp.StatusBadRequest},
		{"not pending", domain.ErrTransactionNotPending, nethttp.StatusBadRequest},
		{"username taken", domain.ErrUsernameTaken, nethttp.StatusBadRequest},
		{"bot not found", domain.ErrBotNotFound, nethttp.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, nethttp.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, nethttp.StatusNotFound},
		{"wallet not found", domain.ErrWalletNotFound, nethttp.StatusNotFound},
		{"unknown error", errors.New("connection refused"), nethttp.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := domainErrorStatus(t, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, "error", body.Status)
		})
	}
}

func TestDomainErrorResponseWrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("allocate"), domain.ErrInsufficientFunds)
	code, _ := domainErrorStatus(t, wrapped)
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	type payload struct {
		Amount  string `validate:"required"`
		Network string `validate:"required,oneof=USDT_TRC20 TRX"`
	}

	assert.NoError(t, v.Validate(&payload{Amount: "100", Network: "TRX"}))

	err := v.Validate(&payload{Amount: "100", Network: "BTC"})
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, nethttp.StatusBadRequest, httpErr.Code)

	err = v.Validate(&payload{Network: "TRX"})
	assert.Error(t, err)
}

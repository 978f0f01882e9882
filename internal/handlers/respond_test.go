package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bookmarket/backend/internal/apperr"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrorDomainError(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, writeError(c, apperr.BookNotFound(7)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ML-101", body["internalCode"])
	require.Equal(t, "Book [7] not exists.", body["message"])
}

// Unknown errors must never reach the wire: the body is the generic ML-000
// shape, not the error text.
func TestWriteErrorHidesUnknownErrors(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, writeError(c, errors.New("search backend exploded")))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ML-000", body["internalCode"])
	require.NotContains(t, rec.Body.String(), "exploded")
}

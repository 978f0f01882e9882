package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/logging"
)

// writeError renders domain errors in their wire shape and hides everything
// else behind a generic 500.
func writeError(c echo.Context, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return c.JSON(ae.HTTPCode, ae)
	}
	logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
	return c.JSON(http.StatusInternalServerError, apperr.Internal())
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, apperr.Validation("Invalid Request"))
}

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

type pageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func newPageMeta(page, offset, limit int, total int64) pageMeta {
	return pageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}

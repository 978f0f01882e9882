package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/service"
	"github.com/bookmarket/backend/internal/util"
)

type BookHandler struct {
	Svc *service.BookService
}

func (h *BookHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req PostBookRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}
	if req.Price.IsNegative() {
		return writeError(c, apperr.Validation("Invalid Request"))
	}

	book := models.Book{
		Name:       req.Name,
		Price:      req.Price,
		CustomerID: req.CustomerID,
	}
	if err := h.Svc.Create(ctx, &book); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toBookResponse(&book))
}

func (h *BookHandler) GetAll(c echo.Context) error {
	return h.list(c, h.Svc.FindAll)
}

func (h *BookHandler) GetActives(c echo.Context) error {
	return h.list(c, h.Svc.FindActives)
}

func (h *BookHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	book, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

func (h *BookHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	var req PutBookRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return writeError(c, apperr.Validation("Invalid Request"))
	}

	if _, err := h.Svc.Update(ctx, id, req.Name, req.Price); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BookHandler) list(c echo.Context, fetch func(ctx context.Context, offset, limit int) ([]models.Book, int64, error)) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	items, total, err := fetch(c.Request().Context(), offset, limit)
	if err != nil {
		return writeError(c, err)
	}

	data := make([]BookResponse, len(items))
	for i := range items {
		data[i] = toBookResponse(&items[i])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": data,
		"meta": newPageMeta(page, offset, limit, total),
	})
}

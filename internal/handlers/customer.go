package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/service"
	"github.com/bookmarket/backend/internal/util"
)

type CustomerHandler struct {
	Svc *service.CustomerService
}

// Create is the public signup endpoint. Availability of the email is
// re-checked here; the unique index closes the remaining race at the store.
func (h *CustomerHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req PostCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	available, err := h.Svc.EmailAvailable(ctx, req.Email)
	if err != nil {
		return writeError(c, err)
	}
	if !available {
		return writeError(c, apperr.Validation("E-mail already exists on database."))
	}

	customer := models.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.Svc.Create(ctx, &customer); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *CustomerHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.QueryParam("name")
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	items, total, err := h.Svc.GetAll(ctx, name, offset, limit)
	if err != nil {
		return writeError(c, err)
	}

	data := make([]CustomerResponse, len(items))
	for i := range items {
		data[i] = toCustomerResponse(&items[i])
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": data,
		"meta": newPageMeta(page, offset, limit, total),
	})
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	customer, err := h.Svc.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomerHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	var req PutCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, err)
	}

	customer, err := h.Svc.FindByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	customer.Name = req.Name
	customer.Email = req.Email
	if err := h.Svc.Update(ctx, customer); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return bindError(c)
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

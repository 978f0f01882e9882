package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupOwner(t *testing.T, a *app) (access string, customerID int) {
	t.Helper()
	a.signup(t, "Ana", "ana@x.com", "secret")
	access, _ = a.login(t, "ana@x.com", "secret")

	owner, err := a.store.FindCustomerByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	return access, owner.ID
}

func (a *app) createBook(t *testing.T, access string, customerID int, name string, price float64) int {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/books", access, map[string]any{
		"name":        name,
		"price":       price,
		"customer_id": customerID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON(t, rec)
	require.Equal(t, "ACTIVE", body["status"])
	return int(body["id"].(float64))
}

func TestBookLifecycle(t *testing.T) {
	a := newApp(t)
	access, customerID := setupOwner(t, a)

	id := a.createBook(t, access, customerID, "the go programming language", 54.90)

	rec := a.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "the go programming language", decodeJSON(t, rec)["name"])

	// partial update: only the price changes
	rec = a.do(t, http.MethodPut, fmt.Sprintf("/api/books/%d", id), access, map[string]any{
		"price": 39.90,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), access, nil)
	body := decodeJSON(t, rec)
	require.Equal(t, "the go programming language", body["name"])
	require.Equal(t, "39.9", body["price"])

	rec = a.do(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), access, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", id), access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "DELETED", decodeJSON(t, rec)["status"])
}

func TestUpdateDeletedBookFails(t *testing.T) {
	a := newApp(t)
	access, customerID := setupOwner(t, a)

	id := a.createBook(t, access, customerID, "gone", 10)
	rec := a.do(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", id), access, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	name := "still gone"
	rec = a.do(t, http.MethodPut, fmt.Sprintf("/api/books/%d", id), access, map[string]any{
		"name": name,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeJSON(t, rec)
	require.Equal(t, "ML-102", body["internalCode"])
	require.Equal(t, "You cannot update a book with status [DELETED].", body["message"])
}

func TestCreateBookUnknownOwner(t *testing.T) {
	a := newApp(t)
	access, _ := setupOwner(t, a)

	rec := a.do(t, http.MethodPost, "/api/books", access, map[string]any{
		"name":        "orphan",
		"price":       10,
		"customer_id": 999,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "ML-201", decodeJSON(t, rec)["internalCode"])
}

func TestCreateBookNegativePrice(t *testing.T) {
	a := newApp(t)
	access, customerID := setupOwner(t, a)

	rec := a.do(t, http.MethodPost, "/api/books", access, map[string]any{
		"name":        "cheap",
		"price":       -1,
		"customer_id": customerID,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "ML-001", decodeJSON(t, rec)["internalCode"])
}

func TestBookNotFound(t *testing.T) {
	a := newApp(t)
	access, _ := setupOwner(t, a)

	rec := a.do(t, http.MethodGet, "/api/books/5", access, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeJSON(t, rec)
	require.Equal(t, "ML-101", body["internalCode"])
	require.Equal(t, "Book [5] not exists.", body["message"])
}

func TestActivesExcludesDeleted(t *testing.T) {
	a := newApp(t)
	access, customerID := setupOwner(t, a)

	keep := a.createBook(t, access, customerID, "keep", 10)
	drop := a.createBook(t, access, customerID, "drop", 20)

	rec := a.do(t, http.MethodDelete, fmt.Sprintf("/api/books/%d", drop), access, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/books/actives", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeJSON(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	require.EqualValues(t, keep, data[0].(map[string]any)["id"])

	rec = a.do(t, http.MethodGet, "/api/books", access, nil)
	require.Len(t, decodeJSON(t, rec)["data"].([]any), 2)
}

package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/bookmarket/backend/internal/models"
)

type PostAuthenticationRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthenticationResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type PostRefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type PostCustomerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PutCustomerRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type CustomerResponse struct {
	ID     int                   `json:"id"`
	Name   string                `json:"name"`
	Email  string                `json:"email"`
	Status models.CustomerStatus `json:"status"`
}

func toCustomerResponse(c *models.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Status: c.Status}
}

type PostBookRequest struct {
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	CustomerID int             `json:"customer_id" validate:"required"`
}

// PutBookRequest allows partial updates: nil fields keep the stored value.
type PutBookRequest struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

type BookResponse struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	CustomerID int               `json:"customer_id"`
	Status     models.BookStatus `json:"status"`
}

func toBookResponse(b *models.Book) BookResponse {
	return BookResponse{ID: b.ID, Name: b.Name, Price: b.Price, CustomerID: b.CustomerID, Status: b.Status}
}

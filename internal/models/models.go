package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const RoleCustomer = "CUSTOMER"

type Customer struct {
	ID       int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string         `gorm:"not null"                 json:"name"`
	Email    string         `gorm:"uniqueIndex;not null"     json:"email"`
	Password string         `gorm:"not null"                 json:"-"`
	Status   CustomerStatus `gorm:"not null"                 json:"status"`
	Roles    []string       `gorm:"serializer:json;not null" json:"roles"`
}

type Book struct {
	ID         int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"not null"                 json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric;not null"    json:"price"`
	CustomerID int             `gorm:"index;not null"           json:"customer_id"`
	Status     BookStatus      `gorm:"not null"                 json:"status"`
}

// RefreshToken stores only the SHA-256 hash of the issued refresh JWT, keyed
// by its JTI claim, so a leaked table cannot be replayed.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"           json:"id"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	TokenHash string    `gorm:"not null"             json:"-"`
	UserID    int       `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64     `gorm:"not null"             json:"expires_at"`
	Revoked   bool      `gorm:"default:false"        json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// PrimaryRole picks the role embedded into access-token claims.
func (c *Customer) PrimaryRole() string {
	if len(c.Roles) == 0 {
		return RoleCustomer
	}
	return c.Roles[0]
}

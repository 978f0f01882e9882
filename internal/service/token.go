package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookmarket/backend/internal/jwthelp"
	"github.com/bookmarket/backend/internal/models"
)

var (
	ErrTokenExpired   = errors.New("Token expired")
	ErrTokenSignature = errors.New("Token Signature invalid")
	ErrTokenInvalid   = errors.New("Token invalid")
)

// AccessClaims embed the caller's id and role next to the registered set.
// Subject is always the customer's email.
type AccessClaims struct {
	UserID int    `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims carry no extra claims, only the registered set plus a JTI.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates the stateless HS256 tokens used on every
// request. Access and refresh tokens are signed with separate secrets.
type TokenService struct {
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (s *TokenService) IssueAccessToken(customer *models.Customer) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: customer.ID,
		Role:   customer.PrimaryRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *TokenService) IssueRefreshToken(customer *models.Customer) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.RefreshTTL)),
			ID:        jwthelp.NewJTI(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.RefreshSecret)
}

// ExtractSubject parses an access token and returns its subject (the customer
// email). Malformed, badly signed, and expired tokens all surface as errors.
func (s *TokenService) ExtractSubject(tokenStr string) (string, error) {
	claims, err := s.parseAccess(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractClaims returns the full access claims for an otherwise valid token.
func (s *TokenService) ExtractClaims(tokenStr string) (*AccessClaims, error) {
	return s.parseAccess(tokenStr)
}

// Validate reports whether the token belongs to the customer and is still
// live. Structural and signature failures are errors, not false.
func (s *TokenService) Validate(tokenStr string, customer *models.Customer) (bool, error) {
	claims, err := s.parseAccess(tokenStr)
	if err != nil {
		return false, err
	}
	return claims.Subject == customer.Email && claims.ExpiresAt.After(time.Now()), nil
}

// RefreshClaimsFromToken parses and verifies a refresh token.
func (s *TokenService) RefreshClaimsFromToken(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected sign method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func (s *TokenService) parseAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected sign method: %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignature
	default:
		return ErrTokenInvalid
	}
}

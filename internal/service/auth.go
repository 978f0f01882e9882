package service

import (
	"context"
	"errors"
	"time"

	"github.com/bookmarket/backend/internal/hash"
	"github.com/bookmarket/backend/internal/jwthelp"
	"github.com/bookmarket/backend/internal/logging"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/repo"
)

var (
	ErrUserNotFound       = errors.New("User not found!")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *TokenService
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
}

// Verify is the credential check: unknown email and wrong password collapse
// into the same generic error so callers cannot tell which part failed.
func (s *AuthService) Verify(ctx context.Context, email, password string) (*models.Customer, error) {
	customer, err := s.Repo.FindCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(customer.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return customer, nil
}

// Login looks the customer up first and reports a missing user distinctly;
// the subsequent Verify call only ever reports generic invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if _, err := s.Repo.FindCustomerByEmail(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "reason", "unknown user")
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	customer, err := s.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Warn("login failed", "reason", "bad credentials")
		}
		return nil, err
	}

	return s.issuePair(ctx, customer)
}

// Refresh rotates a refresh token: the presented token must verify, its JTI
// must still be usable, and the old record is revoked when the new pair is
// stored.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.Tokens.RefreshClaimsFromToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.FindRefreshByJTI(ctx, claims.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	customer, err := s.Repo.FindCustomerByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessToken, err := s.Tokens.IssueAccessToken(customer)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.Tokens.IssueRefreshToken(customer)
	if err != nil {
		return nil, err
	}
	newClaims, err := s.Tokens.RefreshClaimsFromToken(newRefresh)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		JTI:       newClaims.ID,
		TokenHash: jwthelp.Sha256Hex(newRefresh),
		UserID:    customer.ID,
		ExpiresAt: newClaims.ExpiresAt.Unix(),
	}
	if err := s.Repo.RotateRefresh(ctx, claims.ID, record); err != nil {
		if errors.Is(err, repo.ErrRefreshUnusable) || errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: newRefresh}, nil
}

func (s *AuthService) issuePair(ctx context.Context, customer *models.Customer) (*LoginResult, error) {
	accessToken, err := s.Tokens.IssueAccessToken(customer)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.Tokens.IssueRefreshToken(customer)
	if err != nil {
		return nil, err
	}

	claims, err := s.Tokens.RefreshClaimsFromToken(refreshToken)
	if err != nil {
		return nil, err
	}
	record := &models.RefreshToken{
		JTI:       claims.ID,
		TokenHash: jwthelp.Sha256Hex(refreshToken),
		UserID:    customer.ID,
		ExpiresAt: claims.ExpiresAt.Unix(),
		CreatedAt: time.Now(),
	}
	if err := s.Repo.StoreRefresh(ctx, record); err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

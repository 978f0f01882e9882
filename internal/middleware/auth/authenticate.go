package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/repo"
	"github.com/bookmarket/backend/internal/service"
)

const identityKey = "identity"

// Identity is the authenticated caller attached to the request context,
// replacing any ambient security state.
type Identity struct {
	ID          int
	Email       string
	Authorities []string
}

// Authenticator resolves bearer tokens into an Identity on every request.
type Authenticator struct {
	Tokens *service.TokenService
	Repo   *repo.GormRepo

	// public routes ("METHOD /path") skip authentication entirely
	Public map[string]struct{}
}

func NewAuthenticator(tokens *service.TokenService, r *repo.GormRepo, public []string) *Authenticator {
	skip := make(map[string]struct{}, len(public))
	for _, p := range public {
		skip[p] = struct{}{}
	}
	return &Authenticator{Tokens: tokens, Repo: r, Public: skip}
}

// Middleware implements the per-request flow: public paths pass untouched; a
// missing bearer header passes through unauthenticated and leaves the
// decision to RequireAuth; everything else must resolve to a known customer
// with a valid token or the request ends here with a structured 401.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, ok := a.Public[req.Method+" "+req.URL.Path]; ok {
				return next(c)
			}

			header := req.Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return next(c)
			}
			token := strings.TrimPrefix(header, "Bearer ")

			subject, err := a.Tokens.ExtractSubject(token)
			if err != nil {
				return unauthorized(c, token, err)
			}

			customer, err := a.Repo.FindCustomerByEmail(req.Context(), subject)
			if err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return unauthorized(c, token, errors.New("User not found!"))
				}
				return err
			}

			valid, err := a.Tokens.Validate(token, customer)
			if err != nil {
				return unauthorized(c, token, err)
			}
			if !valid {
				return unauthorized(c, token, errors.New("Token invalid"))
			}

			c.Set(identityKey, &Identity{
				ID:          customer.ID,
				Email:       customer.Email,
				Authorities: customer.Roles,
			})
			return next(c)
		}
	}
}

// unauthorized writes the 401 body the filter has always produced: the
// offending token under "error" and the failure text as the description.
func unauthorized(c echo.Context, token string, err error) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error":             token,
		"error_description": err.Error(),
	})
}

// FromContext returns the Identity set by the authenticator, if any.
func FromContext(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok
}

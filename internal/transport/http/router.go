package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/bookmarket/backend/internal/handlers"
	authmw "github.com/bookmarket/backend/internal/middleware/auth"
)

type Deps struct {
	Authenticator   *authmw.Authenticator
	AuthHandler     *handlers.AuthHandler
	CustomerHandler *handlers.CustomerHandler
	BookHandler     *handlers.BookHandler
	SearchHandler   *handlers.SearchHandler
}

// PublicRoutes are the "METHOD /path" pairs that skip the bearer
// authenticator entirely.
func PublicRoutes() []string {
	return []string{
		"POST /api/auth/token",
		"POST /api/auth/refresh",
		"POST /api/customers",
		"GET /health/live",
		"GET /health/ready",
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Use(d.Authenticator.Middleware())

	api := e.Group("/api")

	api.POST("/auth/token", d.AuthHandler.Token)
	api.POST("/auth/refresh", d.AuthHandler.Refresh)
	api.POST("/customers", d.CustomerHandler.Create)

	customers := api.Group("/customers", authmw.RequireAuth())
	customers.GET("", d.CustomerHandler.GetAll)
	customers.GET("/:id", d.CustomerHandler.Get)
	customers.PUT("/:id", d.CustomerHandler.Update)
	customers.DELETE("/:id", d.CustomerHandler.Delete)

	books := api.Group("/books", authmw.RequireAuth())
	if d.SearchHandler != nil {
		books.GET("/search", d.SearchHandler.Search)
	}
	books.GET("", d.BookHandler.GetAll)
	books.GET("/actives", d.BookHandler.GetActives)
	books.GET("/:id", d.BookHandler.Get)
	books.POST("", d.BookHandler.Create)
	books.PUT("/:id", d.BookHandler.Update)
	books.DELETE("/:id", d.BookHandler.Delete)
}

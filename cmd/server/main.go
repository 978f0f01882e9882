package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/bookmarket/backend/internal/config"
	"github.com/bookmarket/backend/internal/es"
	"github.com/bookmarket/backend/internal/handlers"
	"github.com/bookmarket/backend/internal/logging"
	authmw "github.com/bookmarket/backend/internal/middleware/auth"
	loggingmw "github.com/bookmarket/backend/internal/middleware/logging"
	"github.com/bookmarket/backend/internal/mykafka"
	"github.com/bookmarket/backend/internal/repo"
	"github.com/bookmarket/backend/internal/service"
	httpserver "github.com/bookmarket/backend/internal/transport/http"
	"github.com/bookmarket/backend/internal/validation"
)

const booksIndex = "books"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	store := repo.New(db)

	var searchHandler *handlers.SearchHandler
	bookSvc := &service.BookService{Repo: store, Producer: prod, ESIndex: booksIndex}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("es init error: %v", err)
		}
		bookSvc.ES = esClient
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: booksIndex}
	}

	tokens := &service.TokenService{
		JWTSecret:     []byte(configuration.JWT_SECRET),
		RefreshSecret: []byte(configuration.REFRESH_SECRET),
		AccessTTL:     configuration.AccessTTL,
		RefreshTTL:    configuration.RefreshTTL,
	}
	authSvc := &service.AuthService{Repo: store, Tokens: tokens}
	customerSvc := &service.CustomerService{Repo: store, Books: bookSvc, Producer: prod}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Validator = validation.New()

	deps := httpserver.Deps{
		Authenticator:   authmw.NewAuthenticator(tokens, store, httpserver.PublicRoutes()),
		AuthHandler:     &handlers.AuthHandler{Svc: authSvc},
		CustomerHandler: &handlers.CustomerHandler{Svc: customerSvc},
		BookHandler:     &handlers.BookHandler{Svc: bookSvc},
		SearchHandler:   searchHandler,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", configuration.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

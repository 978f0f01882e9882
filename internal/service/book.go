package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/shopspring/decimal"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/logging"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/mykafka"
	"github.com/bookmarket/backend/internal/repo"
	"github.com/bookmarket/backend/internal/service/search"
)

type BookService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

// Create requires an existing owner and starts the book in ACTIVE.
func (s *BookService) Create(ctx context.Context, book *models.Book) error {
	exists, err := s.Repo.CustomerExists(ctx, book.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.CustomerNotFound(book.CustomerID)
	}

	book.Status = models.BookActive
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return err
	}

	s.index(ctx, book)
	s.publish(ctx, map[string]any{
		"type":   "book_created",
		"bookID": book.ID,
		"name":   book.Name,
	}, book.ID)
	return nil
}

func (s *BookService) FindByID(ctx context.Context, id int) (*models.Book, error) {
	book, err := s.Repo.FindBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.BookNotFound(id)
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) FindAll(ctx context.Context, offset, limit int) ([]models.Book, int64, error) {
	return s.Repo.ListBooks(ctx, offset, limit)
}

func (s *BookService) FindActives(ctx context.Context, offset, limit int) ([]models.Book, int64, error) {
	return s.Repo.ListBooksByStatus(ctx, models.BookActive, offset, limit)
}

// Update applies a partial mutation: nil fields keep their previous value.
// The status guard runs even though the status itself is not changing, so
// updating a CANCELLED or DELETED book fails with ML-102.
func (s *BookService) Update(ctx context.Context, id int, name *string, price *decimal.Decimal) (*models.Book, error) {
	book, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.SetStatus(book.Status); err != nil {
		return nil, err
	}

	if name != nil {
		book.Name = *name
	}
	if price != nil {
		book.Price = *price
	}

	if err := s.Repo.SaveBook(ctx, book); err != nil {
		return nil, err
	}

	s.index(ctx, book)
	s.publish(ctx, map[string]any{
		"type":   "book_updated",
		"bookID": book.ID,
		"name":   book.Name,
	}, book.ID)
	return book, nil
}

// Delete is soft: the status moves to DELETED through the guard, so deleting
// an already terminal book fails with ML-102.
func (s *BookService) Delete(ctx context.Context, id int) error {
	book, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := book.SetStatus(models.BookDeleted); err != nil {
		return err
	}
	if err := s.Repo.SaveBook(ctx, book); err != nil {
		return err
	}

	s.publish(ctx, map[string]any{
		"type":   "book_deleted",
		"bookID": book.ID,
	}, book.ID)
	return nil
}

// DeleteByCustomer cascades a customer deactivation: every book still in
// ACTIVE flips to DELETED. Terminal books are left untouched so the cascade
// cannot trip the status guard.
func (s *BookService) DeleteByCustomer(ctx context.Context, customerID int) error {
	books, err := s.Repo.FindBooksByCustomerAndStatus(ctx, customerID, models.BookActive)
	if err != nil {
		return err
	}

	for i := range books {
		book := &books[i]
		if err := book.SetStatus(models.BookDeleted); err != nil {
			return err
		}
		if err := s.Repo.SaveBook(ctx, book); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookService) index(ctx context.Context, book *models.Book) {
	if s.ES == nil {
		return
	}
	if err := search.Index(ctx, s.ES, s.ESIndex, book); err != nil {
		logging.FromContext(ctx).Error("es index error", "bookID", book.ID, "error", err)
	}
}

func (s *BookService) publish(ctx context.Context, event map[string]any, key int) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicBookEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

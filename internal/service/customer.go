package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/hash"
	"github.com/bookmarket/backend/internal/logging"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/mykafka"
	"github.com/bookmarket/backend/internal/repo"
)

type CustomerService struct {
	Repo     *repo.GormRepo
	Books    *BookService
	Producer *mykafka.Producer
}

// Create hashes the plaintext password and applies the signup defaults:
// role CUSTOMER, status ACTIVE. Email uniqueness is re-checked by the caller
// and enforced by the unique index.
func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	pwHash, err := hash.HashPassword(customer.Password)
	if err != nil {
		return err
	}
	customer.Password = pwHash
	customer.Roles = []string{models.RoleCustomer}
	customer.Status = models.CustomerActive

	if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
		// the handler pre-checks availability, but a concurrent signup can
		// still hit the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Validation("E-mail already exists on database.")
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":       "customer_created",
		"customerID": customer.ID,
		"email":      customer.Email,
	}, customer.ID)
	return nil
}

func (s *CustomerService) GetAll(ctx context.Context, name string, offset, limit int) ([]models.Customer, int64, error) {
	return s.Repo.ListCustomers(ctx, name, offset, limit)
}

func (s *CustomerService) FindByID(ctx context.Context, id int) (*models.Customer, error) {
	customer, err := s.Repo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.CustomerNotFound(id)
		}
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) error {
	exists, err := s.Repo.CustomerExists(ctx, customer.ID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.CustomerNotFound(customer.ID)
	}
	return s.Repo.SaveCustomer(ctx, customer)
}

// Delete never removes the row: books are cascaded first, then the status
// flips to INACTIVE.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	l := logging.FromContext(ctx).With("svc", "customer.delete", "customerID", id)

	customer, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Books.DeleteByCustomer(ctx, customer.ID); err != nil {
		return err
	}

	customer.Status = models.CustomerInactive
	if err := s.Repo.SaveCustomer(ctx, customer); err != nil {
		return err
	}
	l.Info("customer deactivated")

	s.publish(ctx, map[string]any{
		"type":       "customer_deleted",
		"customerID": customer.ID,
	}, customer.ID)
	return nil
}

func (s *CustomerService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.Repo.FindCustomerByEmail(ctx, email)
}

func (s *CustomerService) publish(ctx context.Context, event map[string]any, key int) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, mykafka.TopicCustomerEvents, fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/models"
)

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) FindBookByID(ctx context.Context, id int) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) SaveBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) ListBooks(ctx context.Context, offset, limit int) ([]models.Book, int64, error) {
	return r.listBooks(ctx, r.DB.WithContext(ctx).Model(&models.Book{}), offset, limit)
}

func (r *GormRepo) ListBooksByStatus(ctx context.Context, status models.BookStatus, offset, limit int) ([]models.Book, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Book{}).Where("status = ?", status)
	return r.listBooks(ctx, q, offset, limit)
}

func (r *GormRepo) listBooks(ctx context.Context, q *gorm.DB, offset, limit int) ([]models.Book, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Book
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindBooksByCustomerAndStatus feeds the customer-delete cascade; only books
// whose status still permits a transition are selected.
func (r *GormRepo) FindBooksByCustomerAndStatus(ctx context.Context, customerID int, status models.BookStatus) ([]models.Book, error) {
	var items []models.Book
	if err := r.DB.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, status).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

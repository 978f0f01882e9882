package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bookmarket/backend/internal/models"
)

var ErrNotFound = errors.New("record not found")

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) FindCustomerByID(ctx context.Context, id int) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) CustomerExists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

// ListCustomers returns one page plus the unfiltered total. An empty name
// skips the contains filter.
func (r *GormRepo) ListCustomers(ctx context.Context, name string, offset, limit int) ([]models.Customer, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Customer{})
	if name != "" {
		q = q.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Customer
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

package customer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/customercore-backend/internal/repo"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
)

// Repository persists customers.
type Repository struct {
	base repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// List returns every customer, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	if err := r.base.DB(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single customer; gorm.ErrRecordNotFound when absent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.base.DB(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *Repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.base.DB(ctx).Create(customer).Error
}

// Update writes every mutable column of customer.
func (r *Repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.base.DB(ctx).Save(customer).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.DB(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

// CountProductDetails counts associations that reference the customer.
func (r *Repository) CountProductDetails(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := r.base.DB(ctx).
		Model(&models.ProductDetail{}).
		Where("customer_id = ?", customerID).
		Count(&count).
		Error
	return count, err
}

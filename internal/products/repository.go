package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/customercore-backend/internal/repo"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
)

// Repository persists products and their product details.
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

func expand(db *gorm.DB) *gorm.DB {
	return db.
		Preload("ProductDetails", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC").Order("id ASC")
		}).
		Preload("ProductDetails.Customer")
}

// List returns every product with details and customers preloaded.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := expand(r.base.DB(ctx)).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.base.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindExpanded loads the product with details and their customers.
func (r *Repository) FindExpanded(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := expand(r.base.DB(ctx)).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Omit(clause.Associations).Create(product).Error
}

// Update writes the product row only; details are managed separately.
func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.base.DB(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.base.DB(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// ExistingCustomerIDs returns the subset of ids that name stored customers.
func (r *Repository) ExistingCustomerIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	found := make(map[uuid.UUID]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var rows []uuid.UUID
	if err := r.base.DB(ctx).
		Model(&models.Customer{}).
		Where("id IN ?", ids).
		Pluck("id", &rows).
		Error; err != nil {
		return nil, err
	}
	for _, id := range rows {
		found[id] = struct{}{}
	}
	return found, nil
}

// CreateDetails inserts the product details in one statement.
func (r *Repository) CreateDetails(ctx context.Context, details []models.ProductDetail) error {
	if len(details) == 0 {
		return nil
	}
	return r.base.DB(ctx).Omit(clause.Associations).Create(&details).Error
}

// DeleteDetails removes every detail of the product.
func (r *Repository) DeleteDetails(ctx context.Context, productID uuid.UUID) (int64, error) {
	res := r.base.DB(ctx).Where("product_id = ?", productID).Delete(&models.ProductDetail{})
	return res.RowsAffected, res.Error
}

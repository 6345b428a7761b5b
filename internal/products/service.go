package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/customercore-backend/pkg/errors"
	"github.com/angelmondragon/customercore-backend/pkg/metrics"
)

const deletedMessage = "product deleted successfully"

// Service exposes product management operations.
type Service interface {
	List(ctx context.Context) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input ProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// ProductInput is the validated create/replace payload. A nil or empty
// ProductDetails list leaves existing details untouched on update.
type ProductInput struct {
	Name           string
	Description    *string
	ProductDetails []DetailInput
}

// DetailInput names a customer to associate with the product.
type DetailInput struct {
	CustomerID uuid.UUID
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	metrics  *metrics.CatalogMetrics
}

// NewService constructs a product service instance. catalog may be nil.
func NewService(repo *Repository, dbClient *db.Client, catalog *metrics.CatalogMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient, metrics: catalog}, nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.loadExpanded(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(product), nil
}

// Create inserts the product and links every candidate customer that exists.
// Candidates naming unknown customers are dropped without error.
func (s *service) Create(ctx context.Context, input ProductInput) (*ProductDTO, error) {
	product := &models.Product{}
	applyInput(product, input)

	var outcome linkOutcome
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		var err error
		outcome, err = linkCustomers(ctx, txRepo, product.ID, input.ProductDetails)
		return err
	}); err != nil {
		return nil, asServiceError(err, "create product")
	}
	s.record(outcome)

	return s.Get(ctx, product.ID)
}

// Update overwrites name and description. A non-empty detail list replaces
// the product's details wholesale.
func (s *service) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductDTO, error) {
	var outcome linkOutcome
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, id)
		if err != nil {
			return mapLoadError(err)
		}

		applyInput(product, input)
		if err := txRepo.Update(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if len(input.ProductDetails) == 0 {
			return nil
		}
		if _, err := txRepo.DeleteDetails(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product details")
		}
		outcome, err = linkCustomers(ctx, txRepo, id, input.ProductDetails)
		return err
	}); err != nil {
		return nil, asServiceError(err, "update product")
	}
	s.record(outcome)

	return s.Get(ctx, id)
}

// Delete removes the product's details and then the product, echoing the
// product as loaded before removal.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	var removed *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindExpanded(ctx, id)
		if err != nil {
			return mapLoadError(err)
		}
		if _, err := txRepo.DeleteDetails(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product details")
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		removed = product
		return nil
	}); err != nil {
		return nil, asServiceError(err, "delete product")
	}

	return &DeleteResult{
		Message: deletedMessage,
		Product: NewProductDTO(removed),
	}, nil
}

type linkOutcome struct {
	linked  int
	skipped int
}

// linkCustomers inserts a detail per candidate whose customer exists.
// Duplicate candidates produce duplicate details.
func linkCustomers(ctx context.Context, repo *Repository, productID uuid.UUID, candidates []DetailInput) (linkOutcome, error) {
	if len(candidates) == 0 {
		return linkOutcome{}, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.CustomerID)
	}
	existing, err := repo.ExistingCustomerIDs(ctx, ids)
	if err != nil {
		return linkOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: look up customers")
	}

	details := make([]models.ProductDetail, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := existing[c.CustomerID]; !ok {
			continue
		}
		details = append(details, models.ProductDetail{
			ProductID:  productID,
			CustomerID: c.CustomerID,
		})
	}

	if err := repo.CreateDetails(ctx, details); err != nil {
		return linkOutcome{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product details")
	}
	return linkOutcome{linked: len(details), skipped: len(candidates) - len(details)}, nil
}

func (s *service) record(outcome linkOutcome) {
	s.metrics.AddLinked(outcome.linked)
	s.metrics.AddSkipped(outcome.skipped)
}

func (s *service) loadExpanded(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindExpanded(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	return product, nil
}

func applyInput(product *models.Product, input ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	if input.Description == nil {
		product.Description = nil
		return
	}
	desc := strings.TrimSpace(*input.Description)
	product.Description = &desc
}

func mapLoadError(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.NotFound("product")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
}

func asServiceError(err error, action string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/customercore-backend/pkg/errors"
)

const (
	emailIndex        = "idx_customers_email"
	emailColumn       = "customers.email"
	deletedMessage    = "customer deleted successfully"
	referencedMessage = "customer is referenced by product details"
	emailInUseMessage = "email already in use"
)

// Service exposes customer management operations.
type Service interface {
	List(ctx context.Context) ([]CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	Create(ctx context.Context, input CustomerInput) (*CustomerDTO, error)
	Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error)
}

// CustomerInput is the validated create/replace payload.
type CustomerInput struct {
	Name        string
	Email       string
	Address     *string
	TotalOrders int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a customer service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) List(ctx context.Context) ([]CustomerDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	return newCustomerDTOs(rows), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return NewCustomerDTO(customer), nil
}

// Create inserts the customer. Email uniqueness is left to the store.
func (s *service) Create(ctx context.Context, input CustomerInput) (*CustomerDTO, error) {
	customer := &models.Customer{}
	applyInput(customer, input)

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, mapWriteError(err, "insert customer")
	}
	return NewCustomerDTO(customer), nil
}

// Update replaces every mutable field of an existing customer.
func (s *service) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*CustomerDTO, error) {
	var updated *models.Customer
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		customer, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}
		applyInput(customer, input)
		if err := txRepo.Update(ctx, customer); err != nil {
			return mapWriteError(err, "update customer")
		}
		updated = customer
		return nil
	}); err != nil {
		return nil, asServiceError(err, "update customer")
	}
	return NewCustomerDTO(updated), nil
}

// Delete removes an unreferenced customer and echoes it back.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	var removed *models.Customer
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		customer, err := s.load(ctx, txRepo, id)
		if err != nil {
			return err
		}

		refs, err := txRepo.CountProductDetails(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count product details")
		}
		if refs > 0 {
			return referencedError(id, refs)
		}

		if err := txRepo.Delete(ctx, id); err != nil {
			if db.IsForeignKeyViolation(err) {
				return referencedError(id, refs)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
		}
		removed = customer
		return nil
	}); err != nil {
		return nil, asServiceError(err, "delete customer")
	}

	return &DeleteResult{
		Message:  deletedMessage,
		Customer: NewCustomerDTO(removed),
	}, nil
}

func (s *service) load(ctx context.Context, repo *Repository, id uuid.UUID) (*models.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("customer")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}

func applyInput(customer *models.Customer, input CustomerInput) {
	customer.Name = strings.TrimSpace(input.Name)
	customer.Email = strings.TrimSpace(input.Email)
	customer.Address = trimOptional(input.Address)
	customer.TotalOrders = input.TotalOrders
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func mapWriteError(err error, action string) error {
	if isEmailConflict(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, emailInUseMessage).
			WithDetails(map[string]string{"email": emailInUseMessage})
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func isEmailConflict(err error) bool {
	return db.IsUniqueViolation(err, emailIndex) || db.IsUniqueViolation(err, emailColumn)
}

func referencedError(id uuid.UUID, refs int64) error {
	return pkgerrors.New(pkgerrors.CodeConflict, referencedMessage).
		WithDetails(map[string]any{"customer_id": id, "product_details": refs})
}

func asServiceError(err error, action string) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

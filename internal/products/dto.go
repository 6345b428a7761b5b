package product

import (
	"time"

	"github.com/google/uuid"

	customer "github.com/angelmondragon/customercore-backend/internal/customers"
	"github.com/angelmondragon/customercore-backend/pkg/db/models"
)

// ProductDTO is the product payload with its details and their customers expanded.
type ProductDTO struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	ProductDetails []ProductDetailDTO `json:"product_details"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ProductDetailDTO links the product to one customer.
type ProductDetailDTO struct {
	ID         uuid.UUID             `json:"id"`
	ProductID  uuid.UUID             `json:"product_id"`
	CustomerID uuid.UUID             `json:"customer_id"`
	Customer   *customer.CustomerDTO `json:"customer"`
}

// DeleteResult echoes the product as it was before removal.
type DeleteResult struct {
	Message string      `json:"message"`
	Product *ProductDTO `json:"product"`
}

// NewProductDTO builds a DTO from a product loaded with its associations.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	details := make([]ProductDetailDTO, 0, len(p.ProductDetails))
	for i := range p.ProductDetails {
		d := &p.ProductDetails[i]
		details = append(details, ProductDetailDTO{
			ID:         d.ID,
			ProductID:  d.ProductID,
			CustomerID: d.CustomerID,
			Customer:   customer.NewCustomerDTO(d.Customer),
		})
	}
	return &ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ProductDetails: details,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

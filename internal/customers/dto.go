package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/customercore-backend/pkg/db/models"
)

// CustomerDTO is the customer payload returned to clients.
type CustomerDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     *string   `json:"address"`
	TotalOrders int       `json:"total_orders"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteResult echoes the removed customer.
type DeleteResult struct {
	Message  string       `json:"message"`
	Customer *CustomerDTO `json:"customer"`
}

// NewCustomerDTO builds a DTO from the persisted model.
func NewCustomerDTO(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Address:     c.Address,
		TotalOrders: c.TotalOrders,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newCustomerDTOs(rows []models.Customer) []CustomerDTO {
	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCustomerDTO(&rows[i]))
	}
	return out
}

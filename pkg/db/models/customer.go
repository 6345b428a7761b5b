package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a buyer that products can be associated with through ProductDetail.
type Customer struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Email       string    `gorm:"column:email;type:text;not null;uniqueIndex:idx_customers_email"`
	Address     *string   `gorm:"column:address;type:text"`
	TotalOrders int       `gorm:"column:total_orders;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate assigns the identifier in Go so every dialect gets the same behaviour.
func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

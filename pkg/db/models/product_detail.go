package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductDetail links a product to a customer who ordered it. Customers
// referenced here cannot be deleted (ON DELETE RESTRICT).
type ProductDetail struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:idx_product_details_product_id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index:idx_product_details_customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ProductDetail) TableName() string { return "product_details" }

func (d *ProductDetail) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

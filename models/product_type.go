package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType represents a top-level catalog category such as Food or Apparel.
// It groups products and scopes the add-ons offered for them.
type ProductType struct {
	ID          string  `gorm:"type:varchar;primaryKey"`
	Name        string  `gorm:"uniqueIndex;not null"`
	Description *string `gorm:"type:text"`
	Icon        *string `gorm:"type:text"`
}

func (t *ProductType) TableName() string {
	return "product_types"
}

func (t *ProductType) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// InsertProductType is the payload accepted when creating a product type.
type InsertProductType struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

func (in InsertProductType) Model() ProductType {
	return ProductType{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
	}
}

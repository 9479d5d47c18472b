package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddOn is an optional extra offered uniformly to every product of a type.
type AddOn struct {
	ID            string          `gorm:"type:varchar;primaryKey"`
	ProductTypeID string          `gorm:"type:varchar;not null"`
	Name          string          `gorm:"not null"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Available     bool            `gorm:"not null"`
}

func (a *AddOn) TableName() string {
	return "add_ons"
}

func (a *AddOn) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type InsertAddOn struct {
	ProductTypeID string           `json:"productTypeId" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required,price"`
	Available     *bool            `json:"available"`
}

func (in InsertAddOn) Model() AddOn {
	a := AddOn{
		ProductTypeID: in.ProductTypeID,
		Name:          in.Name,
		Description:   in.Description,
		Available:     true,
	}
	if in.Price != nil {
		a.Price = *in.Price
	}
	if in.Available != nil {
		a.Available = *in.Available
	}
	return a
}

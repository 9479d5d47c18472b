package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product represents a product in the catalog.
// It belongs to exactly one product type and carries an ordered list of image URLs.
type Product struct {
	ID            string                      `gorm:"type:varchar;primaryKey"`
	Name          string                      `gorm:"not null"`
	Description   string                      `gorm:"not null"`
	ProductTypeID string                      `gorm:"type:varchar;not null"`
	Images        datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Variant is a purchasable configuration of a product. Its price is the full
// price of that configuration, not a delta from anything else.
type Variant struct {
	ID         string                                `gorm:"type:varchar;primaryKey"`
	ProductID  string                                `gorm:"type:varchar;not null"`
	Name       string                                `gorm:"not null"`
	Price      decimal.Decimal                       `gorm:"type:decimal(10,2);not null"`
	Stock      int                                   `gorm:"not null"`
	SKU        string                                `gorm:"column:sku;uniqueIndex;not null"`
	Attributes datatypes.JSONType[map[string]string] `gorm:"type:jsonb;not null"`
}

func (v *Variant) TableName() string {
	return "variants"
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// ProductWithVariants is a product together with all of its variants and its
// resolved product type. Variants is never nil.
type ProductWithVariants struct {
	Product
	Variants    []Variant
	ProductType ProductType
}

type InsertProduct struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	ProductTypeID string   `json:"productTypeId" validate:"required"`
	Images        []string `json:"images" validate:"dive,required"`
}

func (in InsertProduct) Model() Product {
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return Product{
		Name:          in.Name,
		Description:   in.Description,
		ProductTypeID: in.ProductTypeID,
		Images:        datatypes.JSONSlice[string](images),
	}
}

type InsertVariant struct {
	ProductID  string            `json:"productId" validate:"required"`
	Name       string            `json:"name" validate:"required"`
	Price      *decimal.Decimal  `json:"price" validate:"required,price"`
	Stock      *int              `json:"stock" validate:"omitempty,gte=0"`
	SKU        string            `json:"sku" validate:"required"`
	Attributes map[string]string `json:"attributes"`
}

func (in InsertVariant) Model() Variant {
	v := Variant{
		ProductID: in.ProductID,
		Name:      in.Name,
		SKU:       in.SKU,
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Stock != nil {
		v.Stock = *in.Stock
	}
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	v.Attributes = datatypes.NewJSONType(attrs)
	return v
}

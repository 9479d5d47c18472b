// Package api holds the JSON shapes of the catalog HTTP API and the helpers
// the handlers share to read requests and write responses.
package api

import (
	"fmt"

	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductType struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ProductTypeID string   `json:"productTypeId"`
	Images        []string `json:"images"`
}

// ProductWithVariants is a product with its variants and resolved type.
type ProductWithVariants struct {
	Product
	Variants    []Variant   `json:"variants"`
	ProductType ProductType `json:"productType"`
}

// Variant prices are serialised with exactly two fractional digits.
type Variant struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"productId"`
	Name       string            `json:"name"`
	Price      string            `json:"price"`
	Stock      int               `json:"stock"`
	SKU        string            `json:"sku"`
	Attributes map[string]string `json:"attributes"`
}

type AddOn struct {
	ID            string  `json:"id"`
	ProductTypeID string  `json:"productTypeId"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         string  `json:"price"`
	Available     bool    `json:"available"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldIssue `json:"errors,omitempty"`
}

func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func NewProductType(t models.ProductType) ProductType {
	return ProductType{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
	}
}

func NewProductTypes(ts []models.ProductType) []ProductType {
	out := make([]ProductType, len(ts))
	for i, t := range ts {
		out[i] = NewProductType(t)
	}
	return out
}

func NewProduct(p models.Product) Product {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ProductTypeID: p.ProductTypeID,
		Images:        images,
	}
}

func NewProductWithVariants(p models.ProductWithVariants) ProductWithVariants {
	return ProductWithVariants{
		Product:     NewProduct(p.Product),
		Variants:    NewVariants(p.Variants),
		ProductType: NewProductType(p.ProductType),
	}
}

func NewProductsWithVariants(ps []models.ProductWithVariants) []ProductWithVariants {
	out := make([]ProductWithVariants, len(ps))
	for i, p := range ps {
		out[i] = NewProductWithVariants(p)
	}
	return out
}

func NewVariant(v models.Variant) Variant {
	attrs := v.Attributes.Data()
	if attrs == nil {
		attrs = map[string]string{}
	}
	return Variant{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Name:       v.Name,
		Price:      FormatPrice(v.Price),
		Stock:      v.Stock,
		SKU:        v.SKU,
		Attributes: attrs,
	}
}

func NewVariants(vs []models.Variant) []Variant {
	out := make([]Variant, len(vs))
	for i, v := range vs {
		out[i] = NewVariant(v)
	}
	return out
}

func NewAddOn(a models.AddOn) AddOn {
	return AddOn{
		ID:            a.ID,
		ProductTypeID: a.ProductTypeID,
		Name:          a.Name,
		Description:   a.Description,
		Price:         FormatPrice(a.Price),
		Available:     a.Available,
	}
}

func NewAddOns(as []models.AddOn) []AddOn {
	out := make([]AddOn, len(as))
	for i, a := range as {
		out[i] = NewAddOn(a)
	}
	return out
}

// Model converts a decoded response back into the domain type.
func (t ProductType) Model() models.ProductType {
	return models.ProductType{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Icon:        t.Icon,
	}
}

func (p Product) Model() models.Product {
	return models.Product{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ProductTypeID: p.ProductTypeID,
		Images:        datatypes.JSONSlice[string](p.Images),
	}
}

func (p ProductWithVariants) Model() (models.ProductWithVariants, error) {
	variants := make([]models.Variant, len(p.Variants))
	for i, v := range p.Variants {
		mv, err := v.Model()
		if err != nil {
			return models.ProductWithVariants{}, err
		}
		variants[i] = mv
	}
	return models.ProductWithVariants{
		Product:     p.Product.Model(),
		Variants:    variants,
		ProductType: p.ProductType.Model(),
	}, nil
}

func (v Variant) Model() (models.Variant, error) {
	price, err := decimal.NewFromString(v.Price)
	if err != nil {
		return models.Variant{}, fmt.Errorf("variant %s price %q: %w", v.SKU, v.Price, err)
	}
	return models.Variant{
		ID:         v.ID,
		ProductID:  v.ProductID,
		Name:       v.Name,
		Price:      price,
		Stock:      v.Stock,
		SKU:        v.SKU,
		Attributes: datatypes.NewJSONType(v.Attributes),
	}, nil
}

func (a AddOn) Model() (models.AddOn, error) {
	price, err := decimal.NewFromString(a.Price)
	if err != nil {
		return models.AddOn{}, fmt.Errorf("add-on %s price %q: %w", a.ID, a.Price, err)
	}
	return models.AddOn{
		ID:            a.ID,
		ProductTypeID: a.ProductTypeID,
		Name:          a.Name,
		Description:   a.Description,
		Price:         price,
		Available:     a.Available,
	}, nil
}

// Package storefront turns catalog data and a shopper's selection into view
// models and renders them as text.
package storefront

import (
	"strings"

	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
)

// addOnTypeName is the product type whose products offer add-ons.
const addOnTypeName = "food"

// maxCardVariants is how many variant names a card lists before summarising.
const maxCardVariants = 3

// Card summarises one product in the catalog listing.
type Card struct {
	ID           string
	Name         string
	Description  string
	Image        string
	MinPrice     decimal.Decimal
	FromPrice    bool
	TotalStock   int
	VariantNames []string
	MoreVariants int
}

// Section is one product type heading with its products.
type Section struct {
	Type        models.ProductType
	OffersAddOn bool
	Cards       []Card
}

func offersAddOns(t models.ProductType) bool {
	return strings.EqualFold(t.Name, addOnTypeName)
}

// variantLabel names a variant on a card by its size, then its color, then
// its name.
func variantLabel(v models.Variant) string {
	attrs := v.Attributes.Data()
	for _, key := range []string{"size", "color"} {
		if attrs[key] != "" {
			return attrs[key]
		}
	}
	return v.Name
}

func NewCard(p models.ProductWithVariants) Card {
	c := Card{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		FromPrice:    len(p.Variants) > 1,
		VariantNames: []string{},
	}
	if len(p.Images) > 0 {
		c.Image = p.Images[0]
	}

	for i, v := range p.Variants {
		if i == 0 || v.Price.LessThan(c.MinPrice) {
			c.MinPrice = v.Price
		}
		c.TotalStock += v.Stock
		if len(p.Variants) > 1 && i < maxCardVariants {
			c.VariantNames = append(c.VariantNames, variantLabel(v))
		}
	}
	if len(p.Variants) > maxCardVariants {
		c.MoreVariants = len(p.Variants) - maxCardVariants
	}
	return c
}

// GroupByType groups products under their product type, in type order.
// Types without products are left out, so a selected type with no products
// yields no sections and the listing shows its empty state.
func GroupByType(types []models.ProductType, products []models.ProductWithVariants, selectedType string) []Section {
	byType := make(map[string][]Card, len(types))
	for _, p := range products {
		byType[p.ProductTypeID] = append(byType[p.ProductTypeID], NewCard(p))
	}

	newSection := func(t models.ProductType) Section {
		return Section{Type: t, OffersAddOn: offersAddOns(t), Cards: byType[t.ID]}
	}

	if selectedType != "" {
		if len(byType[selectedType]) == 0 {
			return []Section{}
		}
		selected := models.ProductType{ID: selectedType}
		for _, t := range types {
			if t.ID == selectedType {
				selected = t
				break
			}
		}
		return []Section{newSection(selected)}
	}

	sections := []Section{}
	for _, t := range types {
		if len(byType[t.ID]) == 0 {
			continue
		}
		sections = append(sections, newSection(t))
	}
	return sections
}

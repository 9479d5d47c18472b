package storefront

import (
	"github.com/catalogpro/catalog/app/pricing"
	"github.com/catalogpro/catalog/app/selection"
	"github.com/catalogpro/catalog/models"
	"github.com/shopspring/decimal"
)

const (
	InStock    = "In Stock"
	OutOfStock = "Out of Stock"

	BasePriceLabel  = "Base Price"
	TotalPriceLabel = "Total Price"
)

type VariantOption struct {
	models.Variant
	Selected bool
}

// AddOnOption is one add-on row on the product page. Unavailable add-ons
// are listed but cannot be picked.
type AddOnOption struct {
	models.AddOn
	Selected bool
}

// Detail is the product page for one product under the current selection.
type Detail struct {
	Product      models.ProductWithVariants
	BasePrice    decimal.Decimal
	Price        decimal.Decimal
	PriceLabel   string
	Current      *models.Variant
	SKU          string
	Stock        int
	Availability string
	Variants     []VariantOption
	AddOns       []AddOnOption
}

// ShowVariantPicker reports whether there is a choice to make.
func (d Detail) ShowVariantPicker() bool {
	return len(d.Variants) > 1
}

// OfferedAddOns returns the add-ons a shopper can pick for p: the available
// ones of a food product. Everything else is ignored when pricing.
func OfferedAddOns(p models.ProductWithVariants, addOns []models.AddOn) []models.AddOn {
	offered := []models.AddOn{}
	if !offersAddOns(p.ProductType) {
		return offered
	}
	for _, a := range addOns {
		if a.Available {
			offered = append(offered, a)
		}
	}
	return offered
}

// NewDetail builds the product page. The base price is the first variant's
// price. The current variant is the one selected in the default group when
// it belongs to p, otherwise the first variant. Food products list every
// add-on of their type; only selected add-ons from OfferedAddOns are priced.
func NewDetail(p models.ProductWithVariants, addOns []models.AddOn, s *selection.State) Detail {
	d := Detail{
		Product:      p,
		SKU:          "N/A",
		Availability: OutOfStock,
		PriceLabel:   BasePriceLabel,
		Variants:     make([]VariantOption, len(p.Variants)),
		AddOns:       []AddOnOption{},
	}
	if len(p.Variants) > 0 {
		d.BasePrice = p.Variants[0].Price
		d.Current = &p.Variants[0]
	}

	variantPrices := map[string]decimal.Decimal{}
	if sel, ok := s.Variant(selection.DefaultGroup); ok {
		for i := range p.Variants {
			if p.Variants[i].ID == sel.Variant.ID {
				d.Current = &p.Variants[i]
				variantPrices[selection.DefaultGroup] = sel.Price
				break
			}
		}
	}

	for i, v := range p.Variants {
		d.Variants[i] = VariantOption{Variant: v, Selected: d.Current != nil && d.Current.ID == v.ID}
	}

	if d.Current != nil {
		d.SKU = d.Current.SKU
		d.Stock = d.Current.Stock
	}
	if d.Stock > 0 {
		d.Availability = InStock
	}

	if offersAddOns(p.ProductType) {
		for _, a := range addOns {
			d.AddOns = append(d.AddOns, AddOnOption{AddOn: a, Selected: a.Available && s.IsAddOnSelected(a.ID)})
		}
	}

	offered := make(map[string]bool)
	for _, a := range OfferedAddOns(p, addOns) {
		offered[a.ID] = true
	}
	var addOnPrices []decimal.Decimal
	for _, a := range s.AddOns() {
		if offered[a.ID] {
			addOnPrices = append(addOnPrices, a.Price)
		}
	}
	if len(addOnPrices) > 0 {
		d.PriceLabel = TotalPriceLabel
	}

	d.Price = pricing.Total(d.BasePrice, variantPrices, addOnPrices)
	return d
}

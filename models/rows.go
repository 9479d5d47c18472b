package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductRow is one row of products LEFT JOIN variants LEFT JOIN product_types.
// VariantID is nil when the product has no variants.
type ProductRow struct {
	ProductID          string                                `db:"product_id"`
	ProductName        string                                `db:"product_name"`
	ProductDescription string                                `db:"product_description"`
	ProductTypeID      string                                `db:"product_type_id"`
	ProductImages      datatypes.JSONSlice[string]           `db:"product_images"`
	VariantID          *string                               `db:"variant_id"`
	VariantName        string                                `db:"variant_name"`
	VariantPrice       decimal.Decimal                       `db:"variant_price"`
	VariantStock       int                                   `db:"variant_stock"`
	VariantSKU         string                                `db:"variant_sku"`
	VariantAttributes  datatypes.JSONType[map[string]string] `db:"variant_attributes"`
	TypeName           string                                `db:"type_name"`
	TypeDescription    *string                               `db:"type_description"`
	TypeIcon           *string                               `db:"type_icon"`
}

// FoldProductRows groups flat join rows by product id. Products keep the order
// in which they were first seen, variants accumulate in row order, and a
// product without variants gets an empty, non-nil slice.
func FoldProductRows(rows []ProductRow) []ProductWithVariants {
	out := make([]ProductWithVariants, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.ProductID]
		if !seen {
			i = len(out)
			index[row.ProductID] = i
			out = append(out, ProductWithVariants{
				Product: Product{
					ID:            row.ProductID,
					Name:          row.ProductName,
					Description:   row.ProductDescription,
					ProductTypeID: row.ProductTypeID,
					Images:        row.ProductImages,
				},
				Variants: []Variant{},
				ProductType: ProductType{
					ID:          row.ProductTypeID,
					Name:        row.TypeName,
					Description: row.TypeDescription,
					Icon:        row.TypeIcon,
				},
			})
		}

		if row.VariantID == nil {
			continue
		}
		out[i].Variants = append(out[i].Variants, Variant{
			ID:         *row.VariantID,
			ProductID:  row.ProductID,
			Name:       row.VariantName,
			Price:      row.VariantPrice,
			Stock:      row.VariantStock,
			SKU:        row.VariantSKU,
			Attributes: row.VariantAttributes,
		})
	}

	return out
}

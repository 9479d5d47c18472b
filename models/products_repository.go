package models

import (
	"context"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// productRowsQuery selects the flat product/variant/type join. Variant columns
// are coalesced so rows without a variant still scan; variant_id stays NULL.
const productRowsQuery = `
	SELECT
		p.id          AS product_id,
		p.name        AS product_name,
		p.description AS product_description,
		p.product_type_id,
		p.images      AS product_images,
		v.id          AS variant_id,
		COALESCE(v.name, '')              AS variant_name,
		COALESCE(v.price, 0)              AS variant_price,
		COALESCE(v.stock, 0)              AS variant_stock,
		COALESCE(v.sku, '')               AS variant_sku,
		COALESCE(v.attributes, '{}'::jsonb) AS variant_attributes,
		COALESCE(pt.name, '')             AS type_name,
		pt.description AS type_description,
		pt.icon        AS type_icon
	FROM products p
	LEFT JOIN variants v ON v.product_id = p.id
	LEFT JOIN product_types pt ON pt.id = p.product_type_id`

const productRowsOrder = `
	ORDER BY p.name DESC, p.id, v.sku`

type ProductsRepository struct {
	db   *gorm.DB
	rows *sqlx.DB
}

func NewProductsRepository(db *gorm.DB, rows *sqlx.DB) *ProductsRepository {
	return &ProductsRepository{
		db:   db,
		rows: rows,
	}
}

// ListProducts returns every product with its variants and product type,
// ordered by product name descending.
func (r *ProductsRepository) ListProducts(ctx context.Context) ([]ProductWithVariants, error) {
	const op = "ProductsRepository.ListProducts"

	rows, err := r.selectRows(ctx, productRowsQuery+productRowsOrder)
	if err != nil {
		return nil, storeError(op, err)
	}
	return FoldProductRows(rows), nil
}

func (r *ProductsRepository) ListProductsByType(ctx context.Context, productTypeID string) ([]ProductWithVariants, error) {
	const op = "ProductsRepository.ListProductsByType"

	query := productRowsQuery + `
	WHERE p.product_type_id = $1` + productRowsOrder

	rows, err := r.selectRows(ctx, query, productTypeID)
	if err != nil {
		return nil, storeError(op, err)
	}
	return FoldProductRows(rows), nil
}

func (r *ProductsRepository) GetProductByID(ctx context.Context, id string) (*ProductWithVariants, error) {
	const op = "ProductsRepository.GetProductByID"

	query := productRowsQuery + `
	WHERE p.id = $1` + productRowsOrder

	rows, err := r.selectRows(ctx, query, id)
	if err != nil {
		return nil, storeError(op, err)
	}

	products := FoldProductRows(rows)
	if len(products) == 0 {
		return nil, ErrNotFound
	}
	return &products[0], nil
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, in InsertProduct) (*Product, error) {
	const op = "ProductsRepository.CreateProduct"

	if err := Validate(in); err != nil {
		return nil, err
	}

	product := in.Model()
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, storeError(op, err)
	}
	return &product, nil
}

func (r *ProductsRepository) selectRows(ctx context.Context, query string, args ...any) ([]ProductRow, error) {
	var rows []ProductRow
	if err := r.rows.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

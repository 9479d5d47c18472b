// Package memory is an in-process catalog store with the same behaviour as
// the PostgreSQL repositories: generated ids, unique SKUs and product type
// names, foreign-key checks, and the same join-then-fold product shaping.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/catalogpro/catalog/models"
	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	productTypes []models.ProductType
	products     []models.Product
	variants     []models.Variant
	addOns       []models.AddOn
}

func New() *Store {
	return &Store{}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) ListProductTypes(ctx context.Context) ([]models.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.ProductType{}, s.productTypes...), nil
}

func (s *Store) GetProductTypeByID(ctx context.Context, id string) (*models.ProductType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.productType(id)
	if !ok {
		return nil, models.ErrNotFound
	}
	return &t, nil
}

func (s *Store) CreateProductType(ctx context.Context, in models.InsertProductType) (*models.ProductType, error) {
	const op = "Store.CreateProductType"

	if err := models.Validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.productTypes {
		if t.Name == in.Name {
			return nil, persistence(op, fmt.Errorf("%w: product type name %q", models.ErrConflict, in.Name))
		}
	}

	t := in.Model()
	t.ID = uuid.NewString()
	s.productTypes = append(s.productTypes, t)
	return &t, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.ProductWithVariants, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.FoldProductRows(s.joinRows(func(models.Product) bool { return true })), nil
}

func (s *Store) ListProductsByType(ctx context.Context, productTypeID string) ([]models.ProductWithVariants, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.joinRows(func(p models.Product) bool { return p.ProductTypeID == productTypeID })
	return models.FoldProductRows(rows), nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.ProductWithVariants, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := models.FoldProductRows(s.joinRows(func(p models.Product) bool { return p.ID == id }))
	if len(products) == 0 {
		return nil, models.ErrNotFound
	}
	return &products[0], nil
}

func (s *Store) CreateProduct(ctx context.Context, in models.InsertProduct) (*models.Product, error) {
	const op = "Store.CreateProduct"

	if err := models.Validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.productType(in.ProductTypeID); !ok {
		return nil, persistence(op, fmt.Errorf("%w: product type %q", models.ErrForeignKey, in.ProductTypeID))
	}

	p := in.Model()
	p.ID = uuid.NewString()
	s.products = append(s.products, p)
	return &p, nil
}

func (s *Store) ListVariantsByProductID(ctx context.Context, productID string) ([]models.Variant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	variants := []models.Variant{}
	for _, v := range s.variants {
		if v.ProductID == productID {
			variants = append(variants, v)
		}
	}
	slices.SortStableFunc(variants, func(a, b models.Variant) int { return cmp.Compare(a.SKU, b.SKU) })
	return variants, nil
}

func (s *Store) CreateVariant(ctx context.Context, in models.InsertVariant) (*models.Variant, error) {
	const op = "Store.CreateVariant"

	if err := models.Validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.ContainsFunc(s.products, func(p models.Product) bool { return p.ID == in.ProductID }) {
		return nil, persistence(op, fmt.Errorf("%w: product %q", models.ErrForeignKey, in.ProductID))
	}
	if slices.ContainsFunc(s.variants, func(v models.Variant) bool { return v.SKU == in.SKU }) {
		return nil, persistence(op, fmt.Errorf("%w: sku %q", models.ErrConflict, in.SKU))
	}

	v := in.Model()
	v.ID = uuid.NewString()
	s.variants = append(s.variants, v)
	return &v, nil
}

func (s *Store) ListAddOnsByProductTypeID(ctx context.Context, productTypeID string) ([]models.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addOns := []models.AddOn{}
	for _, a := range s.addOns {
		if a.ProductTypeID == productTypeID {
			addOns = append(addOns, a)
		}
	}
	return addOns, nil
}

func (s *Store) CreateAddOn(ctx context.Context, in models.InsertAddOn) (*models.AddOn, error) {
	const op = "Store.CreateAddOn"

	if err := models.Validate(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.productType(in.ProductTypeID); !ok {
		return nil, persistence(op, fmt.Errorf("%w: product type %q", models.ErrForeignKey, in.ProductTypeID))
	}

	a := in.Model()
	a.ID = uuid.NewString()
	s.addOns = append(s.addOns, a)
	return &a, nil
}

func (s *Store) productType(id string) (models.ProductType, bool) {
	for _, t := range s.productTypes {
		if t.ID == id {
			return t, true
		}
	}
	return models.ProductType{}, false
}

// joinRows builds the same flat rows the SQL join produces: one row per
// product/variant pair, one variant-less row for products without variants,
// ordered by product name descending, then product id, then variant SKU.
func (s *Store) joinRows(match func(models.Product) bool) []models.ProductRow {
	var rows []models.ProductRow

	for _, p := range s.products {
		if !match(p) {
			continue
		}

		t, _ := s.productType(p.ProductTypeID)
		base := models.ProductRow{
			ProductID:          p.ID,
			ProductName:        p.Name,
			ProductDescription: p.Description,
			ProductTypeID:      p.ProductTypeID,
			ProductImages:      p.Images,
			TypeName:           t.Name,
			TypeDescription:    t.Description,
			TypeIcon:           t.Icon,
		}

		joined := false
		for _, v := range s.variants {
			if v.ProductID != p.ID {
				continue
			}
			row := base
			id := v.ID
			row.VariantID = &id
			row.VariantName = v.Name
			row.VariantPrice = v.Price
			row.VariantStock = v.Stock
			row.VariantSKU = v.SKU
			row.VariantAttributes = v.Attributes
			rows = append(rows, row)
			joined = true
		}
		if !joined {
			rows = append(rows, base)
		}
	}

	slices.SortStableFunc(rows, func(a, b models.ProductRow) int {
		if c := cmp.Compare(b.ProductName, a.ProductName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
			return c
		}
		return cmp.Compare(a.VariantSKU, b.VariantSKU)
	})
	return rows
}

func persistence(op string, err error) error {
	return &models.PersistenceError{Op: op, Err: err}
}

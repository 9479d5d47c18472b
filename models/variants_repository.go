package models

import (
	"context"

	"gorm.io/gorm"
)

type VariantsRepository struct {
	db *gorm.DB
}

func NewVariantsRepository(db *gorm.DB) *VariantsRepository {
	return &VariantsRepository{
		db: db,
	}
}

func (r *VariantsRepository) ListVariantsByProductID(ctx context.Context, productID string) ([]Variant, error) {
	const op = "VariantsRepository.ListVariantsByProductID"

	variants := []Variant{}
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sku").
		Find(&variants).Error; err != nil {
		return nil, storeError(op, err)
	}
	return variants, nil
}

// CreateVariant inserts a variant. A duplicate SKU is reported as a
// PersistenceError wrapping ErrConflict and leaves the store unchanged.
func (r *VariantsRepository) CreateVariant(ctx context.Context, in InsertVariant) (*Variant, error) {
	const op = "VariantsRepository.CreateVariant"

	if err := Validate(in); err != nil {
		return nil, err
	}

	variant := in.Model()
	if err := r.db.WithContext(ctx).Create(&variant).Error; err != nil {
		return nil, storeError(op, err)
	}
	return &variant, nil
}

package models

import (
	"context"

	"gorm.io/gorm"
)

type AddOnsRepository struct {
	db *gorm.DB
}

func NewAddOnsRepository(db *gorm.DB) *AddOnsRepository {
	return &AddOnsRepository{
		db: db,
	}
}

// ListAddOnsByProductTypeID returns all add-ons of a type, available or not.
func (r *AddOnsRepository) ListAddOnsByProductTypeID(ctx context.Context, productTypeID string) ([]AddOn, error) {
	const op = "AddOnsRepository.ListAddOnsByProductTypeID"

	addOns := []AddOn{}
	if err := r.db.WithContext(ctx).
		Where("product_type_id = ?", productTypeID).
		Find(&addOns).Error; err != nil {
		return nil, storeError(op, err)
	}
	return addOns, nil
}

func (r *AddOnsRepository) CreateAddOn(ctx context.Context, in InsertAddOn) (*AddOn, error) {
	const op = "AddOnsRepository.CreateAddOn"

	if err := Validate(in); err != nil {
		return nil, err
	}

	addOn := in.Model()
	if err := r.db.WithContext(ctx).Create(&addOn).Error; err != nil {
		return nil, storeError(op, err)
	}
	return &addOn, nil
}

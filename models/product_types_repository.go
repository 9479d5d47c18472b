package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductTypesRepository struct {
	db *gorm.DB
}

func NewProductTypesRepository(db *gorm.DB) *ProductTypesRepository {
	return &ProductTypesRepository{
		db: db,
	}
}

func (r *ProductTypesRepository) ListProductTypes(ctx context.Context) ([]ProductType, error) {
	const op = "ProductTypesRepository.ListProductTypes"

	types := []ProductType{}
	if err := r.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, storeError(op, err)
	}
	return types, nil
}

func (r *ProductTypesRepository) GetProductTypeByID(ctx context.Context, id string) (*ProductType, error) {
	const op = "ProductTypesRepository.GetProductTypeByID"

	var productType ProductType
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(op, err)
	}
	return &productType, nil
}

func (r *ProductTypesRepository) CreateProductType(ctx context.Context, in InsertProductType) (*ProductType, error) {
	const op = "ProductTypesRepository.CreateProductType"

	if err := Validate(in); err != nil {
		return nil, err
	}

	productType := in.Model()
	if err := r.db.WithContext(ctx).Create(&productType).Error; err != nil {
		return nil, storeError(op, err)
	}
	return &productType, nil
}

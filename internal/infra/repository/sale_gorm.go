package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

func (r *SaleGormRepository) Create(ctx context.Context, sale model.Sale) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&sale).Error; err != nil {
		return 0, err
	}
	return sale.ID, nil
}

func (r *SaleGormRepository) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Where("id = ?", saleID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sale{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sale{}, err
	}
	return s, nil
}

func (r *SaleGormRepository) ListRecent(ctx context.Context, page int, limit int) ([]model.Sale, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Sale{}).Count(&total).Error; err != nil {
		return []model.Sale{}, 0, err
	}

	var sales []model.Sale
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, 0, err
	}

	return sales, total, nil
}

func (r *SaleGormRepository) FindByIdempotencyKey(ctx context.Context, key string) (model.Sale, bool, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sale{}, false, nil
	}
	if err != nil {
		return model.Sale{}, false, err
	}
	return s, true, nil
}

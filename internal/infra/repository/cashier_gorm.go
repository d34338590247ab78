package repository

import (
	"context"
	"errors"
	"time"

	"pos/internal/domain/model"
	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type CashierGormRepository struct {
	db *gorm.DB
}

func NewCashierGormRepository(db *gorm.DB) *CashierGormRepository {
	return &CashierGormRepository{db: db}
}

func (r *CashierGormRepository) FindByUsername(ctx context.Context, username string) (model.Cashier, error) {
	var c model.Cashier
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cashier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cashier{}, err
	}
	return c, nil
}

func (r *CashierGormRepository) FindByID(ctx context.Context, id int64) (model.Cashier, error) {
	var c model.Cashier
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cashier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cashier{}, err
	}
	return c, nil
}

func (r *CashierGormRepository) Create(ctx context.Context, c model.Cashier) (model.Cashier, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Cashier{}, err
	}
	return c, nil
}

func (r *CashierGormRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Cashier{}).
		Where("id = ?", id).
		Update("last_login_at", at)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

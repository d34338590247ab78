package repository

import (
	"context"
	"time"

	"pos/internal/domain/model"
)

type CashierRepository interface {
	FindByUsername(ctx context.Context, username string) (model.Cashier, error)
	FindByID(ctx context.Context, id int64) (model.Cashier, error)
	Create(ctx context.Context, c model.Cashier) (model.Cashier, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

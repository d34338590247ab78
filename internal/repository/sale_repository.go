package repository

import (
	"context"

	"pos/internal/domain/model"
)

type SaleRepository interface {
	Create(ctx context.Context, sale model.Sale) (int64, error)
	FindByID(ctx context.Context, saleID int64) (model.Sale, error)
	ListRecent(ctx context.Context, page int, limit int) ([]model.Sale, int64, error)

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, key string) (model.Sale, bool, error)
}

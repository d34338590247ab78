package repository

import (
	"context"
	"errors"

	"pos/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 行ロック待ちがlock_timeoutを超えた（リトライ可能）
var ErrLockTimeout = errors.New("lock timeout")

// 販売履歴から参照されている商品は消せない
var ErrProductReferenced = errors.New("product referenced by sales")

// 一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// トランザクション内で行ロック（FOR UPDATE）を取って取得する。
	// ロックはcommit/rollbackまで保持される。
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}

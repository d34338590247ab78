package repository

import (
	"context"
	"fmt"

	repo "pos/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	sales     repo.SaleRepository
	saleItems repo.SaleItemRepository
	products  repo.ProductRepository
	inventory repo.InventoryRepository
}

func (r *txReposGorm) Sales() repo.SaleRepository          { return r.sales }
func (r *txReposGorm) SaleItems() repo.SaleItemRepository  { return r.saleItems }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }

type TxManagerGorm struct {
	db *gorm.DB

	// 行ロック待ちの上限。0なら無制限（Postgresのデフォルト）
	lockTimeoutMS int
}

func NewTxManagerGorm(db *gorm.DB, lockTimeoutMS int) *TxManagerGorm {
	return &TxManagerGorm{db: db, lockTimeoutMS: lockTimeoutMS}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE待ちを有限にする。SET LOCALなのでこのTxだけに効く
		if tm.lockTimeoutMS > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", tm.lockTimeoutMS)
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}

		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			sales:     NewSaleGormRepository(tx),
			saleItems: NewSaleItemGormRepository(tx),
			products:  NewProductGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
		}
		return fn(r)
	})
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
)

// 消費税（%）
const taxRatePercent = 10

// CheckoutUsecase は会計（POSの中核）。
// 在庫チェック→金額計算→売上保存→在庫減算を1トランザクションで行う。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

// カートの1行（クライアントから受け取るのは商品IDと数量だけ。価格は受け取らない）
type CartItemInput struct {
	ProductID int64
	Quantity  int64
}

type CommitSaleInput struct {
	CustomerName   string
	PaymentMethod  string
	Items          []CartItemInput
	IdempotencyKey string
}

type SaleItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type SaleOutput struct {
	ID            int64            `json:"id"`
	CashierID     int64            `json:"cashier_id"`
	CustomerName  string           `json:"customer_name"`
	PaymentMethod string           `json:"payment_method"`
	Subtotal      int64            `json:"subtotal"`
	Tax           int64            `json:"tax"`
	Total         int64            `json:"total"`
	CreatedAt     time.Time        `json:"created_at"`
	Items         []SaleItemOutput `json:"items"`
}

// CommitSale は会計を確定する。
// 成功時は売上＋明細が作成され、各商品の在庫が数量ぶん減る。
// 失敗時は全部ロールバックされ、DBは呼び出し前と同じ状態のまま。
func (u *CheckoutUsecase) CommitSale(ctx context.Context, cashierID int64, in CommitSaleInput) (SaleOutput, error) {
	if cashierID <= 0 {
		return SaleOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 入力チェックはロックを取る前に済ませる
	if len(in.Items) == 0 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity < 1 {
			return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	payment, ok := parsePaymentMethod(in.PaymentMethod)
	if !ok {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		customer = model.DefaultCustomerName
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	var out SaleOutput

	//会計処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Sales().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			//確定済みの売上を返す
			items, err := r.SaleItems().ListBySaleID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toSaleOutput(existing, items)
			return nil
		}

		// 商品ごとに行ロックを取り、ロック中の価格と在庫で計算する。
		// 同じ商品を触る同時会計はここで直列化される
		saleItems := make([]model.SaleItem, 0, len(in.Items))
		var subtotal int64 = 0

		for _, it := range in.Items {
			p, err := r.Products().FindByIDForUpdate(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", it.ProductID))
			}
			if errors.Is(err, repo.ErrLockTimeout) {
				return NewHTTPError(http.StatusServiceUnavailable, "checkout busy, please retry")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", it.ProductID))
			}

			//在庫チェック（最初の不足で全体を中断）
			if p.Stock < it.Quantity {
				return NewHTTPError(http.StatusConflict, fmt.Sprintf("insufficient stock: %s", p.Name))
			}

			//価格はロック中に読んだDBの値。クライアントの申告は使わない
			saleItems = append(saleItems, model.SaleItem{
				ProductID:           p.ID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            it.Quantity,
			})

			subtotal += p.Price * it.Quantity
		}

		tax := subtotal * taxRatePercent / 100
		total := subtotal + tax

		// 売上作成（合計はサーバー計算の確定値をそのまま入れる）
		now := time.Now()
		sale := model.Sale{
			CashierID:      cashierID,
			CustomerName:   customer,
			Total:          total,
			PaymentMethod:  payment,
			IdempotencyKey: key,
			CreatedAt:      now,
		}
		saleID, err := r.Sales().Create(ctx, sale)
		if err != nil {
			//競合（同時に同じキーが入った等）はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Sales().FindByIdempotencyKey(ctx, key)
			if err2 == nil && found2 {
				items2, err3 := r.SaleItems().ListBySaleID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toSaleOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細一括作成
		if err := r.SaleItems().CreateBulk(ctx, saleID, saleItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫減算。ロック済みなので不足はないはずだが、条件付きUPDATEで二重に守る
		for _, si := range saleItems {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, si.ProductID, si.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, fmt.Sprintf("insufficient stock: %s", si.ProductNameSnapshot))
			}
		}

		sale.ID = saleID
		out = toSaleOutput(sale, saleItems)
		return nil
	})

	if err != nil {
		return SaleOutput{}, err
	}
	return out, nil
}

// GetSale はレシート再表示用
func (u *CheckoutUsecase) GetSale(ctx context.Context, saleID int64) (SaleOutput, error) {
	if saleID <= 0 {
		return SaleOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out SaleOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Sales().FindByID(ctx, saleID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.SaleItems().ListBySaleID(ctx, saleID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toSaleOutput(s, items)
		return nil
	})

	if err != nil {
		return SaleOutput{}, err
	}
	return out, nil
}

type SaleListOutput struct {
	Items []SaleOutput `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// ListRecentSales は直近の売上一覧
func (u *CheckoutUsecase) ListRecentSales(ctx context.Context, page int, limit int) (SaleListOutput, error) {
	if page < 1 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return SaleListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out SaleListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sales, total, err := r.Sales().ListRecent(ctx, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out.Items = make([]SaleOutput, 0, len(sales))
		for _, s := range sales {
			items, err := r.SaleItems().ListBySaleID(ctx, s.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out.Items = append(out.Items, toSaleOutput(s, items))
		}
		out.Total = total
		out.Page = page
		out.Limit = limit
		return nil
	})

	if err != nil {
		return SaleListOutput{}, err
	}
	return out, nil
}

func parsePaymentMethod(s string) (model.PaymentMethod, bool) {
	switch model.PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case model.PaymentCash:
		return model.PaymentCash, true
	case model.PaymentQRIS:
		return model.PaymentQRIS, true
	case model.PaymentDebit:
		return model.PaymentDebit, true
	default:
		return "", false
	}
}

func toSaleOutput(s model.Sale, items []model.SaleItem) SaleOutput {
	outItems := make([]SaleItemOutput, 0, len(items))
	var subtotal int64 = 0
	for _, it := range items {
		outItems = append(outItems, SaleItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.UnitPriceSnapshot * it.Quantity,
		})
		subtotal += it.UnitPriceSnapshot * it.Quantity
	}

	return SaleOutput{
		ID:            s.ID,
		CashierID:     s.CashierID,
		CustomerName:  s.CustomerName,
		PaymentMethod: string(s.PaymentMethod),
		Subtotal:      subtotal,
		Tax:           s.Total - subtotal,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
		Items:         outItems,
	}
}

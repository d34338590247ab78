package model

import "time"

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "CASH"
	PaymentQRIS  PaymentMethod = "QRIS"
	PaymentDebit PaymentMethod = "DEBIT"
)

// 客名未指定のときのデフォルト表示
const DefaultCustomerName = "Guest"

// 会計1回分のヘッダ。作成後は更新・削除しない
type Sale struct {
	ID             int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	CashierID      int64         `gorm:"not null;index" json:"cashier_id"`
	CustomerName   string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	Total          int64         `gorm:"not null" json:"total"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	IdempotencyKey string        `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

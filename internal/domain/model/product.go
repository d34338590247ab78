package model

import (
	"time"

	"gorm.io/gorm"
)

type Category string

const (
	CategoryCoffee    Category = "COFFEE"
	CategoryNonCoffee Category = "NON_COFFEE"
	CategoryFood      Category = "FOOD"
)

// 商品。stockは0未満にならない（checkout側で保証）
type Product struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Category  Category       `gorm:"type:varchar(30);not null;index" json:"category"`
	Price     int64          `gorm:"not null" json:"price"`
	Stock     int64          `gorm:"not null" json:"stock"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

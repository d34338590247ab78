package db

import (
	"pos/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed は初期データを投入する。既にデータがあれば何もしない。
func Seed(gormDB *gorm.DB) error {
	var cashierCount int64
	if err := gormDB.Model(&model.Cashier{}).Count(&cashierCount).Error; err != nil {
		return err
	}
	if cashierCount == 0 {
		cashiers := []struct {
			username string
			password string
		}{
			{"figo", "figo123"},
			{"yosafat", "yosafat123"},
			{"raihan", "raihan123"},
			{"marcel", "marcel123"},
		}
		for _, c := range cashiers {
			hashed, err := bcrypt.GenerateFromPassword([]byte(c.password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if err := gormDB.Create(&model.Cashier{
				Username:     c.username,
				PasswordHash: string(hashed),
				IsActive:     true,
			}).Error; err != nil {
				return err
			}
		}
	}

	var productCount int64
	if err := gormDB.Model(&model.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		products := []model.Product{
			{Name: "Espresso", Category: model.CategoryCoffee, Price: 25000, Stock: 100, IsActive: true},
			{Name: "Latte", Category: model.CategoryCoffee, Price: 35000, Stock: 80, IsActive: true},
			{Name: "Cappuccino", Category: model.CategoryCoffee, Price: 35000, Stock: 75, IsActive: true},
			{Name: "Americano", Category: model.CategoryCoffee, Price: 30000, Stock: 90, IsActive: true},
			{Name: "Croissant", Category: model.CategoryFood, Price: 20000, Stock: 50, IsActive: true},
		}
		if err := gormDB.Create(&products).Error; err != nil {
			return err
		}
	}

	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// カタログ管理の上限値
const (
	maxProductPrice int64 = 200000
	maxProductStock int64 = 1000
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid q")
	}
	if in.Category != "" {
		if _, ok := parseCategory(in.Category); !ok {
			return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        in.Q,
		Category: in.Category,
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}

type SaveProductInput struct {
	Name     string
	Category string
	Price    int64
	Stock    int64
	IsActive bool
}

// 新規商品の登録
func (u *ProductUsecase) CreateProduct(ctx context.Context, in SaveProductInput) (model.Product, error) {
	category, err := validateSaveProductInput(&in)
	if err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:     in.Name,
		Category: category,
		Price:    in.Price,
		Stock:    in.Stock,
		IsActive: in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 商品の更新。在庫はInventoryRepository経由で現在値を設定する
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in SaveProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	category, err := validateSaveProductInput(&in)
	if err != nil {
		return model.Product{}, err
	}

	if _, err := u.productRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Update(ctx, model.Product{
		ID:       id,
		Name:     in.Name,
		Category: category,
		Price:    in.Price,
		IsActive: in.IsActive,
	}); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, id, in.Stock); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, repo.ErrProductReferenced) {
		return NewHTTPError(http.StatusConflict, "product has sales history")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateSaveProductInput(in *SaveProductInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 255 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	category, ok := parseCategory(in.Category)
	if !ok {
		return "", NewHTTPError(http.StatusBadRequest, "invalid category")
	}
	if in.Price < 0 || in.Price > maxProductPrice {
		return "", NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 || in.Stock > maxProductStock {
		return "", NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return category, nil
}

func parseCategory(s string) (model.Category, bool) {
	switch model.Category(strings.ToUpper(strings.TrimSpace(s))) {
	case model.CategoryCoffee:
		return model.CategoryCoffee, true
	case model.CategoryNonCoffee:
		return model.CategoryNonCoffee, true
	case model.CategoryFood:
		return model.CategoryFood, true
	default:
		return "", false
	}
}

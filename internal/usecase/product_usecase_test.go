package usecase_test

import (
	"context"
	"testing"

	"pos/internal/domain/model"
	repo "pos/internal/repository"
	"pos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ProdInventoryRepoMock struct{ mock.Mock }

func (m *ProdInventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *ProdInventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdInventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	panic("not used in ProductUsecase tests")
}

// =====================
// List / Detail
// =====================

func TestProductUsecase_ListProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}

func TestProductUsecase_ListProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertErrContains(t, err, "invalid limit")
}

func TestProductUsecase_ListProducts_InvalidCategory(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Category: "TEA"})
	assertErrContains(t, err, "invalid category")
}

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	in := usecase.ListProductsInput{Page: 1, Limit: 20, Q: "espresso", Category: "COFFEE", Sort: "price_asc"}
	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "espresso", Category: "COFFEE", Sort: "price_asc"}

	items := []model.Product{
		{ID: 1, Name: "Espresso", Category: model.CategoryCoffee, Price: 25000, Stock: 100, IsActive: true},
	}
	pRepo.On("List", mock.Anything, q).Return(items, int64(1), nil)

	out, err := uc.ListProducts(ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, len(out.Items))

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_NotFound_WhenInactive(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, IsActive: false}, nil)

	_, err := uc.GetProductDetail(ctx, 1)
	assertErrContains(t, err, "not found")
}

// =====================
// Create / Update / Delete
// =====================

func TestProductUsecase_CreateProduct_PriceAboveLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.SaveProductInput{
		Name: "Gold Brew", Category: "COFFEE", Price: 200001, Stock: 10, IsActive: true,
	})
	assertErrContains(t, err, "invalid price")
}

func TestProductUsecase_CreateProduct_StockAboveLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdInventoryRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.SaveProductInput{
		Name: "Espresso", Category: "COFFEE", Price: 25000, Stock: 1001, IsActive: true,
	})
	assertErrContains(t, err, "invalid stock")
}

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Matcha Latte" && p.Category == model.CategoryNonCoffee
	})).Return(model.Product{ID: 6, Name: "Matcha Latte"}, nil)

	out, err := uc.CreateProduct(context.Background(), usecase.SaveProductInput{
		Name: "Matcha Latte", Category: "non_coffee", Price: 32000, Stock: 40, IsActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(6), out.ID)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_SetsStockViaInventory(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	iRepo := new(ProdInventoryRepoMock)
	uc := usecase.NewProductUsecase(pRepo, iRepo)

	existing := model.Product{ID: 1, Name: "Espresso", Category: model.CategoryCoffee, Price: 25000, Stock: 100, IsActive: true}
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	pRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	iRepo.On("SetStock", mock.Anything, int64(1), int64(80)).Return(nil)

	_, err := uc.UpdateProduct(context.Background(), 1, usecase.SaveProductInput{
		Name: "Espresso", Category: "COFFEE", Price: 26000, Stock: 80, IsActive: true,
	})
	assert.NoError(t, err)

	iRepo.AssertExpectations(t)
}

func TestProductUsecase_DeleteProduct_ReferencedBySales(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdInventoryRepoMock))

	pRepo.On("SoftDelete", mock.Anything, int64(1)).Return(repo.ErrProductReferenced)

	err := uc.DeleteProduct(context.Background(), 1)
	assertErrContains(t, err, "sales history")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

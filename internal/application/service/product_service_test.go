package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateProduct(t *testing.T) {
	repo := newFakeProductRepo(entity.Product{Name: "Rice", Slug: "rice", Code: "RC-1"})
	svc := NewProductService(repo)

	product, err := svc.CreateProduct(asAdmin(), &CreateProductInput{
		Name:         "Rice",
		Code:         "RC-2",
		Quantity:     4,
		BuyingPrice:  8.1,
		SellingPrice: 10.255,
	})
	require.NoError(t, err)
	assert.Equal(t, "rice-rc-2", product.Slug)
	assert.Equal(t, int64(810), product.BuyingPrice)
	assert.Equal(t, int64(1026), product.SellingPrice)

	_, err = svc.CreateProduct(asAdmin(), &CreateProductInput{Name: "Beans", Code: "RC-1"})
	assert.Equal(t, http.StatusConflict, apperror.GetAppError(err).Code)

	generated, err := svc.CreateProduct(asAdmin(), &CreateProductInput{Name: "Beans"})
	require.NoError(t, err)
	assert.Contains(t, generated.Code, "PROD-")
}

func TestProductService_UpdateProduct_KeepsConcurrentStockChange(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Rice", Slug: "rice", Code: "RC-1", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewProductService(repo)
	ctx := asAdmin()

	repo.interleave = func() {
		ok, err := repo.AtomicDecrementQuantity(ctx, product.ID, 2)
		require.NoError(t, err)
		require.True(t, ok)
	}
	name := "Rice 5kg"
	updated, err := svc.UpdateProduct(ctx, &UpdateProductInput{ID: product.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", updated.Name)
	assert.Equal(t, "rice-5kg", updated.Slug)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, 8, repo.products[product.ID].Quantity)
}

func TestProductService_UpdateProduct_SetsQuantityWhenSent(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Rice", Code: "RC-1", Quantity: 10}
	repo := newFakeProductRepo(product)
	svc := NewProductService(repo)

	quantity := 25
	updated, err := svc.UpdateProduct(asAdmin(), &UpdateProductInput{ID: product.ID, Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)
	assert.Equal(t, "Rice", updated.Name)
}

func TestProductService_GetStockValue(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(
		entity.Product{Name: "A", Category: "grain", SellingPrice: 199, Quantity: 3},
		entity.Product{Name: "B", Category: "grain", SellingPrice: 1000, Quantity: 0},
		entity.Product{Name: "C", Category: "oil", SellingPrice: 500, Quantity: 2},
	))

	value, err := svc.GetStockValue(asAdmin(), &repository.ProductFilterParams{Category: "grain"})
	require.NoError(t, err)
	assert.Equal(t, 5.97, value.TotalValue)
	assert.Equal(t, 3, value.TotalQuantity)
	assert.Equal(t, 2, value.ProductCount)

	value, err = svc.GetStockValue(asAdmin(), &repository.ProductFilterParams{Category: "none"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, value.TotalValue)
}

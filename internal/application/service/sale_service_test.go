package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/apperror"
	"github.com/sangkips/stockboard-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleService_CreateSale(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Rice 5kg", Quantity: 10, BuyingPrice: 900, SellingPrice: 1250}
	products := newFakeProductRepo(product)
	sales := &fakeSaleRepo{}
	svc := NewSaleService(sales, products)

	seller := uuid.New()
	sale, err := svc.CreateSale(asSeller(seller), &CreateSaleInput{
		ProductID:   product.ID,
		Quantity:    3,
		BuyerName:   "Kofi",
		PaymentMode: enum.PaymentModeMomo,
	})
	require.NoError(t, err)

	assert.Equal(t, seller, sale.UserID)
	assert.Equal(t, "Rice 5kg", sale.ProductName)
	assert.Equal(t, int64(1250), sale.SellingPrice)
	assert.Equal(t, int64(900), sale.ProductPrice)
	assert.Equal(t, 7, products.products[product.ID].Quantity)
	assert.Len(t, sales.sales, 1)
}

func TestSaleService_CreateSale_PriceOverride(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Oil", Quantity: 1, SellingPrice: 1000}
	svc := NewSaleService(&fakeSaleRepo{}, newFakeProductRepo(product))

	price := 9.5
	sale, err := svc.CreateSale(asAdmin(), &CreateSaleInput{
		ProductID: product.ID, Quantity: 1, SellingPrice: &price, PaymentMode: enum.PaymentModeCash,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(950), sale.SellingPrice)
}

func TestSaleService_CreateSale_Rejects(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Oil", Quantity: 2, SellingPrice: 1000}

	tests := []struct {
		name  string
		input CreateSaleInput
		code  int
	}{
		{"unknown payment mode", CreateSaleInput{ProductID: product.ID, Quantity: 1, PaymentMode: "card"}, http.StatusUnprocessableEntity},
		{"zero quantity", CreateSaleInput{ProductID: product.ID, Quantity: 0, PaymentMode: enum.PaymentModeCash}, http.StatusUnprocessableEntity},
		{"unknown product", CreateSaleInput{ProductID: uuid.New(), Quantity: 1, PaymentMode: enum.PaymentModeCash}, http.StatusNotFound},
		{"insufficient stock", CreateSaleInput{ProductID: product.ID, Quantity: 3, PaymentMode: enum.PaymentModeCash}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := newFakeProductRepo(product)
			svc := NewSaleService(&fakeSaleRepo{}, products)

			input := tt.input
			_, err := svc.CreateSale(asAdmin(), &input)
			require.Error(t, err)
			assert.Equal(t, tt.code, apperror.GetAppError(err).Code)
			assert.Equal(t, 2, products.products[product.ID].Quantity)
		})
	}
}

func TestSaleService_CreateSale_RestoresStockOnFailure(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Oil", Quantity: 5, SellingPrice: 1000}
	products := newFakeProductRepo(product)
	svc := NewSaleService(&fakeSaleRepo{createErr: errStore}, products)

	_, err := svc.CreateSale(asAdmin(), &CreateSaleInput{ProductID: product.ID, Quantity: 2, PaymentMode: enum.PaymentModeCash})
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, 5, products.products[product.ID].Quantity)
}

func TestSaleService_CreateSale_RequiresIdentity(t *testing.T) {
	svc := NewSaleService(&fakeSaleRepo{}, newFakeProductRepo())
	_, err := svc.CreateSale(context.Background(), &CreateSaleInput{})
	assert.Equal(t, apperror.ErrUnauthorized, err)
}

func TestSaleService_DeleteSale_RestoresStock(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Oil", Quantity: 5}
	products := newFakeProductRepo(product)
	sales := &fakeSaleRepo{products: products}
	svc := NewSaleService(sales, products)
	ctx := asAdmin()

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{ProductID: product.ID, Quantity: 4, PaymentMode: enum.PaymentModeCheque})
	require.NoError(t, err)
	assert.Equal(t, 1, products.products[product.ID].Quantity)

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	assert.Equal(t, 5, products.products[product.ID].Quantity)
	assert.Empty(t, sales.sales)
}

func TestSaleService_DeleteSale_FailedVoidKeepsSaleAndStock(t *testing.T) {
	product := entity.Product{ID: uuid.New(), Name: "Oil", Quantity: 5}
	products := newFakeProductRepo(product)
	sales := &fakeSaleRepo{products: products}
	svc := NewSaleService(sales, products)
	ctx := asAdmin()

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{ProductID: product.ID, Quantity: 2, PaymentMode: enum.PaymentModeCash})
	require.NoError(t, err)

	sales.voidErr = errStore
	assert.ErrorIs(t, svc.DeleteSale(ctx, sale.ID), errStore)
	assert.Len(t, sales.sales, 1)
	assert.Equal(t, 3, products.products[product.ID].Quantity)
}

func TestSaleService_SummarizeSales(t *testing.T) {
	seller := uuid.New()
	day := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	sales := &fakeSaleRepo{sales: []entity.Sale{
		{ID: uuid.New(), UserID: seller, SellingPrice: 1050, ProductPrice: 700, Quantity: 3, PaymentMode: enum.PaymentModeCash, CreatedAt: day.Add(9 * time.Hour)},
		{ID: uuid.New(), UserID: seller, SellingPrice: 2500, ProductPrice: 2000, Quantity: 1, PaymentMode: enum.PaymentModeMomo, CreatedAt: day.Add(15 * time.Hour)},
		{ID: uuid.New(), UserID: uuid.New(), SellingPrice: 10000, ProductPrice: 1, Quantity: 1, PaymentMode: enum.PaymentModeCash, CreatedAt: day.Add(10 * time.Hour)},
		{ID: uuid.New(), UserID: seller, SellingPrice: 999, ProductPrice: 1, Quantity: 1, PaymentMode: enum.PaymentModeCash, CreatedAt: day.Add(24 * time.Hour)},
	}}
	svc := NewSaleService(sales, newFakeProductRepo())

	summary, err := svc.SummarizeSales(asSeller(seller), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 56.5, summary.Revenue)
	assert.Equal(t, 15.5, summary.Profit)
	assert.Equal(t, 4, summary.Quantity)
	assert.Equal(t, 2, summary.Count)

	summary, err = svc.SummarizeSales(asAdmin(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)

	_, err = svc.SummarizeSales(asAdmin(), day, day)
	assert.Equal(t, http.StatusUnprocessableEntity, apperror.GetAppError(err).Code)
}

func TestSaleService_SellerCannotSeeOthersSales(t *testing.T) {
	other := entity.Sale{ID: uuid.New(), UserID: uuid.New(), PaymentMode: enum.PaymentModeCash}
	svc := NewSaleService(&fakeSaleRepo{sales: []entity.Sale{other}}, newFakeProductRepo())

	_, err := svc.GetSale(asSeller(uuid.New()), other.ID)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	got, err := svc.GetSale(asAdmin(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)

	result, err := svc.ListSales(asSeller(uuid.New()), &repository.SaleFilterParams{Pagination: pagination.DefaultPagination()})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.Pagination.Total)
}

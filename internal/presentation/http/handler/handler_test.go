package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/middleware"
	"github.com/sangkips/stockboard-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubProductRepo keeps products in memory
type stubProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *stubProductRepo) GetBySlug(context.Context, string) (*entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) GetByCode(context.Context, string) (*entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	if cur, ok := r.products[p.ID]; ok {
		cp.Quantity = cur.Quantity
	}
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) SetQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	all, _ := r.ListAll(ctx, params)
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) ListAll(context.Context, *repository.ProductFilterParams) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) GetLowStock(context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) AtomicDecrementQuantity(_ context.Context, id uuid.UUID, amount int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity < amount {
		return false, nil
	}
	p.Quantity -= amount
	return true, nil
}

func (r *stubProductRepo) AtomicIncrementQuantity(_ context.Context, id uuid.UUID, amount int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity += amount
	}
	return nil
}

// stubSaleRepo keeps sales in memory
type stubSaleRepo struct {
	sales []entity.Sale
}

func (r *stubSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *stubSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			cp := r.sales[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubSaleRepo) Void(context.Context, *entity.Sale) error { return nil }

func (r *stubSaleRepo) List(context.Context, *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return r.sales, int64(len(r.sales)), nil
}

func (r *stubSaleRepo) ListWithCursor(context.Context, *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	return r.sales, nil
}

func (r *stubSaleRepo) Between(context.Context, time.Time, time.Time) ([]entity.Sale, error) {
	return r.sales, nil
}

// stubStatsRepo returns canned buckets
type stubStatsRepo struct {
	monthly []metrics.StatBucket
}

func (r *stubStatsRepo) DailyBuckets(context.Context, time.Time, time.Time) ([]metrics.StatBucket, error) {
	return nil, nil
}

func (r *stubStatsRepo) MonthlyBuckets(context.Context, int) ([]metrics.StatBucket, error) {
	return r.monthly, nil
}

func (r *stubStatsRepo) YearlyBuckets(context.Context) ([]metrics.StatBucket, error) {
	return nil, nil
}

func ptr[T any](v T) *T { return &v }

type testEnv struct {
	router   *gin.Engine
	products *stubProductRepo
	sales    *stubSaleRepo
	product  entity.Product
}

func newTestEnv(role enum.Role) *testEnv {
	product := entity.Product{
		ID:           uuid.New(),
		Name:         "Rice 5kg",
		Code:         "PC-RICE",
		Quantity:     10,
		BuyingPrice:  4000,
		SellingPrice: 5500,
	}
	products := &stubProductRepo{products: map[uuid.UUID]*entity.Product{product.ID: &product}}
	sales := &stubSaleRepo{}
	stats := &stubStatsRepo{monthly: []metrics.StatBucket{
		{Period: metrics.Period{Year: 2024, Month: 2}, Revenue: ptr(120.5), Profit: ptr(30.0)},
		{Period: metrics.Period{Year: 2024, Month: 3}, Revenue: ptr(80.0)},
	}}

	productHandler := NewProductHandler(service.NewProductService(products))
	saleHandler := NewSaleHandler(service.NewSaleService(sales, products))
	dashboardHandler := NewDashboardHandler(service.NewDashboardService(stats, sales, products, time.UTC))

	me := identity.Identity{UserID: uuid.New(), Email: "staff@shop.test", Role: role}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), me))
		c.Next()
	})
	r.GET("/products", productHandler.List)
	r.POST("/products", productHandler.Create)
	r.GET("/products/:id", productHandler.Get)
	r.GET("/sales", saleHandler.List)
	r.POST("/sales", saleHandler.Create)
	r.GET("/sales/summary", saleHandler.Summary)
	r.GET("/sales/:id", saleHandler.Get)
	r.GET("/dashboard/chart", dashboardHandler.GetChart)

	return &testEnv{router: r, products: products, sales: sales, product: product}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestSaleHandler_Create(t *testing.T) {
	t.Run("records the sale and takes stock", func(t *testing.T) {
		env := newTestEnv(enum.RoleSeller)
		body := `{"product_id":"` + env.product.ID.String() + `","quantity":2,"payment_mode":"momo","buyer_name":"Ama"}`

		w, resp := env.do(t, http.MethodPost, "/sales", body)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, resp.Success)

		var sale struct {
			ProductName  string  `json:"product_name"`
			PaymentMode  string  `json:"payment_mode"`
			SellingPrice float64 `json:"selling_price"`
			Total        float64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &sale))
		assert.Equal(t, "Rice 5kg", sale.ProductName)
		assert.Equal(t, "momo", sale.PaymentMode)
		assert.Equal(t, 55.0, sale.SellingPrice)
		assert.Equal(t, 110.0, sale.Total)
		assert.Equal(t, 8, env.products.products[env.product.ID].Quantity)
	})

	t.Run("unknown payment mode is a field error", func(t *testing.T) {
		env := newTestEnv(enum.RoleSeller)
		body := `{"product_id":"` + env.product.ID.String() + `","quantity":1,"payment_mode":"card"}`

		w, resp := env.do(t, http.MethodPost, "/sales", body)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "payment_mode", resp.Errors[0].Field)
		assert.Empty(t, env.sales.sales)
	})

	t.Run("missing fields are reported by json name", func(t *testing.T) {
		env := newTestEnv(enum.RoleSeller)

		w, resp := env.do(t, http.MethodPost, "/sales", `{}`)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		fields := make([]string, 0, len(resp.Errors))
		for _, fe := range resp.Errors {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"product_id", "quantity", "payment_mode"}, fields)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		env := newTestEnv(enum.RoleSeller)
		body := `{"product_id":"` + env.product.ID.String() + `","quantity":11,"payment_mode":"cash"}`

		w, _ := env.do(t, http.MethodPost, "/sales", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 10, env.products.products[env.product.ID].Quantity)
	})

	t.Run("malformed json", func(t *testing.T) {
		env := newTestEnv(enum.RoleSeller)
		w, _ := env.do(t, http.MethodPost, "/sales", `{"quantity":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSaleHandler_Get(t *testing.T) {
	env := newTestEnv(enum.RoleAdmin)

	w, _ := env.do(t, http.MethodGet, "/sales/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodGet, "/sales/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaleHandler_ListRejectsBadFilters(t *testing.T) {
	env := newTestEnv(enum.RoleAdmin)

	w, _ := env.do(t, http.MethodGet, "/sales?start_date=15-03-2024", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = env.do(t, http.MethodGet, "/sales?payment_mode=card", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = env.do(t, http.MethodGet, "/sales?start_date=2024-03-01&end_date=2024-03-31&payment_mode=cash", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSaleHandler_Summary(t *testing.T) {
	env := newTestEnv(enum.RoleSeller)
	for _, q := range []int{2, 1} {
		body := `{"product_id":"` + env.product.ID.String() + `","quantity":` + strconv.Itoa(q) + `,"payment_mode":"cash"}`
		w, _ := env.do(t, http.MethodPost, "/sales", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := env.do(t, http.MethodGet, "/sales/summary?start_date=2024-03-01&end_date=2024-03-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Revenue  float64 `json:"revenue"`
		Profit   float64 `json:"profit"`
		Quantity int     `json:"quantity"`
		Count    int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	assert.Equal(t, 165.0, summary.Revenue)
	assert.Equal(t, 45.0, summary.Profit)
	assert.Equal(t, 3, summary.Quantity)
	assert.Equal(t, 2, summary.Count)

	w, resp = env.do(t, http.MethodGet, "/sales/summary?start_date=2024-03-01", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "end_date", resp.Errors[0].Field)

	w, _ = env.do(t, http.MethodGet, "/sales/summary?start_date=2024-03-10&end_date=2024-03-01", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProductHandler_Create(t *testing.T) {
	env := newTestEnv(enum.RoleKeeper)

	w, resp := env.do(t, http.MethodPost, "/products", `{"selling_price":-1}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["selling_price"])

	w, resp = env.do(t, http.MethodPost, "/products", `{"name":"Sugar 1kg","quantity":4,"buying_price":9.5,"selling_price":12}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var product struct {
		ID           uuid.UUID `json:"id"`
		Code         string    `json:"code"`
		SellingPrice float64   `json:"selling_price"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &product))
	assert.NotEmpty(t, product.Code)
	assert.Equal(t, 12.0, product.SellingPrice)

	w, _ = env.do(t, http.MethodGet, "/products/"+product.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardHandler_GetChart(t *testing.T) {
	env := newTestEnv(enum.RoleAdmin)

	w, resp := env.do(t, http.MethodGet, "/dashboard/chart?granularity=hourly", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "granularity", resp.Errors[0].Field)

	w, resp = env.do(t, http.MethodGet, "/dashboard/chart?granularity=monthly", "")
	require.Equal(t, http.StatusOK, w.Code)

	var chart struct {
		Granularity string               `json:"granularity"`
		Points      []metrics.ChartPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &chart))
	assert.Equal(t, "monthly", chart.Granularity)
	require.Len(t, chart.Points, 2)
	assert.Equal(t, "February 2024", chart.Points[0].Label)
	assert.Equal(t, 120.5, chart.Points[0].Revenue)
	assert.Equal(t, "March 2024", chart.Points[1].Label)
	assert.Equal(t, 0.0, chart.Points[1].Profit)
}

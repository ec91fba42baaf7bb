package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	"github.com/sangkips/stockboard-api/internal/domain/identity"
	"github.com/sangkips/stockboard-api/internal/domain/metrics"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/pkg/pagination"
)

var errStore = errors.New("store unavailable")

func asAdmin() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: uuid.New(), Role: enum.RoleAdmin})
}

func asSeller(id uuid.UUID) context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{UserID: id, Role: enum.RoleSeller})
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product

	// interleave runs once after the next GetByID
	interleave func()
}

func newFakeProductRepo(products ...entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
	for i := range products {
		p := products[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ID] = &p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	if fn := r.interleave; fn != nil {
		r.interleave = nil
		fn()
	}
	return &cp, nil
}

func (r *fakeProductRepo) find(match func(*entity.Product) bool) *entity.Product {
	for _, p := range r.products {
		if match(p) {
			cp := *p
			return &cp
		}
	}
	return nil
}

func (r *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*entity.Product, error) {
	return r.find(func(p *entity.Product) bool { return p.Slug == slug }), nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	return r.find(func(p *entity.Product) bool { return p.Code == code }), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	if cur, ok := r.products[p.ID]; ok {
		cp.Quantity = cur.Quantity
	}
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) SetQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	all, _ := r.ListAll(ctx, params)
	return all, int64(len(all)), nil
}

func (r *fakeProductRepo) ListAll(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if params.Category != "" && p.Category != params.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementQuantity(_ context.Context, id uuid.UUID, amount int) (bool, error) {
	p, ok := r.products[id]
	if !ok || p.Quantity < amount {
		return false, nil
	}
	p.Quantity -= amount
	return true, nil
}

func (r *fakeProductRepo) AtomicIncrementQuantity(_ context.Context, id uuid.UUID, amount int) error {
	if p, ok := r.products[id]; ok {
		p.Quantity += amount
	}
	return nil
}

type fakeSaleRepo struct {
	sales     []entity.Sale
	createErr error
	voidErr   error

	// products receives the stock returned by Void
	products *fakeProductRepo
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sales = append(r.sales, *s)
	return nil
}

// visible mimics the owner scope
func (r *fakeSaleRepo) visible(ctx context.Context) []entity.Sale {
	id, _ := identity.FromContext(ctx)
	var out []entity.Sale
	for _, s := range r.sales {
		if id.CanSeeAll() || s.UserID == id.UserID {
			out = append(out, s)
		}
	}
	return out
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for _, s := range r.visible(ctx) {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) Void(ctx context.Context, sale *entity.Sale) error {
	if r.voidErr != nil {
		return r.voidErr
	}
	for i, s := range r.sales {
		if s.ID == sale.ID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			break
		}
	}
	if r.products != nil {
		return r.products.AtomicIncrementQuantity(ctx, sale.ProductID, sale.Quantity)
	}
	return nil
}

func (r *fakeSaleRepo) List(ctx context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	out := r.visible(ctx)
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) ListWithCursor(ctx context.Context, params *repository.SaleCursorFilterParams) ([]entity.Sale, error) {
	out := r.visible(ctx)
	if len(out) > params.Cursor.Limit+1 {
		out = out[:params.Cursor.Limit+1]
	}
	return out, nil
}

func (r *fakeSaleRepo) Between(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var out []entity.Sale
	for _, s := range r.visible(ctx) {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeStatsRepo struct {
	daily, monthly, yearly []metrics.StatBucket
	err                    error

	dailyFrom, dailyTo time.Time
	monthlyYear        int
}

func (r *fakeStatsRepo) DailyBuckets(_ context.Context, from, to time.Time) ([]metrics.StatBucket, error) {
	r.dailyFrom, r.dailyTo = from, to
	return r.daily, r.err
}

func (r *fakeStatsRepo) MonthlyBuckets(_ context.Context, year int) ([]metrics.StatBucket, error) {
	r.monthlyYear = year
	return r.monthly, r.err
}

func (r *fakeStatsRepo) YearlyBuckets(_ context.Context) ([]metrics.StatBucket, error) {
	return r.yearly, r.err
}

type fakeCreditRepo struct {
	credits map[uuid.UUID]entity.Credit

	// interleave runs once after the next GetByID, standing in for a
	// request that lands between a read and a write
	interleave func()
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{credits: map[uuid.UUID]entity.Credit{}}
}

func (r *fakeCreditRepo) Create(_ context.Context, c *entity.Credit) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.credits[c.ID] = *c
	return nil
}

func (r *fakeCreditRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Credit, error) {
	c, ok := r.credits[id]
	if fn := r.interleave; fn != nil {
		r.interleave = nil
		fn()
	}
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCreditRepo) AddPayment(_ context.Context, id uuid.UUID, cents int64) (bool, error) {
	c, ok := r.credits[id]
	if !ok || c.Status != enum.SettlementOpen || c.DownPayment+cents > c.TotalAmount {
		return false, nil
	}
	c.DownPayment += cents
	if c.DownPayment >= c.TotalAmount {
		c.Status = enum.SettlementSettled
	}
	r.credits[id] = c
	return true, nil
}

func (r *fakeCreditRepo) Settle(_ context.Context, id uuid.UUID) error {
	if c, ok := r.credits[id]; ok {
		c.Status = enum.SettlementSettled
		r.credits[id] = c
	}
	return nil
}

func (r *fakeCreditRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.credits, id)
	return nil
}

func (r *fakeCreditRepo) List(_ context.Context, _ *repository.LedgerFilterParams) ([]entity.Credit, int64, error) {
	var out []entity.Credit
	for _, c := range r.credits {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

type fakeDebitRepo struct {
	debits map[uuid.UUID]entity.Debit
}

func newFakeDebitRepo() *fakeDebitRepo {
	return &fakeDebitRepo{debits: map[uuid.UUID]entity.Debit{}}
}

func (r *fakeDebitRepo) Create(_ context.Context, d *entity.Debit) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.debits[d.ID] = *d
	return nil
}

func (r *fakeDebitRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Debit, error) {
	d, ok := r.debits[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDebitRepo) AddPayment(_ context.Context, id uuid.UUID, cents int64) (bool, error) {
	d, ok := r.debits[id]
	if !ok || d.Status != enum.SettlementOpen || d.PaidAmount+cents > d.TotalAmount {
		return false, nil
	}
	d.PaidAmount += cents
	if d.PaidAmount >= d.TotalAmount {
		d.Status = enum.SettlementSettled
	}
	r.debits[id] = d
	return true, nil
}

func (r *fakeDebitRepo) Settle(_ context.Context, id uuid.UUID) error {
	if d, ok := r.debits[id]; ok {
		d.Status = enum.SettlementSettled
		r.debits[id] = d
	}
	return nil
}

func (r *fakeDebitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.debits, id)
	return nil
}

func (r *fakeDebitRepo) List(_ context.Context, _ *repository.LedgerFilterParams) ([]entity.Debit, int64, error) {
	var out []entity.Debit
	for _, d := range r.debits {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

type fakeProformaRepo struct {
	created []entity.Proforma
}

func (r *fakeProformaRepo) Create(_ context.Context, p *entity.Proforma) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.created = append(r.created, *p)
	return nil
}

func (r *fakeProformaRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Proforma, error) {
	for _, p := range r.created {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProformaRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.created {
		if p.ID == id {
			r.created = append(r.created[:i], r.created[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeProformaRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Proforma, int64, error) {
	return r.created, int64(len(r.created)), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uuid.UUID]entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string, _ *enum.Role) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

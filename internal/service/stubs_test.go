package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cafemanagement/internal/apperror"
	"cafemanagement/internal/cache"
	"cafemanagement/internal/config"
	"cafemanagement/internal/model"
	"cafemanagement/internal/repository"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. They are mutex-guarded because the cache refresh
// runs on its own goroutine after every mutation.

type stubUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return apperror.New(apperror.Conflict, "username or email already registered")
		}
		if existing.Email != nil && u.Email != nil && strings.EqualFold(*existing.Email, *u.Email) {
			return apperror.New(apperror.Conflict, "username or email already registered")
		}
	}
	r.seq++
	u.ID = r.seq
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.New(apperror.NotFound, "user not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return apperror.New(apperror.NotFound, "user not found")
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) UpdateApprovalStatus(_ context.Context, id uint, status model.ApprovalStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	u.ApprovalStatus = status
	return true, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubProductRepo struct {
	mu       sync.Mutex
	seq      uint
	products map[uint]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return apperror.New(apperror.Conflict, "product name already exists")
		}
	}
	r.seq++
	p.ID = r.seq
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperror.New(apperror.NotFound, "product not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListAvailable(ctx context.Context) ([]model.Product, error) {
	all, _ := r.List(ctx)
	out := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.IsAvailable {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return apperror.New(apperror.NotFound, "product not found")
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) RemoveDuplicateNames(_ context.Context) (int64, error) { return 0, nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubOrderRepo struct {
	mu      sync.Mutex
	seq     uint
	orders  map[uint]*model.Order
	details map[uint][]model.OrderDetail
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:  make(map[uint]*model.Order),
		details: make(map[uint][]model.OrderDetail),
	}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	o.ID = r.seq
	o.OrderNumber = fmt.Sprintf("ORD-%06d", r.seq)
	o.TotalAmount = o.Total()
	o.CreatedAt = time.Now()
	for i := range o.Items {
		o.Items[i].ID = uint(i + 1)
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	r.details[o.ID] = append([]model.OrderDetail(nil), o.Items...)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uint) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperror.New(apperror.NotFound, "order not found")
	}
	cp := *o
	cp.Items = append([]model.OrderDetail(nil), r.details[id]...)
	return &cp, nil
}

func (r *stubOrderRepo) ListByStatuses(_ context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID uint) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListDetails(_ context.Context, orderID uint) ([]model.OrderDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.OrderDetail(nil), r.details[orderID]...), nil
}

func (r *stubOrderRepo) AddDetail(_ context.Context, d *model.OrderDetail, total decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[d.OrderID]
	if !ok {
		return apperror.New(apperror.NotFound, "order not found")
	}
	d.ID = uint(len(r.details[d.OrderID]) + 1)
	r.details[d.OrderID] = append(r.details[d.OrderID], *d)
	o.TotalAmount = total
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, orderID uint, status model.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return false, nil
	}
	o.Status = status
	return true, nil
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubReportRepo records the arguments of the last aggregation call.
type stubReportRepo struct {
	mu       sync.Mutex
	start    time.Time
	end      time.Time
	statuses []model.OrderStatus
	total    decimal.Decimal
	count    int64
	saved    []model.SalesReport
}

func (r *stubReportRepo) TotalSales(_ context.Context, start, end time.Time, statuses []model.OrderStatus) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start, r.end, r.statuses = start, end, statuses
	return r.total, nil
}

func (r *stubReportRepo) CountOrders(_ context.Context, _, _ time.Time, _ []model.OrderStatus) (int64, error) {
	return r.count, nil
}

func (r *stubReportRepo) TopSellingProducts(_ context.Context, limit int) ([]repository.TopProduct, error) {
	return []repository.TopProduct{}, nil
}

func (r *stubReportRepo) Save(_ context.Context, rep *model.SalesReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep.ID = uint(len(r.saved) + 1)
	r.saved = append(r.saved, *rep)
	return nil
}

func (r *stubReportRepo) List(_ context.Context) ([]model.SalesReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.SalesReport(nil), r.saved...), nil
}

var _ repository.ReportRepository = (*stubReportRepo)(nil)

// ── Factories ─────────────────────────────────────────────────────────────────

func newTestCaches(users *stubUserRepo, products *stubProductRepo, orders *stubOrderRepo) *cache.Collections {
	return cache.NewCollections(users, products, orders)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/constants"
	"storefront/gateway"
	"storefront/model"
	"storefront/utils"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCouponStore struct {
	mu      sync.Mutex
	nextID  uint
	coupons map[uint]model.Coupon
	failErr error
}

func newFakeCouponStore(coupons ...model.Coupon) *fakeCouponStore {
	s := &fakeCouponStore{coupons: make(map[uint]model.Coupon)}
	for _, c := range coupons {
		s.nextID++
		c.ID = s.nextID
		s.coupons[c.ID] = c
	}
	return s
}

func (s *fakeCouponStore) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, 0, s.failErr
	}
	var out []model.Coupon
	for _, c := range s.coupons {
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(c.Code, strings.ToUpper(filter.Search)) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (s *fakeCouponStore) FindByID(ctx context.Context, id uint) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	c, ok := s.coupons[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &c, nil
}

func (s *fakeCouponStore) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	for _, c := range s.coupons {
		if c.Code == code {
			found := c
			return &found, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *fakeCouponStore) Create(ctx context.Context, coupon *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == coupon.Code {
			return model.ErrDuplicate
		}
	}
	s.nextID++
	coupon.ID = s.nextID
	s.coupons[coupon.ID] = *coupon
	return nil
}

func (s *fakeCouponStore) Save(ctx context.Context, coupon *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == coupon.Code && c.ID != coupon.ID {
			return model.ErrDuplicate
		}
	}
	current, ok := s.coupons[coupon.ID]
	if !ok {
		return model.ErrNotFound
	}
	saved := *coupon
	saved.UsedCount = current.UsedCount
	s.coupons[coupon.ID] = saved
	return nil
}

func (s *fakeCouponStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.coupons, id)
	return nil
}

func (s *fakeCouponStore) IncrementUsage(ctx context.Context, id uint, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return false, s.failErr
	}
	c, ok := s.coupons[id]
	if !ok || !c.IsActive || now.After(c.ExpiryDate) {
		return false, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	s.coupons[id] = c
	return true, nil
}

func (s *fakeCouponStore) usedCount(id uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupons[id].UsedCount
}

type fakeGateway struct {
	mu        sync.Mutex
	orders    []gateway.OrderRequest
	createErr error
	payments  map[string]gateway.Payment
	fetchErr  error
	delay     time.Duration
}

func (g *fakeGateway) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders = append(g.orders, req)
	return &gateway.Order{
		ID:       "order_" + strings.Repeat("x", len(g.orders)),
		Entity:   "order",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) FetchPayment(ctx context.Context, id string) (*gateway.Payment, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	p, ok := g.payments[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &p, nil
}

func (g *fakeGateway) orderCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.orders)
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[string]model.Payment
	failErr  error
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]model.Payment)}
}

func (s *fakePaymentStore) Create(ctx context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	s.payments[payment.OrderId] = *payment
	return nil
}

func (s *fakePaymentStore) MarkPaid(ctx context.Context, orderId, paymentId string, paidAt time.Time) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	p := s.payments[orderId]
	p.OrderId = orderId
	p.PaymentId = paymentId
	p.Status = constants.PAYMENT_PAID
	p.PaidAt = &paidAt
	s.payments[orderId] = p
	return &p, nil
}

func (s *fakePaymentStore) ExpireStale(ctx context.Context, createdBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, p := range s.payments {
		if p.Status == constants.PAYMENT_CREATED && p.CreatedAt.Before(createdBefore) {
			p.Status = constants.PAYMENT_ABANDONED
			s.payments[id] = p
			n++
		}
	}
	return n, nil
}

func (s *fakePaymentStore) get(orderId string) (model.Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[orderId]
	return p, ok
}

type memoryReceiptCache struct {
	mu     sync.Mutex
	orders map[string]model.PaymentOrder
}

func newMemoryReceiptCache() *memoryReceiptCache {
	return &memoryReceiptCache{orders: make(map[string]model.PaymentOrder)}
}

func (c *memoryReceiptCache) Get(ctx context.Context, receipt string) (*model.PaymentOrder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[receipt]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (c *memoryReceiptCache) Put(ctx context.Context, order model.PaymentOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[order.Receipt] = order
	return nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []utils.PaymentReceiptData
	to   []string
}

func (m *recordingMailer) SendPaymentReceipt(to string, data utils.PaymentReceiptData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	m.sent = append(m.sent, data)
}

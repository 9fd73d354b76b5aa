package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/constants"
	"storefront/gateway"
	"storefront/handler"
	"storefront/helper"
	"storefront/model"
	"storefront/router"
	"storefront/service"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	testJWTSecret = "handler-test-secret"
	testKeySecret = "rzp_test_secret"
)

type couponStore struct {
	mu      sync.Mutex
	coupons map[uint]*model.Coupon
	nextId  uint
}

func newCouponStore(coupons ...model.Coupon) *couponStore {
	s := &couponStore{coupons: map[uint]*model.Coupon{}}
	for _, c := range coupons {
		c := c
		_ = s.Create(context.Background(), &c)
	}
	return s
}

func (s *couponStore) List(_ context.Context, _ model.CouponFilter) ([]model.Coupon, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (s *couponStore) FindByID(_ context.Context, id uint) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *couponStore) FindByCode(_ context.Context, code string) (*model.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *couponStore) Create(_ context.Context, coupon *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.coupons {
		if c.Code == coupon.Code {
			return model.ErrDuplicate
		}
	}
	s.nextId++
	coupon.ID = s.nextId
	cp := *coupon
	s.coupons[coupon.ID] = &cp
	return nil
}

func (s *couponStore) Save(_ context.Context, coupon *model.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[coupon.ID]; !ok {
		return model.ErrNotFound
	}
	cp := *coupon
	s.coupons[coupon.ID] = &cp
	return nil
}

func (s *couponStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.coupons, id)
	return nil
}

func (s *couponStore) IncrementUsage(_ context.Context, id uint, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.coupons[id]
	if !ok || !c.IsActive || now.After(c.ExpiryDate) {
		return false, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

type paymentStore struct {
	mu       sync.Mutex
	payments map[string]*model.Payment
}

func (s *paymentStore) Create(_ context.Context, p *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.payments[p.OrderId] = &cp
	return nil
}

func (s *paymentStore) MarkPaid(_ context.Context, orderId, paymentId string, paidAt time.Time) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[orderId]
	if !ok {
		p = &model.Payment{OrderId: orderId}
		s.payments[orderId] = p
	}
	p.PaymentId = paymentId
	p.Status = constants.PAYMENT_PAID
	p.PaidAt = &paidAt
	cp := *p
	return &cp, nil
}

func (s *paymentStore) ExpireStale(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type stubGateway struct{}

func (stubGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	return &gateway.Order{
		ID:       "order_handler1",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (stubGateway) FetchPayment(_ context.Context, id string) (*gateway.Payment, error) {
	if id != "pay_known" {
		return nil, gateway.ErrNotFound
	}
	return &gateway.Payment{ID: id, Amount: 2000, Currency: "INR", Status: "captured", Method: "upi"}, nil
}

type accountStore struct {
	accounts map[string]model.Account
}

func (s accountStore) FindByUsername(_ context.Context, username string) (*model.Account, error) {
	a, ok := s.accounts[username]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &a, nil
}

type fixture struct {
	app      *fiber.App
	coupons  *couponStore
	payments *paymentStore
}

func newFixture(t *testing.T, gw service.Gateway, coupons ...model.Coupon) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	hash, err := helper.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	accounts := accountStore{accounts: map[string]model.Account{
		"admin":  {DTO: model.DTO{ID: 1}, Username: "admin", Password: hash, Active: true, Role: constants.ROLE_ADMIN},
		"editor": {DTO: model.DTO{ID: 2}, Username: "editor", Password: hash, Active: true, Role: constants.ROLE_EDITOR},
	}}

	f := &fixture{
		coupons:  newCouponStore(coupons...),
		payments: &paymentStore{payments: map[string]*model.Payment{}},
	}
	h := &handler.Handler{
		Coupons: service.NewCouponService(f.coupons, log),
		Payments: service.NewPaymentService(gw, f.payments, nil, nil, service.PaymentConfig{
			KeyID:     "rzp_test_key",
			KeySecret: testKeySecret,
		}, log),
		Auth:     service.NewAuthService(accounts, testJWTSecret, time.Hour, log),
		Log:      log,
		TokenTTL: time.Hour,
	}

	f.app = fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	router.SetupRoutes(f.app, h, testJWTSecret)
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp, out
}

func (f *fixture) login(t *testing.T, username string) string {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/v1/auth/login", fiber.Map{"username": username, "password": "s3cret"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d %v", username, resp.StatusCode, body)
	}
	token, _ := body["accessToken"].(string)
	if token == "" {
		t.Fatalf("login %s: no access token in %v", username, body)
	}
	return token
}

func activeCoupon(code string) model.Coupon {
	return model.Coupon{
		Code:          code,
		DiscountType:  constants.DISCOUNT_PERCENTAGE,
		DiscountValue: 20,
		MinOrderValue: 1000,
		MaxDiscount:   utils.Ptr(500.0),
		UsageLimit:    utils.Ptr(1),
		ExpiryDate:    time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
}

func expectStatus(t *testing.T, resp *http.Response, body map[string]any, status int, message string) {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d (%v)", status, resp.StatusCode, body)
	}
	if message != "" && body["message"] != message {
		t.Fatalf("expected message %q, got %v", message, body["message"])
	}
}

func TestStatusOf(t *testing.T) {
	cases := map[service.Kind]int{
		service.KindValidation:     http.StatusBadRequest,
		service.KindNotFound:       http.StatusNotFound,
		service.KindConflict:       http.StatusConflict,
		service.KindBusinessRule:   http.StatusBadRequest,
		service.KindUpstream:       http.StatusBadGateway,
		service.KindAuthentication: http.StatusBadRequest,
		service.KindUnauthorized:   http.StatusUnauthorized,
		service.KindInternal:       http.StatusInternalServerError,
	}
	for kind, status := range cases {
		if got := handler.StatusOf(&service.Error{Kind: kind, Message: "x"}); got != status {
			t.Errorf("%s: expected %d, got %d", kind, status, got)
		}
	}
	if got := handler.StatusOf(io.EOF); got != http.StatusInternalServerError {
		t.Errorf("plain error: expected 500, got %d", got)
	}
}

func TestValidateCouponEndpoint(t *testing.T) {
	f := newFixture(t, stubGateway{}, activeCoupon("SAVE20"))

	resp, body := f.do(t, http.MethodPost, "/api/v1/coupons/validate", fiber.Map{"code": "save20", "orderTotal": 4000}, "")
	expectStatus(t, resp, body, http.StatusOK, "")
	if body["discount"] != 500.0 || body["finalTotal"] != 3500.0 {
		t.Fatalf("unexpected discount body %v", body)
	}

	resp, body = f.do(t, http.MethodPost, "/api/v1/coupons/validate", fiber.Map{"code": "save20", "orderTotal": 500}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, "Minimum order value of 1000.00 required")

	resp, body = f.do(t, http.MethodPost, "/api/v1/coupons/validate", fiber.Map{"code": "NOPE", "orderTotal": 4000}, "")
	expectStatus(t, resp, body, http.StatusNotFound, constants.COUPON_INVALID_CODE)

	resp, body = f.do(t, http.MethodPost, "/api/v1/coupons/validate", fiber.Map{"code": "SAVE20"}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.COUPON_MISSING_FIELDS)
}

func TestUseCouponEndpoint(t *testing.T) {
	f := newFixture(t, stubGateway{}, activeCoupon("ONCE"))

	resp, body := f.do(t, http.MethodPost, "/api/v1/coupons/use", fiber.Map{"code": "once"}, "")
	expectStatus(t, resp, body, http.StatusOK, constants.COUPON_USED)

	resp, body = f.do(t, http.MethodPost, "/api/v1/coupons/use", fiber.Map{"code": "once"}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.COUPON_EXHAUSTED)

	resp, body = f.do(t, http.MethodPost, "/api/v1/coupons/use", fiber.Map{}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.COUPON_MISSING_CODE)
}

func TestCreatePaymentOrderEndpoint(t *testing.T) {
	f := newFixture(t, stubGateway{})

	resp, body := f.do(t, http.MethodPost, "/api/v1/payment/create-order", fiber.Map{"amount": 19.999, "currency": "inr"}, "")
	expectStatus(t, resp, body, http.StatusOK, "")
	order, _ := body["order"].(map[string]any)
	if order["amount"] != 2000.0 || order["currency"] != "INR" || body["publicKey"] != "rzp_test_key" {
		t.Fatalf("unexpected order body %v", body)
	}

	resp, body = f.do(t, http.MethodPost, "/api/v1/payment/create-order", fiber.Map{"amount": 0.5, "currency": "INR"}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, "Amount must be at least 1.00 INR")

	resp, body = f.do(t, http.MethodPost, "/api/v1/payment/create-order", fiber.Map{}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.PAYMENT_MISSING_AMOUNT)
}

func TestCreatePaymentOrderGatewayDisabled(t *testing.T) {
	f := newFixture(t, nil)

	resp, body := f.do(t, http.MethodPost, "/api/v1/payment/create-order", fiber.Map{"amount": 10}, "")
	expectStatus(t, resp, body, http.StatusBadGateway, constants.PAYMENT_GATEWAY_DISABLED)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	f := newFixture(t, stubGateway{})
	signature := service.Signature(testKeySecret, "order_1", "pay_1")

	resp, body := f.do(t, http.MethodPost, "/api/v1/payment/verify", fiber.Map{
		"orderId": "order_1", "paymentId": "pay_1", "signature": signature,
	}, "")
	expectStatus(t, resp, body, http.StatusOK, "")
	if body["verified"] != true {
		t.Fatalf("expected verified, got %v", body)
	}

	resp, body = f.do(t, http.MethodPost, "/api/v1/payment/verify", fiber.Map{
		"orderId": "order_1", "paymentId": "pay_2", "signature": signature,
	}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.PAYMENT_BAD_SIGNATURE)

	resp, body = f.do(t, http.MethodPost, "/api/v1/payment/verify", fiber.Map{
		"orderId": "order_1", "signature": signature,
	}, "")
	expectStatus(t, resp, body, http.StatusBadRequest, constants.PAYMENT_MISSING_FIELDS)
}

func TestGetPaymentRequiresToken(t *testing.T) {
	f := newFixture(t, stubGateway{})

	resp, body := f.do(t, http.MethodGet, "/api/v1/payment/pay_known", nil, "")
	expectStatus(t, resp, body, http.StatusUnauthorized, constants.MISSING_TOKEN)

	token := f.login(t, "admin")
	resp, body = f.do(t, http.MethodGet, "/api/v1/payment/pay_known", nil, token)
	expectStatus(t, resp, body, http.StatusOK, "")
	if body["amount"] != 20.0 || body["method"] != "upi" {
		t.Fatalf("unexpected payment body %v", body)
	}

	resp, body = f.do(t, http.MethodGet, "/api/v1/payment/pay_missing", nil, token)
	expectStatus(t, resp, body, http.StatusNotFound, constants.PAYMENT_NOT_FOUND)
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t, stubGateway{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get(fiber.HeaderSetCookie), "access_token=") {
		t.Fatalf("expected access_token cookie, got %q", resp.Header.Get(fiber.HeaderSetCookie))
	}

	resp2, body := f.do(t, http.MethodPost, "/api/v1/auth/login", fiber.Map{"username": "admin", "password": "wrong"}, "")
	expectStatus(t, resp2, body, http.StatusUnauthorized, constants.INVALID_CREDENTIALS)

	resp2, body = f.do(t, http.MethodPost, "/api/v1/auth/login", fiber.Map{"username": "admin"}, "")
	expectStatus(t, resp2, body, http.StatusBadRequest, constants.MISSING_LOGIN_INPUT)
}

func TestAdminCoupons(t *testing.T) {
	f := newFixture(t, stubGateway{})
	token := f.login(t, "admin")

	resp, body := f.do(t, http.MethodPost, "/api/v1/admin/coupons", fiber.Map{
		"code":          "welcome10",
		"discountType":  "fixed",
		"discountValue": 10,
		"expiryDate":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, token)
	expectStatus(t, resp, body, http.StatusCreated, "")
	if body["code"] != "WELCOME10" {
		t.Fatalf("expected normalized code, got %v", body["code"])
	}

	resp, body = f.do(t, http.MethodPost, "/api/v1/admin/coupons", fiber.Map{
		"code":          "WELCOME10",
		"discountType":  "fixed",
		"discountValue": 10,
		"expiryDate":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}, token)
	expectStatus(t, resp, body, http.StatusConflict, constants.COUPON_CODE_EXISTS)

	resp, body = f.do(t, http.MethodPatch, "/api/v1/admin/coupons/1/toggle", nil, token)
	expectStatus(t, resp, body, http.StatusOK, "")
	if body["isActive"] != false {
		t.Fatalf("expected coupon toggled off, got %v", body["isActive"])
	}

	resp, body = f.do(t, http.MethodGet, "/api/v1/admin/coupons/abc", nil, token)
	expectStatus(t, resp, body, http.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER)

	resp, body = f.do(t, http.MethodDelete, "/api/v1/admin/coupons/1", nil, token)
	expectStatus(t, resp, body, http.StatusOK, constants.COUPON_DELETED)

	resp, body = f.do(t, http.MethodDelete, "/api/v1/admin/coupons/1", nil, token)
	expectStatus(t, resp, body, http.StatusNotFound, constants.COUPON_NOT_FOUND)
}

func TestAdminCouponsRole(t *testing.T) {
	f := newFixture(t, stubGateway{}, activeCoupon("SAVE20"))

	resp, body := f.do(t, http.MethodGet, "/api/v1/admin/coupons", nil, f.login(t, "editor"))
	expectStatus(t, resp, body, http.StatusForbidden, constants.FORBIDDEN)

	resp, body = f.do(t, http.MethodGet, "/api/v1/admin/coupons", nil, "not-a-token")
	expectStatus(t, resp, body, http.StatusUnauthorized, constants.INVALID_TOKEN)
}

func TestCouponQR(t *testing.T) {
	f := newFixture(t, stubGateway{}, activeCoupon("SAVE20"))
	token := f.login(t, "admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/coupons/1/qr", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := f.app.Test(req, -1)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(raw, []byte("\x89PNG")) {
		t.Fatal("expected PNG signature")
	}
}

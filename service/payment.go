package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"storefront/constants"
	"storefront/gateway"
	"storefront/metrics"
	"storefront/model"
	"storefront/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type Gateway interface {
	CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error)
	FetchPayment(ctx context.Context, id string) (*gateway.Payment, error)
}

type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) error
	// MarkPaid upserts the verified order/payment pair.
	MarkPaid(ctx context.Context, orderId, paymentId string, paidAt time.Time) (*model.Payment, error)
	ExpireStale(ctx context.Context, createdBefore time.Time) (int64, error)
}

type ReceiptCache interface {
	Get(ctx context.Context, receipt string) (*model.PaymentOrder, error)
	Put(ctx context.Context, order model.PaymentOrder) error
}

type ReceiptMailer interface {
	SendPaymentReceipt(to string, data utils.PaymentReceiptData)
}

type PaymentConfig struct {
	KeyID          string
	KeySecret      string
	GatewayTimeout time.Duration
}

type PaymentService struct {
	gateway    Gateway
	store      PaymentStore
	receipts   ReceiptCache
	mailer     ReceiptMailer
	cfg        PaymentConfig
	log        *slog.Logger
	group      singleflight.Group
	now        func() time.Time
	newReceipt func() string
}

// NewPaymentService wires the handshake. gw may be nil when the gateway is not
// configured; receipts and mailer are optional.
func NewPaymentService(gw Gateway, store PaymentStore, receipts ReceiptCache, mailer ReceiptMailer, cfg PaymentConfig, log *slog.Logger) *PaymentService {
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 10 * time.Second
	}
	return &PaymentService{
		gateway:  gw,
		store:    store,
		receipts: receipts,
		mailer:   mailer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		newReceipt: func() string {
			return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
		},
	}
}

// MinimumAmount is the smallest chargeable amount in major units for currency.
func MinimumAmount(currency string) float64 {
	if minimum, ok := constants.MIN_CHARGEABLE_AMOUNT[currency]; ok {
		return minimum
	}
	return constants.DEFAULT_MIN_AMOUNT
}

// Signature is hex(HMAC-SHA256(secret, orderId + "|" + paymentId)).
func Signature(secret, orderId, paymentId string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderId + "|" + paymentId))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, orderId, paymentId, signature string) bool {
	expected := Signature(secret, orderId, paymentId)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *PaymentService) CreateOrder(ctx context.Context, input model.CreatePaymentOrderInput) (*model.PaymentOrderResponse, error) {
	if s.gateway == nil {
		return nil, newError(KindUpstream, constants.PAYMENT_GATEWAY_DISABLED, nil)
	}
	if input.Amount == nil {
		return nil, newError(KindValidation, constants.PAYMENT_MISSING_AMOUNT, nil)
	}
	amount := *input.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, newError(KindValidation, "Amount must be a number", nil)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = constants.DEFAULT_CURRENCY
	}
	if !utils.IsValidValueOfConstant(currency, constants.SUPPORTED_CURRENCIES) {
		return nil, newError(KindValidation, constants.PAYMENT_BAD_CURRENCY, nil)
	}
	if minimum := MinimumAmount(currency); amount < minimum {
		return nil, newError(KindValidation, fmt.Sprintf("Amount must be at least %s %s", utils.FormatMoney(minimum), currency), nil)
	}
	if amount > constants.MAX_ORDER_AMOUNT {
		return nil, newError(KindValidation, fmt.Sprintf("Amount must not exceed %s %s", utils.FormatMoney(constants.MAX_ORDER_AMOUNT), currency), nil)
	}

	req := gateway.OrderRequest{
		Amount:   utils.ToMinorUnits(amount),
		Currency: currency,
		Receipt:  strings.TrimSpace(input.Receipt),
	}

	var order *model.PaymentOrder
	var err error
	if req.Receipt == "" {
		req.Receipt = s.newReceipt()
		order, err = s.openOrder(ctx, req, amount)
	} else {
		order, err = s.openOrderOnce(ctx, req, amount)
	}
	if err != nil {
		return nil, err
	}

	return &model.PaymentOrderResponse{
		Order:     *order,
		PublicKey: s.cfg.KeyID,
	}, nil
}

// openOrderOnce makes a client supplied receipt idempotent: concurrent duplicates share one
// gateway call and later duplicates are answered from the receipt cache.
func (s *PaymentService) openOrderOnce(ctx context.Context, req gateway.OrderRequest, amount float64) (*model.PaymentOrder, error) {
	// The shared call outlives any single caller, so it must not inherit one caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(req.Receipt, func() (any, error) {
		ctx := shared
		if s.receipts != nil {
			cached, err := s.receipts.Get(ctx, req.Receipt)
			if err != nil {
				s.log.Warn("receipt cache lookup failed", slog.String("receipt", req.Receipt), slog.Any("error", err))
			} else if cached != nil {
				if cached.Amount != req.Amount || cached.Currency != req.Currency {
					return nil, newError(KindConflict, "Receipt already used for a different order", nil)
				}
				metrics.PaymentOrders.WithLabelValues("replayed").Inc()
				return cached, nil
			}
		}

		order, err := s.openOrder(ctx, req, amount)
		if err != nil {
			return nil, err
		}
		if s.receipts != nil {
			if err := s.receipts.Put(ctx, *order); err != nil {
				s.log.Warn("receipt cache write failed", slog.String("receipt", req.Receipt), slog.Any("error", err))
			}
		}
		return order, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.PaymentOrder), nil
}

// openOrder performs the single gateway call; failures are never retried here.
func (s *PaymentService) openOrder(ctx context.Context, req gateway.OrderRequest, amount float64) (*model.PaymentOrder, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	start := time.Now()
	created, err := s.gateway.CreateOrder(callCtx, req)
	metrics.GatewayLatency.WithLabelValues("create_order").Observe(time.Since(start).Seconds())
	if err == nil && created.ID == "" {
		err = errors.New("gateway returned an order without id")
	}
	if err != nil {
		metrics.PaymentOrders.WithLabelValues("failed").Inc()
		s.log.Error("create gateway order", slog.String("receipt", req.Receipt), slog.Any("error", err))
		return nil, newError(KindUpstream, constants.PAYMENT_ORDER_FAILED, err)
	}

	order := &model.PaymentOrder{
		ID:       created.ID,
		Amount:   created.Amount,
		Currency: created.Currency,
		Receipt:  created.Receipt,
	}
	if order.Amount == 0 {
		order.Amount = req.Amount
	}
	if order.Currency == "" {
		order.Currency = req.Currency
	}
	if order.Receipt == "" {
		order.Receipt = req.Receipt
	}

	record := model.Payment{
		OrderId:     order.ID,
		Amount:      utils.RoundMoney(amount),
		AmountMinor: req.Amount,
		Currency:    req.Currency,
		Receipt:     order.Receipt,
		Status:      constants.PAYMENT_CREATED,
	}
	if err := s.store.Create(ctx, &record); err != nil {
		s.log.Error("persist payment order", slog.String("orderId", order.ID), slog.Any("error", err))
	}

	metrics.PaymentOrders.WithLabelValues("created").Inc()
	s.log.Info("payment order created",
		slog.String("orderId", order.ID),
		slog.Int64("amount", order.Amount),
		slog.String("currency", order.Currency))
	return order, nil
}

func (s *PaymentService) VerifyPayment(ctx context.Context, input model.VerifyPaymentInput) (*model.PaymentVerification, error) {
	// Blank means missing; otherwise the values are signed and compared exactly as sent.
	orderId, paymentId, signature := input.OrderId, input.PaymentId, input.Signature
	if isBlank(orderId) || isBlank(paymentId) || isBlank(signature) {
		return nil, newError(KindValidation, constants.PAYMENT_MISSING_FIELDS, nil)
	}
	if s.cfg.KeySecret == "" {
		return nil, newError(KindUpstream, constants.PAYMENT_GATEWAY_DISABLED, nil)
	}

	if !VerifySignature(s.cfg.KeySecret, orderId, paymentId, signature) {
		metrics.PaymentVerifications.WithLabelValues("mismatch").Inc()
		s.log.Warn("payment signature mismatch", slog.String("orderId", orderId), slog.String("paymentId", paymentId))
		return nil, newError(KindAuthentication, constants.PAYMENT_BAD_SIGNATURE, nil)
	}
	metrics.PaymentVerifications.WithLabelValues("verified").Inc()

	record, err := s.store.MarkPaid(ctx, orderId, paymentId, s.now())
	if err != nil {
		// The signature is authentic; the client has paid regardless of our bookkeeping.
		s.log.Error("record verified payment", slog.String("orderId", orderId), slog.Any("error", err))
	} else if s.mailer != nil && input.Email != "" {
		s.mailer.SendPaymentReceipt(input.Email, utils.PaymentReceiptData{
			OrderId:   orderId,
			PaymentId: paymentId,
			Amount:    utils.FormatMoney(record.Amount),
			Currency:  record.Currency,
		})
	}

	return &model.PaymentVerification{
		Verified:  true,
		PaymentId: paymentId,
		OrderId:   orderId,
	}, nil
}

func (s *PaymentService) FetchPayment(ctx context.Context, id string) (*model.PaymentDetails, error) {
	if s.gateway == nil {
		return nil, newError(KindUpstream, constants.PAYMENT_GATEWAY_DISABLED, nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newError(KindValidation, "Payment id is required", nil)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	start := time.Now()
	payment, err := s.gateway.FetchPayment(callCtx, id)
	metrics.GatewayLatency.WithLabelValues("fetch_payment").Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, newError(KindNotFound, constants.PAYMENT_NOT_FOUND, err)
		}
		s.log.Error("fetch gateway payment", slog.String("paymentId", id), slog.Any("error", err))
		return nil, newError(KindUpstream, constants.PAYMENT_FETCH_FAILED, err)
	}

	return &model.PaymentDetails{
		ID:       payment.ID,
		Amount:   utils.FromMinorUnits(payment.Amount),
		Currency: payment.Currency,
		Status:   payment.Status,
		Method:   payment.Method,
	}, nil
}

// ExpireStale marks orders that were never verified within ttl as abandoned.
func (s *PaymentService) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	n, err := s.store.ExpireStale(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("abandoned stale payment orders", slog.Int64("count", n))
	}
	return n, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

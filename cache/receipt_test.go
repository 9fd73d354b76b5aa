package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/model"

	"github.com/go-redis/redismock/v9"
)

func TestGetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewReceiptCache(db, time.Hour)

	mock.ExpectGet("payment:receipt:rcpt_1").RedisNil()

	order, err := c.Get(context.Background(), "rcpt_1")
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if order != nil {
		t.Errorf("expected miss, got %+v", order)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewReceiptCache(db, time.Hour)

	mock.ExpectGet("payment:receipt:rcpt_1").SetVal(`{"id":"order_1","amount":2000,"currency":"INR","receipt":"rcpt_1"}`)

	order, err := c.Get(context.Background(), "rcpt_1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order == nil || order.ID != "order_1" || order.Amount != 2000 {
		t.Errorf("unexpected order %+v", order)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewReceiptCache(db, time.Hour)

	mock.ExpectGet("payment:receipt:rcpt_1").SetErr(errors.New("connection refused"))

	if _, err := c.Get(context.Background(), "rcpt_1"); err == nil {
		t.Error("expected error")
	}
}

func TestPut(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewReceiptCache(db, 24*time.Hour)

	order := model.PaymentOrder{ID: "order_1", Amount: 2000, Currency: "INR", Receipt: "rcpt_1"}
	raw, _ := json.Marshal(order)
	mock.ExpectSet("payment:receipt:rcpt_1", string(raw), 24*time.Hour).SetVal("OK")

	if err := c.Put(context.Background(), order); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

package model

import "time"

// Payment is the local record of one checkout attempt against the gateway.
type Payment struct {
	DTO
	OrderId     string     `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	PaymentId   string     `gorm:"size:64;index" json:"paymentId"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	AmountMinor int64      `gorm:"not null" json:"amountMinor"`
	Currency    string     `gorm:"size:3;not null" json:"currency"`
	Receipt     string     `gorm:"size:64;index" json:"receipt"`
	Status      string     `gorm:"size:20;not null;index" json:"status"` // created, paid, abandoned
	PaidAt      *time.Time `json:"paidAt"`
}

type CreatePaymentOrderInput struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency" validate:"omitempty,len=3,alpha"`
	Receipt  string   `json:"receipt" validate:"omitempty,max=40"`
}

type VerifyPaymentInput struct {
	OrderId   string `json:"orderId" validate:"required"`
	PaymentId string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type PaymentOrderResponse struct {
	Order     PaymentOrder `json:"order"`
	PublicKey string       `json:"publicKey"`
}

type PaymentVerification struct {
	Verified  bool   `json:"verified"`
	PaymentId string `json:"paymentId"`
	OrderId   string `json:"orderId"`
}

type PaymentDetails struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
	Method   string  `json:"method"`
}

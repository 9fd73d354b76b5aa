package database

import (
	"context"
	"time"

	"storefront/constants"
	"storefront/model"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return translate(r.db.WithContext(ctx).Create(payment).Error)
}

// MarkPaid records the verified pair, creating the row when the order was opened elsewhere.
func (r *PaymentRepository) MarkPaid(ctx context.Context, orderId, paymentId string, paidAt time.Time) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where(model.Payment{OrderId: orderId}).
		Assign(model.Payment{
			PaymentId: paymentId,
			Status:    constants.PAYMENT_PAID,
			PaidAt:    &paidAt,
		}).
		Attrs(model.Payment{Currency: constants.DEFAULT_CURRENCY}).
		FirstOrCreate(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (r *PaymentRepository) ExpireStale(ctx context.Context, createdBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("status = ? AND created_at < ?", constants.PAYMENT_CREATED, createdBefore).
		Update("status", constants.PAYMENT_ABANDONED)
	return res.RowsAffected, res.Error
}

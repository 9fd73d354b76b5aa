package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CouponValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_coupon_validations_total",
			Help: "Coupon validation requests by outcome",
		},
		[]string{"result"},
	)

	CouponRedemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_coupon_redemptions_total",
			Help: "Coupon redemption attempts by outcome",
		},
		[]string{"result"},
	)

	PaymentOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payment_orders_total",
			Help: "Gateway order creation attempts by outcome",
		},
		[]string{"result"},
	)

	PaymentVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_payment_verifications_total",
			Help: "Payment signature verifications by outcome",
		},
		[]string{"result"},
	)

	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "storefront_gateway_request_duration_seconds",
			Help: "Time spent waiting on the payment gateway",
		},
		[]string{"operation"},
	)
)

func Register() {
	prometheus.MustRegister(CouponValidations, CouponRedemptions, PaymentOrders, PaymentVerifications, GatewayLatency)
}

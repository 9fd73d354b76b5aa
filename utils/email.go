package utils

import (
	"bytes"
	"html/template"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// PaymentReceiptData is rendered into the payment receipt e-mail.
type PaymentReceiptData struct {
	OrderId   string
	PaymentId string
	Amount    string
	Currency  string
}

var paymentReceiptTmpl = template.Must(template.New("payment_receipt").Parse(`<html>
<body>
  <h2>Thank you for your order</h2>
  <p>We have received your payment.</p>
  <table>
    <tr><td>Order</td><td>{{.OrderId}}</td></tr>
    <tr><td>Payment</td><td>{{.PaymentId}}</td></tr>
    <tr><td>Amount</td><td>{{.Amount}} {{.Currency}}</td></tr>
  </table>
</body>
</html>`))

func RenderPaymentReceipt(data PaymentReceiptData) (string, error) {
	var body bytes.Buffer
	if err := paymentReceiptTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendPaymentReceipt sends the receipt asynchronously; failures are only logged.
func (m *Mailer) SendPaymentReceipt(to string, data PaymentReceiptData) {
	go func() {
		body, err := RenderPaymentReceipt(data)
		if err != nil {
			slog.Error("render payment receipt", slog.Any("error", err))
			return
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", "Payment received for order "+data.OrderId)
		msg.SetBody("text/html", body)

		if err := m.dialer.DialAndSend(msg); err != nil {
			slog.Error("send payment receipt", slog.String("orderId", data.OrderId), slog.Any("error", err))
		}
	}()
}

package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"text/template"

	"github.com/jordan-wright/email"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
)

// SMTPConfig carries the relay settings for the mail notifier
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	cfg  SMTPConfig
	tmpl *template.Template
}

func NewMailer(cfg SMTPConfig) (*Mailer, error) {
	tmpl, err := template.New("orderPlaced").Parse(orderPlacedTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mail template: %w", err)
	}
	return &Mailer{cfg: cfg, tmpl: tmpl}, nil
}

func (m *Mailer) OrderPlaced(ctx context.Context, order *domain.Order) error {
	body, err := m.renderOrderPlaced(order)
	if err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{order.Customer.Email, order.SellerEmail}
	e.Subject = fmt.Sprintf("PlantStore order confirmed: %s", order.PlantName)
	e.HTML = body

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send order mail: %w", err)
	}
	return nil
}

func (m *Mailer) renderOrderPlaced(order *domain.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, order); err != nil {
		return nil, fmt.Errorf("failed to render mail template: %w", err)
	}
	return buf.Bytes(), nil
}

const orderPlacedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Order Confirmed</title>
</head>
<body>
    <h2>Thanks for your order, {{.Customer.Name}}!</h2>
    <p>Your order for <strong>{{.PlantName}}</strong> has been placed.</p>
    <table>
        <tr><td>Quantity</td><td>{{.Quantity}}</td></tr>
        <tr><td>Total</td><td>${{printf "%.2f" .Price}}</td></tr>
        <tr><td>Shipping to</td><td>{{.Address}}</td></tr>
        <tr><td>Status</td><td>{{.Status}}</td></tr>
    </table>
    <p>The seller has been notified and will process your order shortly.</p>
</body>
</html>
`

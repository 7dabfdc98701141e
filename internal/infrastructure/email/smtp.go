package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/promptpilot/promptpilot/internal/application/payment/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/config"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPReceiptSender mails Pro activation receipts.
type SMTPReceiptSender struct {
	config config.EmailConfig
	dialer dialer
}

func NewSMTPReceiptSender(cfg config.EmailConfig) *SMTPReceiptSender {
	return &SMTPReceiptSender{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
	}
}

func (s *SMTPReceiptSender) SendReceipt(ctx context.Context, r usecases.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject := fmt.Sprintf("Your PromptPilot %s receipt", r.Plan)
	htmlBody, plainBody := receiptBodies(r)
	return s.sendEmail(r.Email, subject, htmlBody, plainBody)
}

func receiptBodies(r usecases.Receipt) (string, string) {
	name := r.Name
	if name == "" {
		name = "there"
	}
	validTill := "-"
	if r.ValidTill != nil {
		validTill = biztime.FormatDate(biztime.DateOf(*r.ValidTill))
	}

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Thanks for upgrading, %s!</h2>
			<p>Your %s plan is now active with unlimited prompt optimizations.</p>
			<table>
				<tr><td>Order</td><td>%s</td></tr>
				<tr><td>Payment</td><td>%s</td></tr>
				<tr><td>Amount</td><td>%s</td></tr>
				<tr><td>Valid till</td><td>%s</td></tr>
			</table>
		</body>
		</html>
	`, html.EscapeString(name), html.EscapeString(r.Plan), html.EscapeString(r.OrderID),
		html.EscapeString(r.PaymentID), html.EscapeString(r.Amount), validTill)

	plainBody := fmt.Sprintf(`
Thanks for upgrading, %s!

Your %s plan is now active with unlimited prompt optimizations.

Order: %s
Payment: %s
Amount: %s
Valid till: %s
	`, name, r.Plan, r.OrderID, r.PaymentID, r.Amount, validTill)

	return htmlBody, plainBody
}

func (s *SMTPReceiptSender) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

package payment

import (
	"encoding/json"
	"fmt"
)

// Provider event names.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventOrderPaid       = "order.paid"
)

// WebhookEvent is a provider notification. The set of variants is closed:
// PaymentCaptured, PaymentFailed, OrderPaid and Unrecognized.
type WebhookEvent interface {
	EventName() string
	webhookEvent()
}

type PaymentCaptured struct {
	OrderID   string
	PaymentID string
	Method    string
	Amount    int64
	Currency  string
	// UserID comes from the order notes and may be empty.
	UserID string
	Email  string
}

type PaymentFailed struct {
	OrderID   string
	PaymentID string
	Reason    string
	UserID    string
}

type OrderPaid struct {
	OrderID   string
	PaymentID string
}

// Unrecognized covers unknown event names and payloads that could not be
// decoded. It is logged and acknowledged.
type Unrecognized struct {
	Name   string
	Reason string
}

func (PaymentCaptured) EventName() string { return EventPaymentCaptured }
func (PaymentFailed) EventName() string   { return EventPaymentFailed }
func (OrderPaid) EventName() string       { return EventOrderPaid }
func (u Unrecognized) EventName() string  { return u.Name }

func (PaymentCaptured) webhookEvent() {}
func (PaymentFailed) webhookEvent()   {}
func (OrderPaid) webhookEvent()       {}
func (Unrecognized) webhookEvent()    {}

type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order_id"`
	Method           string          `json:"method"`
	Amount           int64           `json:"amount"`
	Currency         string          `json:"currency"`
	Email            string          `json:"email"`
	ErrorCode        string          `json:"error_code"`
	ErrorDescription string          `json:"error_description"`
	Notes            json.RawMessage `json:"notes"`
}

// noteString reads a string note. The provider sends an empty array instead
// of an object when no notes were set.
func (e paymentEntity) noteString(key string) string {
	var notes map[string]any
	if len(e.Notes) == 0 || json.Unmarshal(e.Notes, &notes) != nil {
		return ""
	}
	if s, ok := notes[key].(string); ok {
		return s
	}
	return ""
}

// ParseWebhookEvent decodes a verified webhook body. It never fails: anything
// that cannot be mapped to a known variant becomes Unrecognized.
func ParseWebhookEvent(body []byte) WebhookEvent {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Unrecognized{Name: "", Reason: fmt.Sprintf("malformed payload: %v", err)}
	}

	switch env.Event {
	case EventPaymentCaptured:
		if env.Payload.Payment == nil || env.Payload.Payment.Entity.OrderID == "" || env.Payload.Payment.Entity.ID == "" {
			return Unrecognized{Name: env.Event, Reason: "payment entity missing"}
		}
		p := env.Payload.Payment.Entity
		return PaymentCaptured{
			OrderID:   p.OrderID,
			PaymentID: p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Currency:  p.Currency,
			UserID:    p.noteString("userId"),
			Email:     p.Email,
		}
	case EventPaymentFailed:
		if env.Payload.Payment == nil || env.Payload.Payment.Entity.OrderID == "" {
			return Unrecognized{Name: env.Event, Reason: "payment entity missing"}
		}
		p := env.Payload.Payment.Entity
		reason := p.ErrorDescription
		if reason == "" {
			reason = p.ErrorCode
		}
		return PaymentFailed{
			OrderID:   p.OrderID,
			PaymentID: p.ID,
			Reason:    reason,
			UserID:    p.noteString("userId"),
		}
	case EventOrderPaid:
		ev := OrderPaid{}
		if env.Payload.Order != nil {
			ev.OrderID = env.Payload.Order.Entity.ID
		}
		if env.Payload.Payment != nil {
			ev.PaymentID = env.Payload.Payment.Entity.ID
			if ev.OrderID == "" {
				ev.OrderID = env.Payload.Payment.Entity.OrderID
			}
		}
		return ev
	default:
		return Unrecognized{Name: env.Event, Reason: "unsupported event"}
	}
}

package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/promptpilot/promptpilot/internal/application/payment/paymentgateway"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// orderCreator is the slice of the Razorpay SDK the gateway uses.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway creates checkout orders through the Razorpay Orders API.
type RazorpayGateway struct {
	orders orderCreator
	logger logger.Interface
}

func NewRazorpayGateway(keyID, keySecret string, logger logger.Interface) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &RazorpayGateway{
		orders: client.Order,
		logger: logger,
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req paymentgateway.CreateOrderRequest) (*paymentgateway.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}

	body, err := g.orders.Create(data, nil)
	if err != nil {
		g.logger.Errorw("razorpay order creation failed", "receipt", req.Receipt, "error", err)
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	order, err := orderFromResponse(body)
	if err != nil {
		return nil, err
	}
	g.logger.Infow("razorpay order created", "order_id", order.ID, "receipt", order.Receipt)
	return order, nil
}

func orderFromResponse(body map[string]interface{}) (*paymentgateway.Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay response missing order id")
	}

	order := &paymentgateway.Order{ID: id}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	}
	return order, nil
}

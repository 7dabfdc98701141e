package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/domain/payment"
	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
	"github.com/promptpilot/promptpilot/internal/infrastructure/database/testdb"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

func newPendingPayment(t *testing.T, orderID, userID string, at time.Time) *payment.Payment {
	t.Helper()
	amount, err := vo.FromMajor(499, "INR")
	require.NoError(t, err)
	p, err := payment.NewPayment(orderID, userID, "Pro", amount, "rcpt_1", at)
	require.NoError(t, err)
	return p
}

func TestPaymentRepository_UpsertAndGet(t *testing.T) {
	repo := NewPaymentRepository(testdb.Open(t))
	ctx := context.Background()

	p := newPendingPayment(t, "order_1", "user-1", testNow)
	p.SetMetadata("email", "a@example.com")
	require.NoError(t, repo.Upsert(ctx, p))
	assert.NotZero(t, p.ID())

	_, err := p.MarkCompleted("pay_1", "upi", testNow.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetByOrderID(ctx, "order_1")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), got.ID())
	assert.Equal(t, vo.PaymentStatusCompleted, got.Status())
	assert.Equal(t, "pay_1", got.PaymentID())
	assert.Equal(t, "upi", got.Method())
	assert.Equal(t, int64(49900), got.Amount().AmountMinor())
	assert.Equal(t, "a@example.com", got.Metadata()["email"])
	assert.True(t, got.IsCompletedWith("pay_1"))
}

func TestPaymentRepository_GetByOrderID_NotFound(t *testing.T) {
	repo := NewPaymentRepository(testdb.Open(t))

	_, err := repo.GetByOrderID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestPaymentRepository_ListByUserID(t *testing.T) {
	repo := NewPaymentRepository(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newPendingPayment(t, "order_a", "user-1", testNow)))
	require.NoError(t, repo.Upsert(ctx, newPendingPayment(t, "order_b", "user-1", testNow.Add(time.Hour))))
	require.NoError(t, repo.Upsert(ctx, newPendingPayment(t, "order_c", "user-2", testNow)))

	list, err := repo.ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "order_b", list[0].OrderID())
	assert.Equal(t, "order_a", list[1].OrderID())

	empty, err := repo.ListByUserID(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newPendingPayment(t *testing.T) *Payment {
	t.Helper()
	amount, err := vo.FromMajor(499, "INR")
	require.NoError(t, err)
	p, err := NewPayment("order_1", "user-1", "Pro", amount, "rcpt_12345678", now)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newPendingPayment(t)

	assert.Equal(t, vo.PaymentStatusPending, p.Status())
	assert.Equal(t, int64(49900), p.Amount().AmountMinor())
	assert.Empty(t, p.PaymentID())
	assert.Equal(t, 1, p.Version())
}

func TestNewPayment_Validation(t *testing.T) {
	amount, _ := vo.FromMajor(499, "INR")
	zero, _ := vo.NewMoney(0, "INR")

	_, err := NewPayment("", "user-1", "Pro", amount, "r", now)
	assert.ErrorIs(t, err, ErrOrderIDRequired)
	_, err = NewPayment("order_1", "", "Pro", amount, "r", now)
	assert.ErrorIs(t, err, ErrUserIDRequired)
	_, err = NewPayment("order_1", "user-1", "Pro", zero, "r", now)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestMarkCompleted(t *testing.T) {
	p := newPendingPayment(t)

	changed, err := p.MarkCompleted("pay_1", "upi", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, p.IsCompletedWith("pay_1"))
	assert.Equal(t, "upi", p.Method())
	require.NotNil(t, p.CapturedAt())

	version := p.Version()
	changed, err = p.MarkCompleted("pay_1", "upi", now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, version, p.Version())

	_, err = p.MarkCompleted("pay_2", "card", now)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestMarkFailed_ThenRetrySucceeds(t *testing.T) {
	p := newPendingPayment(t)

	assert.True(t, p.MarkFailed("pay_1", "declined", now))
	assert.Equal(t, vo.PaymentStatusFailed, p.Status())
	assert.False(t, p.MarkFailed("pay_1", "declined", now), "same failure twice")

	changed, err := p.MarkCompleted("pay_2", "card", now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, p.FailureReason())
}

func TestMarkFailed_IgnoredWhenCompleted(t *testing.T) {
	p := newPendingPayment(t)
	_, err := p.MarkCompleted("pay_1", "upi", now)
	require.NoError(t, err)

	assert.False(t, p.MarkFailed("pay_1", "late failure", now))
	assert.Equal(t, vo.PaymentStatusCompleted, p.Status())
}

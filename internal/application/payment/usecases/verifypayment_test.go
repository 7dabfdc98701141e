package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

func TestVerifyPaymentUseCase_UpgradesToPro(t *testing.T) {
	f := newFixture(t, Settings{})
	orderID := f.pendingOrder(t)

	result, err := f.verify.Execute(context.Background(), VerifyPaymentCommand{
		UserID:    userID,
		OrderID:   orderID,
		PaymentID: "pay_1",
		Signature: signPayment(orderID, "pay_1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pro", result.Plan)
	require.NotNil(t, result.StartDate)
	require.NotNil(t, result.EndDate)
	assert.Equal(t, "2026-03-02", *result.StartDate)
	assert.Equal(t, "2026-04-01", *result.EndDate)

	e := f.stored(t)
	assert.True(t, e.IsUnlimited())
	assert.Equal(t, "pay_1", e.PaymentID())

	p, err := f.payments.GetByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentStatusCompleted, p.Status())

	select {
	case r := <-f.receipts.sent:
		assert.Equal(t, "user@example.com", r.Email)
		assert.Equal(t, orderID, r.OrderID)
		assert.Equal(t, "Pro", r.Plan)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was not sent")
	}
}

func TestVerifyPaymentUseCase_InvalidSignatureChangesNothing(t *testing.T) {
	f := newFixture(t, Settings{})
	orderID := f.pendingOrder(t)
	before := f.stored(t)

	_, err := f.verify.Execute(context.Background(), VerifyPaymentCommand{
		UserID:    userID,
		OrderID:   orderID,
		PaymentID: "pay_1",
		Signature: signPayment(orderID, "pay_other"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidSignatureError(err))
	assert.Equal(t, "payment verification failed", apperrors.GetAppError(err).Message)

	after := f.stored(t)
	assert.Equal(t, before.Version(), after.Version())
	assert.Equal(t, entitlement.StatusPending, after.Status())
}

func TestVerifyPaymentUseCase_MissingFields(t *testing.T) {
	f := newFixture(t, Settings{})

	_, err := f.verify.Execute(context.Background(), VerifyPaymentCommand{UserID: userID, OrderID: "order_1"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestVerifyPaymentUseCase_OrderMismatch(t *testing.T) {
	f := newFixture(t, Settings{})
	f.pendingOrder(t)
	before := f.stored(t)

	_, err := f.verify.Execute(context.Background(), VerifyPaymentCommand{
		UserID:    userID,
		OrderID:   "order_forged",
		PaymentID: "pay_1",
		Signature: signPayment("order_forged", "pay_1"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsOrderMismatchError(err))
	assert.Equal(t, 404, apperrors.GetAppError(err).Code)
	assert.Equal(t, before.Version(), f.stored(t).Version())
	assert.False(t, f.stored(t).IsUnlimited())
}

func TestVerifyPaymentUseCase_OtherUsersOrder(t *testing.T) {
	f := newFixture(t, Settings{})
	orderID := f.pendingOrder(t)
	_, _, err := f.entitlements.GetOrCreate(context.Background(), "user-2", time.Now())
	require.NoError(t, err)

	_, err = f.verify.Execute(context.Background(), VerifyPaymentCommand{
		UserID:    "user-2",
		OrderID:   orderID,
		PaymentID: "pay_1",
		Signature: signPayment(orderID, "pay_1"),
	})
	assert.True(t, apperrors.IsOrderMismatchError(err))
	assert.False(t, f.entitlements.Stored("user-2").IsUnlimited())
}

func TestVerifyPaymentUseCase_ReplayIsNoop(t *testing.T) {
	f := newFixture(t, Settings{})
	orderID := f.pendingOrder(t)
	cmd := VerifyPaymentCommand{
		UserID:    userID,
		OrderID:   orderID,
		PaymentID: "pay_1",
		Signature: signPayment(orderID, "pay_1"),
	}

	_, err := f.verify.Execute(context.Background(), cmd)
	require.NoError(t, err)
	version := f.stored(t).Version()
	casCalls := f.entitlements.CASCalls()

	result, err := f.verify.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "Pro", result.Plan)
	assert.Equal(t, version, f.stored(t).Version())
	assert.Equal(t, casCalls, f.entitlements.CASCalls())
}

func TestVerifyPaymentUseCase_ConflictRetry(t *testing.T) {
	f := newFixture(t, Settings{})
	orderID := f.pendingOrder(t)
	f.entitlements.ForceConflicts(2)

	_, err := f.verify.Execute(context.Background(), VerifyPaymentCommand{
		UserID:    userID,
		OrderID:   orderID,
		PaymentID: "pay_1",
		Signature: signPayment(orderID, "pay_1"),
	})
	require.NoError(t, err)
	assert.True(t, f.stored(t).IsUnlimited())
}

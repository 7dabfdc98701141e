package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

func TestGetUsageUseCase_NewUser(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	uc := NewGetUsageUseCase(repo, testutil.NewRecordingLogger())
	uc.SetClock(testutil.FixedClock(testutil.Day(10)))

	usage, err := uc.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, entitlement.FreeTokenCap, usage.Tokens.Current)
	assert.Equal(t, 7, usage.Tokens.Max)
	assert.False(t, usage.Tokens.Unlimited)
	assert.Equal(t, "Free", usage.Plan)
	assert.True(t, usage.CanMakeRequest)
}

func TestGetUsageUseCase_PersistsRefill(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	for range entitlement.FreeTokenCap {
		_, err := newConsumeUseCase(repo, 10).Execute(context.Background(), alice)
		require.NoError(t, err)
	}

	sameDay := NewGetUsageUseCase(repo, testutil.NewRecordingLogger())
	sameDay.SetClock(testutil.FixedClock(testutil.Day(10)))
	usage, err := sameDay.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Tokens.Current)
	assert.False(t, usage.CanMakeRequest)

	// several days later the bucket has gained exactly one token
	later := NewGetUsageUseCase(repo, testutil.NewRecordingLogger())
	later.SetClock(testutil.FixedClock(testutil.Day(14)))
	usage, err = later.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Tokens.Current)
	assert.True(t, usage.CanMakeRequest)
	assert.Equal(t, 1, repo.Stored(alice.UserID).Tokens())

	usage, err = later.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, usage.Tokens.Current, "a second read on the same day must not refill again")
}

func TestGetUsageUseCase_ProReportsUnlimited(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	e, err := entitlement.NewEntitlement(alice.UserID, testutil.Day(1))
	require.NoError(t, err)
	require.NoError(t, e.BeginOrder("order_1", 499, testutil.Day(1)))
	_, err = e.ActivatePro("order_1", "pay_1", testutil.Day(1), entitlement.DefaultProPeriod)
	require.NoError(t, err)
	repo.Put(e)

	uc := NewGetUsageUseCase(repo, testutil.NewRecordingLogger())
	usage, err := uc.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, -1, usage.Tokens.Max)
	assert.True(t, usage.Tokens.Unlimited)
	assert.Equal(t, "Pro", usage.Plan)
	assert.True(t, usage.CanMakeRequest)
}

func TestGetUsageUseCase_StoreFailure(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	repo.SetGetError(apperrors.NewStoreUnavailableError("failed to load entitlement"))
	log := testutil.NewRecordingLogger()

	_, err := NewGetUsageUseCase(repo, log).Execute(context.Background(), alice)
	assert.True(t, apperrors.IsStoreUnavailableError(err))
	assert.True(t, log.HasMessage("error", "failed to load usage"))
}

func TestGetUserStatusUseCase(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	uc := NewGetUserStatusUseCase(repo, testutil.NewRecordingLogger())
	uc.SetClock(testutil.FixedClock(testutil.Day(10)))

	first, err := uc.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, first.Authenticated)
	assert.True(t, first.CreatedSubscription)
	assert.Equal(t, "alice", first.User.Name)
	assert.Equal(t, "Free", first.Subscription.Plan)
	assert.Equal(t, "active", first.Subscription.Status)
	assert.Equal(t, "none", first.Subscription.PaymentStatus)
	assert.Nil(t, first.Subscription.EndDate)

	second, err := uc.Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.False(t, second.CreatedSubscription)
}

func TestGetUserStatusUseCase_ProDates(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	e, err := entitlement.NewEntitlement(alice.UserID, testutil.Day(1))
	require.NoError(t, err)
	require.NoError(t, e.BeginOrder("order_1", 499, testutil.Day(1)))
	_, err = e.ActivatePro("order_1", "pay_1", testutil.Day(1), entitlement.DefaultProPeriod)
	require.NoError(t, err)
	repo.Put(e)

	uc := NewGetUserStatusUseCase(repo, testutil.NewRecordingLogger())
	uc.SetClock(testutil.FixedClock(testutil.Day(10)))

	status, err := uc.Execute(context.Background(), alice)
	require.NoError(t, err)
	require.NotNil(t, status.Subscription.StartDate)
	require.NotNil(t, status.Subscription.EndDate)
	assert.Equal(t, "2026-03-01", *status.Subscription.StartDate)
	assert.Equal(t, "2026-03-31", *status.Subscription.EndDate)
	assert.True(t, status.Subscription.IsActive)
	assert.Equal(t, "completed", status.Subscription.PaymentStatus)
	assert.Equal(t, int64(499), status.Subscription.AmountPaid)
}

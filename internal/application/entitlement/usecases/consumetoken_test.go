package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/infrastructure/database/testdb"
	"github.com/promptpilot/promptpilot/internal/infrastructure/repository"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

var alice = auth.Context{UserID: "user-alice", Email: "alice@example.com"}

func newConsumeUseCase(repo entitlement.Repository, day int) *ConsumeTokenUseCase {
	uc := NewConsumeTokenUseCase(repo, testutil.NewRecordingLogger())
	uc.SetClock(testutil.FixedClock(testutil.Day(day)))
	return uc
}

func TestConsumeTokenUseCase_NewUserSpendsBonus(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	uc := newConsumeUseCase(repo, 10)

	for want := entitlement.FreeTokenCap - 1; want >= 0; want-- {
		result, err := uc.Execute(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, want, result.Remaining())
		assert.True(t, result.Decision.Allowed)
	}

	_, err := uc.Execute(context.Background(), alice)
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
	assert.Equal(t, 0, repo.Stored(alice.UserID).Tokens())
}

func TestConsumeTokenUseCase_RefillsNextDay(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	for range entitlement.FreeTokenCap {
		_, err := newConsumeUseCase(repo, 10).Execute(context.Background(), alice)
		require.NoError(t, err)
	}

	result, err := newConsumeUseCase(repo, 11).Execute(context.Background(), alice)
	require.NoError(t, err)
	assert.True(t, result.Decision.Refilled)
	assert.Equal(t, 0, result.Remaining())

	_, err = newConsumeUseCase(repo, 11).Execute(context.Background(), alice)
	assert.True(t, apperrors.IsQuotaExceededError(err))
}

func TestConsumeTokenUseCase_ProIsUnlimited(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	e, err := entitlement.NewEntitlement(alice.UserID, testutil.Day(1))
	require.NoError(t, err)
	require.NoError(t, e.BeginOrder("order_1", 499, testutil.Day(1)))
	_, err = e.ActivatePro("order_1", "pay_1", testutil.Day(1), entitlement.DefaultProPeriod)
	require.NoError(t, err)
	repo.Put(e)

	uc := newConsumeUseCase(repo, 10)
	for range 20 {
		result, err := uc.Execute(context.Background(), alice)
		require.NoError(t, err)
		assert.True(t, result.Decision.Unlimited)
	}
	assert.Equal(t, e.Tokens(), repo.Stored(alice.UserID).Tokens())
	assert.Zero(t, repo.CASCalls())
}

func TestConsumeTokenUseCase_RetriesConflicts(t *testing.T) {
	tests := []struct {
		name      string
		conflicts int
		wantErr   bool
	}{
		{"recovers after conflicts", 4, false},
		{"gives up after five attempts", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockEntitlementRepository()
			uc := newConsumeUseCase(repo, 10)
			_, _, err := repo.GetOrCreate(context.Background(), alice.UserID, testutil.Day(10))
			require.NoError(t, err)
			repo.ForceConflicts(tt.conflicts)

			_, err = uc.Execute(context.Background(), alice)
			if tt.wantErr {
				assert.True(t, apperrors.IsConflictError(err))
				assert.Equal(t, entitlement.FreeTokenCap, repo.Stored(alice.UserID).Tokens())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entitlement.FreeTokenCap-1, repo.Stored(alice.UserID).Tokens())
		})
	}
}

func TestConsumeTokenUseCase_StoreFailure(t *testing.T) {
	repo := testutil.NewMockEntitlementRepository()
	repo.SetGetError(apperrors.NewStoreUnavailableError("failed to load entitlement"))

	_, err := newConsumeUseCase(repo, 10).Execute(context.Background(), alice)
	assert.True(t, apperrors.IsStoreUnavailableError(err))
}

func TestConsumeTokenUseCase_RequiresIdentity(t *testing.T) {
	_, err := newConsumeUseCase(testutil.NewMockEntitlementRepository(), 10).Execute(context.Background(), auth.Context{})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestConsumeTokenUseCase_ConcurrentLastToken(t *testing.T) {
	gdb := testdb.Open(t)
	repo := repository.NewEntitlementRepository(gdb, logger.NewLogger())
	ctx := context.Background()

	seed := newConsumeUseCase(repo, 10)
	for range entitlement.FreeTokenCap - 1 {
		_, err := seed.Execute(ctx, alice)
		require.NoError(t, err)
	}

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
		denied  int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := newConsumeUseCase(repo, 10).Execute(ctx, alice)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				allowed++
			case apperrors.IsQuotaExceededError(err):
				denied++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, allowed)
	assert.Equal(t, workers-1, denied)

	stored, err := repo.GetByUserID(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Tokens())
}

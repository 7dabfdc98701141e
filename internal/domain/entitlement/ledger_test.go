package entitlement

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/shared/biztime"
)

func TestConsume_Free(t *testing.T) {
	tests := []struct {
		name         string
		tokens       int
		lastRefresh  time.Time
		now          time.Time
		wantErr      error
		wantTokens   int
		wantRefilled bool
	}{
		{"same day with tokens", 3, day(1), day(1), nil, 2, false},
		{"same day last token", 1, day(1), day(1), nil, 0, false},
		{"same day empty", 0, day(1), day(1), ErrNoTokensAvailable, 0, false},
		{"next day empty refills then consumes", 0, day(1), day(2), nil, 0, true},
		{"next day full clamps at cap", 7, day(1), day(2), nil, 6, true},
		{"several days later still one refill", 2, day(1), day(9), nil, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := newFree(t, tt.tokens, tt.lastRefresh)

			next, decision, err := Consume(current, tt.now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, decision.Allowed)
				assert.False(t, decision.Changed)
			} else {
				require.NoError(t, err)
				assert.True(t, decision.Allowed)
				assert.True(t, decision.Changed)
			}
			assert.Equal(t, tt.wantTokens, next.Tokens())
			assert.Equal(t, tt.wantRefilled, decision.Refilled)
			assert.Equal(t, tt.tokens, current.Tokens(), "input must not be modified")
		})
	}
}

func TestConsume_CalendarDayBoundary(t *testing.T) {
	// 23:59 and 00:01 in Asia/Kolkata
	lateNight := time.Date(2026, 3, 1, 18, 29, 0, 0, time.UTC)
	justAfterMidnight := time.Date(2026, 3, 1, 18, 31, 0, 0, time.UTC)

	current := newFree(t, 0, lateNight)

	_, _, err := Consume(current, lateNight)
	assert.ErrorIs(t, err, ErrNoTokensAvailable)

	next, decision, err := Consume(current, justAfterMidnight)
	require.NoError(t, err)
	assert.True(t, decision.Refilled)
	assert.Equal(t, 0, next.Tokens())
	assert.Equal(t, "2026-03-02", next.LastRefresh().Format("2006-01-02"))
}

func TestConsume_RefillAtMostOncePerDay(t *testing.T) {
	current := newFree(t, 0, day(1))

	first, d1, err := Consume(current, day(2))
	require.NoError(t, err)
	assert.True(t, d1.Refilled)

	_, d2, err := Consume(first, day(2).Add(3*time.Hour))
	assert.ErrorIs(t, err, ErrNoTokensAvailable)
	assert.False(t, d2.Refilled)
}

func TestConsume_ProNeverDecrements(t *testing.T) {
	for _, tokens := range []int{0, 1, 7} {
		current := newPro(t, tokens)

		next, decision, err := Consume(current, day(20))

		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.True(t, decision.Unlimited)
		assert.False(t, decision.Changed)
		assert.Equal(t, tokens, next.Tokens())
		assert.Equal(t, current.LastRefresh(), next.LastRefresh())
	}
}

func TestConsume_ProPendingIsMeteredLikeFree(t *testing.T) {
	current := newPro(t, 0)
	current.status = StatusPending

	_, _, err := Consume(current, day(1))
	assert.ErrorIs(t, err, ErrNoTokensAvailable)
}

func TestRefresh(t *testing.T) {
	current := newFree(t, 4, day(1))

	same, changed := Refresh(current, day(1))
	assert.False(t, changed)
	assert.Equal(t, 4, same.Tokens())

	next, changed := Refresh(current, day(2))
	assert.True(t, changed)
	assert.Equal(t, 5, next.Tokens())
	assert.True(t, current.CanConsume(day(1)))
	assert.False(t, newFree(t, 0, day(1)).CanConsume(day(1)))
	assert.True(t, newFree(t, 0, day(1)).CanConsume(day(2)))
}

func TestConsume_TokensStayWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		e := newFree(t, rng.Intn(FreeTokenCap+1), day(1))
		now := day(1)

		for step := 0; step < 60; step++ {
			now = now.Add(time.Duration(rng.Intn(20)) * time.Hour)

			var next *Entitlement
			if rng.Intn(4) == 0 {
				next, _ = Refresh(e, now)
			} else {
				var err error
				next, _, err = Consume(e, now)
				if err != nil {
					require.ErrorIs(t, err, ErrNoTokensAvailable)
					require.Equal(t, 0, e.Tokens())
				}
			}

			require.GreaterOrEqual(t, next.Tokens(), 0)
			require.LessOrEqual(t, next.Tokens(), FreeTokenCap)
			e = next
		}
	}
}

// A brand-new user spends the bonus, is denied for the rest of the day and
// gets exactly one token back after the day rolls over.
func TestConsume_NewUserScenario(t *testing.T) {
	e, err := NewEntitlement("user-1", day(1))
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		e, _, err = Consume(e, day(1))
		require.NoError(t, err, "consumption %d", i+1)
	}
	assert.Equal(t, 0, e.Tokens())

	_, _, err = Consume(e, day(1))
	assert.ErrorIs(t, err, ErrNoTokensAvailable)

	refreshed, _ := Refresh(e, day(2))
	assert.Equal(t, 1, refreshed.Tokens())

	e, _, err = Consume(e, day(2))
	require.NoError(t, err)
	assert.Equal(t, 0, e.Tokens())
}

func TestConsume_ReloadedSameDayWestOfUTC(t *testing.T) {
	require.NoError(t, biztime.Init("America/New_York"))
	t.Cleanup(func() { _ = biztime.Init(biztime.DefaultTimezone) })

	// 10:00 in New York on 10 March.
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	fresh, err := NewEntitlement("user-ny", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", biztime.FormatDate(fresh.LastRefresh()))

	reload := func(e *Entitlement, tokens int) *Entitlement {
		out, err := ReconstructEntitlement(ReconstructParams{
			UserID:       e.UserID(),
			Plan:         e.Plan(),
			Status:       e.Status(),
			Tokens:       tokens,
			LastRefresh:  e.LastRefresh(),
			BonusGranted: e.BonusGranted(),
			Version:      e.Version(),
		})
		require.NoError(t, err)
		return out
	}

	current := reload(fresh, 3)
	assert.Equal(t, fresh.LastRefresh(), current.LastRefresh())

	for _, want := range []int{2, 1} {
		next, decision, err := Consume(current, now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, decision.Refilled)
		assert.Equal(t, want, next.Tokens())
		current = reload(next, next.Tokens())
	}

	// 23:30 in New York is already the next UTC day but the same business day.
	_, decision, err := Consume(current, time.Date(2026, 3, 11, 3, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, decision.Refilled)

	_, decision, err = Consume(current, time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, decision.Refilled)
}

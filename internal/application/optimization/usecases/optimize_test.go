package usecases

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entitlementusecases "github.com/promptpilot/promptpilot/internal/application/entitlement/usecases"
	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

var carol = auth.Context{UserID: "user-carol", Email: "carol@example.com"}

type fakeOptimizer struct {
	outcome Outcome
	calls   atomic.Int32
	lastRaw string
}

func (f *fakeOptimizer) Name() string { return "fake" }

func (f *fakeOptimizer) Optimize(ctx context.Context, raw string, tone prompt.Tone) Outcome {
	f.calls.Add(1)
	f.lastRaw = raw
	return f.outcome
}

type harness struct {
	entitlements *testutil.MockEntitlementRepository
	prompts      *testutil.MockPromptRepository
	log          *testutil.RecordingLogger
	uc           *OptimizePromptUseCase
}

func newHarness(optimizer Optimizer) *harness {
	h := &harness{
		entitlements: testutil.NewMockEntitlementRepository(),
		prompts:      testutil.NewMockPromptRepository(),
		log:          testutil.NewRecordingLogger(),
	}
	consumer := entitlementusecases.NewConsumeTokenUseCase(h.entitlements, h.log)
	consumer.SetClock(testutil.FixedClock(testutil.Day(3)))
	h.uc = NewOptimizePromptUseCase(consumer, optimizer, h.prompts, h.log)
	h.uc.SetClock(testutil.FixedClock(testutil.Day(3)))
	return h
}

func TestOptimizePromptUseCase_TemplateWhenUnconfigured(t *testing.T) {
	h := newHarness(nil)

	result, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "write a haiku about rain", Tone: "formal"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, prompt.ApplyTemplate("write a haiku about rain", prompt.ToneFormal), result.OptimizedPrompt)
	assert.Equal(t, prompt.ProviderTemplate, result.Provider)
	assert.Equal(t, 1, result.TokensUsed)
	assert.Equal(t, entitlement.FreeTokenCap-1, result.RemainingTokens)
	assert.False(t, result.IsUnlimited)

	records := h.prompts.Records()
	require.Len(t, records, 1)
	assert.Equal(t, carol.UserID, records[0].UserID)
	assert.Equal(t, prompt.ToneFormal, records[0].Tone)
	assert.Equal(t, prompt.ProviderTemplate, records[0].Provider)
}

func TestOptimizePromptUseCase_UsesProvider(t *testing.T) {
	opt := &fakeOptimizer{outcome: Succeeded("a better prompt")}
	h := newHarness(opt)

	result, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "make it better"})
	require.NoError(t, err)
	assert.Equal(t, "a better prompt", result.OptimizedPrompt)
	assert.Equal(t, "fake", result.Provider)
	assert.Equal(t, prompt.ToneCasual, h.prompts.Records()[0].Tone)
}

func TestOptimizePromptUseCase_FallsBackOnProviderFailure(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
	}{
		{"provider error", Failed(errors.New("upstream timeout"))},
		{"empty text", Succeeded("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(&fakeOptimizer{outcome: tt.outcome})

			result, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "summarise this", Tone: "detailed"})
			require.NoError(t, err)
			assert.Equal(t, prompt.ProviderTemplate, result.Provider)
			assert.Equal(t, prompt.ApplyTemplate("summarise this", prompt.ToneDetailed), result.OptimizedPrompt)
			assert.True(t, h.log.HasMessage("warn", "optimizer failed, using template"))
		})
	}
}

func TestOptimizePromptUseCase_QuotaExceededSkipsProvider(t *testing.T) {
	opt := &fakeOptimizer{outcome: Succeeded("never returned")}
	h := newHarness(opt)

	e, err := entitlement.NewEntitlement(carol.UserID, testutil.Day(3))
	require.NoError(t, err)
	h.entitlements.Put(e)
	for range entitlement.FreeTokenCap {
		_, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "hi"})
		require.NoError(t, err)
	}
	calls := opt.calls.Load()

	_, err = h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "hi"})
	require.Error(t, err)
	assert.True(t, apperrors.IsQuotaExceededError(err))
	assert.Equal(t, 429, apperrors.GetAppError(err).Code)
	assert.Equal(t, calls, opt.calls.Load())
	assert.Len(t, h.prompts.Records(), entitlement.FreeTokenCap)
}

func TestOptimizePromptUseCase_Unlimited(t *testing.T) {
	h := newHarness(nil)
	e, err := entitlement.NewEntitlement(carol.UserID, testutil.Day(1))
	require.NoError(t, err)
	require.NoError(t, e.BeginOrder("order_1", 499, testutil.Day(1)))
	_, err = e.ActivatePro("order_1", "pay_1", testutil.Day(1), entitlement.DefaultProPeriod)
	require.NoError(t, err)
	h.entitlements.Put(e)

	result, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "hello"})
	require.NoError(t, err)
	assert.True(t, result.IsUnlimited)
	assert.Equal(t, -1, result.RemainingTokens)
}

func TestOptimizePromptUseCase_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  OptimizeCommand
		want string
	}{
		{"empty", OptimizeCommand{RawPrompt: "   "}, "Prompt is required"},
		{"too long", OptimizeCommand{RawPrompt: strings.Repeat("é", prompt.MaxRawLength+1)}, "Prompt is too long"},
		{"bad tone", OptimizeCommand{RawPrompt: "hi", Tone: "sarcastic"}, "Invalid tone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(nil)

			_, err := h.uc.Execute(context.Background(), carol, tt.cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Equal(t, tt.want, apperrors.GetAppError(err).Message)
			assert.Nil(t, h.entitlements.Stored(carol.UserID), "no token may be spent on invalid input")
		})
	}
}

func TestOptimizePromptUseCase_MaxLengthAccepted(t *testing.T) {
	h := newHarness(nil)

	_, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: strings.Repeat("é", prompt.MaxRawLength)})
	assert.NoError(t, err)
}

func TestOptimizePromptUseCase_KeepsPromptVerbatim(t *testing.T) {
	tests := []string{
		"Explain Java generics like Map<String, List<Integer>>",
		"Fix this JSX: <Button onClick={go}>Save</Button>",
		"<script>alert(1)</script>",
		"a < b && c &amp; d",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			opt := &fakeOptimizer{outcome: Succeeded("optimized")}
			h := newHarness(opt)

			_, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "  " + raw + "\n"})
			require.NoError(t, err)
			assert.Equal(t, raw, opt.lastRaw)
			require.Len(t, h.prompts.Records(), 1)
			assert.Equal(t, raw, h.prompts.Records()[0].Raw)
		})
	}
}

func TestOptimizePromptUseCase_SaveFailure(t *testing.T) {
	h := newHarness(nil)
	h.prompts.SetCreateError(apperrors.NewStoreUnavailableError("failed to save prompt"))

	_, err := h.uc.Execute(context.Background(), carol, OptimizeCommand{RawPrompt: "hello"})
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.GetAppError(err).Code)
}

func TestOptimizePromptUseCase_Unauthorized(t *testing.T) {
	h := newHarness(nil)

	_, err := h.uc.Execute(context.Background(), auth.Context{}, OptimizeCommand{RawPrompt: "hello"})
	assert.Equal(t, 401, apperrors.GetAppError(err).Code)
}

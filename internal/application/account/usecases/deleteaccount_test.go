package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

func TestDeleteAccountUseCase(t *testing.T) {
	ctx := context.Background()
	entitlements := testutil.NewMockEntitlementRepository()
	prompts := testutil.NewMockPromptRepository()
	log := testutil.NewRecordingLogger()

	for _, user := range []string{"user-1", "user-2"} {
		_, _, err := entitlements.GetOrCreate(ctx, user, testutil.Day(1))
		require.NoError(t, err)
		rec, err := prompt.NewRecord(user, "raw", "optimized", prompt.ToneCasual, prompt.ProviderTemplate, testutil.Day(1))
		require.NoError(t, err)
		require.NoError(t, prompts.Create(ctx, rec))
	}

	uc := NewDeleteAccountUseCase(entitlements, prompts, testutil.PassthroughTx{}, log)
	require.NoError(t, uc.Execute(ctx, auth.Context{UserID: "user-1"}))

	assert.Nil(t, entitlements.Stored("user-1"))
	assert.NotNil(t, entitlements.Stored("user-2"))
	require.Len(t, prompts.Records(), 1)
	assert.Equal(t, "user-2", prompts.Records()[0].UserID)
	assert.True(t, log.HasMessage("info", "account deleted"))

	// deleting again is not an error
	assert.NoError(t, uc.Execute(ctx, auth.Context{UserID: "user-1"}))
}

func TestDeleteAccountUseCase_Unauthorized(t *testing.T) {
	uc := NewDeleteAccountUseCase(testutil.NewMockEntitlementRepository(), testutil.NewMockPromptRepository(), testutil.PassthroughTx{}, testutil.NewRecordingLogger())

	err := uc.Execute(context.Background(), auth.Context{})
	assert.Equal(t, 401, apperrors.GetAppError(err).Code)
}

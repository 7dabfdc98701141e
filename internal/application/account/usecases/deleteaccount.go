package usecases

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

const DeletedMessage = "Account deleted successfully"

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteAccountUseCase removes the caller's entitlement and prompt history.
// Payment records are kept for accounting.
type DeleteAccountUseCase struct {
	entitlementRepo entitlement.Repository
	promptRepo      prompt.Repository
	tx              TransactionRunner
	logger          logger.Interface
}

func NewDeleteAccountUseCase(
	entitlementRepo entitlement.Repository,
	promptRepo prompt.Repository,
	tx TransactionRunner,
	logger logger.Interface,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		entitlementRepo: entitlementRepo,
		promptRepo:      promptRepo,
		tx:              tx,
		logger:          logger,
	}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, ac auth.Context) error {
	if !ac.Valid() {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.promptRepo.DeleteByUserID(ctx, ac.UserID); err != nil {
			return err
		}
		return uc.entitlementRepo.Delete(ctx, ac.UserID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete account", "user_id", ac.UserID, "error", err)
		return err
	}

	uc.logger.Infow("account deleted", "user_id", ac.UserID)
	return nil
}

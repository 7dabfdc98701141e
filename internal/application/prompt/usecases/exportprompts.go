package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

const (
	exportPageSize = 100
	// MaxExportRows bounds a single export.
	MaxExportRows = 5000
)

// Exporter writes prompt records to a spreadsheet.
type Exporter interface {
	Export(records []*prompt.Record) ([]byte, error)
	ContentType() string
}

type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportPromptsUseCase produces a downloadable copy of the caller's history.
type ExportPromptsUseCase struct {
	repo     prompt.Repository
	exporter Exporter
	logger   logger.Interface
	now      func() time.Time
}

func NewExportPromptsUseCase(repo prompt.Repository, exporter Exporter, logger logger.Interface) *ExportPromptsUseCase {
	return &ExportPromptsUseCase{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
		now:      biztime.NowUTC,
	}
}

func (uc *ExportPromptsUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ExportPromptsUseCase) Execute(ctx context.Context, ac auth.Context) (*ExportResult, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	var all []*prompt.Record
	for page := 1; len(all) < MaxExportRows; page++ {
		records, total, err := uc.repo.ListByUserID(ctx, ac.UserID, page, exportPageSize)
		if err != nil {
			uc.logger.Errorw("failed to load prompts for export", "user_id", ac.UserID, "error", err)
			return nil, err
		}
		all = append(all, records...)
		if len(records) < exportPageSize || int64(len(all)) >= total {
			break
		}
	}
	if len(all) > MaxExportRows {
		all = all[:MaxExportRows]
	}

	data, err := uc.exporter.Export(all)
	if err != nil {
		uc.logger.Errorw("failed to build export", "user_id", ac.UserID, "error", err)
		return nil, apperrors.NewInternalError("Failed to export prompts")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("prompts-%s.xlsx", biztime.FormatDate(biztime.DateOf(uc.now()))),
		ContentType: uc.exporter.ContentType(),
		Data:        data,
		Rows:        len(all),
	}, nil
}

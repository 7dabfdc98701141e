package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/services/markdown"
)

var dave = auth.Context{UserID: "user-dave"}

func seedPrompts(t *testing.T, repo *testutil.MockPromptRepository, userID string, n int) {
	t.Helper()
	for i := range n {
		rec, err := prompt.NewRecord(userID, fmt.Sprintf("raw %d", i), fmt.Sprintf("**optimized %d**", i),
			prompt.ToneCasual, prompt.ProviderTemplate, testutil.Day(1).Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), rec))
	}
}

func TestListPromptsUseCase(t *testing.T) {
	repo := testutil.NewMockPromptRepository()
	seedPrompts(t, repo, dave.UserID, 3)
	seedPrompts(t, repo, "someone-else", 2)
	uc := NewListPromptsUseCase(repo, markdown.NewMarkdownService(), testutil.NewRecordingLogger())

	list, err := uc.Execute(context.Background(), dave, ListPromptsQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "raw 2", list.Items[0].RawPrompt)
	assert.Equal(t, "**optimized 2**", list.Items[0].OptimizedPrompt)
	assert.Contains(t, list.Items[0].OptimizedHTML, "<strong>optimized 2</strong>")
	assert.Equal(t, "casual", list.Items[0].Tone)
}

func TestListPromptsUseCase_SanitizesHTML(t *testing.T) {
	repo := testutil.NewMockPromptRepository()
	rec, err := prompt.NewRecord(dave.UserID, "raw", "hi <script>alert(1)</script>", prompt.ToneCasual, "gemini", testutil.Day(1))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), rec))
	uc := NewListPromptsUseCase(repo, markdown.NewMarkdownService(), testutil.NewRecordingLogger())

	list, err := uc.Execute(context.Background(), dave, ListPromptsQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.NotContains(t, list.Items[0].OptimizedHTML, "<script>")
}

type fakeExporter struct {
	rows int
	err  error
}

func (f *fakeExporter) Export(records []*prompt.Record) ([]byte, error) {
	f.rows = len(records)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("xlsx"), nil
}

func (f *fakeExporter) ContentType() string { return "application/octet-stream" }

func TestExportPromptsUseCase(t *testing.T) {
	repo := testutil.NewMockPromptRepository()
	seedPrompts(t, repo, dave.UserID, exportPageSize+5)
	exporter := &fakeExporter{}
	uc := NewExportPromptsUseCase(repo, exporter, testutil.NewRecordingLogger())
	uc.SetClock(testutil.FixedClock(testutil.Day(9)))

	result, err := uc.Execute(context.Background(), dave)
	require.NoError(t, err)
	assert.Equal(t, exportPageSize+5, exporter.rows)
	assert.Equal(t, exportPageSize+5, result.Rows)
	assert.Equal(t, "prompts-2026-03-09.xlsx", result.Filename)
	assert.Equal(t, []byte("xlsx"), result.Data)
}

func TestExportPromptsUseCase_Errors(t *testing.T) {
	repo := testutil.NewMockPromptRepository()
	uc := NewExportPromptsUseCase(repo, &fakeExporter{err: errors.New("disk full")}, testutil.NewRecordingLogger())

	_, err := uc.Execute(context.Background(), dave)
	assert.Equal(t, 500, apperrors.GetAppError(err).Code)

	_, err = uc.Execute(context.Background(), auth.Context{})
	assert.Equal(t, 401, apperrors.GetAppError(err).Code)
}

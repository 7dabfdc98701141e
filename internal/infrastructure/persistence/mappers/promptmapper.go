package mappers

import (
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
)

func PromptToModel(r *prompt.Record) *models.PromptModel {
	return &models.PromptModel{
		ID:              r.ID,
		UserID:          r.UserID,
		RawPrompt:       r.Raw,
		OptimizedPrompt: r.Optimized,
		Tone:            r.Tone.String(),
		Provider:        r.Provider,
		CreatedAt:       r.CreatedAt,
	}
}

func PromptToDomain(m *models.PromptModel) *prompt.Record {
	return &prompt.Record{
		ID:        m.ID,
		UserID:    m.UserID,
		Raw:       m.RawPrompt,
		Optimized: m.OptimizedPrompt,
		Tone:      prompt.Tone(m.Tone),
		Provider:  m.Provider,
		CreatedAt: m.CreatedAt,
	}
}

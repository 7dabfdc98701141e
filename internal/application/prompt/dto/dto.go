package dto

import (
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/prompt"
)

type PromptDTO struct {
	ID              string    `json:"id"`
	RawPrompt       string    `json:"raw_prompt"`
	OptimizedPrompt string    `json:"optimized_prompt"`
	OptimizedHTML   string    `json:"optimized_html"`
	Tone            string    `json:"tone"`
	Provider        string    `json:"provider"`
	CreatedAt       time.Time `json:"created_at"`
}

type PromptListDTO struct {
	Items []PromptDTO
	Total int64
}

func ToPromptDTO(r *prompt.Record, html string) PromptDTO {
	return PromptDTO{
		ID:              r.ID,
		RawPrompt:       r.Raw,
		OptimizedPrompt: r.Optimized,
		OptimizedHTML:   html,
		Tone:            r.Tone.String(),
		Provider:        r.Provider,
		CreatedAt:       r.CreatedAt,
	}
}

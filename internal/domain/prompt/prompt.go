package prompt

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Provider names recorded with each optimization.
const (
	ProviderTemplate = "template"
	ProviderGemini   = "gemini"
)

var (
	ErrEmptyPrompt    = errors.New("prompt is required")
	ErrPromptTooLong  = errors.New("prompt is too long")
	ErrUserIDRequired = errors.New("user ID is required")
)

// Record is one optimization kept for the user's history.
type Record struct {
	ID        string
	UserID    string
	Raw       string
	Optimized string
	Tone      Tone
	Provider  string
	CreatedAt time.Time
}

func NewRecord(userID, raw, optimized string, tone Tone, provider string, now time.Time) (*Record, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if raw == "" {
		return nil, ErrEmptyPrompt
	}
	return &Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Raw:       raw,
		Optimized: optimized,
		Tone:      tone,
		Provider:  provider,
		CreatedAt: now.UTC(),
	}, nil
}

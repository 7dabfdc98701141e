package models

import "time"

type PromptModel struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          string    `gorm:"index:idx_prompts_user_created,priority:1;size:64;not null"`
	RawPrompt       string    `gorm:"type:text;not null"`
	OptimizedPrompt string    `gorm:"type:text;not null"`
	Tone            string    `gorm:"size:16;not null"`
	Provider        string    `gorm:"size:16;not null"`
	CreatedAt       time.Time `gorm:"index:idx_prompts_user_created,priority:2"`
}

func (PromptModel) TableName() string {
	return "prompts"
}

package dto

// OptimizeResultDTO is the response of POST /optimize. RemainingTokens is -1
// for unlimited plans.
type OptimizeResultDTO struct {
	Success         bool   `json:"success"`
	OptimizedPrompt string `json:"optimized_prompt"`
	Provider        string `json:"provider"`
	TokensUsed      int    `json:"tokens_used"`
	RemainingTokens int    `json:"remaining_tokens"`
	IsUnlimited     bool   `json:"is_unlimited"`
}

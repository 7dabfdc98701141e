package usecases

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/domain/prompt"
)

// Outcome is the result of one optimizer call. Exactly one of Text and Err is set.
type Outcome struct {
	Text string
	Err  error
}

func Succeeded(text string) Outcome { return Outcome{Text: text} }

func Failed(err error) Outcome { return Outcome{Err: err} }

func (o Outcome) OK() bool {
	return o.Err == nil && o.Text != ""
}

// Optimizer rewrites a prompt through an external text-generation provider.
// Implementations report failures in the Outcome and never panic.
type Optimizer interface {
	Name() string
	Optimize(ctx context.Context, raw string, tone prompt.Tone) Outcome
}

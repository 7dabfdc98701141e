// Package optimizer calls an external text-generation provider to rewrite prompts.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/promptpilot/promptpilot/internal/application/optimization/usecases"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/config"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

const systemInstruction = "You rewrite prompts for large language models. " +
	"Return only the improved prompt, with no preamble. " +
	"Make the request specific, give it context, state the expected output format, and list any constraints."

var toneGuidance = map[prompt.Tone]string{
	prompt.ToneCasual:   "The rewritten prompt should ask for a friendly, conversational answer.",
	prompt.ToneFormal:   "The rewritten prompt should ask for a professional, precise and structured answer.",
	prompt.ToneDetailed: "The rewritten prompt should ask for a thorough answer with examples and explanations.",
}

var errEmptyResponse = errors.New("provider returned no text")

// generator is the part of the Gemini model the optimizer uses.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiOptimizer rewrites prompts with a Gemini model.
type GeminiOptimizer struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
	logger  logger.Interface
}

func NewGeminiOptimizer(ctx context.Context, cfg config.OptimizerConfig, logger logger.Interface) (*GeminiOptimizer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.SetTemperature(0.4)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiOptimizer{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (o *GeminiOptimizer) Name() string {
	return prompt.ProviderGemini
}

func (o *GeminiOptimizer) Optimize(ctx context.Context, raw string, tone prompt.Tone) usecases.Outcome {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.model.GenerateContent(ctx, genai.Text(userMessage(raw, tone)))
	if err != nil {
		return usecases.Failed(fmt.Errorf("gemini generate: %w", err))
	}

	text := responseText(resp)
	if text == "" {
		return usecases.Failed(errEmptyResponse)
	}
	o.logger.Debugw("prompt optimized", "provider", o.Name(), "latency", time.Since(start))
	return usecases.Succeeded(text)
}

func (o *GeminiOptimizer) Close() error {
	if o.client == nil {
		return nil
	}
	return o.client.Close()
}

func userMessage(raw string, tone prompt.Tone) string {
	guidance, ok := toneGuidance[tone]
	if !ok {
		guidance = toneGuidance[prompt.ToneCasual]
	}
	return guidance + "\n\nPrompt to improve:\n" + strings.TrimSpace(raw)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

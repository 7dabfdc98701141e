package optimizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/config"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	parts []genai.Part
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func newTestOptimizer(g generator) *GeminiOptimizer {
	return &GeminiOptimizer{model: g, timeout: time.Second, logger: testutil.NewRecordingLogger()}
}

func TestGeminiOptimizer_Optimize(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(genai.Text("Write a haiku "), genai.Text("about spring rain."))}
	o := newTestOptimizer(gen)

	outcome := o.Optimize(context.Background(), "  haiku rain ", prompt.ToneFormal)
	require.True(t, outcome.OK())
	assert.Equal(t, "Write a haiku about spring rain.", outcome.Text)

	require.Len(t, gen.parts, 1)
	msg := string(gen.parts[0].(genai.Text))
	assert.Contains(t, msg, toneGuidance[prompt.ToneFormal])
	assert.Contains(t, msg, "Prompt to improve:\nhaiku rain")
}

func TestGeminiOptimizer_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"provider error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"blank text", &fakeGenerator{resp: textResponse(genai.Text("   "))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := newTestOptimizer(tt.gen).Optimize(context.Background(), "x", prompt.ToneCasual)
			assert.False(t, outcome.OK())
			assert.Error(t, outcome.Err)
		})
	}
}

func TestNew_TemplateOnly(t *testing.T) {
	log := testutil.NewRecordingLogger()

	assert.Nil(t, New(context.Background(), config.OptimizerConfig{Provider: "template"}, log))
	assert.Nil(t, New(context.Background(), config.OptimizerConfig{Provider: "gemini"}, log))
	assert.Nil(t, New(context.Background(), config.OptimizerConfig{Provider: "other", APIKey: "k"}, log))
	assert.True(t, log.HasMessage("warn", "unknown optimizer provider, using template"))
}

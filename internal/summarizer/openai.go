package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsbrief/internal/domain"
	"newsbrief/internal/llm"

	"github.com/openai/openai-go/v3"
)

const (
	maxOutputTokens int64 = 2000
	temperature           = 0.3
)

// OpenAISummarizer calls OpenAI's Chat Completions API to produce summaries.
type OpenAISummarizer struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAISummarizer builds a new summarizer instance.
func NewOpenAISummarizer(client openai.Client, model string, log *slog.Logger) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: client,
		model:  model,
		log:    log,
	}
}

// Summarize sends the system and user instructions and returns the first choice.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	userPrompt := strings.TrimSpace(input.Prompt)
	if userPrompt == "" {
		return "", errors.New("prompt is empty")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if instructions := strings.TrimSpace(input.Instructions); instructions != "" {
		messages = append(messages, openai.SystemMessage(instructions))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               s.model,
		Messages:            messages,
		MaxCompletionTokens: openai.Int(maxOutputTokens),
		Temperature:         openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	summary := llm.FirstChoiceText(resp)
	if summary == "" {
		return "", fmt.Errorf("%w (choices = %d)", domain.ErrGenerationFailed, len(resp.Choices))
	}

	s.log.DebugContext(ctx, "Summary is generated",
		"model", s.model,
		"promptTokens", resp.Usage.PromptTokens,
		"completionTokens", resp.Usage.CompletionTokens)

	return summary, nil
}

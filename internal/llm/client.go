// Package llm builds the OpenAI client shared by summarization and image transcription.
package llm

import (
	"strings"

	"newsbrief/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// NewClient applies the retry and timeout policy from cfg. With the defaults the
// SDK neither retries nor imposes its own deadline.
func NewClient(cfg *config.Config) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(cfg.OpenAIMaxRetries),
	}

	if baseURL := strings.TrimSpace(cfg.OpenAIBaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	if cfg.OpenAIRequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.OpenAIRequestTimeout))
	}

	return openai.NewClient(opts...)
}

// FirstChoiceText returns the trimmed content of the first candidate message.
func FirstChoiceText(resp *openai.ChatCompletion) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

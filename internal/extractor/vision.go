package extractor

import (
	"context"
	"fmt"
	"log/slog"

	"newsbrief/internal/llm"

	"github.com/openai/openai-go/v3"
)

const (
	transcribeInstruction = "Extract only the news article text from this image. " +
		"Transcribe the article body exactly as written and do not add any explanations, notes or other commentary."

	transcribeMaxOutputTokens int64 = 4000
)

// Transcriber reads the text out of an image given as a data URI.
type Transcriber interface {
	Transcribe(ctx context.Context, imageDataURI string) (string, error)
}

// OpenAITranscriber asks a vision-capable chat model for the article body.
type OpenAITranscriber struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

func NewOpenAITranscriber(client openai.Client, model string, log *slog.Logger) *OpenAITranscriber {
	return &OpenAITranscriber{
		client: client,
		model:  model,
		log:    log,
	}
}

// Transcribe returns the first choice text as-is; an empty answer is not an error here.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, imageDataURI string) (string, error) {
	message := openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
					{
						OfText: &openai.ChatCompletionContentPartTextParam{
							Text: transcribeInstruction,
						},
					},
					{
						OfImageURL: &openai.ChatCompletionContentPartImageParam{
							ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
								URL:    imageDataURI,
								Detail: "auto",
							},
						},
					},
				},
			},
		},
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               t.model,
		Messages:            []openai.ChatCompletionMessageParamUnion{message},
		MaxCompletionTokens: openai.Int(transcribeMaxOutputTokens),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	t.log.DebugContext(ctx, "Image is transcribed",
		"model", t.model,
		"choices", len(resp.Choices),
		"completionTokens", resp.Usage.CompletionTokens)

	return llm.FirstChoiceText(resp), nil
}

package summarizer

import (
	"context"
)

// Input describes the payload for a summary request.
type Input struct {
	// Instructions is sent as the system message.
	Instructions string
	// Prompt is the fully built user instruction, article text included.
	Prompt string
}

// Summarizer produces a single summary for a given prompt.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

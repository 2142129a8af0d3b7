// Package pipeline sequences extraction, prompt construction and summarization
// for a single request.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsbrief/internal/classifier"
	"newsbrief/internal/config"
	"newsbrief/internal/domain"
	"newsbrief/internal/prompt"
	"newsbrief/internal/summarizer"
)

// Extractor turns request content into plain text.
type Extractor interface {
	Extract(ctx context.Context, content domain.Content) (string, error)
}

type Pipeline struct {
	cfg        *config.Config
	extractor  Extractor
	summarizer summarizer.Summarizer
	log        *slog.Logger
}

func New(
	cfg *config.Config,
	extractor Extractor,
	summarizer summarizer.Summarizer,
	log *slog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		extractor:  extractor,
		summarizer: summarizer,
		log:        log,
	}
}

// Summarize either returns both the original text and a non-empty summary, or
// a *domain.ClassifiedError.
func (p *Pipeline) Summarize(
	ctx context.Context,
	req domain.SummaryRequest,
) (*domain.SummaryResponse, error) {
	resp, err := p.summarize(ctx, req)
	if err != nil {
		return nil, classifier.Report(ctx, p.log, err)
	}

	return resp, nil
}

func (p *Pipeline) summarize(
	ctx context.Context,
	req domain.SummaryRequest,
) (*domain.SummaryResponse, error) {
	if !hasContent(req.Content) {
		return nil, domain.ErrMissingInput
	}

	if !p.cfg.HasOpenAICredentials() {
		return nil, domain.ErrMissingCredentials
	}

	text, err := p.extractor.Extract(ctx, req.Content)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	built := prompt.Build(text, req.Options)

	summary, err := p.summarizer.Summarize(ctx, summarizer.Input{
		Instructions: built.System,
		Prompt:       built.User,
	})
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	if strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("summarize: %w", domain.ErrGenerationFailed)
	}

	p.log.InfoContext(ctx, "Summary is ready",
		"textLength", len(text),
		"summaryLength", len(summary),
		"language", req.Options.Language)

	return &domain.SummaryResponse{
		OriginalText: text,
		Summary:      summary,
	}, nil
}

func hasContent(content domain.Content) bool {
	switch c := content.(type) {
	case nil:
		return false
	case domain.TextContent:
		return c.Text != ""
	default:
		return true
	}
}

// Package extractor turns request content into plain text.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"newsbrief/internal/cleanup"
	"newsbrief/internal/domain"
)

type Extractor struct {
	transcriber       Transcriber
	maxImageDimension int
	log               *slog.Logger
}

func New(transcriber Transcriber, maxImageDimension int, log *slog.Logger) *Extractor {
	return &Extractor{
		transcriber:       transcriber,
		maxImageDimension: maxImageDimension,
		log:               log,
	}
}

// Extract returns the text of content. Inline text is returned verbatim; only
// text transcribed from images is cleaned. Whitespace-only results fail with
// domain.ErrNoExtractableText.
func (e *Extractor) Extract(ctx context.Context, content domain.Content) (string, error) {
	var (
		text string
		err  error
	)

	switch c := content.(type) {
	case nil:
		return "", domain.ErrMissingInput
	case domain.TextContent:
		text = c.Text
	case domain.FileContent:
		text, err = e.extractFile(ctx, c)
	default:
		return "", fmt.Errorf("unknown content type %T", content)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoExtractableText
	}

	return text, nil
}

func (e *Extractor) extractFile(ctx context.Context, file domain.FileContent) (string, error) {
	mediaType, charsetLabel := resolveMediaType(file.MediaType, file.Data)
	kind := ResolveKind(mediaType)

	e.log.DebugContext(ctx, "File media type is resolved",
		"fileName", file.Name,
		"declaredMediaType", file.MediaType,
		"mediaType", mediaType,
		"kind", kind.String(),
		"sizeBytes", len(file.Data))

	switch kind {
	case KindPlainText:
		return decodeText(file.Data, charsetLabel), nil
	case KindPDF:
		return extractPDF(file.Data)
	case KindImage:
		return e.extractImage(ctx, file.Data, mediaType)
	case KindUnsupported:
	}

	return "", fmt.Errorf("%w (mediaType = %s)", domain.ErrUnsupportedFileType, mediaType)
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, mediaType string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	uri, err := imageDataURI(data, mediaType, e.maxImageDimension)
	if err != nil {
		return "", err
	}

	raw, err := e.transcriber.Transcribe(ctx, uri)
	if err != nil {
		return "", fmt.Errorf("transcribe image: %w", err)
	}

	cleaned := cleanup.Clean(raw)
	if len(cleaned) != len(raw) {
		e.log.DebugContext(ctx, "Transcription is cleaned",
			"rawLength", len(raw),
			"cleanedLength", len(cleaned))
	}

	return cleaned, nil
}

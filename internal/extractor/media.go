package extractor

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// Kind is the closed set of extraction paths. Every media type resolves to
// exactly one of them before any work is done.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPlainText
	KindImage
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain_text"
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	default:
		return "unsupported"
	}
}

// ResolveKind maps a normalized media type (no parameters) to its extraction path.
func ResolveKind(mediaType string) Kind {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	case mediaType == "application/pdf":
		return KindPDF
	case mediaType == "text/plain":
		return KindPlainText
	default:
		return KindUnsupported
	}
}

// resolveMediaType normalizes the declared type and falls back to sniffing the
// bytes when the declaration carries no information. The charset parameter is
// returned separately for the plain-text path.
func resolveMediaType(declared string, data []byte) (string, string) {
	mediaType, charsetLabel := parseMediaType(declared)
	if mediaType != "" && mediaType != octetStream {
		return mediaType, charsetLabel
	}

	if len(data) == 0 {
		return mediaType, charsetLabel
	}

	return parseMediaType(mimetype.Detect(data).String())
}

func parseMediaType(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	mediaType, params, err := mime.ParseMediaType(raw)
	if err != nil {
		mediaType, _, _ = strings.Cut(raw, ";")

		return strings.ToLower(strings.TrimSpace(mediaType)), ""
	}

	return mediaType, params["charset"]
}

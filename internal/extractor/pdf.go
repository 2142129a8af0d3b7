package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"newsbrief/internal/domain"

	"github.com/ledongthuc/pdf"
)

const pdfPageSeparator = "\n\n"

// extractPDF reads the text layer page by page. Pages that fail are skipped as
// long as at least one page yields text.
func extractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", nil
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: read PDF: %v", domain.ErrUnreadableFile, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open PDF: %w", domain.ErrUnreadableFile, err)
	}

	var (
		b    strings.Builder
		errs []error
	)

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			errs = append(errs, fmt.Errorf("page %d: %w", pageIndex, pageErr))
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString(pdfPageSeparator)
		}
		b.WriteString(pageText)
	}

	if b.Len() == 0 && len(errs) > 0 {
		return "", fmt.Errorf("%w: %w", domain.ErrUnreadableFile, errors.Join(errs...))
	}

	return b.String(), nil
}

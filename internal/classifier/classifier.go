// Package classifier maps pipeline failures to the categories reported to callers.
package classifier

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"newsbrief/internal/domain"

	"github.com/openai/openai-go/v3"
)

type rule struct {
	sentinel error
	category domain.Category
	status   int
	message  string
}

// Structural rules are checked in order before any message pattern.
var structuralRules = []rule{
	{
		sentinel: domain.ErrMissingInput,
		category: domain.CategoryMissingInput,
		status:   http.StatusBadRequest,
		message:  "Please provide a file or text.",
	},
	{
		sentinel: domain.ErrMissingCredentials,
		category: domain.CategoryMissingCredentials,
		status:   http.StatusInternalServerError,
		message:  "The OpenAI API key is not configured.",
	},
	{
		sentinel: domain.ErrUnsupportedFileType,
		category: domain.CategoryUnsupportedFileType,
		status:   http.StatusBadRequest,
		message:  "This file type is not supported.",
	},
	{
		sentinel: domain.ErrUnreadableFile,
		category: domain.CategoryUnreadableFile,
		status:   http.StatusBadRequest,
		message:  "The file could not be read.",
	},
	{
		sentinel: domain.ErrNoExtractableText,
		category: domain.CategoryNoExtractableText,
		status:   http.StatusBadRequest,
		message:  "No text could be extracted.",
	},
	{
		sentinel: domain.ErrGenerationFailed,
		category: domain.CategoryGenerationFailed,
		status:   http.StatusInternalServerError,
		message:  "The summary could not be generated.",
	},
}

var (
	invalidCredentialsPatterns = []string{"api key", "authentication", "unauthorized"}
	quotaPatterns              = []string{"quota", "billing"}
)

const (
	invalidCredentialsMessage = "The OpenAI API key is invalid."
	quotaExceededMessage      = "The API usage limit has been exceeded."
	internalMessage           = "Something went wrong while summarizing. Please try again later."
)

// Classify never echoes err's text in the returned message. A nil err yields nil.
func Classify(err error) *domain.ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *domain.ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	for _, r := range structuralRules {
		if errors.Is(err, r.sentinel) {
			return &domain.ClassifiedError{
				Category: r.category,
				Status:   r.status,
				Message:  r.message,
			}
		}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return invalidCredentials()
	}

	text := strings.ToLower(err.Error())
	if apiErr != nil {
		text += " " + strings.ToLower(apiErr.Message)
	}

	switch {
	case containsAny(text, invalidCredentialsPatterns):
		return invalidCredentials()
	case containsAny(text, quotaPatterns):
		return &domain.ClassifiedError{
			Category: domain.CategoryQuotaExceeded,
			Status:   http.StatusTooManyRequests,
			Message:  quotaExceededMessage,
		}
	}

	return &domain.ClassifiedError{
		Category: domain.CategoryInternal,
		Status:   http.StatusInternalServerError,
		Message:  internalMessage,
	}
}

// Report classifies err and logs it once: client faults at warn level,
// everything else at error level.
func Report(ctx context.Context, log *slog.Logger, err error) *domain.ClassifiedError {
	classified := Classify(err)
	if classified == nil {
		return nil
	}

	if classified.ClientFault() {
		log.WarnContext(ctx, "Summary request is rejected",
			"category", classified.Category,
			"status", classified.Status,
			"error", err)
	} else {
		log.ErrorContext(ctx, "Summary request failed",
			"category", classified.Category,
			"status", classified.Status,
			"error", err)
	}

	return classified
}

func invalidCredentials() *domain.ClassifiedError {
	return &domain.ClassifiedError{
		Category: domain.CategoryInvalidCredentials,
		Status:   http.StatusUnauthorized,
		Message:  invalidCredentialsMessage,
	}
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}

	return false
}

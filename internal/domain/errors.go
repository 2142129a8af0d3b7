package domain

import (
	"errors"
	"net/http"
)

var (
	ErrMissingInput        = errors.New("no file or text supplied")
	ErrMissingCredentials  = errors.New("OpenAI API key is not configured")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnreadableFile      = errors.New("file cannot be read")
	ErrNoExtractableText   = errors.New("no extractable text")
	ErrGenerationFailed    = errors.New("generation returned no content")
)

type Category string

const (
	CategoryMissingInput        Category = "missing_input"
	CategoryMissingCredentials  Category = "missing_credentials"
	CategoryUnsupportedFileType Category = "unsupported_file_type"
	CategoryUnreadableFile      Category = "unreadable_file"
	CategoryNoExtractableText   Category = "no_extractable_text"
	CategoryInvalidCredentials  Category = "invalid_credentials"
	CategoryQuotaExceeded       Category = "quota_exceeded"
	CategoryGenerationFailed    Category = "generation_failed"
	CategoryInternal            Category = "internal"
)

// ClassifiedError is the only error shape handed back to callers of the pipeline.
type ClassifiedError struct {
	Category Category
	Status   int
	Message  string
}

func (e *ClassifiedError) Error() string {
	return string(e.Category) + ": " + e.Message
}

// ClientFault reports whether the failure was caused by the request itself.
func (e *ClassifiedError) ClientFault() bool {
	return e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}

package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"newsbrief/internal/config"
	"newsbrief/internal/domain"
	"newsbrief/internal/extractor"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/summarizer"
)

type stubSummarizer struct {
	mu      sync.Mutex
	calls   int
	inputs  []summarizer.Input
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(_ context.Context, input summarizer.Input) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.inputs = append(s.inputs, input)

	return s.summary, s.err
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type stubTranscriber struct {
	mu    sync.Mutex
	calls int
}

func (s *stubTranscriber) Transcribe(context.Context, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return "transcribed", nil
}

func (s *stubTranscriber) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

type countingExtractor struct {
	mu    sync.Mutex
	calls int
}

func (c *countingExtractor) Extract(_ context.Context, content domain.Content) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++

	if text, ok := content.(domain.TextContent); ok {
		return text.Text, nil
	}

	return "file text", nil
}

type fixture struct {
	pipeline    *pipeline.Pipeline
	summarizer  *stubSummarizer
	transcriber *stubTranscriber
}

func newFixture(t *testing.T, apiKey string, sum *stubSummarizer) fixture {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{OpenAIAPIKey: apiKey}
	transcriber := &stubTranscriber{}

	return fixture{
		pipeline:    pipeline.New(cfg, extractor.New(transcriber, 2048, log), sum, log),
		summarizer:  sum,
		transcriber: transcriber,
	}
}

func assertClassified(t *testing.T, err error, category domain.Category, status int) {
	t.Helper()

	var classified *domain.ClassifiedError
	if !errors.As(err, &classified) {
		t.Fatalf("expected classified error, got %v", err)
	}

	if classified.Category != category {
		t.Fatalf("unexpected category: got %s, want %s", classified.Category, category)
	}
	if classified.Status != status {
		t.Fatalf("unexpected status: got %d, want %d", classified.Status, status)
	}
}

func TestSummarizeInlineText(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{summary: "Council approves transit plan."})

	input := "Breaking news: the city council approved the new transit plan."

	resp, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.TextContent{Text: input},
		Options: domain.SummaryOptions{Purpose: "report", Style: "neutral", Language: "English"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.OriginalText != input {
		t.Fatalf("expected original text verbatim, got %q", resp.OriginalText)
	}
	if resp.Summary == "" {
		t.Fatalf("expected non-empty summary")
	}

	if f.summarizer.callCount() != 1 {
		t.Fatalf("expected one summarizer call, got %d", f.summarizer.callCount())
	}

	got := f.summarizer.inputs[0]
	if !strings.Contains(got.Prompt, input) {
		t.Fatalf("expected prompt to embed the text, got %q", got.Prompt)
	}
	for _, want := range []string{"English", "report", "neutral"} {
		if !strings.Contains(got.Prompt, want) {
			t.Fatalf("expected prompt to mention %q, got %q", want, got.Prompt)
		}
	}
	if got.Instructions == "" {
		t.Fatalf("expected system instructions")
	}
}

func TestSummarizeUnsupportedFileMakesNoBackendCalls(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{summary: "never"})

	_, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.FileContent{Name: "feed.xml", MediaType: "application/xml", Data: []byte("<rss/>")},
		Options: domain.SummaryOptions{Language: "English"},
	})
	assertClassified(t, err, domain.CategoryUnsupportedFileType, http.StatusBadRequest)

	if f.summarizer.callCount() != 0 || f.transcriber.callCount() != 0 {
		t.Fatalf("expected no backend calls, got summarizer=%d transcriber=%d",
			f.summarizer.callCount(), f.transcriber.callCount())
	}
}

func TestSummarizeEmptyPlainTextFile(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{summary: "never"})

	_, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.FileContent{Name: "empty.txt", MediaType: "text/plain"},
		Options: domain.SummaryOptions{Language: "English"},
	})
	assertClassified(t, err, domain.CategoryNoExtractableText, http.StatusBadRequest)

	if f.summarizer.callCount() != 0 {
		t.Fatalf("expected no summarizer calls, got %d", f.summarizer.callCount())
	}
}

func TestSummarizeQuotaFailure(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{
		err: errors.New("do request: You exceeded your current quota"),
	})

	_, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.TextContent{Text: "Breaking news: markets rallied."},
		Options: domain.SummaryOptions{Language: "English"},
	})
	assertClassified(t, err, domain.CategoryQuotaExceeded, http.StatusTooManyRequests)

	if f.summarizer.callCount() != 1 {
		t.Fatalf("expected exactly one summarizer call, got %d", f.summarizer.callCount())
	}
}

func TestSummarizeMissingCredentialsBeforeExtraction(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ext := &countingExtractor{}
	sum := &stubSummarizer{summary: "never"}
	p := pipeline.New(&config.Config{}, ext, sum, log)

	_, err := p.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.FileContent{Name: "article.txt", MediaType: "text/plain", Data: []byte("Body.")},
		Options: domain.SummaryOptions{Language: "English"},
	})
	assertClassified(t, err, domain.CategoryMissingCredentials, http.StatusInternalServerError)

	if ext.calls != 0 {
		t.Fatalf("expected no extraction, got %d calls", ext.calls)
	}
	if sum.callCount() != 0 {
		t.Fatalf("expected no summarizer calls, got %d", sum.callCount())
	}
}

func TestSummarizeMissingInputMakesNoBackendCalls(t *testing.T) {
	for _, content := range []domain.Content{nil, domain.TextContent{}} {
		f := newFixture(t, "", &stubSummarizer{summary: "never"})

		_, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{Content: content})
		assertClassified(t, err, domain.CategoryMissingInput, http.StatusBadRequest)

		if f.summarizer.callCount() != 0 || f.transcriber.callCount() != 0 {
			t.Fatalf("expected no backend calls for %#v", content)
		}
	}
}

func TestSummarizeBlankSummaryIsGenerationFailure(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{summary: "  "})

	_, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.TextContent{Text: "Breaking news: markets rallied."},
		Options: domain.SummaryOptions{Language: "English"},
	})
	assertClassified(t, err, domain.CategoryGenerationFailed, http.StatusInternalServerError)
}

func TestSummarizeImageUsesTranscription(t *testing.T) {
	f := newFixture(t, "sk-test", &stubSummarizer{summary: "Short."})

	// GIF89a header with a 1x1 logical screen; DecodeConfig only needs the header.
	gif := []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")

	resp, err := f.pipeline.Summarize(context.Background(), domain.SummaryRequest{
		Content: domain.FileContent{Name: "clip.gif", MediaType: "image/gif", Data: gif},
		Options: domain.SummaryOptions{Language: "Korean"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.OriginalText != "transcribed" {
		t.Fatalf("unexpected original text: %q", resp.OriginalText)
	}
	if f.transcriber.callCount() != 1 {
		t.Fatalf("expected one transcriber call, got %d", f.transcriber.callCount())
	}
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"newsbrief/internal/classifier"
	"newsbrief/internal/domain"
)

type summarizeResponse struct {
	*domain.SummaryResponse

	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type optionsResponse struct {
	Purposes        []string `json:"purposes"`
	Styles          []string `json:"styles"`
	Languages       []string `json:"languages"`
	DefaultLanguage string   `json:"defaultLanguage"`
	MediaTypes      []string `json:"mediaTypes"`
	MaxUploadBytes  int64    `json:"maxUploadBytes"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := s.parseSummaryRequest(w, r)
	if err != nil {
		classified := classifier.Report(ctx, s.log, err)
		s.writeJSON(w, r, classified.Status, errorResponse{Error: classified.Message})

		return
	}

	resp, err := s.summarizer.Summarize(ctx, req)
	if err != nil {
		classified := classifier.Classify(err)
		s.writeJSON(w, r, classified.Status, errorResponse{Error: classified.Message})

		return
	}

	s.writeJSON(w, r, http.StatusOK, summarizeResponse{
		SummaryResponse: resp,
		Success:         true,
	})
}

// parseSummaryRequest reads a multipart or urlencoded form. A file takes
// precedence over text when both are present.
func (s *Server) parseSummaryRequest(w http.ResponseWriter, r *http.Request) (domain.SummaryRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := parseForm(r); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return domain.SummaryRequest{}, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrUnreadableFile, maxBytesErr.Limit)
		}

		return domain.SummaryRequest{}, fmt.Errorf("%w: parse form: %w", domain.ErrUnreadableFile, err)
	}

	req := domain.SummaryRequest{
		Options: domain.SummaryOptions{
			Purpose:  strings.TrimSpace(r.FormValue("purpose")),
			Style:    strings.TrimSpace(r.FormValue("style")),
			Language: strings.TrimSpace(r.FormValue("language")),
		},
	}

	file, err := readFormFile(r)
	if err != nil {
		return domain.SummaryRequest{}, err
	}

	switch {
	case file != nil:
		req.Content = *file
	case r.FormValue("text") != "":
		req.Content = domain.TextContent{Text: r.FormValue("text")}
	}

	return req, nil
}

func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxMultipartMemory)
	}

	return r.ParseForm()
}

func readFormFile(r *http.Request) (*domain.FileContent, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open form file: %w", domain.ErrUnreadableFile, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read form file: %w", domain.ErrUnreadableFile, err)
	}

	return &domain.FileContent{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, optionsResponse{
		Purposes:        domain.RecommendedPurposes,
		Styles:          domain.RecommendedStyles,
		Languages:       domain.RecommendedLanguages,
		DefaultLanguage: domain.DefaultLanguage,
		MediaTypes:      domain.AcceptedMediaTypes,
		MaxUploadBytes:  s.maxUploadBytes,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "Failed to write response",
			"error", err,
			"status", status)
	}
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/oluyemi-1/plagiarism-backend/internal/extract"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/report"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"service": "plagiarism-backend",
		"version": "1.0",
		"endpoints": []string{
			"GET /health",
			"POST /api/v1/analyze",
			"POST /api/v1/search",
			"GET /api/v1/formats",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeRequest is the JSON body alternative to a multipart upload
type analyzeRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// handleAnalyze accepts a document as multipart upload or JSON body and
// runs the full analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, filename, ok := s.readDocument(w, r)
	if !ok {
		return
	}

	rep, err := s.analyzer.Analyze(r.Context(), text, filename)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			respondError(w, http.StatusBadRequest, verr.Reason)
			return
		}
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	respondJSON(w, http.StatusOK, rep)
}

// readDocument pulls the document text out of the request. Responds with
// the error itself when extraction fails.
func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (text, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			respondError(w, http.StatusBadRequest, "file too large or invalid form")
			return "", "", false
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "no file provided")
			return "", "", false
		}
		defer func() { _ = file.Close() }()

		if !extract.Supported(header.Filename) {
			respondError(w, http.StatusBadRequest,
				"only "+strings.Join(extract.SupportedExtensions(), ", ")+" files are allowed")
			return "", "", false
		}

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to read file")
			return "", "", false
		}

		content, err := extract.FromBytes(data, header.Filename)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				respondError(w, http.StatusBadRequest, verr.Reason)
			} else {
				respondError(w, http.StatusUnprocessableEntity, "text extraction failed")
			}
			return "", "", false
		}
		return content.Text, content.Filename, true
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return "", "", false
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return "", "", false
	}
	if req.Filename == "" {
		req.Filename = "document.txt"
	}
	return req.Text, req.Filename, true
}

// searchRequest is the diagnostic direct-query body
type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

type searchResponse struct {
	Query      string            `json:"query"`
	Candidates []model.Candidate `json:"candidates"`
	Errors     []string          `json:"errors,omitempty"`
}

// handleSearch queries every provider once and returns the raw candidates
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		respondError(w, http.StatusServiceUnavailable, "live search is disabled")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	candidates, failures := s.searcher.SearchAll(r.Context(), req.Query, req.MaxResults)

	resp := searchResponse{Query: req.Query, Candidates: candidates}
	for _, f := range failures {
		resp.Errors = append(resp.Errors, f.Error())
	}
	if resp.Candidates == nil {
		resp.Candidates = []model.Candidate{}
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleFormats lists the supported citation styles
func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	guidelines := report.Guidelines()

	type formatEntry struct {
		Style string `json:"style"`
		report.Guideline
	}
	formats := make([]formatEntry, 0, len(guidelines))
	for _, style := range report.Styles() {
		formats = append(formats, formatEntry{Style: string(style), Guideline: guidelines[style]})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"formats":    formats,
		"extensions": extract.SupportedExtensions(),
	})
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/dagrapport/internal/extract"
	"github.com/ppiankov/dagrapport/internal/llm"
	"github.com/ppiankov/dagrapport/internal/model"
	"github.com/ppiankov/dagrapport/internal/pipeline"
	"github.com/ppiankov/dagrapport/internal/validate"
)

// Error messages returned to clients
const (
	msgUsePOST       = "Use POST"
	msgMissingAPIKey = "Missing API key"
	msgMissingPrompt = "Missing prompt"
	msgBadRequest    = "Invalid request body"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// GenerateRequest is the JSON request body for POST /generate
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// TextResponse carries generated text
type TextResponse struct {
	Text string `json:"text"`
}

// RefineRequest is the JSON request body for POST /refine
type RefineRequest struct {
	Original string           `json:"original"`
	Feedback string           `json:"feedback"`
	Data     model.ReportData `json:"data"`
}

// ValidateRequest is the JSON request body for POST /validate
type ValidateRequest struct {
	Text   string `json:"text"`
	Exempt bool   `json:"exempt"`
}

// Finding is one triggered category with the guidance shown to the care worker
type Finding struct {
	Category     model.Category `json:"category"`
	FlaggedWords []string       `json:"flagged_words"`
	Message      string         `json:"message"`
	Tip          string         `json:"tip"`
	Suggestions  []string       `json:"suggestions"`
}

// ValidateResponse is the JSON response for POST /validate
type ValidateResponse struct {
	Results []Finding `json:"results"`
}

// SplitRequest is the JSON request body for POST /split
type SplitRequest struct {
	Text string `json:"text"`
}

// HealthResponse is the JSON response for GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
	LLM    bool   `json:"llm"`
}

// handleGenerate handles POST /generate - a free prompt sent to the model
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgUsePOST)
		return
	}
	if !s.pipeline.Enabled() {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}

	var req GenerateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, msgMissingPrompt)
		return
	}

	c, err := s.pipeline.Reporter().Complete(r.Context(), req.Prompt)
	if err != nil {
		s.logger.Error("generate failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, TextResponse{Text: c.Text})
}

// handleReport handles POST /report - a full report from form data
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgUsePOST)
		return
	}
	if !s.pipeline.Enabled() {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}

	data := model.NewReportData()
	if !s.decode(w, r, &data) {
		return
	}

	rep, err := s.pipeline.Run(r.Context(), data)
	if err != nil {
		s.writeLLMError(w, err, llm.ErrGenerate)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// handleRefine handles POST /refine - adjusts a generated report
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgUsePOST)
		return
	}
	if !s.pipeline.Enabled() {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}

	var req RefineRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Original) == "" || strings.TrimSpace(req.Feedback) == "" {
		writeError(w, http.StatusBadRequest, "Missing original or feedback")
		return
	}

	rep, err := s.pipeline.Refine(r.Context(), req.Original, req.Feedback, req.Data)
	if err != nil {
		s.writeLLMError(w, err, llm.ErrRefine)
		return
	}

	writeJSON(w, http.StatusOK, TextResponse{Text: rep.Text})
}

// handleValidate handles POST /validate - camera-language check of one text
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgUsePOST)
		return
	}

	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}

	results := validate.Validate(req.Text, req.Exempt)
	resp := ValidateResponse{Results: make([]Finding, 0, len(results))}
	for _, res := range results {
		rule, _ := validate.Lookup(res.Category)
		resp.Results = append(resp.Results, Finding{
			Category:     res.Category,
			FlaggedWords: res.FlaggedWords,
			Message:      rule.Message,
			Tip:          rule.Tip,
			Suggestions:  rule.Suggestions,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSplit handles POST /split - splits a day narrative into start, middle and end
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, msgUsePOST)
		return
	}

	var req SplitRequest
	if !s.decode(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, extract.SplitTimeline(req.Text))
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", LLM: s.pipeline.Enabled()})
}

// decode reads a JSON body into v, writing a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, msgBadRequest)
		return false
	}
	return true
}

// writeLLMError maps model failures to the user-facing message of the operation
func (s *Server) writeLLMError(w http.ResponseWriter, err, userErr error) {
	if errors.Is(err, pipeline.ErrLLMDisabled) {
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	}
	s.logger.Error("model call failed", zap.Error(err))

	// Pass provider throttling on so clients can back off
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests {
		writeError(w, http.StatusTooManyRequests, userErr.Error())
		return
	}
	writeError(w, http.StatusBadGateway, userErr.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encode failure can only be a dropped connection
	_ = json.NewEncoder(w).Encode(data)
}

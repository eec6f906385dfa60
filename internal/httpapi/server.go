package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joelkehle/aireadiness/internal/readiness"
	"github.com/joelkehle/aireadiness/internal/render"
)

const maxBodyBytes = 1 << 20

type Generator interface {
	Generate(ctx context.Context, uc readiness.UserContext) (readiness.CascadeResult, error)
}

type ReportReader interface {
	Get(ctx context.Context, id string) (readiness.Report, error)
}

type PDFRenderer interface {
	Render(ctx context.Context, id string, report readiness.Report, lang string) ([]byte, error)
}

// Deps wires the server. Generator and Reports are required; a nil PDF
// renderer disables the PDF export and a nil Gatherer disables /metrics.
type Deps struct {
	Generator Generator
	Reports   ReportReader
	PDF       PDFRenderer
	Questions []readiness.QuestionSpec
	Gatherer  prometheus.Gatherer
	Health    func(ctx context.Context) error
	Logger    *zap.Logger
}

type Server struct {
	deps   Deps
	logger *zap.Logger
}

func NewServer(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if len(deps.Questions) == 0 {
		deps.Questions = readiness.DefaultQuestionBank()
	}
	s := &Server{deps: deps, logger: deps.Logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/assessments", s.handleAssessments)
	mux.HandleFunc("/v1/reports/", s.handleReports)
	mux.HandleFunc("/v1/questions", s.handleQuestions)
	mux.HandleFunc("/v1/health", s.handleHealth)
	if deps.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

type assessmentRequest struct {
	FirstName string                      `json:"first_name"`
	LastName  string                      `json:"last_name"`
	Email     string                      `json:"email"`
	Company   string                      `json:"company"`
	Role      string                      `json:"role"`
	Language  string                      `json:"language"`
	Responses map[string]readiness.Answer `json:"responses"`
}

type assessmentResponse struct {
	Success   bool                     `json:"success"`
	ID        string                   `json:"id"`
	Score     int                      `json:"score"`
	Tier      readiness.Tier           `json:"tier"`
	Persisted bool                     `json:"persisted"`
	Report    readiness.Report         `json:"report"`
	Metrics   readiness.DerivedMetrics `json:"metrics"`
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	var req assessmentRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	uc := readiness.UserContext{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Company:   strings.TrimSpace(req.Company),
		Role:      strings.TrimSpace(req.Role),
		Language:  readiness.ResolveLanguage(req.Language),
		Responses: req.Responses,
	}
	uc.Score = readiness.ComputeScore(uc.Responses, s.deps.Questions)

	res, err := s.deps.Generator.Generate(r.Context(), uc)
	if err != nil {
		var reqErr *readiness.RequestError
		if errors.As(err, &reqErr) {
			writeError(w, http.StatusBadRequest, "invalid_request", reqErr.Error())
			return
		}
		s.logger.Error("assessment generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, assessmentResponse{
		Success:   res.Success,
		ID:        res.ID,
		Score:     uc.Score,
		Tier:      res.Tier,
		Persisted: res.Persisted,
		Report:    res.Report,
		Metrics:   res.Metrics,
	})
}

// handleReports serves /v1/reports/{id}, /v1/reports/{id}/html and
// /v1/reports/{id}/pdf.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/reports/"), "/")
	parts := strings.Split(rest, "/")
	if rest == "" || len(parts) > 2 {
		writeError(w, http.StatusNotFound, "not_found", "unknown report path")
		return
	}
	id := parts[0]
	format := "json"
	if len(parts) == 2 {
		format = parts[1]
	}
	if format != "json" && format != "html" && format != "pdf" {
		writeError(w, http.StatusNotFound, "not_found", "unknown report format "+format)
		return
	}

	report, err := s.deps.Reports.Get(r.Context(), id)
	if errors.Is(err, readiness.ErrReportNotFound) {
		writeError(w, http.StatusNotFound, "report_not_found", "report "+id+" not found")
		return
	}
	if err != nil {
		s.logger.Error("report read failed", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	lang := readiness.ResolveLanguage(r.URL.Query().Get("lang"))

	switch format {
	case "json":
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "report": report})
	case "html":
		doc, err := render.HTML(id, report, lang)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "render_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, doc)
	case "pdf":
		if s.deps.PDF == nil {
			writeError(w, http.StatusNotImplemented, "pdf_unavailable", "pdf export is not configured")
			return
		}
		pdf, err := s.deps.PDF.Render(r.Context(), id, report, lang)
		if err != nil {
			s.logger.Error("pdf render failed", zap.String("id", id), zap.Error(err))
			writeError(w, http.StatusBadGateway, "render_failed", err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "ai-readiness-"+id+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": s.deps.Questions})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	if s.deps.Health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Health(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(blob) > maxBodyBytes {
		return nil, errors.New("request body too large")
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use "+method)
		return false
	}
	return true
}

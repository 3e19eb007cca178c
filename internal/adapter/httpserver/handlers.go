package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/adapter/report/pdfreport"
	"github.com/fairyhunter13/resume-screener/internal/catalog"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg        config.Config
	Catalog    *catalog.Catalog
	Uploads    usecase.UploadService
	Analyzer   usecase.AnalyzeService
	Questions  usecase.QuestionService
	Improver   usecase.ImprovementService
	QA         usecase.QAService
	Batch      usecase.BatchService
	Extractor  domain.TextExtractor
	Reports    domain.ReportWriter
	RedisCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers wired. redisCheck may
// be nil when uploads live in process memory.
func NewServer(cfg config.Config, cat *catalog.Catalog, uploads usecase.UploadService, analyzer usecase.AnalyzeService, questions usecase.QuestionService, improver usecase.ImprovementService, qa usecase.QAService, batch usecase.BatchService, extractor domain.TextExtractor, reports domain.ReportWriter, redisCheck func(ctx context.Context) error) *Server {
	return &Server{
		Cfg: cfg, Catalog: cat, Uploads: uploads, Analyzer: analyzer,
		Questions: questions, Improver: improver, QA: qa, Batch: batch,
		Extractor: extractor, Reports: reports, RedisCheck: redisCheck,
	}
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// allowedExt enforces an allowlist for uploads: .txt, .pdf, .docx
func allowedExt(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".txt") || strings.HasSuffix(n, ".pdf") || strings.HasSuffix(n, ".docx")
}

func allowedMIMEFor(m, filename string) bool {
	m = strings.ToLower(m)
	// For .txt files, accept any text/* since detectors may misclassify rich text
	if strings.HasSuffix(strings.ToLower(filename), ".txt") && strings.HasPrefix(m, "text/") {
		return true
	}
	if strings.HasPrefix(m, "text/plain") { // allow parameters such as charset
		return true
	}
	return m == "application/pdf" || m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (s *Server) validateDomain(name string) error {
	if name == "" || !s.Catalog.Has(name) {
		return fmt.Errorf("%w: unknown domain %q", domain.ErrInvalidArgument, name)
	}
	return nil
}

func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json", domain.ErrInvalidArgument)
	}
	if err := getValidator().Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Server) readUpload(r *http.Request, field string) (*multipart.FileHeader, []byte, error) {
	f, h, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s file required", domain.ErrInvalidArgument, field)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s read: %v", domain.ErrInvalidArgument, field, err)
	}
	return h, data, nil
}

// ingestFile validates the file's extension and sniffed content type, extracts
// its text (failures degrade to empty text) and stores the upload.
func (s *Server) ingestFile(ctx context.Context, h *multipart.FileHeader, data []byte) (domain.Upload, error) {
	if !allowedExt(h.Filename) {
		return domain.Upload{}, fmt.Errorf("%w: unsupported file extension: %s", domain.ErrInvalidArgument, h.Filename)
	}
	if m := mimetype.Detect(data); !allowedMIMEFor(m.String(), h.Filename) {
		return domain.Upload{}, fmt.Errorf("%w: unsupported content type %s for %s", domain.ErrInvalidArgument, m.String(), h.Filename)
	}
	text, err := s.Extractor.Extract(ctx, h.Filename, data)
	if err != nil {
		// extractors degrade to empty text; treat residual errors the same way
		slog.Warn("extraction error", slog.String("file", h.Filename), slog.Any("error", err))
		text = ""
	}
	return s.Uploads.Ingest(ctx, text, h.Filename)
}

// UploadHandler handles multipart upload of one resume.
func (s *Server) UploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{Code: "INVALID_ARGUMENT", Message: "payload too large", Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB}}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		h, data, err := s.readUpload(r, "resume")
		if err != nil {
			writeError(w, r, err, map[string]string{"field": "resume"})
			return
		}
		u, err := s.ingestFile(r.Context(), h, data)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		parsed := s.Analyzer.Parse(u.Text)
		writeJSON(w, http.StatusOK, map[string]any{
			"upload_id": u.ID,
			"filename":  u.Filename,
			"emails":    parsed.Emails,
			"phones":    parsed.Phones,
			"ats_score": parsed.ATSScore,
		})
	}
}

// DomainsHandler lists the catalog's domains and their requirements.
func (s *Server) DomainsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		type domainInfo struct {
			Name   string                    `json:"name"`
			Skills []domain.SkillRequirement `json:"skills"`
		}
		out := make([]domainInfo, 0)
		for _, d := range s.Catalog.Domains() {
			out = append(out, domainInfo{Name: d, Skills: s.Catalog.RequiredSkills(d)})
		}
		writeJSON(w, http.StatusOK, map[string]any{"domains": out})
	}
}

// AnalyzeHandler scores one stored upload against a domain.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UploadID     string   `json:"upload_id" validate:"required"`
			Domain       string   `json:"domain" validate:"required"`
			CustomSkills []string `json:"custom_skills" validate:"omitempty,max=50"`
		}
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		if err := s.validateDomain(req.Domain); err != nil {
			writeError(w, r, err, map[string]any{"domains": s.Catalog.Domains()})
			return
		}
		u, err := s.Uploads.Get(r.Context(), req.UploadID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		parsed := s.Analyzer.Parse(u.Text)
		match := s.Analyzer.DomainMatch(u.Text, req.Domain)
		observability.ObserveAnalysis("single", match.MatchPercent)
		writeJSON(w, http.StatusOK, map[string]any{
			"filename":        u.Filename,
			"name":            parsed.Name,
			"emails":          parsed.Emails,
			"phones":          parsed.Phones,
			"ats_score":       parsed.ATSScore,
			"detected_skills": s.Analyzer.DetectSkills(u.Text, req.CustomSkills),
			"match":           match,
			"report_text":     pdfreport.Text(parsed),
		})
	}
}

// QuestionsHandler generates interview questions from explicit skills or from
// the skills detected in a stored upload.
func (s *Server) QuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UploadID   string   `json:"upload_id"`
			Skills     []string `json:"skills" validate:"omitempty,max=50"`
			PerSkill   int      `json:"per_skill" validate:"omitempty,min=1,max=3"`
			Difficulty string   `json:"difficulty"`
		}
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		skills := req.Skills
		if len(skills) == 0 && req.UploadID != "" {
			u, err := s.Uploads.Get(r.Context(), req.UploadID)
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			skills = s.Analyzer.DetectSkills(u.Text, nil)
		}
		perSkill := req.PerSkill
		if perSkill == 0 {
			perSkill = usecase.DefaultQuestionsPerSkill
		}
		difficulty := usecase.Difficulty(req.Difficulty)
		if difficulty == "" {
			difficulty = usecase.DifficultyMedium
		}
		qs := s.Questions.Generate(skills, perSkill, difficulty)
		writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
	}
}

// ImprovementsHandler generates per-area improvement suggestions, optionally
// enhanced by the configured AI suggester.
func (s *Server) ImprovementsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UploadID string   `json:"upload_id" validate:"required"`
			Domain   string   `json:"domain"`
			Areas    []string `json:"areas" validate:"omitempty,max=10"`
			UseAI    bool     `json:"use_ai"`
		}
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		u, err := s.Uploads.Get(r.Context(), req.UploadID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		resp := map[string]any{
			"suggestions": s.Improver.Generate(u.Text, req.Areas, req.Domain),
		}
		if req.UseAI {
			enhanced, err := s.Improver.Enhance(r.Context(), u.Text, req.Domain)
			if err != nil {
				// AI failure is surfaced, it never voids the offline suggestions
				writeError(w, r, err, map[string]any{"suggestions": resp["suggestions"]})
				return
			}
			resp["ai_suggestions"] = enhanced
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// QAHandler answers a free-text question about a stored upload.
func (s *Server) QAHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UploadID string `json:"upload_id" validate:"required"`
			Question string `json:"question" validate:"required,max=1000"`
		}
		if err := s.decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err, nil)
			return
		}
		u, err := s.Uploads.Get(r.Context(), req.UploadID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"answer": s.QA.Answer(u.Text, req.Question)})
	}
}

// BatchHandler ranks multiple uploaded resumes for one domain and writes a
// report artifact. Individual unreadable files degrade to zero scores.
func (s *Server) BatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		domainName := r.FormValue("domain")
		if err := s.validateDomain(domainName); err != nil {
			writeError(w, r, err, map[string]any{"domains": s.Catalog.Domains()})
			return
		}
		if r.MultipartForm == nil || len(r.MultipartForm.File["resumes"]) == 0 {
			writeError(w, r, fmt.Errorf("%w: at least one resume required", domain.ErrInvalidArgument), map[string]string{"field": "resumes"})
			return
		}

		files := r.MultipartForm.File["resumes"]
		entries := make([]domain.BatchEntry, 0, len(files))
		for _, h := range files {
			entries = append(entries, domain.BatchEntry{Filename: h.Filename, Text: s.extractEntry(r.Context(), h)})
		}
		records := s.Batch.Rank(r.Context(), entries, domainName)
		observability.BatchSize.Observe(float64(len(records)))
		for _, rec := range records {
			observability.ObserveAnalysis("batch_entry", rec.MatchPercent)
		}

		reportName := fmt.Sprintf("batch_report_%s.pdf", newReportID())
		if _, err := s.Reports.Write(records, filepath.Join(s.Cfg.ReportDir, reportName)); err != nil {
			writeError(w, r, fmt.Errorf("write report: %w", err), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": records, "report": reportName})
	}
}

// extractEntry extracts one batch file's text; every failure degrades to
// empty text so a single bad file cannot abort the batch.
func (s *Server) extractEntry(ctx context.Context, h *multipart.FileHeader) string {
	f, err := h.Open()
	if err != nil {
		slog.Warn("batch file open failed", slog.String("file", h.Filename), slog.Any("error", err))
		return ""
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		slog.Warn("batch file read failed", slog.String("file", h.Filename), slog.Any("error", err))
		return ""
	}
	text, err := s.Extractor.Extract(ctx, h.Filename, data)
	if err != nil {
		return ""
	}
	return text
}

// ReportHandler serves a previously generated batch report by name.
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".pdf") {
			writeError(w, r, fmt.Errorf("%w: invalid report name", domain.ErrInvalidArgument), nil)
			return
		}
		path := filepath.Join(s.Cfg.ReportDir, name)
		if _, err := os.Stat(path); err != nil {
			writeError(w, r, fmt.Errorf("%w: report %s", domain.ErrNotFound, name), nil)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		http.ServeFile(w, r, path)
	}
}

// ReadyzHandler reports readiness of the upload store.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.RedisCheck != nil {
			if err := s.RedisCheck(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func newReportID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulidEntropy)
	if err != nil {
		return time.Now().UTC().Format("20060102150405")
	}
	return id.String()
}

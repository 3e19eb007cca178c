package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/resume-screener/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-screener/internal/adapter/repo/memory"
	"github.com/fairyhunter13/resume-screener/internal/adapter/report/pdfreport"
	localext "github.com/fairyhunter13/resume-screener/internal/adapter/textextractor/local"
	"github.com/fairyhunter13/resume-screener/internal/catalog"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

func newTestServer(t *testing.T) *httpserver.Server {
	t.Helper()
	cfg := config.Config{
		AppEnv:          "test",
		MaxUploadMB:     10,
		ReportDir:       t.TempDir(),
		RateLimitPerMin: 100,
	}
	cat := catalog.Default()
	analyzer := usecase.NewAnalyzeService(cat)
	return httpserver.NewServer(
		cfg, cat,
		usecase.NewUploadService(memory.NewUploadRepo()),
		analyzer,
		usecase.NewQuestionService(),
		usecase.NewImprovementService(analyzer, nil),
		usecase.NewQAService(),
		usecase.NewBatchService(analyzer, 2),
		localext.New(),
		pdfreport.New(),
		nil,
	)
}

func multipartBody(t *testing.T, field string, files map[string]string, form map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range form {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadResume(t *testing.T, srv *httpserver.Server, name, content string) string {
	t.Helper()
	body, ct := multipartBody(t, "resume", map[string]string{name: content}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		UploadID string `json:"upload_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.UploadID)
	return resp.UploadID
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestUploadHandler_Success(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "resume", map[string]string{"cv.txt": "jane@corp.io\npython and sql"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["upload_id"])
	assert.Equal(t, "cv.txt", resp["filename"])
	assert.Equal(t, []any{"jane@corp.io"}, resp["emails"])
	assert.InDelta(t, 21, resp["ats_score"], 0.1) // python + sql(x2)
}

func TestUploadHandler_RejectsBadExtension(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "resume", map[string]string{"cv.exe": "nope"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_RequiresMultipart(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_MissingFile(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "other", map[string]string{"cv.txt": "text"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_CorruptPDFDegradesToZeroScores(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	// content sniffing rejects non-pdf bytes under a .pdf name, so use a
	// minimal pdf header that the extractor still fails to parse
	body, ct := multipartBody(t, "resume", map[string]string{"cv.pdf": "%PDF-1.4 garbage"}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.UploadHandler()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0, resp["ats_score"], 0.1)
}

func TestAnalyzeHandler_Success(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "I know Python and SQL very well")
	rec := postJSON(t, srv.AnalyzeHandler(), "/v1/analyze", map[string]any{"upload_id": id, "domain": "Data Scientist"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Match struct {
			MatchPercent int `json:"match_percent"`
			Matched      []struct {
				Skill string `json:"skill"`
			} `json:"matched"`
		} `json:"match"`
		DetectedSkills []string `json:"detected_skills"`
		ATSScore       int      `json:"ats_score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 21, resp.Match.MatchPercent)
	require.Len(t, resp.Match.Matched, 2)
	assert.Equal(t, "Python", resp.Match.Matched[0].Skill)
	assert.Contains(t, resp.DetectedSkills, "Python")
}

func TestAnalyzeHandler_UnknownDomain(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "python")
	rec := postJSON(t, srv.AnalyzeHandler(), "/v1/analyze", map[string]any{"upload_id": id, "domain": "Astronaut"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_ARGUMENT")
}

func TestAnalyzeHandler_UploadNotFound(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := postJSON(t, srv.AnalyzeHandler(), "/v1/analyze", map[string]any{"upload_id": "missing", "domain": "Data Scientist"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeHandler_InvalidJSON(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.AnalyzeHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuestionsHandler_FromExplicitSkills(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := postJSON(t, srv.QuestionsHandler(), "/v1/questions", map[string]any{
		"skills": []string{"Python"}, "per_skill": 2, "difficulty": "Hard",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions []struct {
			Question string `json:"question"`
			Skill    string `json:"skill"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 3)
	assert.Contains(t, resp.Questions[0].Question, "Python")
}

func TestQuestionsHandler_FromUploadDetection(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "worked with docker and react")
	rec := postJSON(t, srv.QuestionsHandler(), "/v1/questions", map[string]any{"upload_id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions []struct {
			Skill string `json:"skill"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	skills := map[string]bool{}
	for _, q := range resp.Questions {
		skills[q.Skill] = true
	}
	assert.True(t, skills["Docker"])
	assert.True(t, skills["React"])
}

func TestQuestionsHandler_FallbackWithoutSkills(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := postJSON(t, srv.QuestionsHandler(), "/v1/questions", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Questions []struct {
			Question string `json:"question"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "Tell me about yourself.", resp.Questions[0].Question)
}

func TestQuestionsHandler_PerSkillOutOfRange(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := postJSON(t, srv.QuestionsHandler(), "/v1/questions", map[string]any{"skills": []string{"Go"}, "per_skill": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImprovementsHandler_Offline(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "I know Python and SQL")
	rec := postJSON(t, srv.ImprovementsHandler(), "/v1/improvements", map[string]any{
		"upload_id": id, "domain": "Data Scientist",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Suggestions map[string][]string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Suggestions, 5)
	assert.Len(t, resp.Suggestions["Skill Highlighting"], 8)
}

func TestImprovementsHandler_AIUnavailable(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "text")
	rec := postJSON(t, srv.ImprovementsHandler(), "/v1/improvements", map[string]any{
		"upload_id": id, "use_ai": true,
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "AI_UNAVAILABLE")
	// offline suggestions still ride along in the error details
	assert.Contains(t, rec.Body.String(), "Skill Highlighting")
}

func TestQAHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.txt", "Led the migration to Python services. Holds a physics degree.")
	rec := postJSON(t, srv.QAHandler(), "/v1/qa", map[string]any{"upload_id": id, "question": "python experience?"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["answer"], "Python services")
}

func TestQAHandler_EmptyUploadText(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	id := uploadResume(t, srv, "cv.pdf", "%PDF-1.4 garbage") // extraction degrades to empty
	rec := postJSON(t, srv.QAHandler(), "/v1/qa", map[string]any{"upload_id": id, "question": "skills?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please upload a resume.")
}

func TestBatchHandler_RanksAndWritesReport(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "resumes", map[string]string{
		"weak.txt":   "react",
		"strong.txt": "python sql docker machine learning spark",
	}, map[string]string{"domain": "Data Scientist"})
	req := httptest.NewRequest(http.MethodPost, "/v1/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.BatchHandler()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Records []struct {
			Filename      string `json:"filename"`
			CombinedScore int    `json:"combined_score"`
		} `json:"records"`
		Report string `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "strong.txt", resp.Records[0].Filename)
	assert.GreaterOrEqual(t, resp.Records[0].CombinedScore, resp.Records[1].CombinedScore)
	assert.True(t, strings.HasSuffix(resp.Report, ".pdf"))
}

func TestBatchHandler_UnknownDomain(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "resumes", map[string]string{"a.txt": "x"}, map[string]string{"domain": "Astronaut"})
	req := httptest.NewRequest(http.MethodPost, "/v1/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.BatchHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchHandler_NoFiles(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	body, ct := multipartBody(t, "resumes", nil, map[string]string{"domain": "Data Scientist"})
	req := httptest.NewRequest(http.MethodPost, "/v1/batch", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.BatchHandler()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyzHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.RedisCheck = func(context.Context) error { return errors.New("down") }
	rec = httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDomainsHandler(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.DomainsHandler()(rec, httptest.NewRequest(http.MethodGet, "/v1/domains", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Domains []struct {
			Name   string `json:"name"`
			Skills []struct {
				Skill      string `json:"skill"`
				Importance int    `json:"importance"`
			} `json:"skills"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Domains, 7)
	assert.Equal(t, "Data Scientist", resp.Domains[0].Name)
	assert.Len(t, resp.Domains[0].Skills, 10)
}

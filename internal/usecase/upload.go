package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// UploadService ingests extracted resume text and stores it via the
// repository so later calls (analyze, questions, QA) can reference it by id.
type UploadService struct {
	Repo domain.UploadRepository
}

// NewUploadService constructs an UploadService with the given repo.
func NewUploadService(r domain.UploadRepository) UploadService { return UploadService{Repo: r} }

// Ingest normalizes the text and stores it. Empty text is accepted: a failed
// extraction still yields a referencable upload whose analyses score zero.
func (s UploadService) Ingest(ctx domain.Context, text, filename string) (domain.Upload, error) {
	u := domain.Upload{
		Text:      textx.Normalize(text),
		Filename:  filename,
		MIME:      mimeFromName(filename),
		CreatedAt: time.Now().UTC(),
	}
	u.Size = int64(len(u.Text))
	id, err := s.Repo.Create(ctx, u)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("op=upload.Ingest: %w", err)
	}
	u.ID = id
	return u, nil
}

// Get fetches a stored upload by id.
func (s UploadService) Get(ctx domain.Context, id string) (domain.Upload, error) {
	if id == "" {
		return domain.Upload{}, fmt.Errorf("op=upload.Get: %w: id required", domain.ErrInvalidArgument)
	}
	return s.Repo.Get(ctx, id)
}

func mimeFromName(n string) string {
	n = strings.ToLower(n)
	switch {
	case strings.HasSuffix(n, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(n, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}

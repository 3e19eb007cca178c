// Package domain holds the core entities and ports of the resume screener.
package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAIUnavailable   = errors.New("ai suggester unavailable")
	ErrInternal        = errors.New("internal error")
)

// SkillRequirement is one entry of a domain's weighted skill checklist.
// Skill is title-cased for display; Importance is 1..5.
type SkillRequirement struct {
	Skill      string `json:"skill"`
	Importance int    `json:"importance"`
}

// ScoredSkill is a requirement annotated with the per-skill heuristic score:
// min(10, importance*2) when matched, 0 when missing.
type ScoredSkill struct {
	SkillRequirement
	Score int `json:"score"`
}

// MatchResult partitions a domain's requirements into matched and missing.
// Invariant: matched and missing are disjoint by skill name and together cover
// the domain's full requirement list.
type MatchResult struct {
	Matched      []ScoredSkill `json:"matched"`
	Missing      []ScoredSkill `json:"missing"`
	MatchPercent int           `json:"match_percent"`
}

// InterviewQuestion is a generated question/sample-answer pair. Skill is empty
// for the generic fallback and closing questions.
type InterviewQuestion struct {
	Question     string `json:"question"`
	SampleAnswer string `json:"sample_answer"`
	Skill        string `json:"skill,omitempty"`
}

// AnalysisRecord is one row of a batch ranking.
// CombinedScore = round(ATSScore*0.6 + MatchPercent*0.4).
type AnalysisRecord struct {
	Filename      string `json:"filename"`
	Name          string `json:"name,omitempty"`
	ATSScore      int    `json:"ats_score"`
	MatchPercent  int    `json:"match_percent"`
	CombinedScore int    `json:"combined_score"`
}

// ParsedResume is the minimal parsed view of a single resume.
type ParsedResume struct {
	Text     string   `json:"text"`
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	ATSScore int      `json:"ats_score"`
	// Name is a display identifier: the first email found, or empty.
	Name string `json:"name"`
}

// Upload represents stored extracted text and metadata for one resume.
// Invariants: Text normalized; Size <= configured max.
type Upload struct {
	ID        string
	Text      string
	Filename  string
	MIME      string
	Size      int64
	CreatedAt time.Time
}

// BatchEntry pairs a filename with its already-extracted text. Extraction
// failures produce empty text, never an error, so one unreadable file degrades
// to a zero score instead of aborting the batch.
type BatchEntry struct {
	Filename string
	Text     string
}

// Repositories (ports)

type UploadRepository interface {
	Create(ctx Context, u Upload) (string, error)
	Get(ctx Context, id string) (Upload, error)
}

// TextExtractor (port)
// Extract returns plain text for the named document content. Implementations
// must degrade to ("", nil) on unreadable documents.
type TextExtractor interface {
	Extract(ctx Context, fileName string, data []byte) (string, error)
}

// Suggester (port)
// Suggest returns free-form improvement suggestions for a resume in a target
// domain, produced by an external AI provider. Optional: a nil Suggester
// disables the enhancement path.
type Suggester interface {
	Suggest(ctx Context, resumeText, jobDomain string) (string, error)
}

// ReportWriter (port)
// Write renders the ranked records into a report artifact and returns its path.
type ReportWriter interface {
	Write(records []AnalysisRecord, outputPath string) (string, error)
}

// Context aliases context.Context so the domain package stays free of
// direct adapter concerns while usecases pass contexts through.
type Context = context.Context

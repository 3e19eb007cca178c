// Package usecase contains application business logic services.
package usecase

import (
	"math"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/catalog"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

// atsKeywords is the fixed ATS scoring list. "sql" appears twice and therefore
// contributes two hits; the list is kept as-is for score parity.
var atsKeywords = []string{
	"python", "java", "machine learning", "ai", "sql", "data science",
	"flask", "react", "node.js", "cloud", "aws", "docker",
	"communication", "leadership", "tensorflow", "pytorch", "sql",
	"django", "kubernetes", "terraform",
}

const atsPointsPerHit = 7

// AnalyzeService implements skill detection, domain matching, ATS scoring and
// resume parsing. Every method is a pure transform of its inputs.
//
// Skill matching is deliberately naive: case-insensitive substring containment
// with no word boundaries, so "java" also matches inside "javascript". Known
// limitation, kept for predictable scoring.
type AnalyzeService struct {
	Catalog *catalog.Catalog
}

// NewAnalyzeService constructs an AnalyzeService over the given catalog.
func NewAnalyzeService(c *catalog.Catalog) AnalyzeService { return AnalyzeService{Catalog: c} }

// DetectSkills scans text for any skill from customSkills plus the full
// catalog pool. Returns title-cased labels, deduplicated in first-seen order.
func (s AnalyzeService) DetectSkills(text string, customSkills []string) []string {
	if text == "" {
		return nil
	}
	low := strings.ToLower(text)
	pool := append(append([]string{}, customSkills...), s.Catalog.SkillPool()...)
	seen := make(map[string]struct{}, len(pool))
	var out []string
	for _, name := range pool {
		if !strings.Contains(low, strings.ToLower(name)) {
			continue
		}
		label := textx.TitleCase(name)
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}

// DomainMatch partitions the domain's requirements into matched and missing
// and computes the weighted match percentage. Unknown domains and empty text
// degrade to zero matches; no error paths.
//
// The percentage is rounded half away from zero.
func (s AnalyzeService) DomainMatch(text, domainName string) domain.MatchResult {
	req := s.Catalog.RequiredSkills(domainName)
	low := strings.ToLower(text)
	totalWeight := 0
	for _, r := range req {
		totalWeight += r.Importance
	}
	if totalWeight == 0 {
		totalWeight = 1
	}
	matched := make([]domain.ScoredSkill, 0, len(req))
	missing := make([]domain.ScoredSkill, 0, len(req))
	matchedWeight := 0
	for _, r := range req {
		if strings.Contains(low, strings.ToLower(r.Skill)) {
			score := r.Importance * 2
			if score > 10 {
				score = 10
			}
			matched = append(matched, domain.ScoredSkill{SkillRequirement: r, Score: score})
			matchedWeight += r.Importance
		} else {
			missing = append(missing, domain.ScoredSkill{SkillRequirement: r})
		}
	}
	percent := int(math.Round(float64(matchedWeight) / float64(totalWeight) * 100))
	return domain.MatchResult{Matched: matched, Missing: missing, MatchPercent: percent}
}

// MissingSkills returns the names of the domain's requirements absent from
// text, in catalog order. Used by the improvement generator, which needs only
// labels.
func (s AnalyzeService) MissingSkills(text, domainName string) []string {
	low := strings.ToLower(text)
	var out []string
	for _, r := range s.Catalog.RequiredSkills(domainName) {
		if !strings.Contains(low, strings.ToLower(r.Skill)) {
			out = append(out, r.Skill)
		}
	}
	return out
}

// ATSScore computes the keyword-density score: 7 points per keyword hit,
// capped at 100. Empty text scores 0.
func (s AnalyzeService) ATSScore(text string) int {
	if text == "" {
		return 0
	}
	low := strings.ToLower(text)
	score := 0
	for _, kw := range atsKeywords {
		if strings.Contains(low, kw) {
			score += atsPointsPerHit
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Parse builds the minimal parsed view of a resume from its extracted text.
func (s AnalyzeService) Parse(text string) domain.ParsedResume {
	emails := textx.FindEmails(text)
	name := ""
	if len(emails) > 0 {
		name = emails[0]
	}
	return domain.ParsedResume{
		Text:     text,
		Emails:   emails,
		Phones:   textx.FindPhones(text),
		ATSScore: s.ATSScore(text),
		Name:     name,
	}
}

// CombinedScore blends an ATS score with a match percentage (60/40), rounded
// half away from zero.
func CombinedScore(ats, matchPercent int) int {
	return int(math.Round(float64(ats)*0.6 + float64(matchPercent)*0.4))
}

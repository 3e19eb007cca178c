package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// Improvement areas. An empty selection means all of them.
const (
	AreaSkillHighlighting     = "Skill Highlighting"
	AreaExperienceDescription = "Experience Description"
	AreaProjects              = "Projects"
	AreaOverallStructure      = "Overall structure"
	AreaCertifications        = "Certifications"
)

// Areas lists the recognized improvement areas in display order.
func Areas() []string {
	return []string{AreaSkillHighlighting, AreaExperienceDescription, AreaProjects, AreaOverallStructure, AreaCertifications}
}

// maxHighlightedSkills caps how many missing skills drive per-skill
// highlighting suggestions.
const maxHighlightedSkills = 8

// ImprovementService produces per-area resume improvement suggestions. The
// offline path is template-driven; the optional AI path delegates to a
// configured Suggester.
type ImprovementService struct {
	Analyzer  AnalyzeService
	Suggester domain.Suggester
}

// NewImprovementService constructs an ImprovementService. suggester may be nil
// to disable the AI enhancement path.
func NewImprovementService(a AnalyzeService, suggester domain.Suggester) ImprovementService {
	return ImprovementService{Analyzer: a, Suggester: suggester}
}

// Generate returns suggestions keyed by area. Unrecognized requested areas are
// ignored. With a known domain, Skill Highlighting derives one suggestion per
// missing skill (top 8 in catalog order); without one it falls back to a
// single generic metrics suggestion.
func (s ImprovementService) Generate(text string, selectedAreas []string, domainName string) map[string][]string {
	sel := make(map[string]struct{}, len(selectedAreas))
	for _, a := range selectedAreas {
		sel[strings.TrimSpace(a)] = struct{}{}
	}
	want := func(area string) bool {
		if len(sel) == 0 {
			return true
		}
		_, ok := sel[area]
		return ok
	}

	out := make(map[string][]string)
	if want(AreaSkillHighlighting) {
		if domainName != "" && s.Analyzer.Catalog.Has(domainName) {
			missing := s.Analyzer.MissingSkills(text, domainName)
			if len(missing) > maxHighlightedSkills {
				missing = missing[:maxHighlightedSkills]
			}
			suggestions := make([]string, 0, len(missing))
			for _, skill := range missing {
				suggestions = append(suggestions, fmt.Sprintf("Show a short bullet linking a project to %s and a measurable outcome.", skill))
			}
			out[AreaSkillHighlighting] = suggestions
		} else {
			out[AreaSkillHighlighting] = []string{"Use metrics (%, numbers, time saved) to quantify your skill impact."}
		}
	}
	if want(AreaExperienceDescription) {
		out[AreaExperienceDescription] = []string{
			"Start bullets with action verbs (Designed, Implemented, Led).",
			"Prefer 2-3 bullets per role showing problem → action → result with numbers.",
		}
	}
	if want(AreaProjects) {
		out[AreaProjects] = []string{
			"Add 2–4 projects: title, tech stack, role, clear measurable result (e.g., improved X by Y%).",
			"Include links (GitHub) or short screenshots if available.",
		}
	}
	if want(AreaOverallStructure) {
		out[AreaOverallStructure] = []string{
			"Use reverse-chronological order, consistent date format and clear headings.",
			"Keep resume ≤ 2 pages for mid/senior roles; 1 page for entry-level where possible.",
		}
	}
	if want(AreaCertifications) {
		out[AreaCertifications] = []string{
			"Add relevant certifications (AWS/GCP, ML courses, Frontend certs) if you have them.",
		}
	}
	return out
}

// Enhance asks the configured AI suggester for free-form suggestions. Returns
// ErrAIUnavailable when no suggester is configured; provider failures are
// wrapped so handlers can surface them without breaking offline analysis.
func (s ImprovementService) Enhance(ctx domain.Context, text, domainName string) (string, error) {
	if s.Suggester == nil {
		return "", fmt.Errorf("op=improvements.Enhance: %w", domain.ErrAIUnavailable)
	}
	out, err := s.Suggester.Suggest(ctx, text, domainName)
	if err != nil {
		return "", fmt.Errorf("op=improvements.Enhance: %w: %v", domain.ErrAIUnavailable, err)
	}
	return out, nil
}

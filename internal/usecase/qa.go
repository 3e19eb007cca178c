package usecase

import (
	"regexp"
	"strings"
)

// Fixed QA responses.
const (
	qaNoResume = "Please upload a resume."
	qaNoAnswer = "Could not find a direct answer in the resume."
)

// qaMaxSentences caps how many matching sentences are returned.
const qaMaxSentences = 6

var qaKeywordRe = regexp.MustCompile(`\w{4,}`)

// QAService answers free-text questions about a resume by keyword-sentence
// retrieval: no language understanding, just containment of the question's
// longer words within the resume's sentences.
type QAService struct{}

// NewQAService constructs a QAService.
func NewQAService() QAService { return QAService{} }

// Answer returns up to six resume sentences containing any keyword of the
// question (words of length >= 4, case-insensitive), joined by blank lines.
func (QAService) Answer(resumeText, question string) string {
	if resumeText == "" {
		return qaNoResume
	}
	flat := strings.ReplaceAll(resumeText, "\n", " ")
	var keywords []string
	for _, w := range qaKeywordRe.FindAllString(question, -1) {
		keywords = append(keywords, strings.ToLower(w))
	}
	var matches []string
	for _, raw := range strings.Split(flat, ".") {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}
		low := strings.ToLower(sentence)
		for _, k := range keywords {
			if strings.Contains(low, k) {
				matches = append(matches, sentence)
				break
			}
		}
		if len(matches) == qaMaxSentences {
			break
		}
	}
	if len(matches) == 0 {
		return qaNoAnswer
	}
	return strings.Join(matches, "\n\n")
}

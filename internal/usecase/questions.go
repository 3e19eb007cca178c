package usecase

import (
	"fmt"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// Difficulty selects the interview question template tier.
type Difficulty string

// Supported difficulty tiers. Anything else falls back to DifficultyMedium.
const (
	DifficultyBasic  Difficulty = "Basic"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// DefaultQuestionsPerSkill is used when the caller does not specify a count.
const DefaultQuestionsPerSkill = 2

// QuestionService generates templated interview question/answer pairs.
type QuestionService struct{}

// NewQuestionService constructs a QuestionService.
func NewQuestionService() QuestionService { return QuestionService{} }

// Generate emits maxPerSkill questions per skill in input order, grouped by
// skill, followed by one generic closing question. With no skills it returns a
// fixed two-question fallback and nothing else.
func (QuestionService) Generate(skills []string, maxPerSkill int, difficulty Difficulty) []domain.InterviewQuestion {
	if len(skills) == 0 {
		return []domain.InterviewQuestion{
			{Question: "Tell me about yourself.", SampleAnswer: "Short summary focusing on relevant experience."},
			{Question: "Why this role?", SampleAnswer: "Explain motivation and fit."},
		}
	}
	if maxPerSkill < 1 {
		maxPerSkill = DefaultQuestionsPerSkill
	}
	out := make([]domain.InterviewQuestion, 0, len(skills)*maxPerSkill+1)
	for _, skill := range skills {
		for i := 0; i < maxPerSkill; i++ {
			out = append(out, questionFor(skill, difficulty))
		}
	}
	out = append(out, domain.InterviewQuestion{
		Question:     "Describe a challenge and how you solved it.",
		SampleAnswer: "Context, action, result.",
	})
	return out
}

func questionFor(skill string, difficulty Difficulty) domain.InterviewQuestion {
	switch difficulty {
	case DifficultyBasic:
		return domain.InterviewQuestion{
			Question:     fmt.Sprintf("Explain %s and where you'd use it.", skill),
			SampleAnswer: fmt.Sprintf("High-level description and basic use cases of %s.", skill),
			Skill:        skill,
		}
	case DifficultyHard:
		return domain.InterviewQuestion{
			Question:     fmt.Sprintf("Design a scalable solution that heavily uses %s. Explain trade-offs.", skill),
			SampleAnswer: fmt.Sprintf("Describe architecture, bottlenecks and scaling strategies using %s.", skill),
			Skill:        skill,
		}
	default: // Medium, and any unrecognized difficulty
		return domain.InterviewQuestion{
			Question:     fmt.Sprintf("Describe a project where you used %s. What challenges did you solve?", skill),
			SampleAnswer: fmt.Sprintf("Talk about the project, your exact role, and results using %s.", skill),
			Skill:        skill,
		}
	}
}

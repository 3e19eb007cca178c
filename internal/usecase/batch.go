package usecase

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

// BatchService ranks a collection of resumes for one target domain.
type BatchService struct {
	Analyzer AnalyzeService
	// Concurrency caps parallel per-entry scoring; <=0 means sequential.
	Concurrency int
}

// NewBatchService constructs a BatchService.
func NewBatchService(a AnalyzeService, concurrency int) BatchService {
	return BatchService{Analyzer: a, Concurrency: concurrency}
}

// Rank scores every entry (ATS + domain match, blended 60/40) and sorts the
// records by combined score descending. The sort is stable: entries with equal
// scores keep their submission order, so batch output is deterministic.
// Entries with empty text (failed extraction) rank with zero scores instead of
// failing the batch.
func (s BatchService) Rank(ctx domain.Context, entries []domain.BatchEntry, domainName string) []domain.AnalysisRecord {
	records := make([]domain.AnalysisRecord, len(entries))
	limit := s.Concurrency
	if limit < 1 {
		limit = 1
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			parsed := s.Analyzer.Parse(e.Text)
			match := s.Analyzer.DomainMatch(e.Text, domainName).MatchPercent
			records[i] = domain.AnalysisRecord{
				Filename:      e.Filename,
				Name:          parsed.Name,
				ATSScore:      parsed.ATSScore,
				MatchPercent:  match,
				CombinedScore: CombinedScore(parsed.ATSScore, match),
			}
			return nil
		})
	}
	// Workers write to disjoint slots and never return errors.
	_ = g.Wait()
	sort.SliceStable(records, func(a, b int) bool {
		return records[a].CombinedScore > records[b].CombinedScore
	})
	return records
}

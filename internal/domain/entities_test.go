package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-screener/internal/domain"
)

func TestSentinels_Distinct(t *testing.T) {
	t.Parallel()
	sentinels := []error{domain.ErrInvalidArgument, domain.ErrNotFound, domain.ErrAIUnavailable, domain.ErrInternal}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestMatchResult_ZeroValue(t *testing.T) {
	t.Parallel()
	var mr domain.MatchResult
	assert.Empty(t, mr.Matched)
	assert.Empty(t, mr.Missing)
	assert.Zero(t, mr.MatchPercent)
}

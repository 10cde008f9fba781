package ranking

import (
	"math"

	"agent_arena/internal/domain"
)

// EloConfig - rating model parameters
type EloConfig struct {
	NewAgentKFactor        int
	EstablishedKFactor     int
	NewAgentThresholdGames int
	DefaultRating          int
}

// DefaultEloConfig returns the standard arena rating parameters.
func DefaultEloConfig() EloConfig {
	return EloConfig{
		NewAgentKFactor:        32,
		EstablishedKFactor:     16,
		NewAgentThresholdGames: 30,
		DefaultRating:          1200,
	}
}

// CalculateEloChange computes both sides' rating deltas for a match where
// A scored scoreA in [0,1] (1 = A won, 0.5 = draw).
func CalculateEloChange(ratingA, ratingB int, scoreA float64, kFactor int) (deltaA, deltaB int) {
	expectedA := 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
	expectedB := 1 - expectedA

	scoreA = clamp01(scoreA)
	scoreB := 1 - scoreA

	deltaA = int(math.Round(float64(kFactor) * (scoreA - expectedA)))
	deltaB = int(math.Round(float64(kFactor) * (scoreB - expectedB)))
	return deltaA, deltaB
}

// DeriveScore converts a finished match into A's rating score from the
// points ratio, so bonus-heavy wins move ratings further. No points at all
// counts as a draw.
func DeriveScore(m *domain.Match) float64 {
	total := m.ScoreA + m.ScoreB
	if total <= 0 {
		return 0.5
	}
	return clamp01(float64(m.ScoreA) / float64(total))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

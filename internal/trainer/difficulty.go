package trainer

import "github.com/verte-zerg/lowkey/internal/model"

// Accuracy cut-offs for picking the starting tier.
const (
	HardAccuracy   = 95.0
	MediumAccuracy = HardAccuracy - 10
)

// HistoricalAccuracy is the lifetime correct-character ratio, or the best
// single-test accuracy when nothing has been typed yet.
func HistoricalAccuracy(p model.Profile) float64 {
	if p.TotalCharsTyped > 0 {
		return float64(p.TotalCorrectChars) * 100 / float64(p.TotalCharsTyped)
	}
	return p.BestAccuracy
}

// SelectDifficulty maps historical accuracy to a tier: higher accuracy gets
// harder words.
func SelectDifficulty(p model.Profile) model.Difficulty {
	acc := HistoricalAccuracy(p)
	switch {
	case acc >= HardAccuracy:
		return model.Hard
	case acc >= MediumAccuracy:
		return model.Medium
	default:
		return model.Easy
	}
}

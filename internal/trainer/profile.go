package trainer

import "github.com/verte-zerg/lowkey/internal/model"

// SpeedChange describes what a finished speed test changed in a profile.
type SpeedChange struct {
	NewBestWPM          bool
	PreviousBestWPM     float64
	NewBestAccuracy     bool
	PreviousBestAcc     float64
	AverageAccuracy     float64
	TestsCompletedAfter int
}

// ApplySpeedResult folds one finished test into p.
func ApplySpeedResult(p *model.Profile, r model.TypingResult) SpeedChange {
	change := SpeedChange{
		PreviousBestWPM: p.BestWPM,
		PreviousBestAcc: p.BestAccuracy,
	}
	if r.WPM > p.BestWPM {
		p.BestWPM = r.WPM
		change.NewBestWPM = true
	}
	if r.Accuracy > p.BestAccuracy {
		p.BestAccuracy = r.Accuracy
		change.NewBestAccuracy = true
	}
	p.TotalCharsTyped += r.TotalChars
	p.TotalCorrectChars += r.CorrectChars
	if p.TotalCharsTyped > 0 {
		p.AverageAccuracy = float64(p.TotalCorrectChars) * 100 / float64(p.TotalCharsTyped)
	}
	p.TestsCompleted++
	change.AverageAccuracy = p.AverageAccuracy
	change.TestsCompletedAfter = p.TestsCompleted
	return change
}

// ApplyEnduranceRun folds an endurance run into p and reports whether it set
// a new high score.
func ApplyEnduranceRun(p *model.Profile, totalWords, rounds int) (newHigh bool, previous int) {
	previous = p.EnduranceHighScore
	if totalWords > p.EnduranceHighScore {
		p.EnduranceHighScore = totalWords
		newHigh = true
	}
	p.TestsCompleted += rounds
	return newHigh, previous
}

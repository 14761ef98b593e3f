package trainer

import (
	"context"
	"fmt"

	"github.com/verte-zerg/lowkey/internal/logging"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
)

// Word count bounds for a speed test.
const (
	MinSpeedWords = 15
	MaxSpeedWords = 50
)

// SpeedTest is the outcome of one fixed-length test.
type SpeedTest struct {
	RunID      string
	Difficulty model.Difficulty
	Words      int
	// Clamped is set when the pool held fewer words than requested.
	Clamped  bool
	Finished bool
	Result   model.TypingResult
	Change   SpeedChange
}

// ValidateSpeedWords checks a requested word count.
func ValidateSpeedWords(n int) error {
	if n < MinSpeedWords || n > MaxSpeedWords {
		return fmt.Errorf("word count must be between %d and %d, got %d", MinSpeedWords, MaxSpeedWords, n)
	}
	return nil
}

// Speed runs one test of words words from the d tier. A cancelled test
// leaves p untouched and returns Finished == false.
func (t *Trainer) Speed(ctx context.Context, p *model.Profile, d model.Difficulty, words int) (SpeedTest, error) {
	if err := ValidateSpeedWords(words); err != nil {
		return SpeedTest{}, err
	}
	pool, err := t.loadWords(d)
	if err != nil {
		return SpeedTest{}, err
	}
	test := SpeedTest{RunID: t.runID(), Difficulty: d, Words: words}
	if test.Words > len(pool) {
		test.Words = len(pool)
		test.Clamped = true
	}

	header := []string{fmt.Sprintf("Raw Speed Test · %d words · %s", test.Words, d.Label())}
	if test.Clamped {
		header = append(header, fmt.Sprintf("Not enough words in file. Using all %d available words.", test.Words))
	}
	header = append(header, "Type as fast and accurately as you can!", "Press ESC at any time to end the test.")

	result, state, err := t.Sessions.Run(ctx, t.text(pool, test.Words), header)
	if err != nil {
		return test, err
	}
	if state == session.Cancelled {
		logging.Logger.Debug("speed test cancelled", "run", test.RunID, "user", p.Name)
		return test, nil
	}
	test.Finished = true
	test.Result = result
	test.Change = ApplySpeedResult(p, result)
	t.record(ctx, model.RoundRecord{
		RunID:        test.RunID,
		User:         p.Name,
		Mode:         model.ModeSpeed,
		Difficulty:   d,
		Round:        1,
		WPM:          result.WPM,
		Accuracy:     result.Accuracy,
		TotalChars:   result.TotalChars,
		CorrectChars: result.CorrectChars,
		DurationMs:   result.TimeTaken.Milliseconds(),
	})
	if err := t.Profiles.SaveProfile(ctx, *p); err != nil {
		return test, fmt.Errorf("failed to save profile: %w", err)
	}
	logging.Logger.Info("speed test finished", "run", test.RunID, "user", p.Name,
		"wpm", result.WPM, "accuracy", result.Accuracy)

	if _, err := t.pause(ctx, speedSummary(test)); err != nil {
		logging.Logger.Debug("summary dismissed without key", "err", err)
	}
	return test, nil
}

func speedSummary(test SpeedTest) session.Panel {
	lines := resultLines(test.Result)
	if test.Change.NewBestWPM {
		lines = append(lines, session.Line{
			Text: fmt.Sprintf("New personal best WPM: %.2f (previous: %.2f)", test.Result.WPM, test.Change.PreviousBestWPM),
			Tone: session.ToneGood,
		})
	}
	if test.Change.NewBestAccuracy {
		lines = append(lines, session.Line{
			Text: fmt.Sprintf("New personal best accuracy: %.2f%% (previous: %.2f%%)", test.Result.Accuracy, test.Change.PreviousBestAcc),
			Tone: session.ToneGood,
		})
	}
	lines = append(lines, session.Line{Text: fmt.Sprintf("Average accuracy: %.2f%%", test.Change.AverageAccuracy)})
	return session.Panel{
		Title:  "Test Results",
		Lines:  lines,
		Footer: "Press any key to return to menu...",
	}
}

package trainer

import (
	"context"
	"fmt"

	"github.com/verte-zerg/lowkey/internal/logging"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
)

// StopReason says why an endurance run ended.
type StopReason int

// Stop reasons.
const (
	StopNone StopReason = iota
	StopAccuracy
	StopWPM
	StopCancelled
)

// String implements fmt.Stringer.
func (r StopReason) String() string {
	switch r {
	case StopAccuracy:
		return "accuracy"
	case StopWPM:
		return "wpm"
	case StopCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// EnduranceRun is the aggregate state of one endurance run.
type EnduranceRun struct {
	RunID           string
	Difficulty      model.Difficulty
	RoundsCompleted int
	TotalWords      int
	CurrentAccuracy float64
	CurrentWPM      float64
	Cancelled       bool
	Reason          StopReason
	// LastResult is the final finished round, if any.
	LastResult *model.TypingResult

	NewHighScore      bool
	PreviousHighScore int
}

func (r *EnduranceRun) active(s Settings) bool {
	return r.CurrentAccuracy >= s.MinAccuracy && r.CurrentWPM >= s.MinWPM && !r.Cancelled
}

func (r *EnduranceRun) stopReason(s Settings) StopReason {
	switch {
	case r.Cancelled:
		return StopCancelled
	case r.CurrentAccuracy < s.MinAccuracy:
		return StopAccuracy
	case r.CurrentWPM < s.MinWPM:
		return StopWPM
	default:
		return StopNone
	}
}

// Endurance runs rounds of fresh words until keystroke accuracy or WPM drops
// below the thresholds, or the user cancels. Completed rounds are folded into
// p and saved even when the run ends by cancellation.
func (t *Trainer) Endurance(ctx context.Context, p *model.Profile) (EnduranceRun, error) {
	cfg := t.settings()
	run := EnduranceRun{
		RunID:           t.runID(),
		Difficulty:      SelectDifficulty(*p),
		CurrentAccuracy: 100,
		CurrentWPM:      100,
	}
	words, err := t.loadWords(run.Difficulty)
	if err != nil {
		return run, err
	}
	logging.Logger.Debug("endurance started", "run", run.RunID, "user", p.Name, "difficulty", run.Difficulty.String(), "pool", len(words))

	var loopErr error
	// The first round always runs; the thresholds judge finished rounds.
	for first := true; first || run.active(cfg); first = false {
		target := t.text(words, cfg.RoundWords)
		result, state, err := t.Sessions.Run(ctx, target, t.roundHeader(run, cfg))
		if err != nil {
			run.Cancelled = true
			loopErr = fmt.Errorf("round %d: %w", run.RoundsCompleted+1, err)
			break
		}
		if state == session.Cancelled {
			run.Cancelled = true
			break
		}

		run.CurrentAccuracy = result.Accuracy
		run.CurrentWPM = result.WPM
		run.TotalWords += cfg.RoundWords
		run.RoundsCompleted++
		run.LastResult = &result
		t.record(ctx, model.RoundRecord{
			RunID:        run.RunID,
			User:         p.Name,
			Mode:         model.ModeEndurance,
			Difficulty:   run.Difficulty,
			Round:        run.RoundsCompleted,
			WPM:          result.WPM,
			Accuracy:     result.Accuracy,
			TotalChars:   result.TotalChars,
			CorrectChars: result.CorrectChars,
			DurationMs:   result.TimeTaken.Milliseconds(),
		})

		panel := session.Panel{
			Title: fmt.Sprintf("Round %d Results", run.RoundsCompleted),
			Lines: resultLines(result),
		}
		if !run.active(cfg) {
			// The summary screen shows this round.
			continue
		}
		panel.Lines = append(panel.Lines, session.Line{
			Text: "Both accuracy and WPM are above thresholds. Continue to next round.",
			Tone: session.ToneGood,
		})
		panel.Footer = "Press any key to start next round... (ESC to stop)"
		cancelled, err := t.pause(ctx, panel)
		if err != nil {
			run.Cancelled = true
			loopErr = fmt.Errorf("failed to read key: %w", err)
			break
		}
		if cancelled {
			run.Cancelled = true
		}
	}
	run.Reason = run.stopReason(cfg)

	run.NewHighScore, run.PreviousHighScore = ApplyEnduranceRun(p, run.TotalWords, run.RoundsCompleted)
	if err := t.Profiles.SaveProfile(ctx, *p); err != nil {
		return run, fmt.Errorf("failed to save profile: %w", err)
	}
	logging.Logger.Info("endurance finished", "run", run.RunID, "user", p.Name,
		"rounds", run.RoundsCompleted, "words", run.TotalWords, "reason", run.Reason.String())
	if loopErr != nil {
		return run, loopErr
	}

	if _, err := t.pause(ctx, enduranceSummary(run, cfg)); err != nil {
		logging.Logger.Debug("summary dismissed without key", "err", err)
	}
	return run, nil
}

func (t *Trainer) roundHeader(run EnduranceRun, cfg Settings) []string {
	header := []string{fmt.Sprintf("Endurance · Round %d · %s", run.RoundsCompleted+1, run.Difficulty.Label())}
	if run.RoundsCompleted == 0 {
		header = append(header,
			fmt.Sprintf("Starting with %s difficulty based on your profile.", run.Difficulty.Label()),
			fmt.Sprintf("Keep typing until your accuracy falls below %.1f%% or WPM falls below %.1f", cfg.MinAccuracy, cfg.MinWPM),
		)
	} else {
		header = append(header, fmt.Sprintf("Words completed so far: %d · Current accuracy: %.2f%% · Current WPM: %.2f",
			run.TotalWords, run.CurrentAccuracy, run.CurrentWPM))
	}
	return append(header, "Press ESC at any time to end the test.")
}

func enduranceSummary(run EnduranceRun, cfg Settings) session.Panel {
	var lines []session.Line
	if run.LastResult != nil && run.Reason != StopCancelled {
		lines = append(lines, session.Line{Text: fmt.Sprintf("Round %d Results", run.RoundsCompleted), Tone: session.ToneInfo})
		lines = append(lines, resultLines(*run.LastResult)...)
		lines = append(lines, session.Line{})
	}
	switch run.Reason {
	case StopAccuracy:
		lines = append(lines, session.Line{Text: fmt.Sprintf("Accuracy dropped below %.1f%%. Endurance mode ended.", cfg.MinAccuracy), Tone: session.ToneBad})
	case StopWPM:
		lines = append(lines, session.Line{Text: fmt.Sprintf("WPM dropped below %.1f. Endurance mode ended.", cfg.MinWPM), Tone: session.ToneBad})
	case StopCancelled:
		lines = append(lines, session.Line{Text: "Test canceled.", Tone: session.ToneWarn})
	}
	lines = append(lines,
		session.Line{Text: fmt.Sprintf("Total words completed: %d", run.TotalWords)},
		session.Line{Text: fmt.Sprintf("Rounds completed: %d", run.RoundsCompleted)},
		session.Line{Text: fmt.Sprintf("Final accuracy: %.2f%%", run.CurrentAccuracy)},
		session.Line{Text: fmt.Sprintf("Final WPM: %.2f", run.CurrentWPM)},
	)
	if run.NewHighScore {
		lines = append(lines, session.Line{
			Text: fmt.Sprintf("New endurance high score! Previous: %d words", run.PreviousHighScore),
			Tone: session.ToneGood,
		})
	}
	return session.Panel{
		Title:  "Endurance Mode Complete",
		Lines:  lines,
		Footer: "Press any key to return to main menu...",
	}
}

// Package trainer runs the practice modes: the adaptive endurance loop and
// the fixed-length speed test. It owns the session-scoped collaborators and
// folds finished sessions into the user's profile.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/lowkey/internal/logging"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
)

// ErrNoWords is returned when a session cannot start because the word pool
// is missing or empty.
var ErrNoWords = errors.New("no words available")

// WordSource provides the word pool for a difficulty tier.
type WordSource interface {
	Words(d model.Difficulty) ([]string, error)
}

// Sampler picks count words from pool, distinct where the pool allows.
type Sampler interface {
	Sample(pool []string, count int) []string
}

// ProfileSaver persists a profile.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, p model.Profile) error
}

// HistoryRecorder appends finished rounds to history.
type HistoryRecorder interface {
	InsertRound(ctx context.Context, r model.RoundRecord) (int64, error)
}

// SessionRunner runs one typing session on target.
type SessionRunner interface {
	Run(ctx context.Context, target string, header []string) (model.TypingResult, session.State, error)
}

// Settings holds the endurance thresholds and round size.
type Settings struct {
	RoundWords  int
	MinAccuracy float64
	MinWPM      float64
}

// Defaults for Settings.
const (
	DefaultRoundWords  = 10
	DefaultMinAccuracy = 85.0
	DefaultMinWPM      = 30.0
)

// DefaultSettings returns the standard endurance thresholds.
func DefaultSettings() Settings {
	return Settings{
		RoundWords:  DefaultRoundWords,
		MinAccuracy: DefaultMinAccuracy,
		MinWPM:      DefaultMinWPM,
	}
}

// Trainer wires the collaborators one practice run needs. It is built by the
// caller for each run and never shared.
type Trainer struct {
	Console  session.Console
	Sessions SessionRunner
	Words    WordSource
	Sampler  Sampler
	Profiles ProfileSaver
	// History is optional.
	History  HistoryRecorder
	Settings Settings
	Now      func() time.Time
	NewRunID func() string
}

func (t *Trainer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Trainer) runID() string {
	if t.NewRunID != nil {
		return t.NewRunID()
	}
	return uuid.NewString()
}

// settings returns t.Settings with the round size defaulted. Zero thresholds
// are kept: they turn that gate off.
func (t *Trainer) settings() Settings {
	s := t.Settings
	if s.RoundWords <= 0 {
		s.RoundWords = DefaultRoundWords
	}
	return s
}

func (t *Trainer) loadWords(d model.Difficulty) ([]string, error) {
	words, err := t.Words.Words(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %s word list: %v", ErrNoWords, d, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %s word list is empty", ErrNoWords, d)
	}
	return words, nil
}

func (t *Trainer) text(pool []string, count int) string {
	return strings.Join(t.Sampler.Sample(pool, count), " ")
}

func (t *Trainer) record(ctx context.Context, rec model.RoundRecord) {
	if t.History == nil {
		return
	}
	rec.EndedAt = t.now()
	if _, err := t.History.InsertRound(ctx, rec); err != nil {
		logging.Logger.Warn("failed to record round", "run", rec.RunID, "round", rec.Round, "err", err)
	}
}

// pause shows p and waits for a key. It reports whether the key was a cancel.
func (t *Trainer) pause(ctx context.Context, p session.Panel) (bool, error) {
	t.Console.Show(p)
	ev, err := t.Console.ReadKey(ctx)
	if err != nil {
		return false, err
	}
	return ev.Kind == session.KeyCancel, nil
}

func resultLines(r model.TypingResult) []session.Line {
	return []session.Line{
		{Text: fmt.Sprintf("Time taken: %.2f seconds", r.TimeTaken.Seconds())},
		{Text: fmt.Sprintf("Accuracy: %.2f%%", r.Accuracy), Tone: toneFor(r.Accuracy >= DefaultMinAccuracy)},
		{Text: fmt.Sprintf("WPM: %.2f", r.WPM), Tone: session.ToneInfo},
		{Text: fmt.Sprintf("Mistyped chars: %d", r.Mistyped)},
		{Text: fmt.Sprintf("Missed chars: %d", r.Missed)},
		{Text: fmt.Sprintf("Extra chars: %d", r.Extra)},
	}
}

func toneFor(good bool) session.Tone {
	if good {
		return session.ToneGood
	}
	return session.ToneBad
}

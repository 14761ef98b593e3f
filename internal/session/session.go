// Package session implements the live typing loop: a key-by-key state
// machine over a fixed target text, and the blocking loop that feeds it from
// a console.
package session

import (
	"time"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/scoring"
)

// State is the lifecycle state of a session.
type State int

// Session states. Finished and Cancelled are terminal.
const (
	Running State = iota
	Finished
	Cancelled
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

const charsPerWord = 5.0

// Session owns the mutable state of one typing attempt.
type Session struct {
	target []rune
	typed  []rune

	// mistakes holds every position that was ever wrong. It never shrinks.
	mistakes map[int]struct{}

	keystrokes      int
	errorKeystrokes int

	state     State
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

// New starts a session on target. The clock starts now.
func New(target string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	s := &Session{
		target:   []rune(target),
		mistakes: map[int]struct{}{},
		now:      now,
	}
	s.startedAt = now()
	if len(s.target) == 0 {
		s.finish()
	}
	return s
}

// Handle applies one key event and reports whether it was accepted.
// Events received after a terminal state are ignored.
func (s *Session) Handle(ev KeyEvent) bool {
	if s.state != Running {
		return false
	}
	switch ev.Kind {
	case KeyCancel:
		s.state = Cancelled
		s.endedAt = s.now()
		return true
	case KeyBackspace:
		return s.handleBackspace()
	case KeyPrintable:
		return s.handleRune(ev.Rune)
	default:
		return false
	}
}

func (s *Session) handleRune(r rune) bool {
	if len(s.typed) >= len(s.target) {
		return false
	}
	s.typed = append(s.typed, r)
	s.keystrokes++
	pos := len(s.typed) - 1
	if r != s.target[pos] {
		s.errorKeystrokes++
		s.mistakes[pos] = struct{}{}
	}
	if len(s.typed) == len(s.target) {
		s.finish()
	}
	return true
}

func (s *Session) handleBackspace() bool {
	if len(s.typed) == 0 {
		return false
	}
	s.typed = s.typed[:len(s.typed)-1]
	return true
}

func (s *Session) finish() {
	s.state = Finished
	s.endedAt = s.now()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Cursor returns the number of characters currently typed.
func (s *Session) Cursor() int {
	return len(s.typed)
}

// Target returns the target text as runes.
func (s *Session) Target() []rune {
	return s.target
}

// Typed returns a copy of the characters typed so far.
func (s *Session) Typed() []rune {
	out := make([]rune, len(s.typed))
	copy(out, s.typed)
	return out
}

// Correctness classifies each typed position against the target.
func (s *Session) Correctness() []bool {
	return scoring.Classify(s.target, s.typed)
}

// Keystrokes returns the total and erroneous keystroke tallies.
func (s *Session) Keystrokes() (total, errors int) {
	return s.keystrokes, s.errorKeystrokes
}

// Mistakes returns how many distinct positions have ever been wrong.
func (s *Session) Mistakes() int {
	return len(s.mistakes)
}

// WasMistaken reports whether pos has ever held a wrong character.
func (s *Session) WasMistaken(pos int) bool {
	_, ok := s.mistakes[pos]
	return ok
}

// Live scores the typed prefix against the same-length prefix of the target.
func (s *Session) Live() scoring.Breakdown {
	return scoring.CalculateAccuracyRunes(s.target[:len(s.typed)], s.typed)
}

// Elapsed returns the time since the session started, or its total duration
// once it has ended.
func (s *Session) Elapsed() time.Duration {
	if s.state != Running {
		return s.endedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// Result returns the finished snapshot. ok is false unless the session
// reached Finished.
func (s *Session) Result() (result model.TypingResult, ok bool) {
	if s.state != Finished {
		return model.TypingResult{}, false
	}
	elapsed := s.Elapsed()
	final := scoring.CalculateAccuracyRunes(s.target, s.typed)
	result = model.TypingResult{
		TotalChars:       s.keystrokes,
		CorrectChars:     s.keystrokes - s.errorKeystrokes,
		Mistyped:         final.Mistyped,
		Missed:           final.Missed,
		Extra:            final.Extra,
		Accuracy:         KeystrokeAccuracy(s.keystrokes, s.errorKeystrokes),
		PositionAccuracy: final.Accuracy,
		WPM:              WordsPerMinute(len(s.typed), elapsed),
		TimeTaken:        elapsed,
		Text:             string(s.target),
	}
	return result, true
}

// KeystrokeAccuracy is the share of keystrokes that were not errors.
func KeystrokeAccuracy(total, errors int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(total-errors) / float64(total)
}

// WordsPerMinute uses the five-characters-per-word convention.
func WordsPerMinute(chars int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return (float64(chars) / charsPerWord) / minutes
}

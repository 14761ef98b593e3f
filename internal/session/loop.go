package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/scoring"
)

// ErrConsoleClosed is returned when the console stops delivering keys.
var ErrConsoleClosed = errors.New("console closed")

// Tone is the color intent of a panel line.
type Tone int

// Panel line tones.
const (
	ToneNormal Tone = iota
	ToneInfo
	ToneGood
	ToneBad
	ToneWarn
)

// Line is one line of panel text.
type Line struct {
	Text string
	Tone Tone
}

// Panel is a full-screen block of text, such as a result summary or a menu.
type Panel struct {
	Title  string
	Lines  []Line
	Footer string
}

// Frame is what the console draws while a session is in progress.
type Frame struct {
	Header  []string
	Target  []rune
	Typed   []rune
	Correct []bool
	Live    scoring.Breakdown
	// Waiting is set while the target is previewed before the clock starts.
	Waiting bool
}

// Console is the terminal capability the session loop runs against.
// ReadKey blocks until a key is available.
type Console interface {
	ReadKey(ctx context.Context) (KeyEvent, error)
	Render(f Frame)
	Show(p Panel)
}

// Runner runs sessions on a console.
type Runner struct {
	Console Console
	Now     func() time.Time
	// NoPrompt skips the "press any key to start" preview.
	NoPrompt bool
}

// Run previews target, waits for a key, then reads keys until the session
// finishes or is cancelled. A cancelled session returns a zero result.
func (r Runner) Run(ctx context.Context, target string, header []string) (model.TypingResult, State, error) {
	if !r.NoPrompt {
		r.Console.Render(Frame{Header: header, Target: []rune(target), Waiting: true})
		ev, err := r.Console.ReadKey(ctx)
		if err != nil {
			return model.TypingResult{}, Cancelled, fmt.Errorf("failed to read start key: %w", err)
		}
		if ev.Kind == KeyCancel {
			return model.TypingResult{}, Cancelled, nil
		}
	}
	return Loop(ctx, r.Console, New(target, r.Now), header)
}

// Loop feeds console keys into s in arrival order, rendering after every
// accepted event.
func Loop(ctx context.Context, c Console, s *Session, header []string) (model.TypingResult, State, error) {
	render(c, s, header)
	for s.State() == Running {
		ev, err := c.ReadKey(ctx)
		if err != nil {
			return model.TypingResult{}, Cancelled, fmt.Errorf("failed to read key: %w", err)
		}
		if s.Handle(ev) && s.State() != Cancelled {
			render(c, s, header)
		}
	}
	if s.State() == Cancelled {
		return model.TypingResult{}, Cancelled, nil
	}
	result, _ := s.Result()
	return result, Finished, nil
}

func render(c Console, s *Session, header []string) {
	c.Render(Frame{
		Header:  header,
		Target:  s.Target(),
		Typed:   s.Typed(),
		Correct: s.Correctness(),
		Live:    s.Live(),
	})
}

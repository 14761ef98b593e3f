package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/lowkey/internal/session"
)

const keyBuffer = 256

// Terminal runs a Bubble Tea program in the background and exposes it as a
// session.Console. ReadKey blocks on the key channel the model feeds, so the
// practice code above it can stay a plain read-eval loop.
type Terminal struct {
	program *tea.Program
	keys    chan session.KeyEvent
	done    chan struct{}

	mu      sync.Mutex
	err     error
	started bool
}

// NewTerminal builds a terminal. Options are passed to tea.NewProgram; the
// default is the alternate screen.
func NewTerminal(opts ...tea.ProgramOption) *Terminal {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	keys := make(chan session.KeyEvent, keyBuffer)
	return &Terminal{
		program: tea.NewProgram(NewModel(keys), opts...),
		keys:    keys,
		done:    make(chan struct{}),
	}
}

// Start runs the program until Close is called or it fails.
func (t *Terminal) Start() {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()
	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil {
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
		}
	}()
}

// ReadKey implements session.Console.
func (t *Terminal) ReadKey(ctx context.Context) (session.KeyEvent, error) {
	select {
	case ev := <-t.keys:
		return ev, nil
	case <-t.done:
		if err := t.Err(); err != nil {
			return session.KeyEvent{}, fmt.Errorf("%w: %v", session.ErrConsoleClosed, err)
		}
		return session.KeyEvent{}, session.ErrConsoleClosed
	case <-ctx.Done():
		return session.KeyEvent{}, ctx.Err()
	}
}

// Render implements session.Console.
func (t *Terminal) Render(f session.Frame) {
	t.program.Send(frameMsg(f))
}

// Show implements session.Console.
func (t *Terminal) Show(p session.Panel) {
	t.program.Send(panelMsg(p))
}

// Err returns the error the program exited with, if any.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Close stops the program and waits for the terminal to be restored.
func (t *Terminal) Close() error {
	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if !started {
		return nil
	}
	t.program.Quit()
	<-t.done
	return t.Err()
}

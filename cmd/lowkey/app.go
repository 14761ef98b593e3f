package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/lowkey/internal/config"
	"github.com/verte-zerg/lowkey/internal/generator"
	"github.com/verte-zerg/lowkey/internal/logging"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/store"
	"github.com/verte-zerg/lowkey/internal/trainer"
	"github.com/verte-zerg/lowkey/internal/tui"
	"github.com/verte-zerg/lowkey/internal/wordlist"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg   model.Config
	store *store.Store
	log   io.Closer
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logCloser, err := logging.SetupFile(config.DefaultLogPath(), logging.Level(rootVerbose))
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logCloser = nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	logging.Logger.Debug("opened app", "cmd", cmd.Name(), "wordlists", cfg.WordListDir)
	return &app{cfg: cfg, store: st, log: logCloser}, nil
}

func (a *app) Close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
	if a.log != nil {
		if cerr := a.log.Close(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}
}

func (a *app) trainer(console session.Console) *trainer.Trainer {
	return &trainer.Trainer{
		Console:  console,
		Sessions: session.Runner{Console: console},
		Words:    wordlist.Library{Dir: a.cfg.WordListDir},
		Sampler:  generator.New(),
		Profiles: a.store,
		History:  a.store,
		Settings: trainer.Settings{
			RoundWords:  a.cfg.RoundWords,
			MinAccuracy: a.cfg.MinAccuracy,
			MinWPM:      a.cfg.MinWPM,
		},
	}
}

// login resolves the username, prompting when none was configured, and
// loads or creates the profile. The returned line greets the user.
func (a *app) login(ctx context.Context) (model.Profile, session.Line, error) {
	name := a.cfg.User
	if name == "" {
		prompted, err := tui.PromptUsername()
		if err != nil {
			return model.Profile{}, session.Line{}, err
		}
		name = prompted
	}
	if err := tui.ValidateUsername(name); err != nil {
		return model.Profile{}, session.Line{}, fmt.Errorf("invalid username: %w", err)
	}
	p, created, err := a.store.LoadOrCreateProfile(ctx, name)
	if err != nil {
		return model.Profile{}, session.Line{}, fmt.Errorf("failed to load profile: %w", err)
	}
	logging.Logger.Info("logged in", "user", name, "created", created)
	return p, greeting(p, created), nil
}

func greeting(p model.Profile, created bool) session.Line {
	if created {
		return session.Line{
			Text: fmt.Sprintf("New user detected. Created profile for %s.", p.Name),
			Tone: session.ToneGood,
		}
	}
	text := fmt.Sprintf("Welcome back, %s! Best WPM: %.2f | Best Accuracy: %.2f%% | Tests completed: %d",
		p.Name, p.BestWPM, p.BestAccuracy, p.TestsCompleted)
	if p.EnduranceHighScore > 0 {
		text += fmt.Sprintf(" | Endurance high score: %d words", p.EnduranceHighScore)
	}
	return session.Line{Text: text, Tone: session.ToneInfo}
}

func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("interactive mode requires a terminal")
	}
	return nil
}

// terminalWidth returns the stdout width, or fallback when it is not a terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// interactive runs fn on a started terminal after logging in.
func (a *app) interactive(ctx context.Context, fn func(ctx context.Context, console *tui.Terminal, p *model.Profile, hello session.Line) error) error {
	if err := requireTerminal(); err != nil {
		return err
	}
	p, hello, err := a.login(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrPromptCancelled) {
			return nil
		}
		return err
	}
	console := tui.NewTerminal()
	console.Start()
	runErr := fn(ctx, console, &p, hello)
	if cerr := console.Close(); cerr != nil && runErr == nil {
		runErr = fmt.Errorf("terminal failed: %w", cerr)
	}
	if errors.Is(runErr, session.ErrConsoleClosed) {
		return nil
	}
	return runErr
}

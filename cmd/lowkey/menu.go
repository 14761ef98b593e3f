package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lowkey/internal/logging"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/stats"
	"github.com/verte-zerg/lowkey/internal/trainer"
	"github.com/verte-zerg/lowkey/internal/tui"
)

const (
	menuEndurance = iota + 1
	menuSpeed
	menuLeaderboard
	menuProfile
	menuExit
)

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.interactive(cmd.Context(), a.menu)
}

func (a *app) menu(ctx context.Context, console *tui.Terminal, p *model.Profile, hello session.Line) error {
	tr := a.trainer(console)
	notice := &hello
	for {
		choice, cancelled, err := readChoice(ctx, console, tui.MenuPanel(p.Name, notice), menuExit)
		if err != nil {
			return err
		}
		notice = nil
		if cancelled || choice == menuExit {
			logging.Logger.Info("exiting", "user", p.Name)
			return nil
		}
		switch choice {
		case menuEndurance:
			_, err = tr.Endurance(ctx, p)
			err = a.reportFailure(ctx, console, "Endurance Mode", err)
		case menuSpeed:
			err = a.speedFromMenu(ctx, console, tr, p)
		case menuLeaderboard:
			err = a.showLeaderboard(ctx, console, p.Name)
		case menuProfile:
			err = pause(ctx, console, tui.ProfilePanel(*p))
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) speedFromMenu(ctx context.Context, console session.Console, tr *trainer.Trainer, p *model.Profile) error {
	d := a.cfg.Difficulty
	if d == 0 {
		choice, cancelled, err := readChoice(ctx, console, tui.DifficultyPanel(a.cfg.Words), int(model.Hard))
		if err != nil || cancelled {
			return err
		}
		d = model.Difficulty(choice)
	}
	words, cancelled, err := readNumber(ctx, console, "Raw Speed Test",
		fmt.Sprintf("How many words for the test? (%d-%d)", trainer.MinSpeedWords, trainer.MaxSpeedWords),
		trainer.MinSpeedWords, trainer.MaxSpeedWords, a.cfg.Words)
	if err != nil || cancelled {
		return err
	}
	_, err = tr.Speed(ctx, p, d, words)
	return a.reportFailure(ctx, console, "Raw Speed Test", err)
}

func (a *app) showLeaderboard(ctx context.Context, console session.Console, user string) error {
	profiles, err := a.store.ListProfiles(ctx)
	if err != nil {
		return a.reportFailure(ctx, console, "Leaderboard", err)
	}
	return pause(ctx, console, tui.LeaderboardPanel(stats.Leaderboard(profiles, user, stats.LeaderboardSize)))
}

// reportFailure turns a failed practice run into an error panel so the menu keeps
// running. Console failures are returned as is.
func (a *app) reportFailure(ctx context.Context, console session.Console, title string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, session.ErrConsoleClosed) || errors.Is(err, context.Canceled) {
		return err
	}
	logging.Logger.Error("practice failed", "mode", title, "err", err)
	return pause(ctx, console, tui.ErrorPanel(title, err))
}

func pause(ctx context.Context, console session.Console, p session.Panel) error {
	console.Show(p)
	_, err := console.ReadKey(ctx)
	return err
}

// readChoice shows p and waits for a digit from 1 to options. Other keys are
// ignored; cancel returns cancelled.
func readChoice(ctx context.Context, console session.Console, p session.Panel, options int) (choice int, cancelled bool, err error) {
	console.Show(p)
	for {
		ev, err := console.ReadKey(ctx)
		if err != nil {
			return 0, false, err
		}
		switch ev.Kind {
		case session.KeyCancel:
			return 0, true, nil
		case session.KeyPrintable:
			if ev.Rune >= '1' && ev.Rune <= '0'+rune(options) {
				return int(ev.Rune - '0'), false, nil
			}
		}
	}
}

// readNumber edits a number in [lo, hi]. Enter on an empty field picks def.
func readNumber(ctx context.Context, console session.Console, title, question string, lo, hi, def int) (n int, cancelled bool, err error) {
	digits := []rune{}
	var problem string
	for {
		lines := []session.Line{{Text: fmt.Sprintf("%s: %s_", question, string(digits))}}
		if problem != "" {
			lines = append(lines, session.Line{Text: problem, Tone: session.ToneBad})
		}
		console.Show(session.Panel{
			Title:  title,
			Lines:  lines,
			Footer: fmt.Sprintf("Enter to confirm (default %d) · Esc to go back", def),
		})

		ev, err := console.ReadKey(ctx)
		if err != nil {
			return 0, false, err
		}
		switch ev.Kind {
		case session.KeyCancel:
			return 0, true, nil
		case session.KeyBackspace:
			if len(digits) > 0 {
				digits = digits[:len(digits)-1]
			}
		case session.KeyPrintable:
			if ev.Rune >= '0' && ev.Rune <= '9' && len(digits) < 3 {
				digits = append(digits, ev.Rune)
			}
		case session.KeyEnter:
			if len(digits) == 0 {
				return def, false, nil
			}
			v, convErr := strconv.Atoi(string(digits))
			if convErr == nil && v >= lo && v <= hi {
				return v, false, nil
			}
			problem = fmt.Sprintf("Please enter a number between %d and %d.", lo, hi)
			digits = digits[:0]
		}
	}
}

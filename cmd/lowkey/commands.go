package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/profile"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/stats"
	"github.com/verte-zerg/lowkey/internal/store"
	"github.com/verte-zerg/lowkey/internal/tui"
)

var (
	profileYAML bool

	historyMode   string
	historySince  string
	historyLast   int
	historyWindow int
	historyAll    bool

	importOverwrite bool

	exportFormat string
	exportOut    string
	exportAll    bool
)

func newEnduranceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endurance",
		Short: "Run one endurance session",
		Args:  cobra.NoArgs,
		RunE:  runEnduranceCmd,
	}
	addPracticeFlags(cmd)
	return cmd
}

func runEnduranceCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.interactive(cmd.Context(), func(ctx context.Context, console *tui.Terminal, p *model.Profile, _ session.Line) error {
		_, err := a.trainer(console).Endurance(ctx, p)
		return err
	})
}

func newSpeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speed",
		Short: "Run one fixed-length speed test",
		Args:  cobra.NoArgs,
		RunE:  runSpeedCmd,
	}
	addPracticeFlags(cmd)
	return cmd
}

func runSpeedCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.interactive(cmd.Context(), func(ctx context.Context, console *tui.Terminal, p *model.Profile, _ session.Line) error {
		tr := a.trainer(console)
		d := a.cfg.Difficulty
		if d == 0 {
			choice, cancelled, err := readChoice(ctx, console, tui.DifficultyPanel(a.cfg.Words), int(model.Hard))
			if err != nil || cancelled {
				return err
			}
			d = model.Difficulty(choice)
		}
		_, err := tr.Speed(ctx, p, d, a.cfg.Words)
		return err
	})
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top users by best WPM",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	profiles, err := a.store.ListProfiles(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	standings := stats.Leaderboard(profiles, a.cfg.User, stats.LeaderboardSize)
	if err := stats.RenderLeaderboard(cmd.OutOrStdout(), standings); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [name]",
		Short: "Print a profile and its skill assessment",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProfileCmd,
	}
	cmd.Flags().BoolVar(&profileYAML, "yaml", false, "print the profile as YAML")
	return cmd
}

func runProfileCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	name, err := nameArg(a, args)
	if err != nil {
		return err
	}
	p, err := a.store.GetProfile(cmd.Context(), name)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if profileYAML {
		return profile.Export(out, p)
	}
	return writePanel(out, tui.ProfilePanel(p))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [name]",
		Short: "Print round history with learning curves",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyMode, "mode", "", "filter by mode: endurance or speed")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N rounds")
	cmd.Flags().IntVar(&historyWindow, "curve-window", stats.DefaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&historyAll, "all", false, "include every user")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	filter := model.HistoryFilter{Last: historyLast}
	switch model.Mode(historyMode) {
	case "":
	case model.ModeEndurance, model.ModeSpeed:
		filter.Mode = model.Mode(historyMode)
	default:
		return fmt.Errorf("invalid --mode %q (want endurance or speed)", historyMode)
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	if !historyAll {
		name, err := nameArg(a, args)
		if err != nil {
			return err
		}
		filter.User = name
	}
	report, err := stats.BuildReport(cmd.Context(), a.store, filter)
	if err != nil {
		return err
	}
	width := terminalWidth(80) - 20
	if err := report.Render(cmd.OutOrStdout(), historyWindow, width); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import profiles from a users.txt file or a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace profiles that already exist")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	profiles, skipped, err := readProfiles(args[0])
	if err != nil {
		return err
	}
	for _, line := range skipped {
		logErrf("skipping line %d: expected at least name, best WPM, best accuracy and tests\n", line)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	imported, kept, err := importProfiles(cmd.Context(), a.store, profiles, importOverwrite)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d profiles (%d existing kept).\n", imported, kept); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func readProfiles(path string) ([]model.Profile, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after reading.
			_ = cerr
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err := profile.ReadDocument(f)
		if err != nil {
			return nil, nil, err
		}
		return doc.Profiles, nil, nil
	default:
		return profile.ParseLegacy(f)
	}
}

// profileStore is the part of the store the import needs.
type profileStore interface {
	GetProfile(ctx context.Context, name string) (model.Profile, error)
	SaveProfile(ctx context.Context, p model.Profile) error
}

func importProfiles(ctx context.Context, st profileStore, profiles []model.Profile, overwrite bool) (imported, kept int, err error) {
	for _, p := range profiles {
		if !overwrite {
			_, err := st.GetProfile(ctx, p.Name)
			if err == nil {
				kept++
				continue
			}
			if !errors.Is(err, store.ErrProfileNotFound) {
				return imported, kept, err
			}
		}
		if err := st.SaveProfile(ctx, p); err != nil {
			return imported, kept, fmt.Errorf("failed to save %s: %w", p.Name, err)
		}
		imported++
	}
	return imported, kept, nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Export profiles as YAML or users.txt",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "yaml", "output format: yaml or legacy")
	cmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&exportAll, "all", false, "export every profile")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	if exportFormat != "yaml" && exportFormat != "legacy" {
		return fmt.Errorf("invalid --format %q (want yaml or legacy)", exportFormat)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var profiles []model.Profile
	if exportAll {
		profiles, err = a.store.ListProfiles(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}
	} else {
		name, err := nameArg(a, args)
		if err != nil {
			return err
		}
		p, err := a.store.GetProfile(cmd.Context(), name)
		if err != nil {
			return err
		}
		profiles = []model.Profile{p}
	}

	out := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close %s: %v\n", exportOut, cerr)
			}
		}()
		out = f
	}
	if exportFormat == "legacy" {
		return profile.WriteLegacy(out, profiles)
	}
	return profile.ExportAll(out, profiles, time.Now())
}

// nameArg picks the profile name from args, then the configured user.
func nameArg(a *app, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.User != "" {
		return a.cfg.User, nil
	}
	return "", fmt.Errorf("no user given: pass a name or --user")
}

// writePanel prints a panel as plain text.
func writePanel(w io.Writer, p session.Panel) error {
	lines := make([]string, 0, len(p.Lines)+2)
	if p.Title != "" {
		lines = append(lines, fmt.Sprintf("===== %s =====", p.Title))
	}
	for _, l := range p.Lines {
		lines = append(lines, l.Text)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

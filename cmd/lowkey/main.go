// Package main provides the CLI entrypoint for lowkey.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lowkey/internal/config"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/trainer"
)

const defaultWords = 20

var (
	rootUser        string
	rootWordListDir string
	rootVerbose     bool

	speedWords      int
	speedDifficulty string

	enduranceRoundWords  int
	enduranceMinAccuracy float64
	enduranceMinWPM      float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lowkey",
		Short:         "Terminal typing trainer",
		Long:          "LowkeyType: adaptive endurance rounds, fixed-length speed tests and per-user profiles.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runMenuCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&rootUser, "user", "u", "", "username (prompted when empty)")
	rootCmd.PersistentFlags().StringVar(&rootWordListDir, "wordlist-dir", "", "directory with wordbaseL/M/H.txt overrides")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "debug logging to the log file")
	addPracticeFlags(rootCmd)

	rootCmd.AddCommand(newEnduranceCmd())
	rootCmd.AddCommand(newSpeedCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

// addPracticeFlags registers the speed and endurance settings on cmd. The
// menu and the direct mode commands share them.
func addPracticeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&speedWords, "words", defaultWords, fmt.Sprintf("words per speed test (%d-%d)", trainer.MinSpeedWords, trainer.MaxSpeedWords))
	cmd.Flags().StringVar(&speedDifficulty, "difficulty", "", "speed test difficulty: easy, medium or hard (asked when empty)")
	cmd.Flags().IntVar(&enduranceRoundWords, "round-words", trainer.DefaultRoundWords, "words per endurance round")
	cmd.Flags().Float64Var(&enduranceMinAccuracy, "min-accuracy", trainer.DefaultMinAccuracy, "endurance accuracy threshold (%)")
	cmd.Flags().Float64Var(&enduranceMinWPM, "min-wpm", trainer.DefaultMinWPM, "endurance WPM threshold")
}

// resolveConfig merges the config file under the command line flags.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &rootUser, fileCfg.Practice.User)
	applyStringConfig(cmd, "wordlist-dir", &rootWordListDir, fileCfg.Practice.WordListDir)
	applyIntConfig(cmd, "words", &speedWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "difficulty", &speedDifficulty, fileCfg.Practice.Difficulty)
	applyIntConfig(cmd, "round-words", &enduranceRoundWords, fileCfg.Endurance.RoundWords)
	applyFloatConfig(cmd, "min-accuracy", &enduranceMinAccuracy, fileCfg.Endurance.MinAccuracy)
	applyFloatConfig(cmd, "min-wpm", &enduranceMinWPM, fileCfg.Endurance.MinWPM)

	cfg := model.Config{
		User:        strings.TrimSpace(rootUser),
		Words:       speedWords,
		WordListDir: rootWordListDir,
		RoundWords:  enduranceRoundWords,
		MinAccuracy: enduranceMinAccuracy,
		MinWPM:      enduranceMinWPM,
	}
	if cfg.WordListDir == "" {
		cfg.WordListDir = config.DefaultWordListDir()
	}
	if speedDifficulty != "" {
		d, err := model.ParseDifficulty(speedDifficulty)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid --difficulty: %w", err)
		}
		cfg.Difficulty = d
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if err := trainer.ValidateSpeedWords(cfg.Words); err != nil {
		return fmt.Errorf("--words: %w", err)
	}
	if cfg.RoundWords <= 0 {
		return fmt.Errorf("--round-words must be > 0")
	}
	if cfg.MinAccuracy < 0 || cfg.MinAccuracy > 100 {
		return fmt.Errorf("--min-accuracy must be between 0 and 100")
	}
	if cfg.MinWPM < 0 {
		return fmt.Errorf("--min-wpm must be >= 0")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || !hasFlag(cmd, name) || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || !hasFlag(cmd, name) || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || !hasFlag(cmd, name) || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func hasFlag(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Lookup(name) != nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lowkey configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# user = "ada"              # Username used instead of the prompt
# words = %d                # Words per speed test (%d-%d)
# difficulty = "medium"     # Speed test difficulty: easy, medium or hard
# wordlist-dir = %q         # Directory with wordbaseL/M/H.txt overrides

[endurance]
# round-words = %d          # Words per endurance round
# min-accuracy = %.1f       # Keep going while accuracy stays at or above this
# min-wpm = %.1f            # Keep going while WPM stays at or above this
`,
		defaultWords,
		trainer.MinSpeedWords,
		trainer.MaxSpeedWords,
		config.DefaultWordListDir(),
		trainer.DefaultRoundWords,
		trainer.DefaultMinAccuracy,
		trainer.DefaultMinWPM,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}


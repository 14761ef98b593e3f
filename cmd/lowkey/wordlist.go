package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lowkey/internal/config"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/wordfreq"
	"github.com/verte-zerg/lowkey/internal/wordlist"
)

var (
	wordlistLang  string
	wordlistSize  int
	wordlistForce bool
	wordlistLangs bool
)

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Build easy/medium/hard word lists from wordfreq",
		Long: "Downloads the wordfreq dataset and writes wordbaseL/M/H.txt into the word list " +
			"directory. Easy words are short and common, hard words long and rarer.",
		Args: cobra.NoArgs,
		RunE: runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistLang, "lang", "en", "language code")
	cmd.Flags().IntVar(&wordlistSize, "size", wordfreq.DefaultTierSize, "words per tier")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing word lists")
	cmd.Flags().BoolVar(&wordlistLangs, "languages", false, "list available languages and exit")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	outDir := cfg.WordListDir
	if !wordlistForce && !wordlistLangs {
		if err := ensureNoWordLists(outDir); err != nil {
			return err
		}
	}

	logErrf("Fetching wordfreq metadata...\n")
	wheel, err := wordfreq.Fetcher{}.Latest(cmd.Context(), config.DefaultCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		logErrf("Using cached wordfreq %s\n", wheel.Version)
	} else {
		logErrf("Downloaded wordfreq %s\n", wheel.Version)
	}

	if wordlistLangs {
		langs, err := wordfreq.Languages(wheel.Path)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(langs, " "))
		return err
	}

	ranked, err := wordfreq.Ranked(wheel.Path, wordlistLang)
	if err != nil {
		return err
	}
	tiers := wordfreq.Tiers(ranked, wordlistSize)
	if err := wordfreq.WriteTiers(outDir, tiers); err != nil {
		return err
	}
	for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		logErrf("Wrote %d %s words to %s\n", len(tiers[d]), d, filepath.Join(outDir, wordlist.FileName(d)))
	}
	return nil
}

func ensureNoWordLists(dir string) error {
	for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		path := filepath.Join(dir, wordlist.FileName(d))
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	return nil
}

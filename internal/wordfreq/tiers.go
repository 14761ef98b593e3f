package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/wordlist"
)

const dataPrefix = "wordfreq/data/"

// DefaultTierSize is the number of words written per tier.
const DefaultTierSize = 300

// Ranked returns the words for lang from the wheel, most frequent first.
// The large list is preferred over the small one.
func Ranked(wheelPath, lang string) ([]string, error) {
	zr, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()

	lang = strings.ToLower(lang)
	var file *zip.File
	for _, kind := range []string{"large", "small"} {
		if file = findData(zr.File, kind+"_"+lang); file != nil {
			break
		}
	}
	if file == nil {
		return nil, fmt.Errorf("no word data for language %q", lang)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	data, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}
	return rankedWords(data)
}

func findData(files []*zip.File, base string) *zip.File {
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if !strings.HasPrefix(name, dataPrefix) {
			continue
		}
		name = strings.TrimPrefix(name, dataPrefix)
		if name == base+".msgpack" || name == base+".msgpack.gz" {
			return f
		}
	}
	return nil
}

// rankedWords flattens a cBpack document: a header map followed by bins of
// words, each bin less frequent than the one before.
func rankedWords(data any) ([]string, error) {
	bins, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected word data root %T", data)
	}
	var words []string
	for _, bin := range bins {
		items, ok := bin.([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			if w, ok := item.(string); ok {
				words = append(words, w)
			}
		}
	}
	if len(words) == 0 {
		return nil, errors.New("word data holds no words")
	}
	return words, nil
}

// Languages lists the language codes with word data in the wheel.
func Languages(wheelPath string) ([]string, error) {
	zr, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = zr.Close()
	}()

	seen := make(map[string]struct{})
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if !strings.HasPrefix(name, dataPrefix) {
			continue
		}
		name = strings.TrimPrefix(name, dataPrefix)
		name = strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".msgpack")
		for _, kind := range []string{"large_", "small_"} {
			if strings.HasPrefix(name, kind) {
				seen[strings.TrimPrefix(name, kind)] = struct{}{}
			}
		}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs, nil
}

// tierBand bounds word length for one tier.
type tierBand struct {
	difficulty model.Difficulty
	minLen     int
	maxLen     int
}

var bands = []tierBand{
	{model.Easy, 2, 5},
	{model.Medium, 4, 8},
	{model.Hard, 7, 20},
}

// Tiers splits ranked words into the three difficulty lists. Each tier takes
// the most frequent unused words within its length band, so easy words are
// short and common and hard words are long and rarer.
func Tiers(ranked []string, size int) map[model.Difficulty][]string {
	used := make(map[string]struct{})
	out := make(map[model.Difficulty][]string, len(bands))
	for _, band := range bands {
		var tier []string
		for _, w := range ranked {
			if len(tier) >= size {
				break
			}
			if _, ok := used[w]; ok || !practiceWord(w) {
				continue
			}
			n := utf8.RuneCountInString(w)
			if n < band.minLen || n > band.maxLen {
				continue
			}
			used[w] = struct{}{}
			tier = append(tier, w)
		}
		out[band.difficulty] = tier
	}
	return out
}

// practiceWord keeps lowercase letter-only words that can be typed key by key.
func practiceWord(w string) bool {
	if !wordlist.Typeable(w) {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// WriteTiers writes each tier to dir under its word list file name.
func WriteTiers(dir string, tiers map[model.Difficulty][]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	for _, band := range bands {
		words := tiers[band.difficulty]
		if len(words) == 0 {
			return fmt.Errorf("%s tier is empty", band.difficulty)
		}
		path := filepath.Join(dir, wordlist.FileName(band.difficulty))
		data := strings.Join(words, "\n") + "\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return writeAttribution(dir)
}

func writeAttribution(dir string) error {
	text := strings.Join([]string{
		"Word lists generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"https://creativecommons.org/licenses/by-sa/4.0/",
		"Changes were made: filtered to lowercase alphabetic words and split into tiers by length.",
		"",
	}, "\n")
	path := filepath.Join(dir, "ATTRIBUTION.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

// Package wordlist loads difficulty-tiered word lists.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/lowkey/internal/model"
)

//go:embed data/*.txt
var builtin embed.FS

// ErrEmpty is returned when a word list holds no usable words.
var ErrEmpty = errors.New("word list is empty")

// FileName returns the word list file name for a tier.
func FileName(d model.Difficulty) string {
	switch d {
	case model.Medium:
		return "wordbaseM.txt"
	case model.Hard:
		return "wordbaseH.txt"
	default:
		return "wordbaseL.txt"
	}
}

// LoadWords reads one or more whitespace-separated words per line from path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		words = append(words, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	words = Filter(words, Typeable)
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// Library resolves tiered word lists. Files in Dir override the built-in
// lists; a missing file falls back to the built-in one.
type Library struct {
	Dir string
}

// Words returns the word pool for d.
func (l Library) Words(d model.Difficulty) ([]string, error) {
	name := FileName(d)
	if l.Dir != "" {
		path := filepath.Join(l.Dir, name)
		words, err := LoadWords(path)
		switch {
		case err == nil:
			return words, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	file, err := builtin.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to open built-in %s: %w", name, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return readWords(file)
}

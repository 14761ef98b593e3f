// Package wordfreq builds tiered word lists from the wordfreq dataset.
package wordfreq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/lowkey/internal/logging"
)

// DefaultEndpoint is the PyPI metadata URL for the wordfreq package.
const DefaultEndpoint = "https://pypi.org/pypi/wordfreq/json"

// Wheel is a wordfreq wheel on disk.
type Wheel struct {
	Version string
	Path    string
	Cached  bool
}

type release struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []releaseFile `json:"urls"`
}

type releaseFile struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	PackageType string `json:"packagetype"`
}

// Fetcher downloads the latest wordfreq wheel.
type Fetcher struct {
	Client   *http.Client
	Endpoint string
}

func (f Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return &http.Client{Timeout: 60 * time.Second}
}

func (f Fetcher) endpoint() string {
	if f.Endpoint != "" {
		return f.Endpoint
	}
	return DefaultEndpoint
}

// Latest resolves the newest release and stores its wheel in cacheDir. A
// wheel already in the cache is reused.
func (f Fetcher) Latest(ctx context.Context, cacheDir string) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, errors.New("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	var rel release
	if err := f.get(ctx, f.endpoint(), func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&rel)
	}); err != nil {
		return Wheel{}, fmt.Errorf("failed to read release metadata: %w", err)
	}
	if rel.Info.Version == "" {
		return Wheel{}, errors.New("release metadata has no version")
	}
	file, ok := pickWheel(rel.URLs)
	if !ok {
		return Wheel{}, errors.New("no wordfreq wheel in release")
	}

	dest := filepath.Join(cacheDir, filepath.Base(file.Filename))
	if _, err := os.Stat(dest); err == nil {
		logging.Logger.Debug("reusing cached wheel", "path", dest)
		return Wheel{Version: rel.Info.Version, Path: dest, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	tmp, err := os.CreateTemp(cacheDir, "wordfreq-*.whl")
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := f.get(ctx, file.URL, func(body io.Reader) error {
		_, err := io.Copy(tmp, body)
		return err
	}); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Wheel{}, fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return Wheel{}, fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	logging.Logger.Info("downloaded wheel", "version", rel.Info.Version, "path", dest)
	return Wheel{Version: rel.Info.Version, Path: dest}, nil
}

func (f Fetcher) get(ctx context.Context, url string, read func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return read(resp.Body)
}

// pickWheel prefers the pure-python wheel.
func pickWheel(files []releaseFile) (releaseFile, bool) {
	var fallback *releaseFile
	for i, f := range files {
		if f.PackageType != "bdist_wheel" {
			continue
		}
		if strings.HasSuffix(f.Filename, "py3-none-any.whl") {
			return f, true
		}
		if fallback == nil {
			fallback = &files[i]
		}
	}
	if fallback == nil {
		return releaseFile{}, false
	}
	return *fallback, true
}

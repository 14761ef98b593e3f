// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/lowkey/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("profile not found")

// Store wraps SQLite access for profiles and round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			best_wpm REAL NOT NULL,
			best_accuracy REAL NOT NULL,
			tests_completed INTEGER NOT NULL,
			endurance_high_score INTEGER NOT NULL,
			average_accuracy REAL NOT NULL,
			total_chars_typed INTEGER NOT NULL,
			total_correct_chars INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			round_no INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			total_chars INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_user_ended_at ON rounds(user_name, ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_run_id ON rounds(run_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

const profileColumns = `name, best_wpm, best_accuracy, tests_completed, endurance_high_score,
	average_accuracy, total_chars_typed, total_correct_chars`

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.Name, &p.BestWPM, &p.BestAccuracy, &p.TestsCompleted, &p.EnduranceHighScore,
		&p.AverageAccuracy, &p.TotalCharsTyped, &p.TotalCorrectChars)
	return p, err
}

// GetProfile loads the profile stored under name.
func (s *Store) GetProfile(ctx context.Context, name string) (model.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// LoadOrCreateProfile returns the named profile, creating and saving a
// zeroed one when none exists yet.
func (s *Store) LoadOrCreateProfile(ctx context.Context, name string) (p model.Profile, created bool, err error) {
	p, err = s.GetProfile(ctx, name)
	if err == nil {
		return p, false, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return model.Profile{}, false, err
	}
	p = model.Profile{Name: name}
	if err := s.SaveProfile(ctx, p); err != nil {
		return model.Profile{}, false, err
	}
	return p, true, nil
}

// SaveProfile inserts or replaces the profile keyed by its name.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (`+profileColumns+`, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			best_wpm = excluded.best_wpm,
			best_accuracy = excluded.best_accuracy,
			tests_completed = excluded.tests_completed,
			endurance_high_score = excluded.endurance_high_score,
			average_accuracy = excluded.average_accuracy,
			total_chars_typed = excluded.total_chars_typed,
			total_correct_chars = excluded.total_correct_chars,
			updated_at = excluded.updated_at`,
		p.Name,
		p.BestWPM,
		p.BestAccuracy,
		p.TestsCompleted,
		p.EnduranceHighScore,
		p.AverageAccuracy,
		p.TotalCharsTyped,
		p.TotalCorrectChars,
		time.Now().UTC().Format(timeLayout),
	)
	return err
}

// ListProfiles returns every profile ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// InsertRound appends a finished round to history.
func (s *Store) InsertRound(ctx context.Context, r model.RoundRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (run_id, user_name, mode, difficulty, round_no, wpm, accuracy, total_chars, correct_chars, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.User,
		string(r.Mode),
		int(r.Difficulty),
		r.Round,
		r.WPM,
		r.Accuracy,
		r.TotalChars,
		r.CorrectChars,
		r.DurationMs,
		r.EndedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns history rows matching filter, oldest first.
func (s *Store) ListRounds(ctx context.Context, filter model.HistoryFilter) ([]model.RoundRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.User != "" {
		clauses = append(clauses, "user_name = ?")
		args = append(args, filter.User)
	}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(filter.Mode))
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, run_id, user_name, mode, difficulty, round_no, wpm, accuracy, total_chars, correct_chars, duration_ms, ended_at
		FROM rounds
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundRecord
	for rows.Next() {
		var r model.RoundRecord
		var mode, endedAt string
		var difficulty int
		if err := rows.Scan(&r.ID, &r.RunID, &r.User, &mode, &difficulty, &r.Round, &r.WPM, &r.Accuracy,
			&r.TotalChars, &r.CorrectChars, &r.DurationMs, &endedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, err
		}
		r.Mode = model.Mode(mode)
		r.Difficulty = model.Difficulty(difficulty)
		r.EndedAt = parsed
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(rounds) > filter.Last {
		rounds = rounds[len(rounds)-filter.Last:]
	}
	return rounds, nil
}

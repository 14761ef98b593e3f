// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects a word-list tier.
type Difficulty int

// Difficulty tiers, ordered from the most common words to the rarest.
const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// String returns the lowercase tier name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Label returns the tier name shown to the user.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "LIGHT"
	case Medium:
		return "MEDIUM"
	case Hard:
		return "HARD"
	default:
		return "UNKNOWN"
	}
}

// ParseDifficulty accepts a tier name or its 1-3 menu number.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "light", "l", "1":
		return Easy, nil
	case "medium", "m", "2":
		return Medium, nil
	case "hard", "h", "3":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// Mode names the kind of practice a round belongs to.
type Mode string

// Practice modes.
const (
	ModeEndurance Mode = "endurance"
	ModeSpeed     Mode = "speed"
)

// Config defines practice settings.
type Config struct {
	User        string
	Words       int
	Difficulty  Difficulty
	WordListDir string
	RoundWords  int
	MinAccuracy float64
	MinWPM      float64
}

// Profile is the per-user record of practice statistics.
type Profile struct {
	Name               string  `yaml:"name"`
	BestWPM            float64 `yaml:"best_wpm"`
	BestAccuracy       float64 `yaml:"best_accuracy"`
	TestsCompleted     int     `yaml:"tests_completed"`
	EnduranceHighScore int     `yaml:"endurance_high_score"`
	AverageAccuracy    float64 `yaml:"average_accuracy"`
	TotalCharsTyped    int     `yaml:"total_chars_typed"`
	TotalCorrectChars  int     `yaml:"total_correct_chars"`
}

// TypingResult is the snapshot produced when a session finishes.
type TypingResult struct {
	TotalChars   int
	CorrectChars int
	Mistyped     int
	Missed       int
	Extra        int
	// Accuracy is keystroke based: correct keystrokes over all keystrokes.
	Accuracy float64
	// PositionAccuracy compares the final typed text to the target.
	PositionAccuracy float64
	WPM              float64
	TimeTaken        time.Duration
	Text             string
}

// RoundRecord is one finished session stored in history.
type RoundRecord struct {
	ID           int64
	RunID        string
	User         string
	Mode         Mode
	Difficulty   Difficulty
	Round        int
	WPM          float64
	Accuracy     float64
	TotalChars   int
	CorrectChars int
	DurationMs   int64
	EndedAt      time.Time
}

// HistoryFilter narrows history queries.
type HistoryFilter struct {
	User  string
	Mode  Mode
	Since *time.Time
	Last  int
}

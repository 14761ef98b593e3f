// Package stats contains leaderboard ranking, skill assessment and history
// reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/lowkey/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func minMax(values []float64) (float64, float64) {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Summary aggregates a slice of history rounds.
type Summary struct {
	Rounds      int
	Runs        int
	AvgWPM      float64
	BestWPM     float64
	AvgAccuracy float64
	TotalChars  int
	TimeTyping  time.Duration
}

// Summarize aggregates rounds. Averages are per round.
func Summarize(rounds []model.RoundRecord) Summary {
	s := Summary{Rounds: len(rounds)}
	if len(rounds) == 0 {
		return s
	}
	runs := make(map[string]struct{}, len(rounds))
	var wpmSum, accSum float64
	for _, r := range rounds {
		runs[r.RunID] = struct{}{}
		wpmSum += r.WPM
		accSum += r.Accuracy
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
		s.TotalChars += r.TotalChars
		s.TimeTyping += time.Duration(r.DurationMs) * time.Millisecond
	}
	s.Runs = len(runs)
	s.AvgWPM = wpmSum / float64(len(rounds))
	s.AvgAccuracy = accSum / float64(len(rounds))
	return s
}

// RenderSummary prints a summary for rounds.
func RenderSummary(w io.Writer, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	s := Summarize(rounds)
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d (%d runs)", s.Rounds, s.Runs),
		fmt.Sprintf("Avg WPM: %.2f", s.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", s.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy),
		fmt.Sprintf("Characters typed: %d", s.TotalChars),
		fmt.Sprintf("Time typing: %s", s.TimeTyping.Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints moving-average sparklines for WPM and accuracy.
// Series longer than width keep their most recent values.
func RenderCurves(w io.Writer, rounds []model.RoundRecord, window, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	wpms := make([]float64, len(rounds))
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		wpms[i] = r.WPM
		accs[i] = r.Accuracy
	}
	wpms = tail(MovingAverage(wpms, window), width)
	accs = tail(MovingAverage(accs, window), width)

	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", window); err != nil {
		return err
	}
	headers := []string{"Series", "Curve", "Min", "Max"}
	rows := make([][]string, 0, 2)
	for _, series := range []struct {
		name   string
		values []float64
	}{{"WPM", wpms}, {"Accuracy", accs}} {
		lo, hi := minMax(series.values)
		rows = append(rows, []string{
			series.name,
			Sparkline(series.values),
			fmt.Sprintf("%.1f", lo),
			fmt.Sprintf("%.1f", hi),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func tail(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// RenderRounds prints one row per round, oldest first.
func RenderRounds(w io.Writer, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}
	headers := []string{"When", "Mode", "Level", "Round", "WPM", "Accuracy", "Chars"}
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Mode),
			r.Difficulty.Label(),
			fmt.Sprintf("%d", r.Round),
			fmt.Sprintf("%.2f", r.WPM),
			fmt.Sprintf("%.2f%%", r.Accuracy),
			fmt.Sprintf("%d", r.TotalChars),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{3: true, 4: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

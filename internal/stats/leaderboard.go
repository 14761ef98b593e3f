package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/lowkey/internal/model"
)

// LeaderboardSize is the number of top rows shown.
const LeaderboardSize = 5

// Standing is one leaderboard row. You marks the current user's row;
// Appended marks that row when it was added below the top rows.
type Standing struct {
	Rank     int
	Profile  model.Profile
	You      bool
	Appended bool
}

// Leaderboard ranks profiles by best WPM, highest first. Ties keep their
// input order. The top size rows are returned, followed by the row for
// current when it ranks below them.
func Leaderboard(profiles []model.Profile, current string, size int) []Standing {
	if size <= 0 {
		size = LeaderboardSize
	}
	ranked := make([]model.Profile, len(profiles))
	copy(ranked, profiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BestWPM > ranked[j].BestWPM
	})

	out := make([]Standing, 0, size+1)
	for i, p := range ranked {
		you := current != "" && p.Name == current
		if i < size {
			out = append(out, Standing{Rank: i + 1, Profile: p, You: you})
			continue
		}
		if you {
			out = append(out, Standing{Rank: i + 1, Profile: p, You: true, Appended: true})
			break
		}
	}
	return out
}

// LeaderboardRows formats standings as table cells. Only an appended row is
// labelled "(You)".
func LeaderboardRows(standings []Standing) (headers []string, rows [][]string) {
	headers = []string{"Rank", "Username", "WPM", "Accuracy", "Tests", "Endurance"}
	rows = make([][]string, 0, len(standings))
	for _, s := range standings {
		name := s.Profile.Name
		if s.Appended {
			name += " (You)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Rank),
			name,
			fmt.Sprintf("%.2f", s.Profile.BestWPM),
			fmt.Sprintf("%.2f%%", s.Profile.BestAccuracy),
			fmt.Sprintf("%d", s.Profile.TestsCompleted),
			fmt.Sprintf("%d", s.Profile.EnduranceHighScore),
		})
	}
	return headers, rows
}

// RenderLeaderboard prints standings as a plain table.
func RenderLeaderboard(w io.Writer, standings []Standing) error {
	if len(standings) == 0 {
		_, err := fmt.Fprintln(w, "No users found.")
		return err
	}
	headers, rows := LeaderboardRows(standings)
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true})
	if _, err := fmt.Fprintln(w, lines[0]); err != nil {
		return err
	}
	for i, line := range lines[1:] {
		if i > 0 && standings[i].Rank != standings[i-1].Rank+1 {
			if _, err := fmt.Fprintln(w, "..."); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

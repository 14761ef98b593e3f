package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/lowkey/internal/model"
)

// DefaultCurveWindow is the moving-average window used by history reports.
const DefaultCurveWindow = 5

// RoundLister loads history rounds.
type RoundLister interface {
	ListRounds(ctx context.Context, filter model.HistoryFilter) ([]model.RoundRecord, error)
}

// Report contains the rounds a history view renders.
type Report struct {
	Filter model.HistoryFilter
	Rounds []model.RoundRecord
}

// BuildReport loads rounds matching filter, oldest first.
func BuildReport(ctx context.Context, src RoundLister, filter model.HistoryFilter) (Report, error) {
	rounds, err := src.ListRounds(ctx, filter)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load rounds: %w", err)
	}
	if filter.Last > 0 && len(rounds) > filter.Last {
		rounds = rounds[len(rounds)-filter.Last:]
	}
	return Report{Filter: filter, Rounds: rounds}, nil
}

// Render prints the summary, curves and round table.
func (r Report) Render(w io.Writer, window, width int) error {
	if err := RenderSummary(w, r.Rounds); err != nil {
		return err
	}
	if len(r.Rounds) == 0 {
		return nil
	}
	if err := RenderCurves(w, r.Rounds, window, width); err != nil {
		return err
	}
	return RenderRounds(w, r.Rounds)
}

package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "lowkey.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		rec := model.RoundRecord{
			RunID:        "run-a",
			User:         "ada",
			Mode:         model.ModeEndurance,
			Difficulty:   model.Medium,
			Round:        i + 1,
			WPM:          40 + float64(i),
			Accuracy:     90,
			TotalChars:   50,
			CorrectChars: 45,
			DurationMs:   15000,
			EndedAt:      time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
		}
		id, err := st.InsertRound(ctx, rec)
		if err != nil {
			t.Fatalf("insert round: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := st.InsertRound(ctx, model.RoundRecord{RunID: "run-b", User: "bob", Mode: model.ModeSpeed, Difficulty: model.Easy, Round: 1, EndedAt: time.Unix(0, 0)}); err != nil {
		t.Fatalf("insert round: %v", err)
	}

	report, err := BuildReport(ctx, st, model.HistoryFilter{User: "ada", Last: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(report.Rounds))
	}
	if report.Rounds[0].ID != ids[1] || report.Rounds[1].ID != ids[2] {
		t.Fatalf("unexpected round ids: %+v", report.Rounds)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, 2, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Rounds: 2 (1 runs)", "Best WPM: 42.00", "Learning Curves", "endurance"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Report{}).Render(&buf, 5, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No rounds found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

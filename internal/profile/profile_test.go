package profile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lowkey/internal/model"
)

func TestParseLegacyFullLines(t *testing.T) {
	in := "ada 72.50 98.10 12 140 93.40 2400 2240\nbob 40.00 90.00 3 20 88.00 600 528\n"
	profiles, skipped, err := ParseLegacy(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, profiles, 2)
	assert.Equal(t, model.Profile{
		Name:               "ada",
		BestWPM:            72.5,
		BestAccuracy:       98.1,
		TestsCompleted:     12,
		EnduranceHighScore: 140,
		AverageAccuracy:    93.4,
		TotalCharsTyped:    2400,
		TotalCorrectChars:  2240,
	}, profiles[0])
}

func TestParseLegacyEstimatesOldLines(t *testing.T) {
	profiles, _, err := ParseLegacy(strings.NewReader("carol 55.0 90.0 4\n"))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	p := profiles[0]
	assert.Equal(t, 800, p.TotalCharsTyped)
	assert.Equal(t, 720, p.TotalCorrectChars)
	assert.InDelta(t, 81.0, p.AverageAccuracy, 1e-9)
	assert.Equal(t, 0, p.EnduranceHighScore)
}

func TestParseLegacyNoEstimateWithoutTests(t *testing.T) {
	profiles, _, err := ParseLegacy(strings.NewReader("dan 10 50 0 0 0 0 0\n"))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 0, profiles[0].TotalCharsTyped)
	assert.Equal(t, 0.0, profiles[0].AverageAccuracy)
}

func TestParseLegacySkipsShortLines(t *testing.T) {
	in := "ok 1 2 3\n\nshort 1 2\nbad 1 x 3 4\npartial 1 2 3 nope 9\n"
	profiles, skipped, err := ParseLegacy(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, skipped)
	require.Len(t, profiles, 2)
	assert.Equal(t, "ok", profiles[0].Name)
	assert.Equal(t, "partial", profiles[1].Name)
	assert.Equal(t, 0, profiles[1].EnduranceHighScore)
	assert.Equal(t, 600, profiles[1].TotalCharsTyped)
}

func TestWriteLegacyRoundTrip(t *testing.T) {
	want := []model.Profile{{
		Name: "ada", BestWPM: 61.25, BestAccuracy: 97.5, TestsCompleted: 5,
		EnduranceHighScore: 70, AverageAccuracy: 92.75, TotalCharsTyped: 1000, TotalCorrectChars: 927,
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteLegacy(&buf, want))
	assert.Equal(t, "ada 61.25 97.50 5 70 92.75 1000 927\n", buf.String())

	got, _, err := ParseLegacy(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteLegacyRejectsSpacedName(t *testing.T) {
	err := WriteLegacy(&bytes.Buffer{}, []model.Profile{{Name: "two words"}})
	assert.Error(t, err)
}

func TestExportProfile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, model.Profile{Name: "ada", BestWPM: 50, TestsCompleted: 2}))
	out := buf.String()
	assert.Contains(t, out, "name: ada")
	assert.Contains(t, out, "best_wpm: 50")
	assert.Contains(t, out, "tests_completed: 2")
}

func TestExportAllReadBack(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profiles := []model.Profile{{Name: "ada", BestWPM: 50}, {Name: "bob", AverageAccuracy: 88.5}}
	var buf bytes.Buffer
	require.NoError(t, ExportAll(&buf, profiles, at))

	doc, err := ReadDocument(&buf)
	require.NoError(t, err)
	assert.True(t, at.Equal(doc.ExportedAt))
	assert.Equal(t, profiles, doc.Profiles)
}

func TestExportAllEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportAll(&buf, nil, time.Unix(0, 0)))
	assert.Contains(t, buf.String(), "profiles: []")
}

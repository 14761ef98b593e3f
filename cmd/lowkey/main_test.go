package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lowkey/internal/config"
	"github.com/verte-zerg/lowkey/internal/model"
	"github.com/verte-zerg/lowkey/internal/session"
	"github.com/verte-zerg/lowkey/internal/store"
	"github.com/verte-zerg/lowkey/internal/wordlist"
)

type scriptedConsole struct {
	keys   []session.KeyEvent
	panels []session.Panel
}

func (c *scriptedConsole) ReadKey(context.Context) (session.KeyEvent, error) {
	if len(c.keys) == 0 {
		return session.KeyEvent{}, session.ErrConsoleClosed
	}
	ev := c.keys[0]
	c.keys = c.keys[1:]
	return ev, nil
}

func (c *scriptedConsole) Render(session.Frame) {}

func (c *scriptedConsole) Show(p session.Panel) { c.panels = append(c.panels, p) }

func keys(s string, extra ...session.KeyEvent) []session.KeyEvent {
	return append(session.KeysFromString(s), extra...)
}

func TestReadChoiceIgnoresOutOfRange(t *testing.T) {
	c := &scriptedConsole{keys: keys("x902")}
	choice, cancelled, err := readChoice(context.Background(), c, session.Panel{Title: "Menu"}, 3)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, 2, choice)
	require.Len(t, c.panels, 1)
	assert.Equal(t, "Menu", c.panels[0].Title)
}

func TestReadChoiceCancel(t *testing.T) {
	c := &scriptedConsole{keys: []session.KeyEvent{session.Cancel()}}
	_, cancelled, err := readChoice(context.Background(), c, session.Panel{}, 5)
	require.NoError(t, err)
	assert.True(t, cancelled)
}

func TestReadChoiceConsoleClosed(t *testing.T) {
	_, _, err := readChoice(context.Background(), &scriptedConsole{}, session.Panel{}, 5)
	assert.ErrorIs(t, err, session.ErrConsoleClosed)
}

func TestReadNumberDefault(t *testing.T) {
	c := &scriptedConsole{keys: []session.KeyEvent{session.Enter()}}
	n, cancelled, err := readNumber(context.Background(), c, "Test", "How many?", 15, 50, 20)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, 20, n)
}

func TestReadNumberRejectsOutOfRange(t *testing.T) {
	c := &scriptedConsole{keys: keys("7", session.Enter())}
	c.keys = append(c.keys, keys("2x6", session.Backspace())...)
	c.keys = append(c.keys, keys("5", session.Enter())...)

	n, cancelled, err := readNumber(context.Background(), c, "Test", "How many?", 15, 50, 20)
	require.NoError(t, err)
	assert.False(t, cancelled)
	assert.Equal(t, 25, n)

	var sawProblem bool
	for _, p := range c.panels {
		for _, l := range p.Lines {
			if l.Tone == session.ToneBad && strings.Contains(l.Text, "between 15 and 50") {
				sawProblem = true
			}
		}
	}
	assert.True(t, sawProblem)
}

func TestReadNumberLimitsDigits(t *testing.T) {
	c := &scriptedConsole{keys: keys("12345", session.Enter())}
	_, _, err := readNumber(context.Background(), c, "Test", "How many?", 1, 999, 5)
	require.NoError(t, err)
	last := c.panels[len(c.panels)-1]
	assert.Equal(t, "How many?: 123_", last.Lines[0].Text)
}

func TestReadNumberCancel(t *testing.T) {
	c := &scriptedConsole{keys: keys("3", session.Cancel())}
	_, cancelled, err := readNumber(context.Background(), c, "Test", "How many?", 1, 9, 5)
	require.NoError(t, err)
	assert.True(t, cancelled)
}

type fakeProfiles struct {
	profiles map[string]model.Profile
	getErr   error
}

func (f *fakeProfiles) GetProfile(_ context.Context, name string) (model.Profile, error) {
	if f.getErr != nil {
		return model.Profile{}, f.getErr
	}
	p, ok := f.profiles[name]
	if !ok {
		return model.Profile{}, store.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveProfile(_ context.Context, p model.Profile) error {
	f.profiles[p.Name] = p
	return nil
}

func TestImportProfilesKeepsExisting(t *testing.T) {
	st := &fakeProfiles{profiles: map[string]model.Profile{"ada": {Name: "ada", BestWPM: 90}}}
	in := []model.Profile{{Name: "ada", BestWPM: 40}, {Name: "bob", BestWPM: 55}}

	imported, kept, err := importProfiles(context.Background(), st, in, false)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, kept)
	assert.InDelta(t, 90, st.profiles["ada"].BestWPM, 1e-9)
	assert.InDelta(t, 55, st.profiles["bob"].BestWPM, 1e-9)
}

func TestImportProfilesOverwrite(t *testing.T) {
	st := &fakeProfiles{profiles: map[string]model.Profile{"ada": {Name: "ada", BestWPM: 90}}}
	imported, kept, err := importProfiles(context.Background(), st, []model.Profile{{Name: "ada", BestWPM: 40}}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 0, kept)
	assert.InDelta(t, 40, st.profiles["ada"].BestWPM, 1e-9)
}

func TestImportProfilesStoreError(t *testing.T) {
	boom := errors.New("disk gone")
	st := &fakeProfiles{profiles: map[string]model.Profile{}, getErr: boom}
	_, _, err := importProfiles(context.Background(), st, []model.Profile{{Name: "ada"}}, false)
	assert.ErrorIs(t, err, boom)
}

func TestApplyConfigRespectsChangedFlags(t *testing.T) {
	var words int
	var user string
	var minWPM float64
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&words, "words", 20, "")
	cmd.Flags().StringVar(&user, "user", "", "")
	cmd.Flags().Float64Var(&minWPM, "min-wpm", 30, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--words", "30"}))

	fileWords, fileUser, fileWPM := 40, "ada", 45.0
	applyIntConfig(cmd, "words", &words, &fileWords)
	applyStringConfig(cmd, "user", &user, &fileUser)
	applyFloatConfig(cmd, "min-wpm", &minWPM, &fileWPM)
	applyStringConfig(cmd, "missing", &user, nil)

	assert.Equal(t, 30, words)
	assert.Equal(t, "ada", user)
	assert.InDelta(t, 45, minWPM, 1e-9)
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	tmpl := defaultConfigTemplate()
	require.NoError(t, os.WriteFile(path, []byte(tmpl), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Words)

	var lines []string
	for _, line := range strings.Split(tmpl, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Words)
	assert.Equal(t, defaultWords, *cfg.Practice.Words)
	assert.Equal(t, "medium", *cfg.Practice.Difficulty)
	assert.Equal(t, 10, *cfg.Endurance.RoundWords)
	assert.InDelta(t, 85, *cfg.Endurance.MinAccuracy, 1e-9)
	assert.InDelta(t, 30, *cfg.Endurance.MinWPM, 1e-9)
}

func TestValidateConfig(t *testing.T) {
	ok := model.Config{Words: 20, RoundWords: 10, MinAccuracy: 85, MinWPM: 30}
	assert.NoError(t, validateConfig(ok))

	bad := ok
	bad.Words = 60
	assert.Error(t, validateConfig(bad))
	bad = ok
	bad.RoundWords = 0
	assert.Error(t, validateConfig(bad))
	bad = ok
	bad.MinAccuracy = 101
	assert.Error(t, validateConfig(bad))
	bad = ok
	bad.MinWPM = -1
	assert.Error(t, validateConfig(bad))
}

func TestWritePanel(t *testing.T) {
	var buf bytes.Buffer
	err := writePanel(&buf, session.Panel{
		Title: "Profile",
		Lines: []session.Line{{Text: "Username: ada"}, {Text: "Best WPM: 88.00", Tone: session.ToneGood}},
	})
	require.NoError(t, err)
	assert.Equal(t, "===== Profile =====\nUsername: ada\nBest WPM: 88.00\n", buf.String())
}

func TestNameArg(t *testing.T) {
	a := &app{cfg: model.Config{User: "ada"}}
	name, err := nameArg(a, []string{"bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", name)

	name, err = nameArg(a, nil)
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	_, err = nameArg(&app{}, nil)
	assert.Error(t, err)
}

func TestGreeting(t *testing.T) {
	created := greeting(model.Profile{Name: "ada"}, true)
	assert.Equal(t, session.ToneGood, created.Tone)
	assert.Contains(t, created.Text, "Created profile for ada")

	back := greeting(model.Profile{Name: "ada", BestWPM: 61.5, TestsCompleted: 4, EnduranceHighScore: 40}, false)
	assert.Contains(t, back.Text, "Welcome back, ada!")
	assert.Contains(t, back.Text, "Best WPM: 61.50")
	assert.Contains(t, back.Text, "Endurance high score: 40 words")
}

func TestEnsureNoWordLists(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ensureNoWordLists(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, wordlist.FileName(model.Medium)), []byte("word\n"), 0o644))
	err := ensureNoWordLists(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}

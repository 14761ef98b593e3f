package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lowkey/internal/model"
)

func TestBuiltinTiers(t *testing.T) {
	lib := Library{}
	for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		words, err := lib.Words(d)
		require.NoError(t, err, d.String())
		assert.GreaterOrEqual(t, len(words), 50, d.String())
		for _, w := range words {
			assert.True(t, Typeable(w), "%q in %s", w, d)
		}
	}
}

func TestLibraryOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordbaseH.txt"), []byte("alpha beta\n\ngamma\n"), 0o644))

	lib := Library{Dir: dir}
	words, err := lib.Words(model.Hard)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, words)

	// No override for easy: built-in list is used.
	easy, err := lib.Words(model.Easy)
	require.NoError(t, err)
	assert.NotEmpty(t, easy)
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))
	_, err := LoadWords(path)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Library{Dir: filepath.Dir(path)}.Words(model.Easy)
	assert.NoError(t, err)
}

func TestLibraryEmptyOverrideFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wordbaseM.txt"), []byte("é\n"), 0o644))
	_, err := Library{Dir: dir}.Words(model.Medium)
	assert.ErrorIs(t, err, ErrEmpty)
}

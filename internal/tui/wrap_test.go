package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []bool{true}, 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected underlined current-word style for cursor rune")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), []bool{true}, -1)
	if len(runes) != 1 {
		t.Fatalf("expected 1 rune, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for completed rune")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []bool{true, false}, 2)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for second rune")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes([]rune("one two"), []bool{true}, 1)
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesPreviewHasNoHighlight(t *testing.T) {
	runes := buildStyledRunes([]rune("one two"), nil, -1)
	for i, r := range runes {
		want := pendingStyle.Render(string([]rune("one two")[i]))
		if r.s != want {
			t.Fatalf("rune %d: expected pending style", i)
		}
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), []bool{true, false}, 2)
	if len(runes) != 3 {
		t.Fatalf("expected 3 runes, got %d", len(runes))
	}
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
	if !runes[1].isSpace {
		t.Fatalf("wrong space must still wrap as a space")
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "aaa bbb ccc" {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' '})
	}
	got := wrapStyledRunes(runes, 7)
	if got != "aaa bbb\nccc" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	got = wrapStyledRunes(runes, 5)
	if got != "aaa\nbbb\nccc" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	runes := make([]styledRune, 0)
	for _, r := range "abcdefgh" {
		runes = append(runes, styledRune{s: string(r), width: 1})
	}
	got := wrapStyledRunes(runes, 3)
	if strings.Count(got, "\n") != 2 || !strings.HasPrefix(got, "abc\n") {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

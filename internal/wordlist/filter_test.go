package wordlist

import "testing"

func TestTypeable(t *testing.T) {
	if !Typeable("hello") {
		t.Fatalf("expected hello to be typeable")
	}
	if !Typeable("co-op") {
		t.Fatalf("expected co-op to be typeable")
	}
	for _, word := range []string{"", "résumé", "naïve", "don’t", "two words", "tab\tbed"} {
		if Typeable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	got := Filter([]string{"b", "", "a", "ü"}, Typeable)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("unexpected filter result: %v", got)
	}
}

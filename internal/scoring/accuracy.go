// Package scoring compares typed text against a target.
package scoring

// Breakdown classifies every character of a typed attempt.
type Breakdown struct {
	Correct  int
	Mistyped int
	Missed   int
	Extra    int
	// Accuracy is 100 * (1 - errors/len(target)), clamped to [0, 100].
	Accuracy float64
}

// TotalErrors returns mistyped + missed + extra.
func (b Breakdown) TotalErrors() int {
	return b.Mistyped + b.Missed + b.Extra
}

// CalculateAccuracy compares target and typed rune by rune.
// An empty target always scores 0.
func CalculateAccuracy(target, typed string) Breakdown {
	return CalculateAccuracyRunes([]rune(target), []rune(typed))
}

// CalculateAccuracyRunes is CalculateAccuracy over rune slices.
func CalculateAccuracyRunes(target, typed []rune) Breakdown {
	var b Breakdown
	n := min(len(target), len(typed))
	for i := 0; i < n; i++ {
		if typed[i] == target[i] {
			b.Correct++
		} else {
			b.Mistyped++
		}
	}
	if len(typed) < len(target) {
		b.Missed = len(target) - len(typed)
	}
	if len(typed) > len(target) {
		b.Extra = len(typed) - len(target)
	}
	if len(target) == 0 {
		return b
	}
	b.Accuracy = 100 * (1 - float64(b.TotalErrors())/float64(len(target)))
	if b.Accuracy < 0 {
		b.Accuracy = 0
	}
	return b
}

// CorrectAt reports whether the typed rune at pos matches the target.
// Positions at or past the end of the target are never correct.
func CorrectAt(target, typed []rune, pos int) bool {
	if pos < 0 || pos >= len(typed) || pos >= len(target) {
		return false
	}
	return typed[pos] == target[pos]
}

// Classify returns per-position correctness for every typed rune.
func Classify(target, typed []rune) []bool {
	out := make([]bool, len(typed))
	for i := range typed {
		out[i] = CorrectAt(target, typed, i)
	}
	return out
}

// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Sample picks count words from pool. Words are distinct while the pool is
// large enough; a smaller pool is reused with repeats.
func (g *Generator) Sample(pool []string, count int) []string {
	if count <= 0 || len(pool) == 0 {
		return nil
	}
	if count > len(pool) {
		result := make([]string, 0, count)
		for i := 0; i < count; i++ {
			result = append(result, pool[g.rnd.Intn(len(pool))])
		}
		return result
	}
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first count slots end up distinct.
	for i := 0; i < count; i++ {
		j := i + g.rnd.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	result := make([]string, 0, count)
	for _, i := range idx[:count] {
		result = append(result, pool[i])
	}
	return result
}

// Text joins sampled words with single spaces.
func (g *Generator) Text(pool []string, count int) string {
	return strings.Join(g.Sample(pool, count), " ")
}

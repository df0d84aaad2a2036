package fuzz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))
	for i := 1; i <= 50; i++ {
		assert.Equal(t, Generate(i, a), Generate(i, b))
	}
}

func TestGenerate_Shape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	kinds := map[string]int{}
	for i := 1; i <= 500; i++ {
		s := Generate(i, rng)
		require.NotEmpty(t, s.Text)
		assert.Equal(t, i, s.ID)

		switch {
		case len(s.Faults) == 0:
			kinds["valid"]++
		case s.Terminal():
			kinds["terminal"]++
		default:
			kinds["faulty"]++
			assert.LessOrEqual(t, len(s.Faults), 3)
			seen := map[string]bool{}
			for _, f := range s.Faults {
				assert.False(t, seen[f.Name], "fault %s applied twice", f.Name)
				seen[f.Name] = true
				assert.False(t, terminalChecks[f.CheckID], "terminal fault %s mixed with others", f.Name)
			}
		}
	}
	assert.Positive(t, kinds["valid"])
	assert.Positive(t, kinds["terminal"])
	assert.Positive(t, kinds["faulty"])
}

func TestFaultPlatforms(t *testing.T) {
	for _, f := range faults {
		assert.NotEmpty(t, f.CheckID, f.Name)
		for _, p := range f.platforms {
			assert.Contains(t, platforms, p, f.Name)
		}
	}
}

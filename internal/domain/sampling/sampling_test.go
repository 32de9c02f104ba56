package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-scd2/internal/domain/sampling"
)

func TestBernoulli_Extremos(t *testing.T) {
	r := sampling.NewRand(1)
	for i := 0; i < 1000; i++ {
		assert.True(t, sampling.Bernoulli(r, 1), "p=1 siempre debe disparar")
		assert.False(t, sampling.Bernoulli(r, 0), "p=0 nunca debe disparar")
	}
}

func TestNewRand_MismaSemillaMismaSecuencia(t *testing.T) {
	a := sampling.NewRand(42)
	b := sampling.NewRand(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestIntBetween_Inclusivo(t *testing.T) {
	r := sampling.NewRand(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := sampling.IntBetween(r, 980, 989)
		require.GreaterOrEqual(t, v, 980)
		require.LessOrEqual(t, v, 989)
		seen[v] = true
	}
	assert.Len(t, seen, 10, "deben aparecer los dos extremos y todo el rango")
}

func TestUniform_Rango(t *testing.T) {
	r := sampling.NewRand(3)
	for i := 0; i < 1000; i++ {
		v := sampling.Uniform(r, -0.2, 0.3)
		assert.GreaterOrEqual(t, v, -0.2)
		assert.Less(t, v, 0.3)
	}
}

func TestSampleInts_SinRepeticion(t *testing.T) {
	r := sampling.NewRand(9)
	got := sampling.SampleInts(r, 1, 10, 4)
	require.Len(t, got, 4)
	seen := map[int]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "valor repetido %d", v)
		seen[v] = true
	}

	all := sampling.SampleInts(r, 1, 3, 10)
	assert.ElementsMatch(t, []int{1, 2, 3}, all, "k mayor que el rango devuelve el rango completo")
}

func TestSampleInts_RangoGrandePocosValores(t *testing.T) {
	r := sampling.NewRand(13)
	for i := 0; i < 500; i++ {
		got := sampling.SampleInts(r, 1, 5_000_000, 4)
		require.Len(t, got, 4)
		seen := map[int]bool{}
		for _, v := range got {
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, 5_000_000)
			assert.False(t, seen[v], "valor repetido %d", v)
			seen[v] = true
		}
	}

	allocs := testing.AllocsPerRun(100, func() { sampling.SampleInts(r, 1, 5_000_000, 4) })
	assert.LessOrEqual(t, allocs, 4.0, "no debe reservar memoria proporcional al rango")

	assert.Empty(t, sampling.SampleInts(r, 1, 10, 0))
}

// ── Weighted ─────────────────────────────────────────────────────────────────

func TestWeighted_RespetaPesos(t *testing.T) {
	w, err := sampling.NewWeighted([]sampling.Outcome[string]{
		{Value: "a", Weight: 0.8},
		{Value: "b", Weight: 0.2},
		{Value: "c", Weight: 0},
	})
	require.NoError(t, err)

	r := sampling.NewRand(11)
	counts := map[string]int{}
	const n = 20000
	for i := 0; i < n; i++ {
		counts[w.Pick(r)]++
	}
	assert.Zero(t, counts["c"], "un resultado con peso cero nunca se elige")
	assert.InDelta(t, 0.8, float64(counts["a"])/n, 0.02)
	assert.InDelta(t, 0.2, float64(counts["b"])/n, 0.02)
}

func TestWeighted_TablaInvalida(t *testing.T) {
	_, err := sampling.NewWeighted[string](nil)
	assert.Error(t, err)

	_, err = sampling.NewWeighted([]sampling.Outcome[int]{{Value: 1, Weight: -1}})
	assert.Error(t, err)

	_, err = sampling.NewWeighted([]sampling.Outcome[int]{{Value: 1, Weight: 0}})
	assert.Error(t, err)
}

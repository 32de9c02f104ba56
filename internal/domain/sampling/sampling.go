// Package sampling primitivas de muestreo aleatorio compartidas por políticas y generadores.
// Toda la aleatoriedad del simulador pasa por un único *rand.Rand sembrado, para que un lote sea reproducible.
package sampling

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"
)

// NewRand crea la fuente de aleatoriedad. seed 0 siembra con el reloj.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Bernoulli devuelve true con probabilidad p. p <= 0 nunca dispara, p >= 1 siempre.
func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Uniform devuelve un valor uniforme en [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntBetween devuelve un entero uniforme en [lo, hi] (ambos inclusive).
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// Pick elige un elemento uniforme de items. Panic si items está vacío.
func Pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// SampleInts devuelve k enteros distintos de [lo, hi], sin reemplazo.
// Si k supera el rango se devuelve el rango completo barajado.
// Con k pequeño frente al rango se usa rechazo, sin reservar memoria proporcional al rango.
func SampleInts(r *rand.Rand, lo, hi, k int) []int {
	n := hi - lo + 1
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	out := make([]int, 0, k)
	if 2*k > n {
		for _, p := range r.Perm(n)[:k] {
			out = append(out, lo+p)
		}
		return out
	}
	seen := make(map[int]struct{}, k)
	for len(out) < k {
		v := lo + r.IntN(n)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Outcome un resultado posible con su peso relativo.
type Outcome[T any] struct {
	Value  T
	Weight float64
}

// Weighted distribución discreta sobre una tabla de resultados/pesos.
// La tabla es inmutable una vez construida; los pesos no necesitan sumar 1.
type Weighted[T any] struct {
	values     []T
	cumulative []float64
	total      float64
}

// NewWeighted construye la distribución. Falla si no hay resultados o algún peso es negativo o todos son cero.
func NewWeighted[T any](outcomes []Outcome[T]) (*Weighted[T], error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("weighted: sin resultados")
	}
	w := &Weighted[T]{
		values:     make([]T, 0, len(outcomes)),
		cumulative: make([]float64, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		if o.Weight < 0 {
			return nil, fmt.Errorf("weighted: peso negativo %v", o.Weight)
		}
		w.total += o.Weight
		w.values = append(w.values, o.Value)
		w.cumulative = append(w.cumulative, w.total)
	}
	if w.total == 0 {
		return nil, fmt.Errorf("weighted: todos los pesos son cero")
	}
	return w, nil
}

// MustWeighted como NewWeighted pero con panic; para tablas fijas del paquete.
func MustWeighted[T any](outcomes []Outcome[T]) *Weighted[T] {
	w, err := NewWeighted(outcomes)
	if err != nil {
		panic(err)
	}
	return w
}

// Pick elige un resultado según los pesos.
func (w *Weighted[T]) Pick(r *rand.Rand) T {
	x := r.Float64() * w.total
	i := sort.Search(len(w.cumulative), func(i int) bool { return w.cumulative[i] > x })
	if i == len(w.values) {
		i = len(w.values) - 1
	}
	return w.values[i]
}

package engine

import "math/rand"

// Generator is the only source of randomness for spawning and shuffling.
// Tests substitute a FixedGenerator to get exact spawn outcomes.
type Generator interface {
	// NextKind picks an index into catalog, honoring Kind.Weight.
	NextKind(catalog []Kind) int
	// NextPosition returns a horizontal position in [10, 90) percent.
	NextPosition() float64
	// NextFloat returns a value in [min, max).
	NextFloat(min, max float64) float64
	// Shuffle permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Spawn placement keeps entities inside the central 80% of the play width.
const (
	MinSpawnPercent = 10.0
	MaxSpawnPercent = 90.0
)

// RandomGenerator draws from a seeded math/rand source.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator creates a generator with the given seed.
func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewSource(seed))}
}

// NextKind picks a weighted catalog index.
func (g *RandomGenerator) NextKind(catalog []Kind) int {
	if len(catalog) == 0 {
		return -1
	}
	total := 0
	for _, k := range catalog {
		total += weight(k)
	}
	n := g.rng.Intn(total)
	for i, k := range catalog {
		n -= weight(k)
		if n < 0 {
			return i
		}
	}
	return len(catalog) - 1
}

// NextPosition returns a uniform position in the central 80%.
func (g *RandomGenerator) NextPosition() float64 {
	return MinSpawnPercent + g.rng.Float64()*(MaxSpawnPercent-MinSpawnPercent)
}

// NextFloat returns a uniform value in [min, max).
func (g *RandomGenerator) NextFloat(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + g.rng.Float64()*(max-min)
}

// Shuffle permutes n elements.
func (g *RandomGenerator) Shuffle(n int, swap func(i, j int)) {
	g.rng.Shuffle(n, swap)
}

func weight(k Kind) int {
	if k.Weight <= 0 {
		return 1
	}
	return k.Weight
}

// FixedGenerator replays fixed sequences, cycling when one runs out.
// Empty sequences yield the first catalog entry, the center of the play
// area, the minimum of a range, and no shuffling.
type FixedGenerator struct {
	Kinds     []int
	Positions []float64
	Values    []float64

	kindIdx, posIdx, valIdx int
}

// NextKind returns the next scripted catalog index.
func (g *FixedGenerator) NextKind(catalog []Kind) int {
	if len(g.Kinds) == 0 || len(catalog) == 0 {
		return 0
	}
	k := g.Kinds[g.kindIdx%len(g.Kinds)]
	g.kindIdx++
	return k % len(catalog)
}

// NextPosition returns the next scripted position.
func (g *FixedGenerator) NextPosition() float64 {
	if len(g.Positions) == 0 {
		return 50
	}
	p := g.Positions[g.posIdx%len(g.Positions)]
	g.posIdx++
	return p
}

// NextFloat returns the next scripted value clamped to [min, max].
func (g *FixedGenerator) NextFloat(min, max float64) float64 {
	if len(g.Values) == 0 {
		return min
	}
	v := g.Values[g.valIdx%len(g.Values)]
	g.valIdx++
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Shuffle leaves the order unchanged.
func (g *FixedGenerator) Shuffle(int, func(i, j int)) {}

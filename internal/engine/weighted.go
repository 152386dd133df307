package engine

// Rand is the randomness the engine draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Weighted is one category and its selection weight.
type Weighted[K comparable] struct {
	Key    K
	Weight float64
}

// WeightedChoice draws r uniformly from [0, total) and walks items in
// order, returning the first key whose cumulative weight reaches r.
// Negative weights count as zero. When every weight is zero the total is
// taken as 1, so the walk usually falls through to the last key.
func WeightedChoice[K comparable](rng Rand, items []Weighted[K]) K {
	var zero K
	if len(items) == 0 {
		return zero
	}
	var total float64
	for _, it := range items {
		total += clampWeight(it.Weight)
	}
	if total == 0 {
		total = 1
	}
	r := rng.Float64() * total
	var upto float64
	for _, it := range items {
		w := clampWeight(it.Weight)
		if upto+w >= r {
			return it.Key
		}
		upto += w
	}
	return items[len(items)-1].Key
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	return w
}

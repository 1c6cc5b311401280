package config

// Range bounds a numeric input control.
type Range struct {
	Min, Max, Step int
}

var (
	// PaddingRange bounds the padding slider.
	PaddingRange = Range{Min: 0, Max: 64, Step: 4}

	// RadiusRange bounds the corner radius slider.
	RadiusRange = Range{Min: 0, Max: 20, Step: 2}
)

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v int) int {
	return max(r.Min, min(r.Max, v))
}

// Increment moves v by n steps and clamps the result.
func (r Range) Increment(v, n int) int {
	return r.Clamp(v + n*r.Step)
}

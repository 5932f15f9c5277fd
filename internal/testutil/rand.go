package testutil

// ScriptedRand returns scripted values in order. Once a script is exhausted
// Float64 returns FloatDefault and Intn returns 0.
type ScriptedRand struct {
	Floats       []float64
	Ints         []int
	FloatDefault float64
}

// NewScriptedRand returns a ScriptedRand whose exhausted Float64 never passes
// a probability check below 0.99.
func NewScriptedRand() *ScriptedRand {
	return &ScriptedRand{FloatDefault: 0.99}
}

// Float64 returns the next scripted float.
func (r *ScriptedRand) Float64() float64 {
	if len(r.Floats) == 0 {
		return r.FloatDefault
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

// Intn returns the next scripted int reduced modulo n.
func (r *ScriptedRand) Intn(n int) int {
	if len(r.Ints) == 0 || n <= 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return v % n
}

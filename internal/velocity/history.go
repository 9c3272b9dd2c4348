// Package velocity implements the circular velocity-history buffer that
// backs radiation-damping convolution: a ring of 6N-dimensional body
// velocity samples sized to the radiation impulse response's time base.
package velocity

import "github.com/oceanwave/hydrocore/internal/hydroerr"

// History is a ring buffer of T_r samples, each a 6N-dimensional velocity
// vector (across all bodies in the engine). It is conceptually a mapping
// (step s in [0,T_r), dof c in [0,6N)) -> velocity component; physically a
// single flat array. offset rotates which physical slot the newest sample
// lives in; it decrements once per simulation step and is normalized with
// double-modulo on every access, matching the shift-register semantics the
// ring must reproduce exactly.
type History struct {
	data   []float64 // length steps*dofs, row-major [step][dof]
	steps  int        // T_r
	dofs   int        // 6N
	offset int
}

// New creates a zero-filled ring sized for steps history samples of dofs
// components each (dofs = 6*numBodies).
func New(steps, dofs int) *History {
	return &History{
		data:  make([]float64, steps*dofs),
		steps: steps,
		dofs:  dofs,
	}
}

// Steps returns T_r, the number of history samples held.
func (h *History) Steps() int { return h.steps }

// Dofs returns 6N, the width of each sample.
func (h *History) Dofs() int { return h.dofs }

// normalize maps a logical ring index to the physical slot via
// double-modulo, matching the reference's ((x % n) + n) % n idiom.
func (h *History) normalize(s int) int {
	return ((s % h.steps) + h.steps) % h.steps
}

// slot returns the physical slot the next PushAll writes into, which
// holds the oldest retained sample (logical step 0).
func (h *History) slot() int {
	return h.normalize(h.offset)
}

// PushAll writes vels (length 6N) into the current write slot, then
// rotates the ring by decrementing offset. A fresh buffer is zero-filled;
// after T_r pushes the logical view equals a naive shift register.
func (h *History) PushAll(vels []float64) error {
	if len(vels) != h.dofs {
		return hydroerr.ShapeMismatchf("velocity.PushAll", []int{h.dofs}, []int{len(vels)})
	}
	slot := h.slot()
	copy(h.data[slot*h.dofs:(slot+1)*h.dofs], vels)
	h.offset--
	return nil
}

// Get returns the velocity component for logical history step s (0 is the
// oldest retained sample the convolution walks first, T_r-1 the newest)
// and dof c across the stacked 6N-wide body set.
func (h *History) Get(s, c int) (float64, error) {
	if s < 0 || s >= h.steps {
		return 0, hydroerr.StepOutOfRangef(s, h.steps)
	}
	if c < 0 || c >= h.dofs {
		return 0, hydroerr.DofOutOfRangef(0, c)
	}
	phys := h.normalize(h.offset - s)
	return h.data[phys*h.dofs+c], nil
}

// GetRow returns the full 6N-wide sample at logical history step s.
func (h *History) GetRow(s int) ([]float64, error) {
	if s < 0 || s >= h.steps {
		return nil, hydroerr.StepOutOfRangef(s, h.steps)
	}
	phys := h.normalize(h.offset - s)
	row := make([]float64, h.dofs)
	copy(row, h.data[phys*h.dofs:(phys+1)*h.dofs])
	return row, nil
}

package integrators

import "github.com/oceanwave/hydrocore/internal/dynamo"

type Verlet struct {
	prevAcc dynamo.State
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
		v.prevAcc = nil
	}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	block := n
	if bs, ok := dyn.(dynamo.BlockStructured); ok {
		block = bs.BlockWidth()
	}
	half := block / 2
	v.ensureScratch(n)

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, u, t)
	dt2 := dt * dt

	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			result[base+i] = x[base+i] + x[base+half+i]*dt + 0.5*dx[base+half+i]*dt2
		}
	}

	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			v.scratch[base+i] = result[base+i]
			v.scratch[base+half+i] = x[base+half+i]
		}
	}

	dxNew := dyn.Derive(v.scratch, u, t+dt)

	halfDt := 0.5 * dt
	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			result[base+half+i] = x[base+half+i] + (dx[base+half+i]+dxNew[base+half+i])*halfDt
		}
	}

	return result
}

type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	n := len(x)
	block := n
	if bs, ok := dyn.(dynamo.BlockStructured); ok {
		block = bs.BlockWidth()
	}
	half := block / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx := dyn.Derive(x, u, t)
	halfDt := dt * 0.5

	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			l.scratch[base+half+i] = x[base+half+i] + dx[base+half+i]*halfDt
		}
	}

	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			result[base+i] = x[base+i] + l.scratch[base+half+i]*dt
			l.scratch[base+i] = result[base+i]
		}
	}

	dxNew := dyn.Derive(l.scratch, u, t+dt)

	for base := 0; base < n; base += block {
		for i := 0; i < half; i++ {
			result[base+half+i] = l.scratch[base+half+i] + dxNew[base+half+i]*halfDt
		}
	}

	return result
}

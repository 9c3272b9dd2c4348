// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical integrator interface
//   - [BlockStructured]: optional per-body state layout hint for symplectic
//     integrators stepping multi-body systems
//   - [Hamiltonian]: optional energy accessor for drift diagnostics
//   - [Ensemble]: runs independent seeded trials of a caller-supplied
//     simulation closure concurrently
//
// # Example
//
//	host, _ := hostsim.New(cfg)
//	integ := integrators.NewRK4()
//	x := hostsim.InitialState(cfg)
//	for t := 0.0; t < cfg.Duration; t += cfg.Dt {
//		x = integ.Step(host, x, nil, t, cfg.Dt)
//	}
//
// # Thread Safety
//
// [State] and [Integrator] values are not safe for concurrent mutation.
// For parallel simulations, use [Ensemble], which gives each trial its
// own closure invocation and its own return slot.
package dynamo

// Package simulation evaluates the brain-chemistry model behind braintwin.
//
// The model is a closed-form expression for three normalized levels
// (cortisol, dopamine, serotonin) over a fixed 150-sample grid spanning
// ten seconds. Each level is driven by the three user inputs plus a small
// amount of Gaussian noise and then clipped to [0, 1].
//
// The package holds no global mutable state. Callers pass every input
// explicitly, and tests inject a seeded noise source (or a zero noise scale)
// to get exact output:
//
//	engine := simulation.NewEngine(simulation.WithSeed(42))
//	res, err := engine.Simulate(simulation.Input{Stress: 80, SleepQuality: 4, ActivityLevel: 6})
//	if errors.Is(err, simulation.ErrInvalidInput) {
//	    // out-of-range slider value
//	}
package simulation

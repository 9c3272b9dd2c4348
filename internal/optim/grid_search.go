// Package optim provides small parameter-sweep helpers for exploring a
// simulation's response across a grid of inputs, used by the RAO sweep
// demo to walk regular-wave frequency against heave response.
package optim

import (
	"context"
	"math"
)

// Evaluator runs one trial for the given parameter assignment and returns
// the metric value for that trial.
type Evaluator func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch enumerates the Cartesian product of named parameter ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
}

// Sweep evaluates every point in the grid and returns them all, in the
// order the recursive enumeration visits them (last parameter varies
// fastest). A trial whose Evaluator returns an error is skipped.
func (g *GridSearch) Sweep(ctx context.Context, eval Evaluator) []Point {
	var points []Point
	g.sweepRecursive(ctx, 0, make(map[string]float64), eval, &points)
	return points
}

func (g *GridSearch) sweepRecursive(ctx context.Context, depth int, current map[string]float64, eval Evaluator, points *[]Point) {
	if depth == len(g.paramNames) {
		val, err := eval(ctx, current)
		if err != nil {
			return
		}
		snapshot := make(map[string]float64, len(current))
		for k, v := range current {
			snapshot[k] = v
		}
		*points = append(*points, Point{Params: snapshot, Value: val})
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.sweepRecursive(ctx, depth+1, current, eval, points)
	}
	delete(current, paramName)
}

// Search evaluates the full grid and returns the parameters and value of
// the minimizing point.
func (g *GridSearch) Search(ctx context.Context, eval Evaluator) (map[string]float64, float64, error) {
	points := g.Sweep(ctx, eval)
	best := math.Inf(1)
	var bestParams map[string]float64
	for _, p := range points {
		if p.Value < best {
			best = p.Value
			bestParams = p.Params
		}
	}
	return bestParams, best, nil
}

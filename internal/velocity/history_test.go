package velocity

import "testing"

func TestPushAllShapeMismatch(t *testing.T) {
	h := New(3, 2)
	if err := h.PushAll([]float64{1.0}); err == nil {
		t.Fatal("expected ShapeMismatch error for wrong-length push")
	}
}

func TestFreshHistoryIsZero(t *testing.T) {
	h := New(4, 3)
	for s := 0; s < 4; s++ {
		row, err := h.GetRow(s)
		if err != nil {
			t.Fatalf("GetRow(%d): %v", s, err)
		}
		for _, v := range row {
			if v != 0 {
				t.Fatalf("fresh history not zero at step %d: %v", s, row)
			}
		}
	}
}

// TestRingRetainsAllPushedSamples pushes exactly Steps() distinct 1-dof
// samples and checks that every value pushed is still retrievable
// somewhere in the ring, matching the shift-register semantics of a
// full buffer: nothing is lost, nothing is duplicated.
func TestRingRetainsAllPushedSamples(t *testing.T) {
	h := New(5, 1)
	pushed := map[float64]bool{}
	for i := 1; i <= 5; i++ {
		v := float64(i)
		if err := h.PushAll([]float64{v}); err != nil {
			t.Fatalf("PushAll: %v", err)
		}
		pushed[v] = true
	}

	seen := map[float64]bool{}
	for s := 0; s < h.Steps(); s++ {
		val, err := h.Get(s, 0)
		if err != nil {
			t.Fatalf("Get(%d,0): %v", s, err)
		}
		seen[val] = true
	}

	for v := range pushed {
		if !seen[v] {
			t.Errorf("pushed value %v not found anywhere in ring after full rotation", v)
		}
	}
	if len(seen) != len(pushed) {
		t.Errorf("ring holds %d distinct values, want %d (duplicate or lost slot)", len(seen), len(pushed))
	}
}

// TestGetReproducesTrailingPushesInOrder pushes 2*Steps() distinct
// markers and checks that Get(s) for s=0..Steps()-1 reproduces the
// trailing Steps() pushes in chronological order (oldest retained at 0,
// newest at Steps()-1). This is order-sensitive, unlike
// TestRingRetainsAllPushedSamples's set-membership check, so it catches
// a ring that retains the right values in the wrong logical slots.
func TestGetReproducesTrailingPushesInOrder(t *testing.T) {
	const steps = 5
	h := New(steps, 1)
	var pushed []float64
	for i := 1; i <= 2*steps; i++ {
		v := float64(i)
		if err := h.PushAll([]float64{v}); err != nil {
			t.Fatalf("PushAll: %v", err)
		}
		pushed = append(pushed, v)
	}

	want := pushed[len(pushed)-steps:]
	for s := 0; s < steps; s++ {
		got, err := h.Get(s, 0)
		if err != nil {
			t.Fatalf("Get(%d,0): %v", s, err)
		}
		if got != want[s] {
			t.Errorf("Get(%d,0) = %v, want %v (trailing pushes in order: %v)", s, got, want[s], want)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	h := New(3, 2)
	if _, err := h.Get(3, 0); err == nil {
		t.Fatal("expected StepOutOfRange for step >= Steps()")
	}
	if _, err := h.Get(0, 2); err == nil {
		t.Fatal("expected DofOutOfRange for dof >= Dofs()")
	}
}

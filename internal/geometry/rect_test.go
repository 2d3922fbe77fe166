package geometry

import "testing"

func TestSplitHorizontalSumsToOriginal(t *testing.T) {
	r := New(10, 20, 1000, 500)
	ratios := []float64{0, 0.1, 0.33, 0.5, 0.75, 1}

	for _, ratio := range ratios {
		left, right := r.SplitHorizontal(ratio)
		if left.Width+right.Width != r.Width {
			t.Fatalf("ratio %v: widths %d+%d != %d", ratio, left.Width, right.Width, r.Width)
		}
		if left.Height != r.Height || right.Height != r.Height {
			t.Fatalf("ratio %v: heights changed", ratio)
		}
		if right.X != left.X+left.Width {
			t.Fatalf("ratio %v: right.X=%d want %d", ratio, right.X, left.X+left.Width)
		}
	}
}

func TestSplitVerticalSumsToOriginal(t *testing.T) {
	r := New(0, 0, 800, 600)
	top, bottom := r.SplitVertical(0.25)
	if top.Height+bottom.Height != r.Height {
		t.Fatalf("heights %d+%d != %d", top.Height, bottom.Height, r.Height)
	}
	if bottom.Y != top.Y+top.Height {
		t.Fatalf("bottom.Y=%d want %d", bottom.Y, top.Y+top.Height)
	}
}

func TestShrinkExpandRoundTrip(t *testing.T) {
	r := New(5, 5, 200, 100)
	for n := 0; n < 10; n++ {
		got := r.Shrink(n).Expand(n)
		if got != r {
			t.Fatalf("shrink(%d).expand(%d) = %+v, want %+v", n, n, got, r)
		}
	}
}

func TestApplyGapsSkipsNonPositive(t *testing.T) {
	r := New(0, 0, 10, 10)
	if _, ok := r.ApplyGaps(2, 10); ok {
		t.Fatal("expected ApplyGaps to report not-ok for oversized gaps")
	}

	out, ok := r.ApplyGaps(0, 1)
	if !ok {
		t.Fatal("expected ok")
	}
	want := New(1, 1, 8, 8)
	if out != want {
		t.Fatalf("got %+v want %+v", out, want)
	}
}

func TestContainsPointAndIntersects(t *testing.T) {
	r := New(0, 0, 100, 100)
	if !r.ContainsPoint(50, 50) {
		t.Fatal("expected point inside")
	}
	if r.ContainsPoint(100, 0) {
		t.Fatal("far edge should be exclusive")
	}

	other := New(50, 50, 100, 100)
	if !r.Intersects(other) {
		t.Fatal("expected overlap")
	}
	disjoint := New(200, 200, 10, 10)
	if r.Intersects(disjoint) {
		t.Fatal("expected no overlap")
	}
}

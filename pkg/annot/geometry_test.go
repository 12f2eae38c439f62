package annot

import (
	"math"
	"testing"
)

func TestNewRectangleNormalizes(t *testing.T) {
	r := NewRectangle(200, 120, 100, 100)
	if r.X1 != 100 || r.X2 != 200 || r.Y1 != 100 || r.Y2 != 120 {
		t.Errorf("rectangle not normalized: %+v", r)
	}
}

func TestQuadRectRoundTrip(t *testing.T) {
	pageHeights := []float64{792, 842, 500.5}
	rects := []Rectangle{
		NewRectangle(100, 100, 200, 120),
		NewRectangle(0, 0, 612, 792),
		NewRectangle(33.25, 410.7, 481.9, 425.1),
	}

	for _, h := range pageHeights {
		for _, r := range rects {
			got := quadToRect(rectToQuad(r, h), h)
			if !approxEqual(got.X1, r.X1) || !approxEqual(got.Y1, r.Y1) ||
				!approxEqual(got.X2, r.X2) || !approxEqual(got.Y2, r.Y2) {
				t.Errorf("round trip at height %v: got %+v, want %+v", h, got, r)
			}
		}
	}
}

func TestRectToQuadFlipsY(t *testing.T) {
	// Host rect (100,100)-(200,120) on a 792pt page maps to the native
	// Y range 672..692.
	q := rectToQuad(NewRectangle(100, 100, 200, 120), 792)

	x0, y0, x1, y1 := q.Bounds()
	if x0 != 100 || x1 != 200 {
		t.Errorf("x range: got (%v, %v), want (100, 200)", x0, x1)
	}
	if y0 != 672 || y1 != 692 {
		t.Errorf("y range: got (%v, %v), want (672, 692)", y0, y1)
	}

	// Corner layout: UL is the host rect's top edge, which is the higher
	// native Y.
	if q.UL.Y != 692 || q.LL.Y != 672 {
		t.Errorf("corners: UL.Y=%v LL.Y=%v", q.UL.Y, q.LL.Y)
	}
}

func TestQuadBoundsArbitraryWinding(t *testing.T) {
	// The same region with corners scrambled must produce the same box.
	q := Quad{
		UL: Point{X: 200, Y: 672},
		UR: Point{X: 100, Y: 692},
		LL: Point{X: 200, Y: 692},
		LR: Point{X: 100, Y: 672},
	}
	x0, y0, x1, y1 := q.Bounds()
	if x0 != 100 || y0 != 672 || x1 != 200 || y1 != 692 {
		t.Errorf("bounds: got (%v,%v,%v,%v)", x0, y0, x1, y1)
	}
}

func TestRectMatchesNative(t *testing.T) {
	const h = 792.0
	r := NewRectangle(100, 100, 200, 120)

	tests := []struct {
		name               string
		nx0, ny0, nx1, ny1 float64
		want               bool
	}{
		{"exact", 100, 672, 200, 692, true},
		{"within tolerance", 100.9, 672.9, 200.9, 692.9, true},
		{"one coordinate out", 100, 672, 201.1, 692, false},
		{"all out", 110, 682, 210, 702, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rectMatchesNative(r, tt.nx0, tt.ny0, tt.nx1, tt.ny1, h, Eps)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectangleUnion(t *testing.T) {
	a := NewRectangle(100, 100, 200, 120)
	b := NewRectangle(50, 110, 150, 140)
	u := a.Union(b)
	want := Rectangle{X1: 50, Y1: 100, X2: 200, Y2: 140}
	if u != want {
		t.Errorf("union: got %+v, want %+v", u, want)
	}
}

func TestNativeRectUnion(t *testing.T) {
	var n nativeRect
	n = n.union(100, 672, 200, 692)
	n = n.union(100, 650, 150, 670)
	want := nativeRect{X0: 100, Y0: 650, X1: 200, Y1: 692}
	if n != want {
		t.Errorf("union: got %+v, want %+v", n, want)
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

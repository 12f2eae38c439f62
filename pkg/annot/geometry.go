package annot

import "math"

// Eps is the per-coordinate tolerance, in PDF units, below which two
// re-derived coordinates are treated as the same position. Geometry is
// never bit-exact across an export/reread round trip.
const Eps = 1.0

// Rectangle is an axis-aligned rectangle in host space: origin top-left,
// Y increasing downward. X1 <= X2 and Y1 <= Y2 always hold.
type Rectangle struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NewRectangle builds a normalized Rectangle from two arbitrary corners.
func NewRectangle(x1, y1, x2, y2 float64) Rectangle {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rectangle{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Union returns the smallest rectangle covering both r and other.
func (r Rectangle) Union(other Rectangle) Rectangle {
	return Rectangle{
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
		X2: math.Max(r.X2, other.X2),
		Y2: math.Max(r.Y2, other.Y2),
	}
}

// Point is a position in native page space (origin bottom-left, Y up).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is one native quadrilateral, stored corner-wise: upper-left,
// upper-right, lower-left, lower-right. Winding is arbitrary on read; the
// quad is always reduced to its axis-aligned bounding box.
type Quad struct {
	UL Point
	UR Point
	LL Point
	LR Point
}

// Bounds returns the quad's axis-aligned bounding box in native space,
// with x0 <= x1 and y0 <= y1.
func (q Quad) Bounds() (x0, y0, x1, y1 float64) {
	x0 = math.Min(math.Min(q.UL.X, q.UR.X), math.Min(q.LL.X, q.LR.X))
	x1 = math.Max(math.Max(q.UL.X, q.UR.X), math.Max(q.LL.X, q.LR.X))
	y0 = math.Min(math.Min(q.UL.Y, q.UR.Y), math.Min(q.LL.Y, q.LR.Y))
	y1 = math.Max(math.Max(q.UL.Y, q.UR.Y), math.Max(q.LL.Y, q.LR.Y))
	return x0, y0, x1, y1
}

// quadToRect converts a native quadrilateral to a host-space Rectangle.
// PDF has its origin at the bottom-left with Y up; the host has its origin
// at the top-left with Y down, so the Y axis is flipped against the page
// height. Width and height are preserved.
func quadToRect(q Quad, pageHeight float64) Rectangle {
	x0, y0, x1, y1 := q.Bounds()
	return Rectangle{
		X1: x0,
		Y1: pageHeight - y1,
		X2: x1,
		Y2: pageHeight - y0,
	}
}

// rectToQuad converts a host-space Rectangle back to an axis-aligned
// native quadrilateral, the inverse of quadToRect.
func rectToQuad(r Rectangle, pageHeight float64) Quad {
	return Quad{
		UL: Point{X: r.X1, Y: pageHeight - r.Y1},
		UR: Point{X: r.X2, Y: pageHeight - r.Y1},
		LL: Point{X: r.X1, Y: pageHeight - r.Y2},
		LR: Point{X: r.X2, Y: pageHeight - r.Y2},
	}
}

// rectMatchesNative reports whether the host-space rectangle r matches the
// native-space box (nx0,ny0)-(nx1,ny1) within eps per coordinate. The
// native box is converted with the same flip as quadToRect so both sides
// are compared in host space.
func rectMatchesNative(r Rectangle, nx0, ny0, nx1, ny1, pageHeight, eps float64) bool {
	hy1 := pageHeight - ny1
	hy2 := pageHeight - ny0

	return math.Abs(r.X1-nx0) < eps && math.Abs(r.X2-nx1) < eps &&
		math.Abs(r.Y1-hy1) < eps && math.Abs(r.Y2-hy2) < eps
}

// nativeRect is an axis-aligned box in native space, used while
// accumulating an annotation's bounding box for text lookup.
type nativeRect struct {
	X0, Y0, X1, Y1 float64
}

func (n nativeRect) union(x0, y0, x1, y1 float64) nativeRect {
	if n == (nativeRect{}) {
		return nativeRect{X0: x0, Y0: y0, X1: x1, Y1: y1}
	}
	return nativeRect{
		X0: math.Min(n.X0, x0),
		Y0: math.Min(n.Y0, y0),
		X1: math.Max(n.X1, x1),
		Y1: math.Max(n.Y1, y1),
	}
}

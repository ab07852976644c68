package sceneforge

import (
	"math"
	"testing"
)

// flatPatch is a planar unit patch in the XZ plane with uniformly spaced
// control points.
func flatPatch() Patch {
	var p Patch
	for rr := 0; rr < 4; rr++ {
		for c := 0; c < 4; c++ {
			p.P[rr*4+c] = p3(float64(c)/3, 0, float64(rr)/3)
		}
	}
	return p
}

// bumpPatch lifts the four interior control points so the surface curves.
func bumpPatch() Patch {
	p := flatPatch()
	for _, i := range []int{5, 6, 9, 10} {
		p.P[i].Y = 1
	}
	return p
}

func TestSubdivide_DepthZeroEmitsInput(t *testing.T) {
	sub := Subdivide([]Patch{bumpPatch()}, 0, DefaultPatchFlatness)
	if len(sub) != 1 {
		t.Fatalf("depth 0 must emit the input as a single sub-patch, got %d", len(sub))
	}
	if sub[0].P != bumpPatch().P {
		t.Fatalf("control points must pass through unchanged")
	}
}

func TestSubdivide_QuadrantCount(t *testing.T) {
	// tiny flatness so the depth cap is the only terminator
	sub := Subdivide([]Patch{bumpPatch()}, 2, 1e-12)
	if len(sub) != 16 {
		t.Fatalf("2 levels of 4-way splits should give 16 sub-patches, got %d", len(sub))
	}
}

func TestSubdivide_FlatnessStopsEarly(t *testing.T) {
	// a patch whose diagonal is already below the threshold never splits
	small := flatPatch()
	for i := range small.P {
		small.P[i].X *= 0.001
		small.P[i].Z *= 0.001
	}
	sub := Subdivide([]Patch{small}, 8, 0.05)
	if len(sub) != 1 {
		t.Fatalf("flat tiny patch must terminate immediately, got %d sub-patches", len(sub))
	}
}

func TestSubdivide_BoundsContainControlPoints(t *testing.T) {
	sub := Subdivide([]Patch{bumpPatch()}, 3, 1e-12)
	for i, sp := range sub {
		bb := AABB{Min: sp.Min, Max: sp.Max}
		pts := aabbOfPoints(sp.P[:])
		if !bb.Contains(pts, 1e-12) {
			t.Fatalf("sub-patch %d bound does not contain its control points", i)
		}
	}
}

func TestSubdivide_UnionOfBoundsCoversInput(t *testing.T) {
	in := bumpPatch()
	sub := Subdivide([]Patch{in}, 3, 1e-12)
	u := emptyAABB()
	for _, sp := range sub {
		u = aabbUnion(u, AABB{Min: sp.Min, Max: sp.Max})
	}
	// the surface lies inside the input control hull, so the corner points at
	// least must be covered
	for _, ci := range []int{0, 3, 12, 15} {
		p := in.P[ci]
		if p.X < u.Min.X || p.X > u.Max.X || p.Y < u.Min.Y || p.Y > u.Max.Y || p.Z < u.Min.Z || p.Z > u.Max.Z {
			t.Fatalf("corner %d outside union of sub-patch bounds", ci)
		}
	}
}

func TestSplitCubic_PreservesEndpointsAndMidpoint(t *testing.T) {
	p0, p1, p2, p3v := p3(0, 0, 0), p3(1, 2, 0), p3(2, -1, 0), p3(3, 0, 0)
	l, rr := splitCubic(p0, p1, p2, p3v)
	if l[0] != p0 || rr[3] != p3v {
		t.Fatalf("endpoints must survive the split")
	}
	if l[3] != rr[0] {
		t.Fatalf("halves must share the split point")
	}
	// split point equals the curve at t=0.5: sum of Bernstein-weighted points
	want := p3(
		(0+3*1+3*2+3)/8.0,
		(0+3*2+3*(-1)+0)/8.0,
		0,
	)
	if !almostEq(l[3].X, want.X) || !almostEq(l[3].Y, want.Y) {
		t.Fatalf("split point got %+v want %+v", l[3], want)
	}
}

func TestSplitUV_SharedBoundary(t *testing.T) {
	p := bumpPatch()
	lo, hi := p.splitU()
	for rr := 0; rr < 4; rr++ {
		if lo.P[rr*4+3] != hi.P[rr*4+0] {
			t.Fatalf("row %d: U halves do not share the boundary column", rr)
		}
	}
	lo, hi = p.splitV()
	for c := 0; c < 4; c++ {
		if lo.P[3*4+c] != hi.P[0*4+c] {
			t.Fatalf("col %d: V halves do not share the boundary row", c)
		}
	}
}

func TestSubdivide_DiagonalShrinks(t *testing.T) {
	in := bumpPatch()
	d0 := aabbOfPoints(in.P[:]).Diagonal()
	sub := Subdivide([]Patch{in}, 4, 1e-12)
	for i, sp := range sub {
		d := AABB{Min: sp.Min, Max: sp.Max}.Diagonal()
		if float64(d) > float64(d0) {
			t.Fatalf("sub-patch %d diagonal %v exceeds input diagonal %v", i, d, d0)
		}
	}
	if math.IsNaN(float64(d0)) {
		t.Fatalf("input diagonal NaN")
	}
}

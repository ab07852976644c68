package sceneforge

// Patch is one bicubic surface segment: exactly 16 control points in
// row-major 4×4 layout. U varies along a row (columns), V across rows.
type Patch struct {
	P [16]Point3
}

// SubPatch is a leaf produced by subdivision, carrying its own precomputed
// (slightly padded) bound so it can go straight into the patch BVH and the
// GPU-facing arrays.
type SubPatch struct {
	P        [16]Point3
	Min, Max Point3
}

// Subdivide splits every input patch by de Casteljau bisection until a
// branch either runs out of depth or its bound diagonal drops below the
// flatness threshold. Termination is adaptive: flat regions of one input
// patch stop early while curved regions keep splitting.
func Subdivide(patches []Patch, maxDepth int, flatness Real) []SubPatch {
	var out []SubPatch
	for _, p := range patches {
		subdivide(p, maxDepth, flatness, &out)
	}
	return out
}

func subdivide(p Patch, depth int, flatness Real, out *[]SubPatch) {
	bb := aabbOfPoints(p.P[:]).Expand(PatchAABBPad)
	if depth <= 0 || bb.Diagonal() < flatness {
		*out = append(*out, SubPatch{P: p.P, Min: bb.Min, Max: bb.Max})
		return
	}
	u0, u1 := p.splitU()
	q00, q01 := u0.splitV()
	q10, q11 := u1.splitV()
	subdivide(q00, depth-1, flatness, out)
	subdivide(q01, depth-1, flatness, out)
	subdivide(q10, depth-1, flatness, out)
	subdivide(q11, depth-1, flatness, out)
}

// splitU bisects at u=0.5: every row of 4 control points splits into the
// left and right half of the same cubic.
func (p Patch) splitU() (Patch, Patch) {
	var lo, hi Patch
	for r := 0; r < 4; r++ {
		l, h := splitCubic(p.P[r*4+0], p.P[r*4+1], p.P[r*4+2], p.P[r*4+3])
		for c := 0; c < 4; c++ {
			lo.P[r*4+c] = l[c]
			hi.P[r*4+c] = h[c]
		}
	}
	return lo, hi
}

// splitV bisects at v=0.5 along columns.
func (p Patch) splitV() (Patch, Patch) {
	var lo, hi Patch
	for c := 0; c < 4; c++ {
		l, h := splitCubic(p.P[0*4+c], p.P[1*4+c], p.P[2*4+c], p.P[3*4+c])
		for r := 0; r < 4; r++ {
			lo.P[r*4+c] = l[r]
			hi.P[r*4+c] = h[r]
		}
	}
	return lo, hi
}

// splitCubic is one de Casteljau step at t=0.5. Both halves trace exactly
// the same curve as the input.
func splitCubic(p0, p1, p2, p3 Point3) (left, right [4]Point3) {
	q1 := p0.Lerp(p1, 0.5)
	m := p1.Lerp(p2, 0.5)
	r2 := p2.Lerp(p3, 0.5)
	q2 := q1.Lerp(m, 0.5)
	r1 := m.Lerp(r2, 0.5)
	mid := q2.Lerp(r1, 0.5)
	left = [4]Point3{p0, q1, q2, mid}
	right = [4]Point3{mid, r1, r2, p3}
	return
}

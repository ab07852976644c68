package sceneforge

// BuiltinTeapotGroup is the reserved patch-group name. An instance that
// references it without a scene-defined group binds the hard-coded model
// (the `newell-patch` alias in the scene language exists for this model
// family).
const BuiltinTeapotGroup = "teapot"

// Cubic Bezier approximation of a quarter circle.
const circleKappa = 0.5522847498307936

// profilePoint is one control point of a revolved profile: distance from
// the Y axis and height along it.
type profilePoint struct {
	r, y Real
}

// Newell-style pot profile: body and lid as cubic segments with shared
// endpoints, revolved around Y.
var teapotProfile = [][4]profilePoint{
	{{1.4, 0.0}, {1.4, 0.45}, {1.5, 0.9}, {1.5, 1.2}},   // lower body
	{{1.5, 1.2}, {1.5, 1.65}, {1.25, 1.95}, {1.0, 2.1}}, // upper body
	{{1.0, 2.1}, {0.8, 2.2}, {0.45, 2.25}, {0.2, 2.4}},  // lid skirt
	{{0.2, 2.4}, {0.1, 2.55}, {0.25, 2.65}, {0.0, 2.7}}, // lid knob
}

// Unit circle samples at the quadrant boundaries (cos, sin), wrapped.
var quadrantUnits = [5][2]Real{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {1, 0},
}

// quadrantArc returns the per-column (cos, sin) multipliers of a quarter-arc
// cubic starting at quadrant q. Inner control points sit on the tangents,
// circleKappa away from the endpoints.
func quadrantArc(q int) (cx, sz [4]Real) {
	c0, s0 := quadrantUnits[q][0], quadrantUnits[q][1]
	c1, s1 := quadrantUnits[q+1][0], quadrantUnits[q+1][1]
	cx = [4]Real{c0, c0 - circleKappa*s0, c1 + circleKappa*s1, c1}
	sz = [4]Real{s0, s0 + circleKappa*c0, s1 - circleKappa*c1, s1}
	return
}

// TeapotPatches builds the builtin model: every profile segment revolved in
// four quarter-turn patches. Rows follow the profile (V), columns the arc
// (U); adjacent patches share boundary control points exactly, so
// subdivision cannot open cracks between them.
func TeapotPatches() []Patch {
	out := make([]Patch, 0, len(teapotProfile)*4)
	for _, seg := range teapotProfile {
		for q := 0; q < 4; q++ {
			cx, sz := quadrantArc(q)
			var p Patch
			for r := 0; r < 4; r++ {
				for c := 0; c < 4; c++ {
					p.P[r*4+c] = Point3{seg[r].r * cx[c], seg[r].y, seg[r].r * sz[c]}
				}
			}
			out = append(out, p)
		}
	}
	return out
}

package sceneforge

import "math"

// AABB is an axis-aligned bounding box, kept as plain min/max corners so it
// can be embedded directly into flat GPU-facing arrays.
type AABB struct {
	Min, Max Point3
}

func emptyAABB() AABB {
	return AABB{
		Min: Point3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Point3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

func aabbUnion(a, b AABB) AABB {
	return AABB{
		Min: Point3{rmin(a.Min.X, b.Min.X), rmin(a.Min.Y, b.Min.Y), rmin(a.Min.Z, b.Min.Z)},
		Max: Point3{rmax(a.Max.X, b.Max.X), rmax(a.Max.Y, b.Max.Y), rmax(a.Max.Z, b.Max.Z)},
	}
}

// Expand grows the box outward by pad on every side.
func (b AABB) Expand(pad Real) AABB {
	return AABB{
		Min: Point3{b.Min.X - pad, b.Min.Y - pad, b.Min.Z - pad},
		Max: Point3{b.Max.X + pad, b.Max.Y + pad, b.Max.Z + pad},
	}
}

// Diagonal returns the length of the box diagonal.
func (b AABB) Diagonal() Real {
	return b.Max.Sub(b.Min).Len()
}

// Centroid returns the box center coordinate along the given axis (0=X, 1=Y, 2=Z).
func (b AABB) Centroid(axis int) Real {
	switch axis {
	case 0:
		return (b.Min.X + b.Max.X) * 0.5
	case 1:
		return (b.Min.Y + b.Max.Y) * 0.5
	default:
		return (b.Min.Z + b.Max.Z) * 0.5
	}
}

// LongestAxis returns the axis of maximum extent (0=X, 1=Y, 2=Z).
func (b AABB) LongestAxis() int {
	ext := [3]Real{
		b.Max.X - b.Min.X,
		b.Max.Y - b.Min.Y,
		b.Max.Z - b.Min.Z,
	}
	axis := 0
	if ext[1] > ext[axis] {
		axis = 1
	}
	if ext[2] > ext[axis] {
		axis = 2
	}
	return axis
}

// Contains reports whether b contains c within eps on every face.
func (b AABB) Contains(c AABB, eps Real) bool {
	return b.Min.X <= c.Min.X+eps && b.Min.Y <= c.Min.Y+eps && b.Min.Z <= c.Min.Z+eps &&
		b.Max.X >= c.Max.X-eps && b.Max.Y >= c.Max.Y-eps && b.Max.Z >= c.Max.Z-eps
}

func aabbOfPoints(pts []Point3) AABB {
	bb := emptyAABB()
	for _, p := range pts {
		if p.X < bb.Min.X {
			bb.Min.X = p.X
		}
		if p.Y < bb.Min.Y {
			bb.Min.Y = p.Y
		}
		if p.Z < bb.Min.Z {
			bb.Min.Z = p.Z
		}
		if p.X > bb.Max.X {
			bb.Max.X = p.X
		}
		if p.Y > bb.Max.Y {
			bb.Max.Y = p.Y
		}
		if p.Z > bb.Max.Z {
			bb.Max.Z = p.Z
		}
	}
	return bb
}

func rmin(a, b Real) Real {
	if a < b {
		return a
	}
	return b
}

func rmax(a, b Real) Real {
	if a > b {
		return a
	}
	return b
}

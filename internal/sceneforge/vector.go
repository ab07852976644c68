package sceneforge

import "math"

// Vec3 represents a direction (not a position) in 3D space.
type Vec3 struct {
	X, Y, Z Real
}

// Vector functions
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (v Vec3) Mul(s Real) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product between two 3D vectors.
func (a Vec3) Dot(b Vec3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Len returns the Euclidean length of the vector.
func (v Vec3) Len() Real { return math.Sqrt(v.Dot(v)) }

// Norm returns a unit-length version of the vector.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

func (A Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		A.M[0][0]*v.X + A.M[0][1]*v.Y + A.M[0][2]*v.Z,
		A.M[1][0]*v.X + A.M[1][1]*v.Y + A.M[1][2]*v.Z,
		A.M[2][0]*v.X + A.M[2][1]*v.Y + A.M[2][2]*v.Z,
	}
}

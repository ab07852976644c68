package sceneforge

import "math"

// Angles in radians for rotations about the coordinate axes.
type Rot3 struct {
	X, Y, Z Real
}

// IsZero reports whether all angles are (numerically) zero.
func (r Rot3) IsZero() bool {
	return math.Abs(r.X)+math.Abs(r.Y)+math.Abs(r.Z) < rotEps
}

// Rotation in degrees for the scene language (friendlier than radians).
type RotDeg struct {
	X, Y, Z Real
}

func (r RotDeg) Radians() Rot3 {
	return Rot3{X: r.X * degToRad, Y: r.Y * degToRad, Z: r.Z * degToRad}
}

func rotX(a Real) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	M := I3()
	M.M[1][1], M.M[1][2] = c, -s
	M.M[2][1], M.M[2][2] = s, c
	return M
}

func rotY(a Real) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	M := I3()
	M.M[0][0], M.M[0][2] = c, s
	M.M[2][0], M.M[2][2] = -s, c
	return M
}

func rotZ(a Real) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	M := I3()
	M.M[0][0], M.M[0][1] = c, -s
	M.M[1][0], M.M[1][1] = s, c
	return M
}

// Compose rotation from angles (Z·Y·X order).
func rotFromAngles(r Rot3) Mat3 {
	R := I3()
	R = rotX(r.X).Mul(R)
	R = rotY(r.Y).Mul(R)
	R = rotZ(r.Z).Mul(R)
	return R
}

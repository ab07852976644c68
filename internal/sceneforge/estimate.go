package sceneforge

import "math"

// Surface-area estimation for light-importance sampling by downstream
// consumers. Closed-form per primitive type; rotation is ignored and the
// formulas are exact only under the uniform scale the pipeline supports.

// PrimitiveArea returns the surface area of one transformed primitive.
func (c *CSG) PrimitiveArea(i int32) Real {
	p := c.Primitives[i]
	s := c.Transforms[i].Scale
	if s == 0 {
		s = 1
	}
	return localArea(p) * s * s
}

func localArea(p Primitive) Real {
	switch p.Type {
	case SpherePrim:
		r := p.Params[0]
		return 4 * math.Pi * r * r
	case BoxPrim:
		// full extents are twice the stored half-extents
		a, b, cc := 2*p.Params[0], 2*p.Params[1], 2*p.Params[2]
		return 2 * (a*b + b*cc + cc*a)
	case CylinderPrim:
		r, h := p.Params[0], p.Params[1]
		return 2*math.Pi*r*h + 2*math.Pi*r*r
	case ConePrim:
		r, h := p.Params[0], p.Params[1]
		return math.Pi * r * (r + math.Sqrt(r*r+h*h))
	case TorusPrim:
		major, minor := p.Params[0], p.Params[1]
		return 4 * math.Pi * math.Pi * major * minor
	}
	return 0
}

// NodeArea sums primitive areas over a subtree. For boolean nodes this
// over-estimates (hidden surface is still counted), which biases importance
// sampling but never loses a light.
func (c *CSG) NodeArea(i int32) Real {
	n := c.Nodes[i]
	if n.Op == OpPrimitive {
		return c.PrimitiveArea(n.Prim)
	}
	return c.NodeArea(n.Left) + c.NodeArea(n.Right)
}

// RootAreas returns the estimated area of every root shape, in root order.
func (c *CSG) RootAreas() []Real {
	out := make([]Real, len(c.Roots))
	for i, r := range c.Roots {
		out[i] = c.NodeArea(r)
	}
	return out
}

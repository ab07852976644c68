package sceneforge

type PrimitiveType uint32

const (
	SpherePrim PrimitiveType = iota
	BoxPrim
	CylinderPrim
	ConePrim
	TorusPrim
)

func (t PrimitiveType) String() string {
	switch t {
	case SpherePrim:
		return "sphere"
	case BoxPrim:
		return "box"
	case CylinderPrim:
		return "cylinder"
	case ConePrim:
		return "cone"
	case TorusPrim:
		return "torus"
	}
	return "unknown"
}

// Primitive is one fixed-layout shape record. Params meaning by type:
//
//	sphere   [radius, -, -]
//	box      [halfX, halfY, halfZ]
//	cylinder [radius, height, -]       (axis along local Y)
//	cone     [radius, height, -]       (base radius, axis along local Y)
//	torus    [major, minor, -]         (ring in local XZ plane)
type Primitive struct {
	Center Point3
	Type   PrimitiveType
	Params [3]Real
}

// Transform pairs 1:1 by index with a Primitive. It lives in a separate
// parallel array so consumers can animate rotation/scale without touching
// the immutable shape parameters.
type Transform struct {
	Rotate Rot3
	Scale  Real
}

func identityTransform() Transform { return Transform{Scale: 1} }

type NodeOp uint32

const (
	OpPrimitive NodeOp = iota
	OpUnion
	OpIntersect
	OpSubtract
)

func (op NodeOp) String() string {
	switch op {
	case OpPrimitive:
		return "primitive"
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	case OpSubtract:
		return "subtract"
	}
	return "unknown"
}

// Node is one arena slot of the boolean tree. Ownership is by index into
// CSG.Nodes, never by pointer; the arena is append-only during a build.
// Material is meaningful only on root nodes.
type Node struct {
	Op          NodeOp
	Prim        int32 // primitive index, -1 on boolean nodes
	Left, Right int32 // child node indices, -1 on primitive nodes
	Material    int32
}

// CSG holds the primitive table, the parallel transform table, the node
// arena and the ordered root list for one scene.
type CSG struct {
	Primitives []Primitive
	Transforms []Transform
	Nodes      []Node
	Roots      []int32
}

func NewCSG() *CSG { return &CSG{} }

func (c *CSG) addPrimitive(p Primitive) int32 {
	idx := int32(len(c.Primitives))
	c.Primitives = append(c.Primitives, p)
	c.Transforms = append(c.Transforms, identityTransform())
	return idx
}

// AddSphere appends a sphere primitive (plus identity transform) and returns
// its index.
func (c *CSG) AddSphere(center Point3, r Real) int32 {
	return c.addPrimitive(Primitive{Center: center, Type: SpherePrim, Params: [3]Real{r, 0, 0}})
}

// AddBox appends a box primitive with the given half-extents.
func (c *CSG) AddBox(center Point3, hx, hy, hz Real) int32 {
	return c.addPrimitive(Primitive{Center: center, Type: BoxPrim, Params: [3]Real{hx, hy, hz}})
}

func (c *CSG) AddCylinder(center Point3, r, h Real) int32 {
	return c.addPrimitive(Primitive{Center: center, Type: CylinderPrim, Params: [3]Real{r, h, 0}})
}

func (c *CSG) AddCone(center Point3, r, h Real) int32 {
	return c.addPrimitive(Primitive{Center: center, Type: ConePrim, Params: [3]Real{r, h, 0}})
}

func (c *CSG) AddTorus(center Point3, major, minor Real) int32 {
	return c.addPrimitive(Primitive{Center: center, Type: TorusPrim, Params: [3]Real{major, minor, 0}})
}

func (c *CSG) addNode(n Node) int32 {
	idx := int32(len(c.Nodes))
	c.Nodes = append(c.Nodes, n)
	return idx
}

// AddPrimitiveNode wraps a primitive index into a leaf node.
func (c *CSG) AddPrimitiveNode(prim, material int32) int32 {
	return c.addNode(Node{Op: OpPrimitive, Prim: prim, Left: -1, Right: -1, Material: material})
}

func (c *CSG) AddUnion(left, right, material int32) int32 {
	return c.addNode(Node{Op: OpUnion, Prim: -1, Left: left, Right: right, Material: material})
}

func (c *CSG) AddIntersect(left, right, material int32) int32 {
	return c.addNode(Node{Op: OpIntersect, Prim: -1, Left: left, Right: right, Material: material})
}

func (c *CSG) AddSubtract(left, right, material int32) int32 {
	return c.addNode(Node{Op: OpSubtract, Prim: -1, Left: left, Right: right, Material: material})
}

// AddRoot marks a node as an independently visible shape.
func (c *CSG) AddRoot(node int32) {
	c.Roots = append(c.Roots, node)
}

func (c *CSG) PrimitiveCount() int { return len(c.Primitives) }
func (c *CSG) NodeCount() int      { return len(c.Nodes) }
func (c *CSG) RootCount() int      { return len(c.Roots) }

// PrimitiveAABB bounds one transformed primitive. Rotated primitives (other
// than spheres, which rotation cannot change) fall back to a spherical
// diagonal-radius bound instead of a tight oriented box.
func (c *CSG) PrimitiveAABB(i int32) AABB {
	p := c.Primitives[i]
	t := c.Transforms[i]
	s := t.Scale
	if s == 0 {
		s = 1
	}
	h := localHalfExtents(p)
	if p.Type != SpherePrim && !t.Rotate.IsZero() {
		r := s * Vec3{h[0], h[1], h[2]}.Len()
		h = [3]Real{r, r, r}
	} else {
		h = [3]Real{h[0] * s, h[1] * s, h[2] * s}
	}
	return AABB{
		Min: Point3{p.Center.X - h[0], p.Center.Y - h[1], p.Center.Z - h[2]},
		Max: Point3{p.Center.X + h[0], p.Center.Y + h[1], p.Center.Z + h[2]},
	}
}

func localHalfExtents(p Primitive) [3]Real {
	switch p.Type {
	case SpherePrim:
		r := p.Params[0]
		return [3]Real{r, r, r}
	case BoxPrim:
		return p.Params
	case CylinderPrim, ConePrim:
		r, h := p.Params[0], p.Params[1]
		return [3]Real{r, h * 0.5, r}
	case TorusPrim:
		major, minor := p.Params[0], p.Params[1]
		return [3]Real{major + minor, minor, major + minor}
	}
	return [3]Real{}
}

// NodeAABB bounds a whole subtree. Boolean bounds are always the union of
// the children's bounds regardless of operator: Subtract and Intersect yield
// looser-than-tight boxes, which only costs traversal time, never
// correctness.
func (c *CSG) NodeAABB(i int32) AABB {
	n := c.Nodes[i]
	if n.Op == OpPrimitive {
		return c.PrimitiveAABB(n.Prim)
	}
	return aabbUnion(c.NodeAABB(n.Left), c.NodeAABB(n.Right))
}

// RootAABBs returns the bound of every root shape, in root order.
func (c *CSG) RootAABBs() []AABB {
	out := make([]AABB, len(c.Roots))
	for i, r := range c.Roots {
		out[i] = c.NodeAABB(r)
	}
	return out
}

package sceneforge

import (
	"fmt"
	"os"
	"path/filepath"
)

// MissingPropertyError reports a geometry or top-level form that lacks a
// required named property. Fatal to the load.
type MissingPropertyError struct {
	Form     string
	Property string
}

func (e *MissingPropertyError) Error() string {
	return fmt.Sprintf("%s: missing required property %q", e.Form, e.Property)
}

// UnknownGeometryTypeError reports a geometry expression with an
// unrecognized head symbol. Fatal to the load.
type UnknownGeometryTypeError struct {
	Symbol string
}

func (e *UnknownGeometryTypeError) Error() string {
	return fmt.Sprintf("unknown geometry type %q", e.Symbol)
}

// loadContext is threaded by value through include recursion: dir is the
// directory of the file currently being processed (nested includes resolve
// relative to it, not to the original file), visited is the set of absolute
// paths already processed anywhere in the load chain. The map is shared so a
// file included twice, on any branch, is processed exactly once.
type loadContext struct {
	dir     string
	visited map[string]bool
}

// LoadSceneFile parses and interprets a scene file into a complete document.
// A failed load yields no document at all.
func LoadSceneFile(path string) (*Scene, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := newScene()
	ctx := loadContext{dir: filepath.Dir(abs), visited: map[string]bool{abs: true}}
	if err := s.loadSource(string(data), ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSceneString is LoadSceneFile for in-memory source; includes resolve
// relative to baseDir.
func LoadSceneString(src, baseDir string) (*Scene, error) {
	s := newScene()
	ctx := loadContext{dir: baseDir, visited: make(map[string]bool)}
	if err := s.loadSource(src, ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) loadSource(src string, ctx loadContext) error {
	forms, err := Parse(src)
	if err != nil {
		return err
	}
	for _, f := range forms {
		if err := s.topLevel(f, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) topLevel(v Value, ctx loadContext) error {
	switch v.Head() {
	case "material":
		return s.loadMaterial(v)
	case "shape":
		return s.loadShape(v)
	case "include":
		return s.loadInclude(v, ctx)
	case "patches", "newell-patch":
		return s.loadPatches(v)
	case "instance":
		return s.loadInstance(v)
	}
	// Unrecognized top-level forms are ignored, not rejected, so newer scene
	// files keep loading on older builds.
	return nil
}

// ---------------------------------------------------------
// property helpers
// ---------------------------------------------------------

// formProp finds the first child list whose head matches one of names.
func formProp(v Value, names ...string) (Value, bool) {
	if v.Kind != ListValue {
		return Value{}, false
	}
	for _, c := range v.List[1:] {
		h := c.Head()
		for _, n := range names {
			if h == n {
				return c, true
			}
		}
	}
	return Value{}, false
}

// formNums collects the numeric arguments of a form, after the head.
func formNums(v Value) []Real {
	var out []Real
	for _, c := range v.List[1:] {
		if c.Kind == NumberValue {
			out = append(out, c.Num)
		}
	}
	return out
}

func propNums(v Value, names ...string) ([]Real, bool) {
	p, ok := formProp(v, names...)
	if !ok {
		return nil, false
	}
	return formNums(p), true
}

func propNum(v Value, names ...string) (Real, bool) {
	ns, ok := propNums(v, names...)
	if !ok || len(ns) < 1 {
		return 0, false
	}
	return ns[0], true
}

func propPoint(v Value, names ...string) (Point3, bool) {
	ns, ok := propNums(v, names...)
	if !ok || len(ns) < 3 {
		return Point3{}, false
	}
	return Point3{ns[0], ns[1], ns[2]}, true
}

// ---------------------------------------------------------
// material
// ---------------------------------------------------------

// (material "name" (type diffuse) (albedo 0.8 0.1 0.1) (roughness 0.3) ...)
func (s *Scene) loadMaterial(v Value) error {
	if len(v.List) < 2 || v.List[1].Kind != SymbolValue {
		return &MissingPropertyError{Form: "material", Property: "name"}
	}
	name := v.List[1].Sym
	m := defaultMaterial()
	for _, p := range v.List[2:] {
		switch p.Head() {
		case "type":
			if len(p.List) >= 2 && p.List[1].Kind == SymbolValue {
				switch p.List[1].Sym {
				case "diffuse":
					m.Type = DiffuseMaterial
				case "metal":
					m.Type = MetalMaterial
				case "dielectric", "glass":
					m.Type = DielectricMaterial
				case "emissive", "light":
					m.Type = EmissiveMaterial
				case "checker":
					m.Type = CheckerMaterial
				}
			}
		case "albedo", "rgb":
			if ns := formNums(p); len(ns) >= 3 {
				m.Albedo = RGB{ns[0], ns[1], ns[2]}.clamp01()
			}
		case "emissive":
			if ns := formNums(p); len(ns) >= 3 {
				m.Emission = RGB{ns[0], ns[1], ns[2]}
			}
		case "roughness", "metallic":
			if ns := formNums(p); len(ns) >= 1 {
				m.Param1 = ns[0]
			}
		case "ior":
			if ns := formNums(p); len(ns) >= 1 {
				m.Param1 = ns[0]
			}
		case "scale":
			if ns := formNums(p); len(ns) >= 1 {
				m.Param2 = ns[0]
			}
		}
		// Unknown property keys are ignored.
	}
	s.Materials.Add(name, m)
	if Debug {
		DebugLog("material %q added (%s)", name, m.Type)
	}
	return nil
}

// ---------------------------------------------------------
// shape / geometry
// ---------------------------------------------------------

// (shape <geometry> "material")
func (s *Scene) loadShape(v Value) error {
	if len(v.List) < 2 {
		return &MissingPropertyError{Form: "shape", Property: "geometry"}
	}
	last := v.List[len(v.List)-1]
	if len(v.List) < 3 || last.Kind != SymbolValue {
		return &MissingPropertyError{Form: "shape", Property: "material"}
	}
	mat, ok := s.Materials.Lookup(last.Sym)
	if !ok {
		return fmt.Errorf("shape: unknown material %q", last.Sym)
	}
	node, err := s.geometry(v.List[1], mat)
	if err != nil {
		return err
	}
	s.CSG.AddRoot(node)
	return nil
}

var booleanOps = map[string]NodeOp{
	"union":        OpUnion,
	"intersect":    OpIntersect,
	"intersection": OpIntersect,
	"subtract":     OpSubtract,
	"difference":   OpSubtract,
}

// geometry interprets one geometry expression into the node arena and
// returns the subtree's node index. Boolean forms left-fold their N children
// into N-1 binary nodes sharing one material id.
func (s *Scene) geometry(v Value, material int32) (int32, error) {
	head := v.Head()
	if head == "" {
		return 0, &UnknownGeometryTypeError{Symbol: v.String()}
	}
	if op, ok := booleanOps[head]; ok {
		var kids []int32
		for _, c := range v.List[1:] {
			n, err := s.geometry(c, material)
			if err != nil {
				return 0, err
			}
			kids = append(kids, n)
		}
		if len(kids) < 2 {
			return 0, fmt.Errorf("%s: requires at least 2 operands, got %d", head, len(kids))
		}
		acc := kids[0]
		for _, k := range kids[1:] {
			switch op {
			case OpUnion:
				acc = s.CSG.AddUnion(acc, k, material)
			case OpIntersect:
				acc = s.CSG.AddIntersect(acc, k, material)
			case OpSubtract:
				acc = s.CSG.AddSubtract(acc, k, material)
			}
		}
		return acc, nil
	}
	prim, err := s.primitive(v, head)
	if err != nil {
		return 0, err
	}
	return s.CSG.AddPrimitiveNode(prim, material), nil
}

func (s *Scene) primitive(v Value, head string) (int32, error) {
	switch head {
	case "sphere", "box", "cylinder", "cone", "torus":
	default:
		return 0, &UnknownGeometryTypeError{Symbol: head}
	}
	at, ok := propPoint(v, "at", "center")
	if !ok {
		return 0, &MissingPropertyError{Form: head, Property: "at"}
	}

	var idx int32
	switch head {
	case "sphere":
		r, ok := propNum(v, "r", "radius")
		if !ok {
			return 0, &MissingPropertyError{Form: head, Property: "r"}
		}
		idx = s.CSG.AddSphere(at, r)
	case "box":
		ns, ok := propNums(v, "size", "extents")
		if !ok || len(ns) < 3 {
			return 0, &MissingPropertyError{Form: head, Property: "size"}
		}
		// size is the full extent; half-extents are stored
		idx = s.CSG.AddBox(at, ns[0]*0.5, ns[1]*0.5, ns[2]*0.5)
	case "cylinder", "cone":
		r, ok := propNum(v, "r", "radius")
		if !ok {
			return 0, &MissingPropertyError{Form: head, Property: "r"}
		}
		h, ok := propNum(v, "h", "height")
		if !ok {
			return 0, &MissingPropertyError{Form: head, Property: "h"}
		}
		if head == "cylinder" {
			idx = s.CSG.AddCylinder(at, r, h)
		} else {
			idx = s.CSG.AddCone(at, r, h)
		}
	case "torus":
		major, ok := propNum(v, "r", "radius")
		if !ok {
			return 0, &MissingPropertyError{Form: head, Property: "r"}
		}
		minor, ok := propNum(v, "tube")
		if !ok {
			return 0, &MissingPropertyError{Form: head, Property: "tube"}
		}
		idx = s.CSG.AddTorus(at, major, minor)
	}

	if ns, ok := propNums(v, "rotate"); ok && len(ns) >= 3 {
		s.CSG.Transforms[idx].Rotate = RotDeg{ns[0], ns[1], ns[2]}.Radians()
	}
	if sc, ok := propNum(v, "scale"); ok {
		s.CSG.Transforms[idx].Scale = sc
	}
	return idx, nil
}

// ---------------------------------------------------------
// include
// ---------------------------------------------------------

// (include "other.scene") — resolved relative to the including file.
func (s *Scene) loadInclude(v Value, ctx loadContext) error {
	if len(v.List) < 2 || v.List[1].Kind != SymbolValue {
		return &MissingPropertyError{Form: "include", Property: "path"}
	}
	resolved := v.List[1].Sym
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(ctx.dir, resolved)
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if ctx.visited[resolved] {
		if Debug {
			DebugLog("include %s already processed, skipping", resolved)
		}
		return nil
	}
	// Mark before processing so a file that transitively includes itself is
	// processed exactly once.
	ctx.visited[resolved] = true

	// ReadFile closes the handle before we recurse into nested includes.
	data, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("include: %w", err)
	}
	sub := loadContext{dir: filepath.Dir(resolved), visited: ctx.visited}
	return s.loadSource(string(data), sub)
}

// ---------------------------------------------------------
// patches / instance
// ---------------------------------------------------------

// (patches "name" (vertices x y z x y z ...) (patch i0 ... i15) ...)
//
// Vertex indices outside the vertex list are not an error: the control point
// stays at the zero vector. Deliberately loose, matching how sparse model
// exports are commonly patched up by hand.
func (s *Scene) loadPatches(v Value) error {
	if len(v.List) < 2 || v.List[1].Kind != SymbolValue {
		return &MissingPropertyError{Form: "patches", Property: "name"}
	}
	name := v.List[1].Sym

	var verts []Point3
	if vf, ok := formProp(v, "vertices", "verts"); ok {
		ns := formNums(vf)
		for i := 0; i+2 < len(ns); i += 3 {
			verts = append(verts, Point3{ns[i], ns[i+1], ns[i+2]})
		}
	}

	var patches []Patch
	for _, c := range v.List[2:] {
		if c.Head() != "patch" {
			continue
		}
		ns := formNums(c)
		var p Patch
		for k := 0; k < 16 && k < len(ns); k++ {
			vi := int(ns[k])
			if vi >= 0 && vi < len(verts) {
				p.P[k] = verts[vi]
			}
		}
		patches = append(patches, p)
	}
	s.addGroup(name, patches)
	if Debug {
		DebugLog("patch group %q: %d vertices, %d patches", name, len(verts), len(patches))
	}
	return nil
}

// (instance "group" (at x y z) (scale s) (rotate rx ry rz) "material")
//
// rotate is given in degrees and stored in radians. The trailing material
// name is required. Referencing the builtin teapot group by name pulls the
// hard-coded model in without a patches form.
func (s *Scene) loadInstance(v Value) error {
	if len(v.List) < 2 || v.List[1].Kind != SymbolValue {
		return &MissingPropertyError{Form: "instance", Property: "group"}
	}
	gname := v.List[1].Sym
	gi, ok := s.LookupGroup(gname)
	if !ok {
		if gname != BuiltinTeapotGroup {
			return fmt.Errorf("instance: unknown patch group %q", gname)
		}
		gi = s.addGroup(gname, TeapotPatches())
	}

	last := v.List[len(v.List)-1]
	if len(v.List) < 3 || last.Kind != SymbolValue {
		return &MissingPropertyError{Form: "instance", Property: "material"}
	}
	mat, ok := s.Materials.Lookup(last.Sym)
	if !ok {
		return fmt.Errorf("instance: unknown material %q", last.Sym)
	}

	inst := PatchInstance{Scale: 1, Group: gi, Material: mat}
	if p, ok := propPoint(v, "at", "center"); ok {
		inst.Position = p
	}
	if sc, ok := propNum(v, "scale"); ok {
		inst.Scale = sc
	}
	if ns, ok := propNums(v, "rotate"); ok && len(ns) >= 3 {
		inst.Rotate = RotDeg{ns[0], ns[1], ns[2]}.Radians()
	}
	s.Instances = append(s.Instances, inst)
	return nil
}

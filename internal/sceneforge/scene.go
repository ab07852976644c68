package sceneforge

// PatchGroup is a named, reusable set of bicubic patches.
type PatchGroup struct {
	Name    string
	Patches []Patch
}

// PatchInstance binds a patch group into the scene with placement data.
// Group and Material are indices into the sibling tables, keeping the record
// pointer-free for bulk upload.
type PatchInstance struct {
	Position Point3
	Scale    Real
	Rotate   Rot3
	Material int32
	Group    int32
}

// Scene is the document a successful load produces. It is read-only for the
// rest of the program; a reload builds a fresh Scene and leaves the old one
// untouched.
type Scene struct {
	Materials MaterialLibrary
	CSG       *CSG
	Groups    []PatchGroup
	Instances []PatchInstance

	groupIdx map[string]int32
}

func newScene() *Scene {
	return &Scene{
		CSG:      NewCSG(),
		groupIdx: make(map[string]int32),
	}
}

func (s *Scene) GroupCount() int    { return len(s.Groups) }
func (s *Scene) InstanceCount() int { return len(s.Instances) }

// LookupGroup resolves a patch-group name to its index.
func (s *Scene) LookupGroup(name string) (int32, bool) {
	id, ok := s.groupIdx[name]
	return id, ok
}

// addGroup appends a named group. Like the material library, re-adding a
// name appends and repoints; existing indices stay valid.
func (s *Scene) addGroup(name string, patches []Patch) int32 {
	id := int32(len(s.Groups))
	s.Groups = append(s.Groups, PatchGroup{Name: name, Patches: patches})
	s.groupIdx[name] = id
	return id
}

// GroupRange locates one group's sub-patches inside Tables.SubPatches.
type GroupRange struct {
	First, Count uint32
}

// Tables is the renderer boundary: every array is fixed-layout and
// pointer-free, indices always address a sibling array. Built once per
// compile; rebuilt from scratch when the scene changes.
type Tables struct {
	Materials  []Material
	Primitives []Primitive
	Transforms []Transform
	Nodes      []Node
	Roots      []int32

	CSGBVH   []BVHNode
	CSGOrder []uint32

	SubPatches  []SubPatch
	GroupRanges []GroupRange
	PatchBVH    []BVHNode
	PatchOrder  []uint32

	Instances []PatchInstance
}

// Compile flattens the document into GPU-consumable arrays: subdivides every
// patch group, then builds both acceleration trees.
func (s *Scene) Compile(maxDepth int, flatness Real) *Tables {
	t := &Tables{
		Materials:  s.Materials.Materials,
		Primitives: s.CSG.Primitives,
		Transforms: s.CSG.Transforms,
		Nodes:      s.CSG.Nodes,
		Roots:      s.CSG.Roots,
		Instances:  s.Instances,
	}
	t.CSGBVH, t.CSGOrder = BuildCSGBVH(s.CSG)

	t.GroupRanges = make([]GroupRange, len(s.Groups))
	for i, g := range s.Groups {
		sub := Subdivide(g.Patches, maxDepth, flatness)
		t.GroupRanges[i] = GroupRange{First: uint32(len(t.SubPatches)), Count: uint32(len(sub))}
		t.SubPatches = append(t.SubPatches, sub...)
	}
	t.PatchBVH, t.PatchOrder = BuildPatchBVH(t.SubPatches)

	if Debug {
		DebugLog("compiled scene: %d materials, %d primitives, %d nodes, %d roots, %d sub-patches, %d instances",
			len(t.Materials), len(t.Primitives), len(t.Nodes), len(t.Roots), len(t.SubPatches), len(t.Instances))
	}
	return t
}

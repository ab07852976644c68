package sceneforge

// RGB stores color components; each should be in [0,1] for albedo colors
// (emission may exceed 1).
type RGB struct {
	R, G, B Real
}

// clamp01 clamps each channel to [0,1] (useful for validation).
func (c RGB) clamp01() RGB {
	cl := func(x Real) Real {
		if x < 0 {
			return 0
		}
		if x > 1 {
			return 1
		}
		return x
	}
	return RGB{cl(c.R), cl(c.G), cl(c.B)}
}

type MaterialType uint32

const (
	DiffuseMaterial MaterialType = iota
	MetalMaterial
	DielectricMaterial
	EmissiveMaterial
	CheckerMaterial
)

func (t MaterialType) String() string {
	switch t {
	case DiffuseMaterial:
		return "diffuse"
	case MetalMaterial:
		return "metal"
	case DielectricMaterial:
		return "dielectric"
	case EmissiveMaterial:
		return "emissive"
	case CheckerMaterial:
		return "checker"
	}
	return "unknown"
}

// Material is one fixed-layout record in the material table. Param1 carries
// roughness (metal) or index-of-refraction (dielectric); Param2 carries the
// pattern scale for checker materials.
type Material struct {
	Albedo   RGB
	Emission RGB
	Type     MaterialType
	Param1   Real
	Param2   Real
}

// defaultMaterial is the base every `material` form merges onto.
func defaultMaterial() Material {
	return Material{
		Albedo: RGB{DefaultAlbedo, DefaultAlbedo, DefaultAlbedo},
		Type:   DiffuseMaterial,
		Param1: DefaultParam1,
		Param2: DefaultParam2,
	}
}

// MaterialLibrary is a flat, insertion-ordered table of named materials.
// Records are never removed, so an index handed out once stays valid for the
// lifetime of the scene.
type MaterialLibrary struct {
	Materials []Material
	index     map[string]int32
}

// Add appends a record under the given name and returns its index. Re-adding
// a name appends a fresh record and repoints the name at it; the old record
// stays in the table so existing indices remain valid.
func (l *MaterialLibrary) Add(name string, m Material) int32 {
	if l.index == nil {
		l.index = make(map[string]int32)
	}
	id := int32(len(l.Materials))
	l.Materials = append(l.Materials, m)
	l.index[name] = id
	return id
}

// Lookup resolves a material name to its index.
func (l *MaterialLibrary) Lookup(name string) (int32, bool) {
	id, ok := l.index[name]
	return id, ok
}

func (l *MaterialLibrary) Count() int { return len(l.Materials) }

// At returns the record at index i.
func (l *MaterialLibrary) At(i int32) Material { return l.Materials[i] }

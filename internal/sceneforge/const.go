package sceneforge

// Scalar type used throughout the pipeline.
type Real = float64

const (
	// BVH tuning. CSG roots are few and heavy, so their tree uses a looser
	// leaf threshold than the (much more numerous) Bezier sub-patches.
	CSGBVHLeafSize   = 4
	PatchBVHLeafSize = 2
	BVHMaxDepth      = 32
	BVHPad           = 1e-4 // outward padding on every emitted bound

	// Bezier subdivision defaults.
	DefaultPatchMaxDepth = 4
	DefaultPatchFlatness = 0.05 // AABB-diagonal cutoff
	PatchAABBPad         = 1e-4 // avoids cracks between adjacent sub-patches

	// Scene-language defaults.
	DefaultAlbedo   = 0.8
	DefaultParam1   = 0.5 // roughness / IOR slot
	DefaultParam2   = 1.0 // pattern scale slot
	rotEps   = 1e-12
	degToRad = 3.14159265358979323846 / 180.0
)

package sceneforge

import "sort"

// BVHLeafFlag is the reserved high bit of BVHNode.B that marks a leaf.
const BVHLeafFlag = uint32(1) << 31

// BVHNode is one slot of the flattened tree. Node 0 is always the root and
// the array is never mutated after construction (rebuild on change, no
// incremental edits). For an internal node A/B are the child indices; for a
// leaf A is the first item index into the reorder permutation and B carries
// the item count with BVHLeafFlag set.
type BVHNode struct {
	Min, Max Point3
	A, B     uint32
}

func (n BVHNode) IsLeaf() bool { return n.B&BVHLeafFlag != 0 }

// LeafRange returns the (first, count) item range of a leaf node.
func (n BVHNode) LeafRange() (first, count uint32) {
	return n.A, n.B &^ BVHLeafFlag
}

// Children returns the child node indices of an internal node.
func (n BVHNode) Children() (left, right uint32) { return n.A, n.B }

// BuildBVH builds a flattened tree over the given boxes by recursive
// balanced median splits. It returns the node array plus the index
// permutation: leaf item ranges address positions in the permutation, which
// maps back to the caller's original indices. pad is applied outward to
// every emitted bound.
func BuildBVH(boxes []AABB, leafSize int, pad Real) ([]BVHNode, []uint32) {
	if len(boxes) == 0 {
		return nil, nil
	}
	if leafSize < 1 {
		leafSize = 1
	}
	order := make([]uint32, len(boxes))
	for i := range order {
		order[i] = uint32(i)
	}
	b := &bvhBuilder{boxes: boxes, order: order, leafSize: leafSize, pad: pad}
	b.build(0, len(boxes), 0)
	if Debug {
		DebugLog("BVH built: %d items, %d nodes", len(boxes), len(b.nodes))
	}
	return b.nodes, order
}

type bvhBuilder struct {
	boxes    []AABB
	order    []uint32
	nodes    []BVHNode
	leafSize int
	pad      Real
}

func (b *bvhBuilder) build(start, count, depth int) uint32 {
	bb := emptyAABB()
	for _, oi := range b.order[start : start+count] {
		bb = aabbUnion(bb, b.boxes[oi])
	}
	bb = bb.Expand(b.pad)

	// The node's slot is fixed here, before recursing. Child links are
	// patched in only after both subtrees return: recursion appends to
	// b.nodes and may reallocate it, so writing through a stale reference
	// taken before the recursion would be lost.
	idx := uint32(len(b.nodes))
	b.nodes = append(b.nodes, BVHNode{Min: bb.Min, Max: bb.Max})

	if count <= b.leafSize || depth >= BVHMaxDepth {
		b.nodes[idx].A = uint32(start)
		b.nodes[idx].B = BVHLeafFlag | uint32(count)
		return idx
	}

	// Longest box extent picks the split axis; a full centroid sort plus a
	// balanced count split keeps the tree height predictable.
	axis := bb.LongestAxis()
	span := b.order[start : start+count]
	sort.Slice(span, func(i, j int) bool {
		ci := b.boxes[span[i]].Centroid(axis)
		cj := b.boxes[span[j]].Centroid(axis)
		if ci == cj {
			return span[i] < span[j]
		}
		return ci < cj
	})

	mid := count / 2
	left := b.build(start, mid, depth+1)
	right := b.build(start+mid, count-mid, depth+1)
	b.nodes[idx].A = left
	b.nodes[idx].B = right
	return idx
}

// BuildCSGBVH accelerates the root shapes of a CSG graph.
func BuildCSGBVH(c *CSG) ([]BVHNode, []uint32) {
	return BuildBVH(c.RootAABBs(), CSGBVHLeafSize, BVHPad)
}

// BuildPatchBVH accelerates a flat sub-patch list.
func BuildPatchBVH(sub []SubPatch) ([]BVHNode, []uint32) {
	boxes := make([]AABB, len(sub))
	for i := range sub {
		boxes[i] = AABB{Min: sub[i].Min, Max: sub[i].Max}
	}
	return BuildBVH(boxes, PatchBVHLeafSize, BVHPad)
}

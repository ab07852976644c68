package sceneforge

import (
	"fmt"
	"io"
	"strings"
)

// DumpScene prints every table of the document in human-readable form.
func DumpScene(w io.Writer, s *Scene) {
	fmt.Fprintf(w, "materials: %d\n", s.Materials.Count())
	for i, m := range s.Materials.Materials {
		fmt.Fprintf(w, "  #%d %-10s albedo=(%.3g,%.3g,%.3g) emission=(%.3g,%.3g,%.3g) p1=%.3g p2=%.3g\n",
			i, m.Type, m.Albedo.R, m.Albedo.G, m.Albedo.B,
			m.Emission.R, m.Emission.G, m.Emission.B, m.Param1, m.Param2)
	}

	c := s.CSG
	fmt.Fprintf(w, "primitives: %d\n", c.PrimitiveCount())
	for i, p := range c.Primitives {
		t := c.Transforms[i]
		fmt.Fprintf(w, "  #%d %-8s at=(%.4g,%.4g,%.4g) params=(%.4g,%.4g,%.4g) rot=(%.4g,%.4g,%.4g) scale=%.4g\n",
			i, p.Type, p.Center.X, p.Center.Y, p.Center.Z,
			p.Params[0], p.Params[1], p.Params[2],
			t.Rotate.X, t.Rotate.Y, t.Rotate.Z, t.Scale)
	}
	fmt.Fprintf(w, "nodes: %d\n", c.NodeCount())
	for i, n := range c.Nodes {
		if n.Op == OpPrimitive {
			fmt.Fprintf(w, "  #%d primitive prim=%d mat=%d\n", i, n.Prim, n.Material)
		} else {
			fmt.Fprintf(w, "  #%d %-9s left=%d right=%d mat=%d\n", i, n.Op, n.Left, n.Right, n.Material)
		}
	}
	fmt.Fprintf(w, "roots: %v\n", c.Roots)

	fmt.Fprintf(w, "patch groups: %d\n", s.GroupCount())
	for i, g := range s.Groups {
		fmt.Fprintf(w, "  #%d %q: %d patches\n", i, g.Name, len(g.Patches))
	}
	fmt.Fprintf(w, "instances: %d\n", s.InstanceCount())
	for i, in := range s.Instances {
		fmt.Fprintf(w, "  #%d group=%d at=(%.4g,%.4g,%.4g) scale=%.4g rot=(%.4g,%.4g,%.4g) mat=%d\n",
			i, in.Group, in.Position.X, in.Position.Y, in.Position.Z,
			in.Scale, in.Rotate.X, in.Rotate.Y, in.Rotate.Z, in.Material)
	}
}

// DumpTables prints the compiled renderer-boundary arrays plus both trees.
func DumpTables(w io.Writer, t *Tables) {
	fmt.Fprintf(w, "compiled: %d materials, %d primitives, %d nodes, %d roots, %d sub-patches, %d instances\n",
		len(t.Materials), len(t.Primitives), len(t.Nodes), len(t.Roots), len(t.SubPatches), len(t.Instances))
	for i, gr := range t.GroupRanges {
		fmt.Fprintf(w, "  group #%d: sub-patches [%d, %d)\n", i, gr.First, gr.First+gr.Count)
	}
	DumpBVH(w, "csg", t.CSGBVH)
	DumpBVH(w, "patch", t.PatchBVH)
}

type bvhCounts struct {
	nodes  int
	leaves int
	items  int
}

// DumpBVH prints the flattened tree with one tab per level, with subtree
// counts and the bound corners for each node.
func DumpBVH(w io.Writer, label string, nodes []BVHNode) bool {
	if len(nodes) == 0 {
		fmt.Fprintf(w, "[BVH %s] <empty>\n", label)
		return false
	}
	memo := make(map[uint32]bvhCounts, len(nodes))
	totals := countBVH(nodes, 0, memo)
	fmt.Fprintf(w, "[BVH %s] root: nodes=%d leaves=%d items=%d\n", label, totals.nodes, totals.leaves, totals.items)
	printBVH(w, nodes, 0, 0, memo)
	return true
}

func countBVH(nodes []BVHNode, i uint32, memo map[uint32]bvhCounts) bvhCounts {
	if c, ok := memo[i]; ok {
		return c
	}
	n := nodes[i]
	if n.IsLeaf() {
		_, count := n.LeafRange()
		c := bvhCounts{nodes: 1, leaves: 1, items: int(count)}
		memo[i] = c
		return c
	}
	l, r := n.Children()
	lc := countBVH(nodes, l, memo)
	rc := countBVH(nodes, r, memo)
	c := bvhCounts{
		nodes:  1 + lc.nodes + rc.nodes,
		leaves: lc.leaves + rc.leaves,
		items:  lc.items + rc.items,
	}
	memo[i] = c
	return c
}

func printBVH(w io.Writer, nodes []BVHNode, i uint32, depth int, memo map[uint32]bvhCounts) {
	n := nodes[i]
	ind := strings.Repeat("\t", depth)
	if n.IsLeaf() {
		first, count := n.LeafRange()
		fmt.Fprintf(w, "%sLEAF  items=[%d,%d) | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
			ind, first, first+count,
			n.Min.X, n.Min.Y, n.Min.Z,
			n.Max.X, n.Max.Y, n.Max.Z,
		)
		return
	}
	c := memo[i]
	fmt.Fprintf(w, "%sNODE  nodes=%d leaves=%d items=%d | min=(%.5g,%.5g,%.5g) max=(%.5g,%.5g,%.5g)\n",
		ind, c.nodes, c.leaves, c.items,
		n.Min.X, n.Min.Y, n.Min.Z,
		n.Max.X, n.Max.Y, n.Max.Z,
	)
	l, r := n.Children()
	printBVH(w, nodes, l, depth+1, memo)
	printBVH(w, nodes, r, depth+1, memo)
}

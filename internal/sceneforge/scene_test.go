package sceneforge

import "testing"

func testScene(t *testing.T) *Scene {
	t.Helper()
	return load(t, testMaterials+`
(shape (subtract (box (at 0 0 0) (size 2 2 2)) (sphere (at 0 0 0) (r 1.2))) steel)
(shape (sphere (at 5 0 0) (r 1)) glow)
(instance teapot (at 0 2 0) (scale 0.5) steel)`)
}

func TestCompile_TablesConsistent(t *testing.T) {
	s := testScene(t)
	tb := s.Compile(2, DefaultPatchFlatness)

	if len(tb.Primitives) != len(tb.Transforms) {
		t.Fatalf("primitive/transform tables out of sync: %d vs %d", len(tb.Primitives), len(tb.Transforms))
	}
	if len(tb.Roots) != 2 {
		t.Fatalf("want 2 roots, got %d", len(tb.Roots))
	}
	if len(tb.CSGOrder) != len(tb.Roots) {
		t.Fatalf("CSG order must permute roots: %d vs %d", len(tb.CSGOrder), len(tb.Roots))
	}
	if len(tb.PatchOrder) != len(tb.SubPatches) {
		t.Fatalf("patch order must permute sub-patches: %d vs %d", len(tb.PatchOrder), len(tb.SubPatches))
	}
	if len(tb.Instances) != 1 {
		t.Fatalf("instances not carried: %d", len(tb.Instances))
	}
}

func TestCompile_GroupRangesPartitionSubPatches(t *testing.T) {
	s := load(t, testMaterials+`
(patches a (vertices 0 0 0) (patch 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0))
(instance teapot steel)
(instance a steel)`)
	tb := s.Compile(1, 1e-12)

	if len(tb.GroupRanges) != s.GroupCount() {
		t.Fatalf("one range per group: %d vs %d", len(tb.GroupRanges), s.GroupCount())
	}
	var next uint32
	var total uint32
	for i, gr := range tb.GroupRanges {
		if gr.First != next {
			t.Fatalf("range %d starts at %d, want %d (ranges must be contiguous)", i, gr.First, next)
		}
		next = gr.First + gr.Count
		total += gr.Count
	}
	if int(total) != len(tb.SubPatches) {
		t.Fatalf("ranges cover %d sub-patches, table has %d", total, len(tb.SubPatches))
	}
}

func TestCompile_EmptyScene(t *testing.T) {
	s := newScene()
	tb := s.Compile(DefaultPatchMaxDepth, DefaultPatchFlatness)
	if len(tb.CSGBVH) != 0 || len(tb.PatchBVH) != 0 || len(tb.SubPatches) != 0 {
		t.Fatalf("empty scene must compile to empty tables: %+v", tb)
	}
}

func TestCompile_DoesNotMutateScene(t *testing.T) {
	s := testScene(t)
	before := s.CSG.NodeCount()
	_ = s.Compile(2, DefaultPatchFlatness)
	_ = s.Compile(2, DefaultPatchFlatness)
	if s.CSG.NodeCount() != before {
		t.Fatalf("compile must not grow the node arena: %d -> %d", before, s.CSG.NodeCount())
	}
}

func TestLookupGroup(t *testing.T) {
	s := newScene()
	if _, ok := s.LookupGroup("missing"); ok {
		t.Fatalf("lookup on empty scene must fail")
	}
	id := s.addGroup("g", nil)
	got, ok := s.LookupGroup("g")
	if !ok || got != id {
		t.Fatalf("lookup got (%d,%v) want (%d,true)", got, ok, id)
	}
}

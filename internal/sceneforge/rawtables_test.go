package sceneforge

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveRaw_HeaderAndSize(t *testing.T) {
	s := testScene(t)
	tb := s.Compile(2, DefaultPatchFlatness)

	path := filepath.Join(t.TempDir(), "out", "scene.tables")
	if err := tb.SaveRaw(path); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open result file: %v", err)
	}
	defer f.Close()

	rd := bufio.NewReader(f)
	header := make([]int32, 11)
	if err := binary.Read(rd, binary.LittleEndian, header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header[0] != rawTablesMagic || header[1] != rawTablesVersion {
		t.Fatalf("magic/version wrong: %x %d", header[0], header[1])
	}
	wantCounts := []int{
		len(tb.Materials), len(tb.Primitives), len(tb.Nodes), len(tb.Roots),
		len(tb.CSGBVH), len(tb.SubPatches), len(tb.GroupRanges), len(tb.PatchBVH),
		len(tb.Instances),
	}
	for i, w := range wantCounts {
		if int(header[2+i]) != w {
			t.Fatalf("header count %d got %d want %d", i, header[2+i], w)
		}
	}

	st, err := f.Stat()
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() != tb.RawSize() {
		t.Fatalf("file size %d, RawSize says %d", st.Size(), tb.RawSize())
	}
}

func TestSaveRaw_EmptyTables(t *testing.T) {
	tb := newScene().Compile(DefaultPatchMaxDepth, DefaultPatchFlatness)
	path := filepath.Join(t.TempDir(), "empty.tables")
	if err := tb.SaveRaw(path); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}
	st, _ := os.Stat(path)
	if st.Size() != 11*4 { // header only
		t.Fatalf("want header-only file, got %d bytes", st.Size())
	}
}

func TestSaveRaw_InconsistentOrders(t *testing.T) {
	s := testScene(t)
	tb := s.Compile(2, DefaultPatchFlatness)
	tb.PatchOrder = tb.PatchOrder[:len(tb.PatchOrder)-1]
	if err := tb.SaveRaw(filepath.Join(t.TempDir(), "bad.tables")); err == nil {
		t.Fatalf("expected error for mismatched patch order")
	}
	tb2 := s.Compile(2, DefaultPatchFlatness)
	tb2.CSGOrder = nil
	if err := tb2.SaveRaw(filepath.Join(t.TempDir(), "bad2.tables")); err == nil {
		t.Fatalf("expected error for mismatched CSG order")
	}
}

func TestSaveRaw_RoundTripRoots(t *testing.T) {
	s := testScene(t)
	tb := s.Compile(1, DefaultPatchFlatness)
	path := filepath.Join(t.TempDir(), "scene.tables")
	if err := tb.SaveRaw(path); err != nil {
		t.Fatalf("SaveRaw: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	// skip header plus the material, primitive, transform and node tables to
	// land on the roots array
	off := 11 * 4
	off += len(tb.Materials) * binary.Size(Material{})
	off += len(tb.Primitives) * binary.Size(Primitive{})
	off += len(tb.Transforms) * binary.Size(Transform{})
	off += len(tb.Nodes) * binary.Size(Node{})
	for i, want := range tb.Roots {
		got := int32(binary.LittleEndian.Uint32(data[off+4*i:]))
		if got != want {
			t.Fatalf("root %d round-tripped as %d want %d", i, got, want)
		}
	}
}

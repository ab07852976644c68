package sceneforge

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// Raw table dump format: magic + version, then one int32 length per table,
// then the tables themselves back to back, everything little-endian with no
// padding between fields. Consumers mmap or bulk-read the arrays directly.
const (
	rawTablesMagic   = int32(0x53464254) // "SFBT"
	rawTablesVersion = int32(1)
)

// SaveRaw writes the compiled tables to path in the flat binary layout.
func (t *Tables) SaveRaw(path string) error {
	// The orders permute roots and sub-patches; a length mismatch means the
	// tables were assembled by hand and are inconsistent.
	if len(t.CSGOrder) != len(t.Roots) {
		return fmt.Errorf("CSGOrder length mismatch: got %d, expected %d roots", len(t.CSGOrder), len(t.Roots))
	}
	if len(t.PatchOrder) != len(t.SubPatches) {
		return fmt.Errorf("PatchOrder length mismatch: got %d, expected %d sub-patches", len(t.PatchOrder), len(t.SubPatches))
	}

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	header := []int32{
		rawTablesMagic,
		rawTablesVersion,
		int32(len(t.Materials)),
		int32(len(t.Primitives)),
		int32(len(t.Nodes)),
		int32(len(t.Roots)),
		int32(len(t.CSGBVH)),
		int32(len(t.SubPatches)),
		int32(len(t.GroupRanges)),
		int32(len(t.PatchBVH)),
		int32(len(t.Instances)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	// Body: each table in one shot (fewer syscalls than per-record writes).
	for _, table := range []any{
		t.Materials,
		t.Primitives,
		t.Transforms,
		t.Nodes,
		t.Roots,
		t.CSGBVH,
		t.CSGOrder,
		t.SubPatches,
		t.GroupRanges,
		t.PatchBVH,
		t.PatchOrder,
		t.Instances,
	} {
		if err := binary.Write(w, binary.LittleEndian, table); err != nil {
			return err
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	_ = f.Sync() // optional

	return nil
}

// RawSize returns the exact byte size SaveRaw will produce, handy for
// preallocating reader buffers and for sanity checks in tests.
func (t *Tables) RawSize() int64 {
	var n int64
	n += 11 * 4 // header
	n += int64(len(t.Materials)) * int64(binary.Size(Material{}))
	n += int64(len(t.Primitives)) * int64(binary.Size(Primitive{}))
	n += int64(len(t.Transforms)) * int64(binary.Size(Transform{}))
	n += int64(len(t.Nodes)) * int64(binary.Size(Node{}))
	n += int64(len(t.Roots)) * 4
	n += int64(len(t.CSGBVH)) * int64(binary.Size(BVHNode{}))
	n += int64(len(t.CSGOrder)) * 4
	n += int64(len(t.SubPatches)) * int64(binary.Size(SubPatch{}))
	n += int64(len(t.GroupRanges)) * 8
	n += int64(len(t.PatchBVH)) * int64(binary.Size(BVHNode{}))
	n += int64(len(t.PatchOrder)) * 4
	n += int64(len(t.Instances)) * int64(binary.Size(PatchInstance{}))
	return n
}

package datum_test

import (
	"testing"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

func TestArray_GrowthAndIteration(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Array(schema.Int()))

	for _, n := range []int{1, 2, 3} {
		if _, err := in.Append(n); err != nil {
			t.Fatalf("append %d: %v", n, err)
		}
	}
	if in.Size() != 3 {
		t.Fatalf("expected size 3, got %d", in.Size())
	}

	it, err := in.Iterate()
	if err != nil {
		t.Fatalf("iterate: %v", err)
	}
	want := []int64{1, 2, 3}
	i := 0
	for it.Next() {
		if it.Key().Index() != i {
			t.Fatalf("expected index %d, got %v", i, it.Key())
		}
		if it.Entry() != want[i] {
			t.Fatalf("expected element %d, got %v", want[i], it.Entry())
		}
		i++
	}
	if i != 3 {
		t.Fatalf("expected 3 elements, iterated %d", i)
	}

	if got := in.Render(); got != "[1, 2, 3]" {
		t.Fatalf("render mismatch: %q", got)
	}
}

func TestArray_AppendWithoutValueReturnsSlot(t *testing.T) {
	reg := datum.NewRegistry()
	rec := schema.Record("cell", schema.NewField("v", schema.Int()))
	in := wrapInstance(t, reg, schema.Array(rec))

	slotAny, err := in.Append(nil)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	slot := slotAny.(*datum.Instance)
	if err := slot.Set(datum.ByName("v"), 42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := in.Render(); got != "[{v: 42}]" {
		t.Fatalf("render mismatch: %q", got)
	}
}

func TestArray_IndexOutOfRange(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Array(schema.Int()))

	_, err := in.Get(datum.ByIndex(0))
	if !datum.HasCode(err, datum.CodeIndexOutOfRange) {
		t.Fatalf("expected index_out_of_range, got %v", err)
	}
}

func TestArray_SetSlot(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Array(schema.String()))

	if _, err := in.Append("a"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := in.Set(datum.ByIndex(0), "b"); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	v, err := in.Get(datum.ByIndex(0))
	if err != nil || v != "b" {
		t.Fatalf("expected \"b\", got %v err=%v", v, err)
	}
}

func TestArray_CachedElementRebindsAfterGrowth(t *testing.T) {
	reg := datum.NewRegistry()
	rec := schema.Record("cell", schema.NewField("v", schema.Int()))
	in := wrapInstance(t, reg, schema.Array(rec))

	if _, err := in.Append(map[string]any{"v": 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	e1, err := in.Get(datum.ByIndex(0))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// grow, then re-fetch the same logical slot
	if _, err := in.Append(map[string]any{"v": 2}); err != nil {
		t.Fatalf("append: %v", err)
	}
	e2, err := in.Get(datum.ByIndex(0))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e1.(*datum.Instance) != e2.(*datum.Instance) {
		t.Fatalf("logical slot must keep a stable wrapper identity")
	}
	v, err := e2.(*datum.Instance).Get(datum.ByName("v"))
	if err != nil || v != int64(1) {
		t.Fatalf("expected rebound element content 1, got %v err=%v", v, err)
	}
}

func TestArray_RawIterateBypassesWrapping(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Array(schema.Int()))
	if _, err := in.Append(7); err != nil {
		t.Fatalf("append: %v", err)
	}
	it, err := in.RawIterate()
	if err != nil {
		t.Fatalf("raw iterate: %v", err)
	}
	if !it.Next() {
		t.Fatalf("expected one raw element")
	}
	p, err := it.Value().Scalar()
	if err != nil || p != int64(7) {
		t.Fatalf("expected raw scalar 7, got %v err=%v", p, err)
	}
}

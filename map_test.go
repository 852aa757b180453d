package datum_test

import (
	"testing"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

func TestMap_AddAndGet(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.Int()))

	if _, err := in.Add("a", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	v, err := in.Get(datum.ByName("a"))
	if err != nil || v != int64(1) {
		t.Fatalf("expected 1, got %v err=%v", v, err)
	}

	// missing keys are a raw-engine miss
	_, err = in.Get(datum.ByName("nope"))
	if !datum.HasCode(err, datum.CodeIndexOutOfRange) {
		t.Fatalf("expected index_out_of_range, got %v", err)
	}
}

func TestMap_AddExistingKeyUpdatesInPlace(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.Int()))

	if _, err := in.Add("k", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := in.Add("k", 2); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if in.Size() != 1 {
		t.Fatalf("expected one entry, got %d", in.Size())
	}
	v, err := in.Get(datum.ByName("k"))
	if err != nil || v != int64(2) {
		t.Fatalf("expected updated value 2, got %v err=%v", v, err)
	}
}

func TestMap_SetIsAddAlias(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.String()))

	// set on a missing key creates the slot
	if err := in.Set(datum.ByName("fresh"), "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := in.Get(datum.ByName("fresh"))
	if err != nil || v != "v" {
		t.Fatalf("expected created entry, got %v err=%v", v, err)
	}
}

func TestMap_IterationFollowsEngineOrder(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.Int()))

	// the in-memory engine documents insertion order
	for i, k := range []string{"z", "a", "m"} {
		if _, err := in.Add(k, i); err != nil {
			t.Fatalf("add %s: %v", k, err)
		}
	}
	it, err := in.Iterate()
	if err != nil {
		t.Fatalf("iterate: %v", err)
	}
	var keys []string
	for it.Next() {
		keys = append(keys, it.Key().Name())
	}
	if len(keys) != 3 || keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("expected insertion order, got %v", keys)
	}
}

func TestMap_RenderQuotesKeys(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.Int()))
	if _, err := in.Add("k", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := in.Render(); got != `{"k": 3}` {
		t.Fatalf("render mismatch: %q", got)
	}
}

func TestMap_ReservedKeyRejected(t *testing.T) {
	reg := datum.NewRegistry()
	in := wrapInstance(t, reg, schema.Map(schema.Int()))

	if _, err := in.Add("set", 1); !datum.HasCode(err, datum.CodeReservedName) {
		t.Fatalf("expected reserved_name, got %v", err)
	}
	if in.Size() != 0 {
		t.Fatalf("reserved add must not modify the raw value")
	}
}

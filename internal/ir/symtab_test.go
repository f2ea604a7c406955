package ir

import "testing"

func TestSymtabUniquing(t *testing.T) {
	tab := newSymtab(0)

	first := tab.getOrCreate("f")
	second := tab.getOrCreate("f")
	if first != second {
		t.Fatalf("expected same ID for repeated name, got %d and %d", first, second)
	}

	other := tab.getOrCreate("g")
	if other == first {
		t.Fatalf("distinct names share ID %d", first)
	}
}

func TestSymtabStrictGet(t *testing.T) {
	tab := newSymtab(0)

	if _, ok := tab.get("missing"); ok {
		t.Fatalf("get returned an ID for an unregistered name")
	}
	if tab.contains("missing") {
		t.Fatalf("contains reported an unregistered name")
	}
	// get must not mint as a side effect.
	if tab.len() != 0 {
		t.Fatalf("strict get minted a handle, len=%d", tab.len())
	}
}

func TestSymtabInsertionOrder(t *testing.T) {
	tab := newSymtab(0)
	names := []string{"c", "a", "b"}
	for _, n := range names {
		tab.getOrCreate(n)
	}

	ids := tab.all()
	if len(ids) != len(names) {
		t.Fatalf("expected %d IDs, got %d", len(names), len(ids))
	}
	for i, id := range ids {
		got, ok := tab.name(id)
		if !ok {
			t.Fatalf("no name for ID %d", id)
		}
		if got != names[i] {
			t.Fatalf("position %d: got %q, want %q", i, got, names[i])
		}
	}
}

func TestSymtabSentinel(t *testing.T) {
	tab := newSymtab(0)
	tab.getOrCreate("f")

	if _, ok := tab.name(0); ok {
		t.Fatalf("sentinel ID 0 resolved to a name")
	}
	if _, ok := tab.name(99); ok {
		t.Fatalf("out-of-range ID resolved to a name")
	}
}

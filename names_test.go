package logsim

import "testing"

func TestNamesInterning(t *testing.T) {
	n := NewNames()
	ids := n.Lookup([]string{"sw1", "g1", "sw1"})
	if ids[0] != ids[2] {
		t.Errorf("same name got different IDs: %d, %d", ids[0], ids[2])
	}
	if ids[0] == ids[1] {
		t.Errorf("different names share ID %d", ids[0])
	}
	if got := n.String(ids[1]); got != "g1" {
		t.Errorf("String(%d) = %q, want %q", ids[1], got, "g1")
	}
}

func TestNamesQueryDoesNotIntern(t *testing.T) {
	n := NewNames()
	if _, ok := n.Query("ghost"); ok {
		t.Fatal("Query found a name that was never interned")
	}
	id := n.Intern("ghost")
	got, ok := n.Query("ghost")
	if !ok || got != id {
		t.Fatalf("Query(ghost) = %d, %v; want %d, true", got, ok, id)
	}
}

func TestNamesUnknownID(t *testing.T) {
	n := NewNames()
	if got := n.String(NameID(42)); got != "" {
		t.Errorf("String of unissued ID = %q, want empty", got)
	}
	if got := n.String(NoName); got != "" {
		t.Errorf("String(NoName) = %q, want empty", got)
	}
}

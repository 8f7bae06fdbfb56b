package idgen

import "testing"

func TestUUID_New(t *testing.T) {
	g := UUID{}

	a := g.New()
	b := g.New()

	if len(a) != 16 {
		t.Errorf("len = %d, want 16", len(a))
	}
	if a == b {
		t.Error("consecutive ids must differ")
	}
	for _, r := range a {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Errorf("id %q contains non-hex character %q", a, r)
		}
	}
}

func TestSequential(t *testing.T) {
	g := NewSequential("txn-")

	if got := g.New(); got != "txn-1" {
		t.Errorf("first id = %s, want txn-1", got)
	}
	if got := g.New(); got != "txn-2" {
		t.Errorf("second id = %s, want txn-2", got)
	}

	g.Reset()
	if got := g.New(); got != "txn-1" {
		t.Errorf("id after reset = %s, want txn-1", got)
	}
}

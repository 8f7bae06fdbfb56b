package tagstream

import (
	"errors"
	"testing"
)

func mustReader(t *testing.T, doc string) *Reader {
	t.Helper()
	r, err := NewReader(doc)
	if err != nil {
		t.Fatalf("NewReader(%q) error: %v", doc, err)
	}
	return r
}

func TestGetValue_NestedPath(t *testing.T) {
	r := mustReader(t, "<A><B><C>x</C></B></A>")

	v, ok := r.GetValue("A/B/C")
	if !ok {
		t.Fatal("A/B/C not found")
	}
	if v != "x" {
		t.Errorf("GetValue(A/B/C) = %q, want x", v)
	}
}

func TestGetValue_AbsentLeaf(t *testing.T) {
	r := mustReader(t, "<A><B><C>x</C></B></A>")

	if _, ok := r.GetValue("A/B/D"); ok {
		t.Error("A/B/D should be absent")
	}
}

func TestGetValue_ShortCircuitOnFirstSegment(t *testing.T) {
	// Z does not exist, so resolution must fail without ever probing C,
	// even though a C element is present deeper in the document.
	r := mustReader(t, "<A><B><C>x</C></B></A>")

	if _, ok := r.GetValue("A/Z/C"); ok {
		t.Error("A/Z/C should be absent")
	}
}

func TestGetValue_FirstSiblingWins(t *testing.T) {
	r := mustReader(t, "<A><B>1</B><B>2</B></A>")

	v, ok := r.GetValue("A/B")
	if !ok {
		t.Fatal("A/B not found")
	}
	if v != "1" {
		t.Errorf("GetValue(A/B) = %q, want first sibling value 1", v)
	}
}

func TestGetValue_DirectChildrenOnly(t *testing.T) {
	// The C nested under B must not be matched as a direct child of A.
	r := mustReader(t, "<A><B><C>deep</C></B><D>d</D></A>")

	if _, ok := r.GetValue("A/C"); ok {
		t.Error("A/C should be absent, C is not a direct child of A")
	}
	if v, _ := r.GetValue("A/D"); v != "d" {
		t.Errorf("GetValue(A/D) = %q, want d", v)
	}
}

func TestGetValue_SearchBoundedByClosingTag(t *testing.T) {
	// A second top-level-like B after A's close must not leak into A's scan.
	r := mustReader(t, "<R><A><X>1</X></A><B>2</B></R>")

	if _, ok := r.GetValue("R/A/B"); ok {
		t.Error("R/A/B should be absent, B belongs to R not A")
	}
	if v, _ := r.GetValue("R/B"); v != "2" {
		t.Errorf("GetValue(R/B) = %q, want 2", v)
	}
}

func TestGetValue_RootElement(t *testing.T) {
	r := mustReader(t, "<Only>v</Only>")

	v, ok := r.GetValue("Only")
	if !ok || v != "v" {
		t.Errorf("GetValue(Only) = %q, %v, want v, true", v, ok)
	}
}

func TestGetValue_EmptyElementIsAbsent(t *testing.T) {
	r := mustReader(t, "<A><B></B><C/></A>")

	if _, ok := r.GetValue("A/B"); ok {
		t.Error("empty element B should report no value")
	}
	if _, ok := r.GetValue("A/C"); ok {
		t.Error("self-closed element C should report no value")
	}
}

func TestGetValue_NoDescentIntoLeaf(t *testing.T) {
	r := mustReader(t, "<A><B>text</B></A>")

	if _, ok := r.GetValue("A/B/C"); ok {
		t.Error("A/B/C should be absent, B is a leaf")
	}
}

func TestGetAttribute(t *testing.T) {
	r := mustReader(t, `<Request valid="1"><URI>https://pay.example/x</URI></Request>`)

	v, ok := r.GetAttribute("Request", "valid")
	if !ok || v != "1" {
		t.Errorf("GetAttribute(Request, valid) = %q, %v, want 1, true", v, ok)
	}
	if _, ok := r.GetAttribute("Request", "nope"); ok {
		t.Error("missing attribute should report ok=false")
	}
	if _, ok := r.GetAttribute("Missing", "valid"); ok {
		t.Error("missing element should report ok=false")
	}
}

func TestGetAttribute_NestedElement(t *testing.T) {
	r := mustReader(t, `<A><B code="ok"/></A>`)

	v, ok := r.GetAttribute("A/B", "code")
	if !ok || v != "ok" {
		t.Errorf("GetAttribute(A/B, code) = %q, %v, want ok, true", v, ok)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	r := mustReader(t, "<A><B>1</B><B>2</B></A>")

	for i := 0; i < 3; i++ {
		v, ok := r.GetValue("A/B")
		if !ok || v != "1" {
			t.Fatalf("read %d: GetValue(A/B) = %q, %v, want 1, true", i, v, ok)
		}
		if _, ok := r.GetValue("A/Z"); ok {
			t.Fatalf("read %d: A/Z should stay absent", i)
		}
	}
}

func TestNewReader_Malformed(t *testing.T) {
	cases := []string{
		"<A><B></A>",
		"<A>",
		"not xml at all <",
		"",
	}
	for _, doc := range cases {
		_, err := NewReader(doc)
		if err == nil {
			t.Errorf("NewReader(%q) expected error", doc)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("NewReader(%q) error = %T, want *ParseError", doc, err)
		}
	}
}

func TestEvents_Shape(t *testing.T) {
	r := mustReader(t, "<A><B>1</B></A>")
	events := r.Events()

	// Synthetic root, open A, complete B, close A.
	if len(events) != 4 {
		t.Fatalf("len(events) = %d, want 4", len(events))
	}
	if events[0].Level != 0 {
		t.Errorf("events[0].Level = %d, want synthetic root at level 0", events[0].Level)
	}
	if events[1].Kind != Open || events[1].Tag != "A" || events[1].Level != 1 {
		t.Errorf("events[1] = %+v, want Open A at level 1", events[1])
	}
	if events[2].Kind != Complete || events[2].Tag != "B" || events[2].Value != "1" {
		t.Errorf("events[2] = %+v, want Complete B value 1", events[2])
	}
	if events[3].Kind != Close || events[3].Tag != "A" {
		t.Errorf("events[3] = %+v, want Close A", events[3])
	}
}

func TestBranchText(t *testing.T) {
	r := mustReader(t, "<A>note<B>1</B></A>")

	if v, ok := r.GetValue("A"); !ok || v != "note" {
		t.Errorf("GetValue(A) = %q, %v, want note, true", v, ok)
	}
}

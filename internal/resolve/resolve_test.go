package resolve

import (
	"testing"

	"github.com/mj1618/uidrive/internal/model"
)

func snapshotWith(elements ...model.UIElement) *model.Snapshot {
	snap := model.NewSnapshot()
	for _, el := range elements {
		snap.Elements[el.ID] = el
	}
	return snap
}

func TestResolveByIdentifier(t *testing.T) {
	snap := snapshotWith(
		model.UIElement{ID: "B1", Role: model.RoleButton, Identifier: "submit-button", Title: "OK"},
		model.UIElement{ID: "B2", Role: model.RoleButton, Title: "submit-button"},
	)

	el, ok := Resolve("submit-button", snap)
	if !ok {
		t.Fatal("expected a match")
	}
	// An identifier match is preferred over a title match, even though the
	// title-matching element also satisfies the query.
	if el.ID != "B1" {
		t.Errorf("expected identifier match B1, got %s", el.ID)
	}
}

func TestResolveByTitleAndLabel(t *testing.T) {
	snap := snapshotWith(
		model.UIElement{ID: "B1", Role: model.RoleButton, Title: "Save"},
		model.UIElement{ID: "T1", Role: model.RoleTextField, Label: "Email"},
	)

	if el, ok := Resolve("Save", snap); !ok || el.ID != "B1" {
		t.Errorf("expected title match B1, got %+v ok=%v", el, ok)
	}
	if el, ok := Resolve("Email", snap); !ok || el.ID != "T1" {
		t.Errorf("expected label match T1, got %+v ok=%v", el, ok)
	}
}

func TestResolveIsCaseSensitiveAndExact(t *testing.T) {
	snap := snapshotWith(
		model.UIElement{ID: "B1", Role: model.RoleButton, Title: "Save Document"},
	)

	if _, ok := Resolve("save document", snap); ok {
		t.Error("matching must be case-sensitive")
	}
	if _, ok := Resolve("Save", snap); ok {
		t.Error("no substring fallback: partial queries must not match")
	}
}

func TestResolveTieBreakTopmostThenLeftmost(t *testing.T) {
	top := model.UIElement{ID: "B2", Role: model.RoleButton, Title: "OK", Frame: model.Frame{X: 50, Y: 40}}
	bottom := model.UIElement{ID: "B1", Role: model.RoleButton, Title: "OK", Frame: model.Frame{X: 10, Y: 100}}
	snap := snapshotWith(bottom, top)

	// Regardless of element-map iteration order, the topmost element wins.
	for i := 0; i < 20; i++ {
		el, ok := Resolve("OK", snap)
		if !ok {
			t.Fatal("expected a match")
		}
		if el.ID != "B2" {
			t.Fatalf("run %d: expected topmost element B2 (y=40), got %s", i, el.ID)
		}
	}

	// Same row: leftmost wins.
	left := model.UIElement{ID: "B3", Role: model.RoleButton, Title: "Next", Frame: model.Frame{X: 10, Y: 40}}
	right := model.UIElement{ID: "B4", Role: model.RoleButton, Title: "Next", Frame: model.Frame{X: 200, Y: 40}}
	snap = snapshotWith(right, left)
	if el, _ := Resolve("Next", snap); el.ID != "B3" {
		t.Errorf("expected leftmost element B3, got %s", el.ID)
	}
}

func TestResolveAbsent(t *testing.T) {
	snap := snapshotWith(model.UIElement{ID: "B1", Role: model.RoleButton, Title: "OK"})

	if _, ok := Resolve("Cancel", snap); ok {
		t.Error("expected no match for unknown query")
	}
	if _, ok := Resolve("", snap); ok {
		t.Error("expected no match for empty query")
	}
	if _, ok := Resolve("OK", nil); ok {
		t.Error("expected no match against nil snapshot")
	}
}

func TestLookup(t *testing.T) {
	snap := snapshotWith(model.UIElement{ID: "T2", Role: model.RoleTextField, Label: "Name"})

	if el, ok := Lookup("T2", snap); !ok || el.Label != "Name" {
		t.Errorf("expected lookup hit, got %+v ok=%v", el, ok)
	}
	if _, ok := Lookup("T9", snap); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

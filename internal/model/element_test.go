package model

import "testing"

func TestRoleActionable(t *testing.T) {
	actionable := []Role{RoleButton, RoleTextField, RoleLink, RoleSlider, RoleCheckbox, RoleMenu}
	for _, r := range actionable {
		if !r.Actionable() {
			t.Errorf("%s should be actionable", r)
		}
	}
	passive := []Role{RoleImage, RoleGroup, RoleOther, Role("window")}
	for _, r := range passive {
		if r.Actionable() {
			t.Errorf("%s should not be actionable", r)
		}
	}
}

func TestRolePrefix(t *testing.T) {
	cases := map[Role]string{
		RoleButton:    "B",
		RoleTextField: "T",
		RoleLink:      "L",
		RoleImage:     "I",
		RoleGroup:     "G",
		RoleSlider:    "S",
		RoleCheckbox:  "C",
		RoleMenu:      "M",
		RoleOther:     "E",
		Role("alien"): "E",
	}
	for role, want := range cases {
		if got := role.Prefix(); got != want {
			t.Errorf("%s: prefix %q, want %q", role, got, want)
		}
	}
}

func TestFrameCenter(t *testing.T) {
	f := Frame{X: 100, Y: 200, Width: 80, Height: 40}
	x, y := f.Center()
	if x != 140 || y != 220 {
		t.Errorf("center: got (%d, %d), want (140, 220)", x, y)
	}

	// Fractional frames round toward zero.
	f = Frame{X: 0, Y: 0, Width: 5, Height: 5}
	x, y = f.Center()
	if x != 2 || y != 2 {
		t.Errorf("center: got (%d, %d), want (2, 2)", x, y)
	}
}

func TestDisplayText(t *testing.T) {
	cases := []struct {
		el   UIElement
		want string
	}{
		{UIElement{Title: "Save", Label: "save button", Value: "v"}, "Save"},
		{UIElement{Label: "save button", Value: "v"}, "save button"},
		{UIElement{Value: "v"}, "v"},
		{UIElement{}, ""},
	}
	for i, c := range cases {
		if got := c.el.DisplayText(); got != c.want {
			t.Errorf("case %d: got %q, want %q", i, got, c.want)
		}
	}
}

func TestClipboardPayloadText(t *testing.T) {
	p := TextPayload("hello")
	if p.Text() != "hello" {
		t.Errorf("text: got %q", p.Text())
	}
	if p.Empty() {
		t.Error("payload with a representation should not be empty")
	}

	var empty ClipboardPayload
	if !empty.Empty() {
		t.Error("zero payload should be empty")
	}
	if empty.Text() != "" {
		t.Errorf("zero payload text: got %q", empty.Text())
	}
}

package script

import (
	"strings"
	"testing"
)

func TestDecodeParamsUnknownCommand(t *testing.T) {
	_, err := DecodeParams("teleport", nil)
	if err == nil {
		t.Fatal("expected unknown command error")
	}
	if KindOf(err) != KindInvalidInput {
		t.Errorf("expected invalidInput, got %s", KindOf(err))
	}
	if !strings.Contains(err.Error(), `unknown command "teleport"`) {
		t.Errorf("error should name the command: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "supported:") {
		t.Errorf("error should list supported commands: %s", err.Error())
	}
}

func TestDecodeParamsMissingRequired(t *testing.T) {
	cases := []struct {
		command string
		params  map[string]any
		field   string
	}{
		{"press", map[string]any{}, "keys"},
		{"sleep", map[string]any{}, "ms"},
		{"wait", map[string]any{}, "query"},
		{"drag", map[string]any{"from-x": 1, "from-y": 2, "to-x": 3}, "to-y"},
		{"menu", map[string]any{"app": "Editor"}, "path"},
		{"shell", map[string]any{}, "command"},
		{"clipboard", map[string]any{}, "op"},
		{"scroll", map[string]any{}, "direction"},
	}
	for _, tc := range cases {
		_, err := DecodeParams(tc.command, tc.params)
		if err == nil {
			t.Errorf("%s: expected error for missing %q", tc.command, tc.field)
			continue
		}
		if !strings.Contains(err.Error(), tc.command) || !strings.Contains(err.Error(), tc.field) {
			t.Errorf("%s: error should name command and field %q, got: %s", tc.command, tc.field, err.Error())
		}
		if KindOf(err) != KindInvalidInput {
			t.Errorf("%s: expected invalidInput, got %s", tc.command, KindOf(err))
		}
	}
}

func TestDecodeParamsWrongType(t *testing.T) {
	_, err := DecodeParams("sleep", map[string]any{"ms": "fast"})
	if err == nil {
		t.Fatal("expected wrong-type error")
	}
	if !strings.Contains(err.Error(), `"ms"`) {
		t.Errorf("error should name the field: %s", err.Error())
	}

	_, err = DecodeParams("type", map[string]any{"text": "hi", "delay": "slow"})
	if err == nil {
		t.Fatal("expected wrong-type error for optional field")
	}
	if !strings.Contains(err.Error(), `"delay"`) {
		t.Errorf("error should name the mistyped optional field: %s", err.Error())
	}
}

func TestDecodeParamsAcceptsJSONAndYAMLNumbers(t *testing.T) {
	// JSON numbers decode to float64, YAML to int; both must work.
	for _, v := range []any{float64(250), int(250), int64(250)} {
		p, err := DecodeParams("sleep", map[string]any{"ms": v})
		if err != nil {
			t.Fatalf("sleep ms=%T: %v", v, err)
		}
		if p.(SleepParams).Ms != 250 {
			t.Errorf("ms=%T: expected 250, got %d", v, p.(SleepParams).Ms)
		}
	}
}

func TestDecodeParamsClick(t *testing.T) {
	if _, err := DecodeParams("click", map[string]any{}); err == nil {
		t.Error("click with no target must fail")
	}

	p, err := DecodeParams("click", map[string]any{"query": "OK", "double": true})
	if err != nil {
		t.Fatalf("click by query: %v", err)
	}
	cp := p.(ClickParams)
	if cp.Query != "OK" || !cp.Double || cp.HasXY {
		t.Errorf("unexpected params: %+v", cp)
	}

	p, err = DecodeParams("click", map[string]any{"x": float64(10), "y": float64(20)})
	if err != nil {
		t.Fatalf("click by coords: %v", err)
	}
	cp = p.(ClickParams)
	if !cp.HasXY || cp.X != 10 || cp.Y != 20 {
		t.Errorf("unexpected params: %+v", cp)
	}
}

func TestDecodeParamsScrollDirection(t *testing.T) {
	_, err := DecodeParams("scroll", map[string]any{"direction": "sideways"})
	if err == nil {
		t.Fatal("expected invalid direction error")
	}
	if !strings.Contains(err.Error(), "sideways") {
		t.Errorf("error should quote the bad value: %s", err.Error())
	}

	p, err := DecodeParams("scroll", map[string]any{"direction": "down"})
	if err != nil {
		t.Fatalf("scroll down: %v", err)
	}
	if p.(ScrollParams).Amount != 3 {
		t.Errorf("expected default amount 3, got %d", p.(ScrollParams).Amount)
	}
}

func TestDecodeParamsClipboardOps(t *testing.T) {
	if _, err := DecodeParams("clipboard", map[string]any{"op": "restore"}); err == nil {
		t.Error("restore without slot must fail")
	}
	if _, err := DecodeParams("clipboard", map[string]any{"op": "set"}); err == nil {
		t.Error("set without text must fail")
	}
	if _, err := DecodeParams("clipboard", map[string]any{"op": "swap"}); err == nil {
		t.Error("invalid op must fail")
	}
	// Explicit empty text is a valid set (clearing via empty string).
	if _, err := DecodeParams("clipboard", map[string]any{"op": "set", "text": ""}); err != nil {
		t.Errorf("set with empty text: %v", err)
	}
}

func TestDecodeParamsWindow(t *testing.T) {
	if _, err := DecodeParams("window", map[string]any{"op": "focus"}); err == nil {
		t.Error("window op without app or pid must fail")
	}
	p, err := DecodeParams("window", map[string]any{"op": "move", "app": "Editor", "index": float64(1), "x": 0, "y": 0})
	if err != nil {
		t.Fatalf("window move: %v", err)
	}
	wp := p.(WindowParams)
	if !wp.HasIndex || wp.Index != 1 {
		t.Errorf("expected index 1, got %+v", wp)
	}
}

func TestDecodeParamsWindowPerOpRequirements(t *testing.T) {
	cases := []struct {
		params map[string]any
		field  string
	}{
		{map[string]any{"op": "move", "app": "Editor", "y": 10}, "x"},
		{map[string]any{"op": "move", "app": "Editor", "x": 10}, "y"},
		{map[string]any{"op": "resize", "app": "Editor", "height": 400}, "width"},
		{map[string]any{"op": "resize", "app": "Editor", "width": 800}, "height"},
	}
	for _, tc := range cases {
		_, err := DecodeParams("window", tc.params)
		if err == nil {
			t.Errorf("op %v: expected error for missing %q", tc.params["op"], tc.field)
			continue
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Errorf("error should name the missing field %q, got: %s", tc.field, err.Error())
		}
		if KindOf(err) != KindInvalidInput {
			t.Errorf("expected invalidInput, got %s", KindOf(err))
		}
	}

	// Explicit zero coordinates are a valid move target; only absence fails.
	if _, err := DecodeParams("window", map[string]any{"op": "move", "app": "Editor", "x": 0, "y": 0}); err != nil {
		t.Errorf("move to origin: %v", err)
	}
	if _, err := DecodeParams("window", map[string]any{"op": "minimize", "app": "Editor"}); err != nil {
		t.Errorf("minimize needs no geometry: %v", err)
	}
}

package script

import (
	"sort"
	"strings"
)

// Per-command parameter shapes. Scripts carry a generic key/value bag for
// backward compatibility; DecodeParams is the single place it is turned into
// a typed struct, so validation lives in one spot.

// SeeParams re-captures the screen into the run's session.
type SeeParams struct {
	App    string
	Window string
	PID    int
}

// ClickParams targets an element by query, local id, or raw coordinates.
type ClickParams struct {
	Query  string
	ID     string
	X, Y   int
	HasXY  bool
	Button string
	Double bool
}

// TypeParams types text and/or presses a key combo, optionally focusing a
// target element first.
type TypeParams struct {
	Text    string
	Key     string
	Query   string
	ID      string
	DelayMs int
}

// PressParams presses a key combo like "cmd+shift+s".
type PressParams struct {
	Keys string
}

// ScrollParams scrolls at an element or at coordinates.
type ScrollParams struct {
	Direction string
	Amount    int
	Query     string
	ID        string
	X, Y      int
	HasXY     bool
}

// DragParams drags from one point to another.
type DragParams struct {
	FromX, FromY int
	ToX, ToY     int
}

// MoveParams moves the pointer without clicking.
type MoveParams struct {
	X, Y int
}

// WaitParams polls fresh detections until an element appears (or, with Gone,
// disappears). The timeout belongs to the step, not the engine.
type WaitParams struct {
	Query      string
	Gone       bool
	TimeoutSec int
	IntervalMs int
}

// SleepParams pauses the run.
type SleepParams struct {
	Ms int
}

// ClipboardParams drives the clipboard sub-protocol: set/save/restore/clear.
type ClipboardParams struct {
	Op   string
	Text string
	Slot string
}

// WindowParams performs a window operation addressed through the correlator.
type WindowParams struct {
	Op       string // focus, move, resize, minimize
	App      string
	Title    string
	PID      int
	Index    int
	HasIndex bool
	X, Y     int
	W, H     int
}

// MenuParams selects a menu item by path, e.g. "File > Save As…".
type MenuParams struct {
	App  string
	Path string
}

// ShellParams runs a shell command with a per-step timeout.
type ShellParams struct {
	Command    string
	TimeoutSec int
}

// knownCommands lists every command the engine dispatches, for the unknown
// command diagnostic.
var knownCommands = []string{
	"see", "click", "type", "press", "scroll", "drag", "move",
	"wait", "sleep", "clipboard", "window", "menu", "shell",
}

// DecodeParams validates and types the raw parameter bag for one command.
// Unknown commands and missing/mis-typed fields are invalid-input errors
// naming the command and field.
func DecodeParams(command string, raw map[string]any) (any, error) {
	switch command {
	case "see":
		return SeeParams{
			App:    StringParam(raw, "app", ""),
			Window: StringParam(raw, "window", ""),
			PID:    IntParam(raw, "pid", 0),
		}, typeCheck(command, raw, "app", "window", "pid")
	case "click":
		p := ClickParams{
			Query:  StringParam(raw, "query", ""),
			ID:     StringParam(raw, "id", ""),
			Button: StringParam(raw, "button", ""),
			Double: BoolParam(raw, "double", false),
		}
		p.X, p.Y, p.HasXY = optXY(raw)
		if err := typeCheck(command, raw, "query", "id", "button", "double", "x", "y"); err != nil {
			return nil, err
		}
		if p.Query == "" && p.ID == "" && !p.HasXY {
			return nil, errf(KindInvalidInput, "click: specify query, id, or x/y coordinates")
		}
		return p, nil
	case "type":
		p := TypeParams{
			Text:    StringParam(raw, "text", ""),
			Key:     StringParam(raw, "key", ""),
			Query:   StringParam(raw, "query", ""),
			ID:      StringParam(raw, "id", ""),
			DelayMs: IntParam(raw, "delay", 0),
		}
		if err := typeCheck(command, raw, "text", "key", "query", "id", "delay"); err != nil {
			return nil, err
		}
		if p.Text == "" && p.Key == "" {
			return nil, errf(KindInvalidInput, "type: specify text or key")
		}
		return p, nil
	case "press":
		keys, err := reqString(command, raw, "keys")
		if err != nil {
			return nil, err
		}
		return PressParams{Keys: keys}, nil
	case "scroll":
		p := ScrollParams{
			Direction: StringParam(raw, "direction", ""),
			Amount:    IntParam(raw, "amount", 3),
			Query:     StringParam(raw, "query", ""),
			ID:        StringParam(raw, "id", ""),
		}
		p.X, p.Y, p.HasXY = optXY(raw)
		if err := typeCheck(command, raw, "direction", "amount", "query", "id", "x", "y"); err != nil {
			return nil, err
		}
		switch strings.ToLower(p.Direction) {
		case "up", "down", "left", "right":
		case "":
			return nil, errf(KindInvalidInput, "scroll: missing required parameter %q", "direction")
		default:
			return nil, errf(KindInvalidInput, "scroll: invalid direction %q (use up, down, left, or right)", p.Direction)
		}
		return p, nil
	case "drag":
		p := DragParams{}
		var err error
		if p.FromX, err = reqInt(command, raw, "from-x"); err != nil {
			return nil, err
		}
		if p.FromY, err = reqInt(command, raw, "from-y"); err != nil {
			return nil, err
		}
		if p.ToX, err = reqInt(command, raw, "to-x"); err != nil {
			return nil, err
		}
		if p.ToY, err = reqInt(command, raw, "to-y"); err != nil {
			return nil, err
		}
		return p, nil
	case "move":
		p := MoveParams{}
		var err error
		if p.X, err = reqInt(command, raw, "x"); err != nil {
			return nil, err
		}
		if p.Y, err = reqInt(command, raw, "y"); err != nil {
			return nil, err
		}
		return p, nil
	case "wait":
		query, err := reqString(command, raw, "query")
		if err != nil {
			return nil, err
		}
		if err := typeCheck(command, raw, "gone", "timeout", "interval"); err != nil {
			return nil, err
		}
		return WaitParams{
			Query:      query,
			Gone:       BoolParam(raw, "gone", false),
			TimeoutSec: IntParam(raw, "timeout", 10),
			IntervalMs: IntParam(raw, "interval", 500),
		}, nil
	case "sleep":
		ms, err := reqInt(command, raw, "ms")
		if err != nil {
			return nil, err
		}
		if ms <= 0 {
			return nil, errf(KindInvalidInput, "sleep: ms must be > 0")
		}
		return SleepParams{Ms: ms}, nil
	case "clipboard":
		op, err := reqString(command, raw, "op")
		if err != nil {
			return nil, err
		}
		p := ClipboardParams{
			Op:   op,
			Text: StringParam(raw, "text", ""),
			Slot: StringParam(raw, "slot", ""),
		}
		if err := typeCheck(command, raw, "text", "slot"); err != nil {
			return nil, err
		}
		switch p.Op {
		case "set":
			if _, ok := raw["text"]; !ok {
				return nil, errf(KindInvalidInput, "clipboard: missing required parameter %q for op set", "text")
			}
		case "save", "restore":
			if p.Slot == "" {
				return nil, errf(KindInvalidInput, "clipboard: missing required parameter %q for op %s", "slot", p.Op)
			}
		case "clear":
		default:
			return nil, errf(KindInvalidInput, "clipboard: invalid op %q (use set, save, restore, or clear)", p.Op)
		}
		return p, nil
	case "window":
		op, err := reqString(command, raw, "op")
		if err != nil {
			return nil, err
		}
		p := WindowParams{
			Op:    op,
			App:   StringParam(raw, "app", ""),
			Title: StringParam(raw, "title", ""),
			PID:   IntParam(raw, "pid", 0),
			X:     IntParam(raw, "x", 0),
			Y:     IntParam(raw, "y", 0),
			W:     IntParam(raw, "width", 0),
			H:     IntParam(raw, "height", 0),
		}
		if v, ok := raw["index"]; ok {
			n, isInt := asInt(v)
			if !isInt {
				return nil, errf(KindInvalidInput, "window: parameter %q must be an integer, got %T", "index", v)
			}
			p.Index = n
			p.HasIndex = true
		}
		if err := typeCheck(command, raw, "app", "title", "pid", "x", "y", "width", "height"); err != nil {
			return nil, err
		}
		switch p.Op {
		case "focus", "minimize":
		case "move":
			for _, key := range []string{"x", "y"} {
				if _, ok := raw[key]; !ok {
					return nil, errf(KindInvalidInput, "window: missing required parameter %q for op move", key)
				}
			}
		case "resize":
			for _, key := range []string{"width", "height"} {
				if _, ok := raw[key]; !ok {
					return nil, errf(KindInvalidInput, "window: missing required parameter %q for op resize", key)
				}
			}
		default:
			return nil, errf(KindInvalidInput, "window: invalid op %q (use focus, move, resize, or minimize)", p.Op)
		}
		if p.App == "" && p.PID == 0 {
			return nil, errf(KindInvalidInput, "window: specify app or pid")
		}
		return p, nil
	case "menu":
		app, err := reqString(command, raw, "app")
		if err != nil {
			return nil, err
		}
		path, err := reqString(command, raw, "path")
		if err != nil {
			return nil, err
		}
		return MenuParams{App: app, Path: path}, nil
	case "shell":
		cmdline, err := reqString(command, raw, "command")
		if err != nil {
			return nil, err
		}
		if err := typeCheck(command, raw, "timeout"); err != nil {
			return nil, err
		}
		return ShellParams{
			Command:    cmdline,
			TimeoutSec: IntParam(raw, "timeout", 30),
		}, nil
	default:
		return nil, errf(KindInvalidInput, "unknown command %q (supported: %s)", command, strings.Join(knownCommands, ", "))
	}
}

// Extraction helpers for the generic parameter bag. YAML and JSON both hand
// back loosely typed values (float64 for JSON numbers, int for YAML), so the
// int helpers accept any numeric form but nothing else.

func reqString(cmd string, params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", errf(KindInvalidInput, "%s: missing required parameter %q", cmd, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", errf(KindInvalidInput, "%s: parameter %q must be a string, got %T", cmd, key, v)
	}
	return s, nil
}

func reqInt(cmd string, params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, errf(KindInvalidInput, "%s: missing required parameter %q", cmd, key)
	}
	n, isInt := asInt(v)
	if !isInt {
		return 0, errf(KindInvalidInput, "%s: parameter %q must be an integer, got %T", cmd, key, v)
	}
	return n, nil
}

// StringParam, IntParam, and BoolParam read optional fields from a generic
// parameter bag, falling back to a default. They are exported for the MCP
// server, which feeds tool arguments through the same validation path.

func StringParam(params map[string]any, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}

func IntParam(params map[string]any, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		if n, isInt := asInt(v); isInt {
			return n
		}
	}
	return defaultVal
}

func BoolParam(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

func optXY(params map[string]any) (x, y int, has bool) {
	_, hasX := params["x"]
	_, hasY := params["y"]
	return IntParam(params, "x", 0), IntParam(params, "y", 0), hasX && hasY
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// typeCheck rejects present-but-mistyped optional fields. Optional getters
// silently fall back to defaults; a script author who wrote "delay": "fast"
// must hear about it instead.
func typeCheck(cmd string, params map[string]any, keys ...string) error {
	expect := map[string]string{
		"app": "string", "window": "string", "query": "string", "id": "string",
		"button": "string", "text": "string", "key": "string", "slot": "string",
		"direction": "string", "title": "string", "op": "string",
		"pid": "int", "x": "int", "y": "int", "delay": "int", "amount": "int",
		"timeout": "int", "interval": "int", "width": "int", "height": "int",
		"double": "bool", "gone": "bool",
	}
	sort.Strings(keys)
	for _, key := range keys {
		v, ok := params[key]
		if !ok {
			continue
		}
		switch expect[key] {
		case "string":
			if _, ok := v.(string); !ok {
				return errf(KindInvalidInput, "%s: parameter %q must be a string, got %T", cmd, key, v)
			}
		case "int":
			if _, isInt := asInt(v); !isInt {
				return errf(KindInvalidInput, "%s: parameter %q must be an integer, got %T", cmd, key, v)
			}
		case "bool":
			if _, ok := v.(bool); !ok {
				return errf(KindInvalidInput, "%s: parameter %q must be a boolean, got %T", cmd, key, v)
			}
		}
	}
	return nil
}

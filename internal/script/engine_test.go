package script

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/store"
)

// Fakes for the external action services, recording what the engine asked
// them to do.

type fakeInputter struct {
	clicks  []string
	typed   []string
	combos  []string
	scrolls []string
	fail    bool
}

func (f *fakeInputter) Click(x, y int, button platform.MouseButton, count int) error {
	if f.fail {
		return fmt.Errorf("injected click failure")
	}
	f.clicks = append(f.clicks, fmt.Sprintf("%d,%d x%d", x, y, count))
	return nil
}

func (f *fakeInputter) MoveMouse(x, y int) error { return nil }

func (f *fakeInputter) Scroll(x, y, dx, dy int) error {
	f.scrolls = append(f.scrolls, fmt.Sprintf("%d,%d %d,%d", x, y, dx, dy))
	return nil
}

func (f *fakeInputter) Drag(fromX, fromY, toX, toY int) error { return nil }

func (f *fakeInputter) TypeText(text string, delayMs int) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeInputter) KeyCombo(keys []string) error {
	f.combos = append(f.combos, fmt.Sprint(keys))
	return nil
}

type fakeClipboard struct {
	current model.ClipboardPayload
}

func (f *fakeClipboard) Get() (model.ClipboardPayload, error)      { return f.current, nil }
func (f *fakeClipboard) Set(p model.ClipboardPayload) error        { f.current = p; return nil }
func (f *fakeClipboard) Clear() error                              { f.current = model.ClipboardPayload{}; return nil }

type fakeScreenshotter struct{}

func (fakeScreenshotter) CaptureWindow(opts platform.ScreenshotOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 32))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type fakeDetector struct {
	elements map[string]model.UIElement
}

func (f *fakeDetector) Detect(imageData []byte, win platform.WindowContext) (map[string]model.UIElement, error) {
	return f.elements, nil
}

type fakeShell struct{}

func (fakeShell) Run(ctx context.Context, command string, timeoutSec int) (string, error) {
	return "ran: " + command + "\n", nil
}

func newTestEngine(t *testing.T, provider *platform.Provider) (*Engine, *store.Store, string) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	id, err := st.Create()
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}

	snap := model.NewSnapshot()
	snap.Elements["B1"] = model.UIElement{
		ID: "B1", Role: model.RoleButton, Title: "Submit",
		Frame: model.Frame{X: 100, Y: 200, Width: 80, Height: 40}, IsActionable: true,
	}
	snap.Elements["T1"] = model.UIElement{
		ID: "T1", Role: model.RoleTextField, Label: "Email",
		Frame: model.Frame{X: 100, Y: 100, Width: 200, Height: 24},
	}
	if err := st.Store(id, snap); err != nil {
		t.Fatalf("store.Store: %v", err)
	}
	return NewEngine(st, provider), st, id
}

func mustLoad(t *testing.T, doc string) *Script {
	t.Helper()
	sc, err := Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return sc
}

func TestExecuteFailFastStopsAtFirstFailure(t *testing.T) {
	engine, _, session := newTestEngine(t, &platform.Provider{Inputter: &fakeInputter{}})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "s1", "command": "sleep", "params": { "ms": 1 } },
		{ "stepId": "s2", "command": "click", "params": { "query": "No Such Button" } },
		{ "stepId": "s3", "command": "sleep", "params": { "ms": 1 } },
		{ "stepId": "s4", "command": "sleep", "params": { "ms": 1 } }
	] }`)

	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if result.OK {
		t.Error("expected run to be marked failed")
	}
	// Exactly steps 1 and 2: the failure plus everything before it. Steps
	// 3 and 4 were never attempted and must be absent, not placeholders.
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Results))
	}
	if !result.Results[0].OK || result.Results[0].StepID != "s1" {
		t.Errorf("step 1 should have succeeded: %+v", result.Results[0])
	}
	failed := result.Results[1]
	if failed.OK || failed.StepID != "s2" || failed.Ordinal != 2 {
		t.Errorf("step 2 should be the recorded failure: %+v", failed)
	}
	if failed.Kind != KindNotFound {
		t.Errorf("expected notFound kind for unresolved element, got %s", failed.Kind)
	}
	if result.Completed != 1 {
		t.Errorf("expected 1 completed step, got %d", result.Completed)
	}
}

func TestExecuteContinueOnErrorRunsEverything(t *testing.T) {
	engine, _, session := newTestEngine(t, &platform.Provider{Inputter: &fakeInputter{}})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "s1", "command": "sleep", "params": { "ms": 1 } },
		{ "stepId": "s2", "command": "click", "params": { "query": "No Such Button" } },
		{ "stepId": "s3", "command": "sleep", "params": { "ms": 1 } },
		{ "stepId": "s4", "command": "sleep", "params": { "ms": 1 } }
	] }`)

	result := engine.Execute(context.Background(), sc, Options{FailFast: false, Session: session})

	if result.OK {
		t.Error("expected run marked failed even when later steps run")
	}
	if len(result.Results) != 4 {
		t.Fatalf("expected all 4 results, got %d", len(result.Results))
	}
	for i, r := range result.Results {
		if r.Ordinal != i+1 {
			t.Errorf("result %d: ordinal %d does not match script position", i, r.Ordinal)
		}
	}
	if result.Results[1].OK {
		t.Error("step 2 should be marked failed")
	}
	if !result.Results[2].OK || !result.Results[3].OK {
		t.Error("steps 3 and 4 should have executed and succeeded")
	}
	if result.Completed != 3 {
		t.Errorf("expected 3 completed steps, got %d", result.Completed)
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	engine, _, session := newTestEngine(t, &platform.Provider{})

	sc := mustLoad(t, `{ "steps": [ { "stepId": "x", "command": "teleport", "params": {} } ] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if result.OK || len(result.Results) != 1 {
		t.Fatalf("expected single failed result, got %+v", result)
	}
	if result.Results[0].Kind != KindInvalidInput {
		t.Errorf("expected invalidInput for unknown command, got %s", result.Results[0].Kind)
	}
}

func TestExecuteClickResolvesTarget(t *testing.T) {
	inputter := &fakeInputter{}
	engine, _, session := newTestEngine(t, &platform.Provider{Inputter: inputter})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "c1", "command": "click", "params": { "query": "Submit" } },
		{ "stepId": "c2", "command": "click", "params": { "id": "T1", "double": true } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if !result.OK {
		t.Fatalf("run failed: %s", result.Error)
	}
	if len(inputter.clicks) != 2 {
		t.Fatalf("expected 2 clicks, got %v", inputter.clicks)
	}
	// B1's frame center is (140, 220); T1's is (200, 112).
	if inputter.clicks[0] != "140,220 x1" {
		t.Errorf("expected click at element center, got %s", inputter.clicks[0])
	}
	if inputter.clicks[1] != "200,112 x2" {
		t.Errorf("expected double click at T1 center, got %s", inputter.clicks[1])
	}
	if result.Results[0].Target == nil || result.Results[0].Target.ID != "B1" {
		t.Errorf("expected target info for B1, got %+v", result.Results[0].Target)
	}
}

func TestExecuteClipboardSlots(t *testing.T) {
	clipboard := &fakeClipboard{}
	engine, _, session := newTestEngine(t, &platform.Provider{Clipboard: clipboard})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "set-a",   "command": "clipboard", "params": { "op": "set", "text": "A" } },
		{ "stepId": "save",    "command": "clipboard", "params": { "op": "save", "slot": "slot1" } },
		{ "stepId": "set-b",   "command": "clipboard", "params": { "op": "set", "text": "B" } },
		{ "stepId": "restore", "command": "clipboard", "params": { "op": "restore", "slot": "slot1" } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if !result.OK {
		t.Fatalf("run failed: %s", result.Error)
	}
	if got := clipboard.current.Text(); got != "A" {
		t.Errorf("expected live clipboard restored to %q, got %q", "A", got)
	}
}

func TestExecuteRestoreUnknownSlotIsInvalidInput(t *testing.T) {
	engine, _, session := newTestEngine(t, &platform.Provider{Clipboard: &fakeClipboard{}})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "r", "command": "clipboard", "params": { "op": "restore", "slot": "missing-slot" } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if result.OK {
		t.Fatal("expected run to fail")
	}
	r := result.Results[0]
	if r.Kind != KindInvalidInput {
		t.Errorf("expected invalidInput, got %s", r.Kind)
	}
	if r.Error == "" || !bytes.Contains([]byte(r.Error), []byte("missing-slot")) {
		t.Errorf("error should name the slot: %q", r.Error)
	}
}

func TestExecuteSlotsDoNotLeakBetweenRuns(t *testing.T) {
	clipboard := &fakeClipboard{}
	engine, _, session := newTestEngine(t, &platform.Provider{Clipboard: clipboard})

	save := mustLoad(t, `{ "steps": [
		{ "stepId": "set",  "command": "clipboard", "params": { "op": "set", "text": "A" } },
		{ "stepId": "save", "command": "clipboard", "params": { "op": "save", "slot": "slot1" } }
	] }`)
	if result := engine.Execute(context.Background(), save, Options{FailFast: true, Session: session}); !result.OK {
		t.Fatalf("save run failed: %s", result.Error)
	}

	restore := mustLoad(t, `{ "steps": [
		{ "stepId": "restore", "command": "clipboard", "params": { "op": "restore", "slot": "slot1" } }
	] }`)
	result := engine.Execute(context.Background(), restore, Options{FailFast: true, Session: session})
	if result.OK {
		t.Error("slots are per-run: a second run must not see the first run's saves")
	}
}

func TestExecuteShellCapturesOutput(t *testing.T) {
	engine, _, session := newTestEngine(t, &platform.Provider{ShellRunner: fakeShell{}})

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "sh", "command": "shell", "params": { "command": "echo hi" } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true, Session: session})

	if !result.OK {
		t.Fatalf("run failed: %s", result.Error)
	}
	if result.Results[0].Output != "ran: echo hi" {
		t.Errorf("expected shell output captured, got %q", result.Results[0].Output)
	}
}

func TestExecuteUsesMostRecentSessionWhenUnpinned(t *testing.T) {
	inputter := &fakeInputter{}
	engine, st, _ := newTestEngine(t, &platform.Provider{Inputter: inputter})

	// A second, newer session whose snapshot lacks the Submit button. The
	// sleep keeps the two creation timestamps in distinct milliseconds.
	time.Sleep(2 * time.Millisecond)
	newer, err := st.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	snap := model.NewSnapshot()
	snap.Elements["B9"] = model.UIElement{
		ID: "B9", Role: model.RoleButton, Title: "Newer",
		Frame: model.Frame{X: 0, Y: 0, Width: 10, Height: 10},
	}
	if err := st.Store(newer, snap); err != nil {
		t.Fatalf("Store: %v", err)
	}

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "c", "command": "click", "params": { "query": "Newer" } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true})

	if !result.OK {
		t.Fatalf("expected resolution against the most recent session, got: %s", result.Error)
	}
	if result.SessionID != newer {
		t.Errorf("expected run bound to %q, got %q", newer, result.SessionID)
	}
}

func TestCaptureCreatesSessionWithArtifacts(t *testing.T) {
	detector := &fakeDetector{elements: map[string]model.UIElement{
		"B1": {ID: "B1", Role: model.RoleButton, Title: "OK", Frame: model.Frame{X: 2, Y: 2, Width: 10, Height: 6}},
	}}
	provider := &platform.Provider{
		Screenshotter: fakeScreenshotter{},
		Detector:      detector,
	}
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	engine := NewEngine(st, provider)

	id, snap, err := engine.Capture(CaptureOptions{})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if len(snap.Elements) != 1 {
		t.Fatalf("expected detected elements persisted, got %d", len(snap.Elements))
	}
	if _, err := os.Stat(snap.ScreenshotPath); err != nil {
		t.Errorf("screenshot artifact missing: %v", err)
	}
	if snap.AnnotatedPath == "" {
		t.Error("expected annotated artifact path")
	} else if _, err := os.Stat(snap.AnnotatedPath); err != nil {
		t.Errorf("annotated artifact missing: %v", err)
	}

	loaded, ok := st.Load(id)
	if !ok {
		t.Fatal("expected captured snapshot to load")
	}
	if loaded.Elements["B1"].Title != "OK" {
		t.Errorf("element lost in round trip: %+v", loaded.Elements)
	}
}

func TestExecuteSeeStepUpdatesRunSession(t *testing.T) {
	detector := &fakeDetector{elements: map[string]model.UIElement{
		"B1": {ID: "B1", Role: model.RoleButton, Title: "Fresh", Frame: model.Frame{X: 1, Y: 1, Width: 4, Height: 4}},
	}}
	inputter := &fakeInputter{}
	provider := &platform.Provider{
		Screenshotter: fakeScreenshotter{},
		Detector:      detector,
		Inputter:      inputter,
	}
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	engine := NewEngine(st, provider)

	sc := mustLoad(t, `{ "steps": [
		{ "stepId": "cap",   "command": "see",   "params": {} },
		{ "stepId": "click", "command": "click", "params": { "query": "Fresh" } }
	] }`)
	result := engine.Execute(context.Background(), sc, Options{FailFast: true})

	if !result.OK {
		t.Fatalf("run failed: %s", result.Error)
	}
	if result.SessionID == "" {
		t.Error("expected see step to bind the run to a session")
	}
	if len(inputter.clicks) != 1 {
		t.Errorf("expected click against the freshly captured snapshot, got %v", inputter.clicks)
	}
}

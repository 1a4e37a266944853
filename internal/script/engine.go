package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/resolve"
	"github.com/mj1618/uidrive/internal/store"
	"github.com/mj1618/uidrive/internal/winmap"
)

// TargetInfo describes the element a step acted on.
type TargetInfo struct {
	ID    string `yaml:"id"              json:"id"`
	Role  string `yaml:"role"            json:"role"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
	X     int    `yaml:"x"               json:"x"`
	Y     int    `yaml:"y"               json:"y"`
}

// StepResult reports one executed step. Ordinal always matches the step's
// position in the original script, even when later steps are skipped.
type StepResult struct {
	StepID  string      `yaml:"stepId"              json:"stepId"`
	Ordinal int         `yaml:"ordinal"             json:"ordinal"`
	Command string      `yaml:"command"             json:"command"`
	OK      bool        `yaml:"ok"                  json:"ok"`
	Error   string      `yaml:"error,omitempty"     json:"error,omitempty"`
	Kind    ErrorKind   `yaml:"errorKind,omitempty" json:"errorKind,omitempty"`
	Target  *TargetInfo `yaml:"target,omitempty"    json:"target,omitempty"`
	Output  string      `yaml:"output,omitempty"    json:"output,omitempty"`
	Elapsed string      `yaml:"elapsed"             json:"elapsed"`
}

// RunResult aggregates a whole script run. With fail-fast, steps after the
// first failure are absent from Results; their absence, not a placeholder,
// signals "not run".
type RunResult struct {
	OK        bool         `yaml:"ok"                json:"ok"`
	SessionID string       `yaml:"session,omitempty" json:"session,omitempty"`
	Steps     int          `yaml:"steps"             json:"steps"`
	Completed int          `yaml:"completed"         json:"completed"`
	Error     string       `yaml:"error,omitempty"   json:"error,omitempty"`
	Results   []StepResult `yaml:"results"           json:"results"`
}

// Options controls one script run.
type Options struct {
	// FailFast stops the run at the first failing step. Default for scripts.
	FailFast bool
	// Verbose includes per-step comments in Output.
	Verbose bool
	// Session pins the run to an explicit session id. When empty, the most
	// recently captured valid session is used, or a new one is created by
	// the first capture.
	Session string
}

// Engine executes scripts sequentially, one step at a time. UI automation on
// a shared desktop is not reentrant, so steps never run in parallel.
type Engine struct {
	store    *store.Store
	provider *platform.Provider
}

// NewEngine builds an engine around an explicit store and provider. There is
// no process-wide singleton; tests inject fakes here.
func NewEngine(st *store.Store, p *platform.Provider) *Engine {
	return &Engine{store: st, provider: p}
}

// runState is the mutable per-run context threaded through steps.
type runState struct {
	sessionID string
	slots     *SlotManager
}

// Execute runs every step in document order. The engine holds no locks
// across delegated action calls; a run either completes, stops at the first
// failure (fail-fast), or the host process dies.
func (e *Engine) Execute(ctx context.Context, sc *Script, opts Options) RunResult {
	state := &runState{
		sessionID: opts.Session,
		slots:     NewSlotManager(),
	}

	result := RunResult{
		Steps:   len(sc.Steps),
		Results: make([]StepResult, 0, len(sc.Steps)),
	}

	failed := false
	for i, step := range sc.Steps {
		start := time.Now()
		sr := StepResult{
			StepID:  step.StepID,
			Ordinal: i + 1,
			Command: step.Command,
		}
		if opts.Verbose && step.Comment != "" {
			sr.Output = step.Comment
		}

		err := e.executeStep(ctx, step, state, &sr)
		sr.Elapsed = fmt.Sprintf("%dms", time.Since(start).Milliseconds())
		if err != nil {
			sr.OK = false
			sr.Error = err.Error()
			sr.Kind = KindOf(err)
			failed = true
			result.Results = append(result.Results, sr)
			if opts.FailFast {
				result.Error = fmt.Sprintf("step %q: %s", step.StepID, err.Error())
				break
			}
			continue
		}
		sr.OK = true
		result.Completed++
		result.Results = append(result.Results, sr)
	}

	result.OK = !failed
	result.SessionID = state.sessionID
	return result
}

// executeStep validates the command, decodes its params, and dispatches.
func (e *Engine) executeStep(ctx context.Context, step Step, state *runState, sr *StepResult) error {
	params, err := DecodeParams(step.Command, step.Params)
	if err != nil {
		return err
	}

	switch p := params.(type) {
	case SeeParams:
		return e.execSee(state, p, sr)
	case ClickParams:
		return e.execClick(state, p, sr)
	case TypeParams:
		return e.execType(state, p, sr)
	case PressParams:
		return e.execPress(p)
	case ScrollParams:
		return e.execScroll(state, p)
	case DragParams:
		return e.execDrag(p)
	case MoveParams:
		return e.execMove(p)
	case WaitParams:
		return e.execWait(state, p, sr)
	case SleepParams:
		time.Sleep(time.Duration(p.Ms) * time.Millisecond)
		return nil
	case ClipboardParams:
		return e.execClipboard(state, p, sr)
	case WindowParams:
		return e.execWindow(p)
	case MenuParams:
		return e.execMenu(p)
	case ShellParams:
		return e.execShell(ctx, p, sr)
	default:
		return errf(KindInvalidInput, "unknown command %q (supported: %s)", step.Command, strings.Join(knownCommands, ", "))
	}
}

// session returns the run's session snapshot, resolving "most recent valid"
// when no explicit session is pinned.
func (e *Engine) session(state *runState) (*model.Snapshot, error) {
	if state.sessionID == "" {
		id, ok := e.store.MostRecentValid()
		if !ok {
			return nil, errf(KindNotFound, "no recent session; capture one first with a see step or 'uidrive see'")
		}
		state.sessionID = id
	}
	snap, ok := e.store.Load(state.sessionID)
	if !ok {
		return nil, errf(KindNotFound, "session %s not found", state.sessionID)
	}
	return snap, nil
}

// resolveTarget finds the element a step addresses, by local id or by query.
func (e *Engine) resolveTarget(state *runState, query, id string) (model.UIElement, error) {
	snap, err := e.session(state)
	if err != nil {
		return model.UIElement{}, err
	}
	if id != "" {
		el, ok := resolve.Lookup(id, snap)
		if !ok {
			return model.UIElement{}, errf(KindNotFound, "element %q not found in session %s", id, snap.SessionID)
		}
		return el, nil
	}
	el, ok := resolve.Resolve(query, snap)
	if !ok {
		return model.UIElement{}, errf(KindNotFound, "no element matches %q in session %s", query, snap.SessionID)
	}
	return el, nil
}

func targetInfo(el model.UIElement) *TargetInfo {
	x, y := el.Frame.Center()
	return &TargetInfo{
		ID:    el.ID,
		Role:  string(el.Role),
		Title: el.DisplayText(),
		X:     x,
		Y:     y,
	}
}

func (e *Engine) execSee(state *runState, p SeeParams, sr *StepResult) error {
	id, snap, err := e.Capture(CaptureOptions{
		SessionID: state.sessionID,
		App:       p.App,
		Window:    p.Window,
		PID:       p.PID,
	})
	if err != nil {
		return err
	}
	state.sessionID = id
	sr.Output = fmt.Sprintf("%d elements", len(snap.Elements))
	return nil
}

func (e *Engine) execClick(state *runState, p ClickParams, sr *StepResult) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}
	button, err := platform.ParseMouseButton(p.Button)
	if err != nil {
		return errf(KindInvalidInput, "click: %v", err)
	}

	x, y := p.X, p.Y
	if p.Query != "" || p.ID != "" {
		el, err := e.resolveTarget(state, p.Query, p.ID)
		if err != nil {
			return err
		}
		sr.Target = targetInfo(el)
		x, y = el.Frame.Center()
	}

	count := 1
	if p.Double {
		count = 2
	}
	if err := e.provider.Inputter.Click(x, y, button, count); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

func (e *Engine) execType(state *runState, p TypeParams, sr *StepResult) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}

	// Focus the target element first, when one is addressed.
	if p.Query != "" || p.ID != "" {
		el, err := e.resolveTarget(state, p.Query, p.ID)
		if err != nil {
			return err
		}
		sr.Target = targetInfo(el)
		x, y := el.Frame.Center()
		if err := e.provider.Inputter.Click(x, y, platform.MouseLeft, 1); err != nil {
			return fmt.Errorf("focus element: %w", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	if p.Text != "" {
		if err := e.provider.Inputter.TypeText(p.Text, p.DelayMs); err != nil {
			return fmt.Errorf("type: %w", err)
		}
	}
	if p.Key != "" {
		if err := e.provider.Inputter.KeyCombo(strings.Split(p.Key, "+")); err != nil {
			return fmt.Errorf("key %s: %w", p.Key, err)
		}
	}
	return nil
}

func (e *Engine) execPress(p PressParams) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}
	if err := e.provider.Inputter.KeyCombo(strings.Split(p.Keys, "+")); err != nil {
		return fmt.Errorf("press %s: %w", p.Keys, err)
	}
	return nil
}

func (e *Engine) execScroll(state *runState, p ScrollParams) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}

	var dx, dy int
	switch strings.ToLower(p.Direction) {
	case "up":
		dy = p.Amount
	case "down":
		dy = -p.Amount
	case "left":
		dx = p.Amount
	case "right":
		dx = -p.Amount
	}

	x, y := p.X, p.Y
	if p.Query != "" || p.ID != "" {
		el, err := e.resolveTarget(state, p.Query, p.ID)
		if err != nil {
			return err
		}
		x, y = el.Frame.Center()
	}
	if err := e.provider.Inputter.Scroll(x, y, dx, dy); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	return nil
}

func (e *Engine) execDrag(p DragParams) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}
	if err := e.provider.Inputter.Drag(p.FromX, p.FromY, p.ToX, p.ToY); err != nil {
		return fmt.Errorf("drag: %w", err)
	}
	return nil
}

func (e *Engine) execMove(p MoveParams) error {
	if e.provider.Inputter == nil {
		return errf(KindExecution, "input not available on this platform")
	}
	if err := e.provider.Inputter.MoveMouse(p.X, p.Y); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	return nil
}

// execWait polls fresh detections until the query resolves (or stops
// resolving, with gone). The timeout is the step's own; the engine imposes
// none of its own.
func (e *Engine) execWait(state *runState, p WaitParams, sr *StepResult) error {
	timeout := time.Duration(p.TimeoutSec) * time.Second
	interval := time.Duration(p.IntervalMs) * time.Millisecond
	deadline := time.Now().Add(timeout)
	start := time.Now()

	for {
		id, snap, err := e.Capture(CaptureOptions{SessionID: state.sessionID})
		if err == nil {
			state.sessionID = id
			_, found := resolve.Resolve(p.Query, snap)
			met := found
			if p.Gone {
				met = !found
			}
			if met {
				sr.Output = fmt.Sprintf("matched %q after %.1fs", p.Query, time.Since(start).Seconds())
				return nil
			}
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("wait: timed out after %s (last error: %w)", timeout, err)
			}
			cond := fmt.Sprintf("element %q", p.Query)
			if p.Gone {
				cond += " gone"
			}
			return errf(KindExecution, "wait: timed out after %s waiting for %s", timeout, cond)
		}
		time.Sleep(interval)
	}
}

func (e *Engine) execClipboard(state *runState, p ClipboardParams, sr *StepResult) error {
	if e.provider.Clipboard == nil {
		return errf(KindExecution, "clipboard not available on this platform")
	}
	switch p.Op {
	case "set":
		if err := e.provider.Clipboard.Set(model.TextPayload(p.Text)); err != nil {
			return fmt.Errorf("clipboard set: %w", err)
		}
	case "save":
		payload, err := e.provider.Clipboard.Get()
		if err != nil {
			return fmt.Errorf("clipboard save: %w", err)
		}
		state.slots.Save(p.Slot, payload)
		sr.Output = fmt.Sprintf("saved %d representations to slot %q", len(payload.Representations), p.Slot)
	case "restore":
		payload, ok := state.slots.Restore(p.Slot)
		if !ok {
			return errf(KindInvalidInput, "unknown clipboard slot %q (saved slots: %s)", p.Slot, strings.Join(state.slots.Names(), ", "))
		}
		if err := e.provider.Clipboard.Set(payload); err != nil {
			return fmt.Errorf("clipboard restore: %w", err)
		}
	case "clear":
		if err := e.provider.Clipboard.Clear(); err != nil {
			return fmt.Errorf("clipboard clear: %w", err)
		}
	}
	return nil
}

func (e *Engine) execWindow(p WindowParams) error {
	if e.provider.WindowManager == nil {
		return errf(KindExecution, "window management not available on this platform")
	}

	// Focus by app/pid alone needs no correlation.
	if p.Op == "focus" && p.Title == "" && !p.HasIndex {
		if err := e.provider.WindowManager.FocusWindow(platform.FocusOptions{App: p.App, PID: p.PID}); err != nil {
			return fmt.Errorf("window focus: %w", err)
		}
		return nil
	}

	win, err := e.correlateWindow(p.App, p.Title, p.PID, p.Index, p.HasIndex)
	if err != nil {
		return err
	}

	switch p.Op {
	case "focus":
		err = e.provider.WindowManager.FocusWindow(platform.FocusOptions{WindowID: win.ID, PID: win.PID})
	case "move":
		err = e.provider.WindowManager.MoveWindow(win.ID, p.X, p.Y)
	case "resize":
		err = e.provider.WindowManager.ResizeWindow(win.ID, p.W, p.H)
	case "minimize":
		err = e.provider.WindowManager.MinimizeWindow(win.ID)
	}
	if err != nil {
		return fmt.Errorf("window %s: %w", p.Op, err)
	}
	return nil
}

// correlateWindow resolves an app/title/index address to a system window
// handle, bridging the accessibility and system enumeration sources.
func (e *Engine) correlateWindow(app, title string, pid, index int, hasIndex bool) (model.Window, error) {
	if e.provider.SystemWindows == nil {
		return model.Window{}, errf(KindExecution, "window enumeration not available on this platform")
	}
	loc := winmap.Locator{System: e.provider.SystemWindows, AX: e.provider.AXWindows}
	win, err := loc.Find(app, winmap.Query{
		PID:           pid,
		TitleFragment: title,
		Index:         index,
		HasIndex:      hasIndex,
	})
	if err != nil {
		return model.Window{}, errf(KindNotFound, "%v", err)
	}
	return win, nil
}

func (e *Engine) execMenu(p MenuParams) error {
	if e.provider.MenuNavigator == nil {
		return errf(KindExecution, "menu navigation not available on this platform")
	}
	var path []string
	for _, part := range strings.Split(p.Path, ">") {
		if part = strings.TrimSpace(part); part != "" {
			path = append(path, part)
		}
	}
	if len(path) == 0 {
		return errf(KindInvalidInput, "menu: empty path")
	}
	if err := e.provider.MenuNavigator.SelectMenuItem(p.App, path); err != nil {
		return fmt.Errorf("menu %s: %w", p.Path, err)
	}
	return nil
}

func (e *Engine) execShell(ctx context.Context, p ShellParams, sr *StepResult) error {
	if e.provider.ShellRunner == nil {
		return errf(KindExecution, "shell execution not available on this platform")
	}
	stdout, err := e.provider.ShellRunner.Run(ctx, p.Command, p.TimeoutSec)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	sr.Output = strings.TrimRight(stdout, "\n")
	return nil
}

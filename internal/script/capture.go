package script

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/mj1618/uidrive/internal/annotate"
	"github.com/mj1618/uidrive/internal/model"
	"github.com/mj1618/uidrive/internal/platform"
	"github.com/mj1618/uidrive/internal/winmap"
)

// CaptureOptions scopes one capture pass.
type CaptureOptions struct {
	// SessionID reuses an existing session; empty creates a new one.
	SessionID string
	App       string
	Window    string
	PID       int
}

// Capture runs the full capture flow: screenshot, element detection,
// annotation, and a whole-snapshot store. Returns the session id the
// snapshot was persisted under.
func (e *Engine) Capture(opts CaptureOptions) (string, *model.Snapshot, error) {
	if e.provider.Screenshotter == nil || e.provider.Detector == nil {
		return "", nil, errf(KindExecution, "capture not available on this platform")
	}

	winCtx := e.windowContext(opts)

	imageData, err := e.provider.Screenshotter.CaptureWindow(platform.ScreenshotOptions{
		App:      opts.App,
		Window:   opts.Window,
		PID:      opts.PID,
		WindowID: winCtx.WindowID,
		Format:   "png",
	})
	if err != nil {
		return "", nil, fmt.Errorf("capture screenshot: %w", err)
	}

	elements, err := e.provider.Detector.Detect(imageData, winCtx)
	if err != nil {
		return "", nil, fmt.Errorf("detect elements: %w", err)
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID, err = e.store.Create()
		if err != nil {
			return "", nil, &Error{Kind: KindStorage, Err: err}
		}
	}

	snap := model.NewSnapshot()
	snap.Elements = elements
	snap.ApplicationName = winCtx.App
	snap.WindowTitle = winCtx.Title
	snap.WindowBounds = winCtx.Bounds
	snap.WindowID = winCtx.WindowID
	snap.WindowAXIdentifier = winCtx.AXIdentifier

	dir := e.store.SessionDir(sessionID)
	rawPath := filepath.Join(dir, "raw.png")
	if err := os.WriteFile(rawPath, imageData, 0o644); err != nil {
		return "", nil, &Error{Kind: KindStorage, Err: fmt.Errorf("write screenshot: %w", err)}
	}
	snap.ScreenshotPath = rawPath

	// Annotation is advisory; a decode failure loses the annotated image,
	// not the capture.
	if img, decErr := png.Decode(bytes.NewReader(imageData)); decErr == nil {
		annotated := annotate.Draw(img, elements, winCtx.Bounds)
		var buf bytes.Buffer
		if encErr := png.Encode(&buf, annotated); encErr == nil {
			annotatedPath := filepath.Join(dir, "annotated.png")
			if writeErr := os.WriteFile(annotatedPath, buf.Bytes(), 0o644); writeErr == nil {
				snap.AnnotatedPath = annotatedPath
			}
		}
	}

	if err := e.store.Store(sessionID, snap); err != nil {
		return "", nil, &Error{Kind: KindStorage, Err: err}
	}
	return sessionID, snap, nil
}

// windowContext enriches the capture with window identity from the system
// enumeration source when the caller scoped it to an app or process.
func (e *Engine) windowContext(opts CaptureOptions) platform.WindowContext {
	ctx := platform.WindowContext{App: opts.App, Title: opts.Window}

	if e.provider.SystemWindows == nil || (opts.App == "" && opts.PID == 0) {
		return ctx
	}
	system, err := e.provider.SystemWindows.ListWindows(0)
	if err != nil {
		return ctx
	}

	pid := opts.PID
	if pid == 0 {
		for _, w := range system {
			if strings.EqualFold(w.App, opts.App) {
				pid = w.PID
				break
			}
		}
		if pid == 0 {
			return ctx
		}
	}

	win, err := winmap.Correlate(system, system, winmap.Query{PID: pid, TitleFragment: opts.Window})
	if err != nil {
		return ctx
	}
	ctx.App = win.App
	ctx.Title = win.Title
	ctx.Bounds = win.Bounds
	ctx.WindowID = win.ID
	return ctx
}

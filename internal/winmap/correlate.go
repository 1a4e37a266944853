// Package winmap bridges two independent window enumeration sources.
// Different OS window APIs assign their own indices and, sometimes, their own
// IDs to the same windows; this is the single place that maps an index or
// title fragment taken from one source onto a window handle in the other, so
// "window #2 of app X" means the same thing no matter which API answered.
package winmap

import (
	"fmt"
	"strings"

	"github.com/mj1618/uidrive/internal/model"
)

// Query addresses one window of a process, as seen from the source list.
type Query struct {
	PID           int
	TitleFragment string // case-insensitive substring; preferred when set
	Index         int    // positional index within the pid-filtered source order
	HasIndex      bool
}

// Source enumerates live windows. Both platform enumeration backends
// satisfy it; pid 0 means all processes.
type Source interface {
	ListWindows(pid int) ([]model.Window, error)
}

// Locator resolves an app/pid/title/index address against the two live
// enumeration sources. System is required; AX is optional and, when it
// reports windows for the process, supplies the ordering indices and titles
// are taken from.
type Locator struct {
	System Source
	AX     Source
}

// Find locates the window addressed by app (when q.PID is zero) and q in the
// system enumeration. The app name is matched case-insensitively against the
// system list's owners.
func (l Locator) Find(app string, q Query) (model.Window, error) {
	system, err := l.System.ListWindows(0)
	if err != nil {
		return model.Window{}, fmt.Errorf("list windows: %w", err)
	}

	if q.PID == 0 && app != "" {
		for _, w := range system {
			if strings.EqualFold(w.App, app) {
				q.PID = w.PID
				break
			}
		}
		if q.PID == 0 {
			return model.Window{}, fmt.Errorf("application %q not found", app)
		}
	}

	source := system
	if l.AX != nil {
		if ax, err := l.AX.ListWindows(q.PID); err == nil && len(ax) > 0 {
			source = ax
		}
	}
	return Correlate(source, system, q)
}

// Correlate finds, in target, the window addressed by q relative to source.
// Both lists are filtered to q.PID first. A title fragment matches the first
// target window (in source-list order) whose title contains it. Otherwise
// windows are correlated by shared numeric ID when both sources report one,
// falling back to positional index within the pid-filtered native ordering.
func Correlate(source, target []model.Window, q Query) (model.Window, error) {
	src := filterByPID(source, q.PID)
	dst := filterByPID(target, q.PID)
	if len(dst) == 0 {
		return model.Window{}, fmt.Errorf("no windows found for pid %d", q.PID)
	}

	if q.TitleFragment != "" {
		frag := strings.ToLower(q.TitleFragment)
		for _, w := range dst {
			if strings.Contains(strings.ToLower(w.Title), frag) {
				return w, nil
			}
		}
		return model.Window{}, fmt.Errorf("no window of pid %d matches title %q", q.PID, q.TitleFragment)
	}

	index := 0
	if q.HasIndex {
		index = q.Index
	}
	if index < 0 || index >= len(src) {
		return model.Window{}, fmt.Errorf("window index %d out of range for pid %d (have %d)", index, q.PID, len(src))
	}

	// Shared numeric window IDs beat positional correlation.
	if id := src[index].ID; id != 0 {
		for _, w := range dst {
			if w.ID == id {
				return w, nil
			}
		}
	}
	if index >= len(dst) {
		return model.Window{}, fmt.Errorf("window index %d out of range for pid %d (have %d)", index, q.PID, len(dst))
	}
	return dst[index], nil
}

func filterByPID(windows []model.Window, pid int) []model.Window {
	if pid == 0 {
		return windows
	}
	var out []model.Window
	for _, w := range windows {
		if w.PID == pid {
			out = append(out, w)
		}
	}
	return out
}

package model

import "time"

// SnapshotVersion is the current snapshot schema version. Snapshots persisted
// with any other version are treated as absent and removed on load.
const SnapshotVersion = 3

// Snapshot is the persisted record of one UI detection pass: the addressable
// element map plus the window/application context it was captured in.
// A session's snapshot is only ever replaced whole, never partially patched.
type Snapshot struct {
	SessionID          string               `json:"sessionId"                    yaml:"sessionId"`
	Version            int                  `json:"version"                      yaml:"version"`
	Elements           map[string]UIElement `json:"elements"                     yaml:"elements"`
	ScreenshotPath     string               `json:"screenshotPath,omitempty"     yaml:"screenshotPath,omitempty"`
	AnnotatedPath      string               `json:"annotatedPath,omitempty"      yaml:"annotatedPath,omitempty"`
	ApplicationName    string               `json:"applicationName,omitempty"    yaml:"applicationName,omitempty"`
	WindowTitle        string               `json:"windowTitle,omitempty"        yaml:"windowTitle,omitempty"`
	WindowBounds       *Frame               `json:"windowBounds,omitempty"       yaml:"windowBounds,omitempty"`
	WindowID           int                  `json:"windowID,omitempty"           yaml:"windowID,omitempty"`
	WindowAXIdentifier string               `json:"windowAXIdentifier,omitempty" yaml:"windowAXIdentifier,omitempty"`
	LastUpdateTime     time.Time            `json:"lastUpdateTime"               yaml:"lastUpdateTime"`
}

// NewSnapshot returns an empty snapshot at the current schema version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:        SnapshotVersion,
		Elements:       make(map[string]UIElement),
		LastUpdateTime: time.Now(),
	}
}

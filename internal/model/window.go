package model

// Window describes one application window as reported by an enumeration
// source. Different sources number the same windows independently; ID is
// only comparable across sources when both report the system window ID.
type Window struct {
	App     string `json:"app"               yaml:"app"`
	PID     int    `json:"pid"               yaml:"pid"`
	Title   string `json:"title"             yaml:"title"`
	ID      int    `json:"id"                yaml:"id"`
	Bounds  *Frame `json:"bounds,omitempty"  yaml:"bounds,omitempty"`
	Focused bool   `json:"focused,omitempty" yaml:"focused,omitempty"`
}

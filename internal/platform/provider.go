package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS. Any field may
// be nil when the platform lacks that capability; callers check before use.
type Provider struct {
	Detector      Detector
	Inputter      Inputter
	WindowManager WindowManager
	Screenshotter Screenshotter
	Clipboard     Clipboard
	MenuNavigator MenuNavigator
	ShellRunner   ShellRunner

	// SystemWindows and AXWindows are the two independent window
	// enumeration sources bridged by internal/winmap.
	SystemWindows WindowSource
	AXWindows     WindowSource
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("uidrive is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. screen recording) at startup.
var RequestPermissionsFunc func()

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

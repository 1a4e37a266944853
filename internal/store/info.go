package store

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// SessionInfo is derived metadata about one persisted session. It is computed
// from the on-disk layout on demand, never stored separately.
type SessionInfo struct {
	ID              string    `json:"id"              yaml:"id"`
	PID             int       `json:"pid"             yaml:"pid"`
	CreatedAt       time.Time `json:"createdAt"       yaml:"createdAt"`
	LastAccessed    time.Time `json:"lastAccessed"    yaml:"lastAccessed"`
	SizeBytes       int64     `json:"sizeBytes"       yaml:"sizeBytes"`
	ScreenshotCount int       `json:"screenshotCount" yaml:"screenshotCount"`
	Active          bool      `json:"active"          yaml:"active"`
}

// sessionInfo builds SessionInfo for one session directory.
func (s *Store) sessionInfo(id string) (SessionInfo, error) {
	dir := s.SessionDir(id)
	stat, err := os.Stat(dir)
	if err != nil {
		return SessionInfo{}, err
	}

	info := SessionInfo{
		ID:           id,
		PID:          legacyPID(id),
		CreatedAt:    stat.ModTime(),
		LastAccessed: stat.ModTime(),
	}
	if created, ok := sessionCreationTime(id); ok {
		info.CreatedAt = created
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return SessionInfo{}, err
	}
	for _, entry := range entries {
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		info.SizeBytes += fi.Size()
		if fi.ModTime().After(info.LastAccessed) {
			info.LastAccessed = fi.ModTime()
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			info.ScreenshotCount++
		}
	}

	// Modern IDs have no owning process; the active flag only means
	// something for legacy PID-named sessions.
	if info.PID > 0 {
		info.Active = processAlive(info.PID)
	}
	return info, nil
}

// processAlive reports whether a process with the given PID exists.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

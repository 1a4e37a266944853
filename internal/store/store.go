// Package store persists UI element snapshots, one directory per session,
// under a well-known root. The on-disk layout is an external contract: each
// session directory holds a single pretty-printed map.json plus any
// screenshot artifacts the snapshot references.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mj1618/uidrive/internal/model"
)

// snapshotFile is the name of the serialized snapshot inside a session dir.
const snapshotFile = "map.json"

// ValidityWindow is how recently a session must have been created for
// MostRecentValid to return it. Older sessions are ignored, not deleted.
const ValidityWindow = 10 * time.Minute

// Store owns the session directory tree. Access to a single session is
// serialized through a per-session mutex; unrelated sessions proceed
// concurrently.
type Store struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// New opens (creating if needed) a store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{
		root:  dir,
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}, nil
}

// DefaultRoot returns the storage root used when none is configured:
// $UIDRIVE_DIR, or ~/.uidrive/session.
func DefaultRoot() (string, error) {
	if dir := os.Getenv("UIDRIVE_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".uidrive", "session"), nil
}

// Root returns the storage root path.
func (s *Store) Root() string {
	return s.root
}

// SessionDir returns the directory holding a session's artifacts.
func (s *Store) SessionDir(id string) string {
	return filepath.Join(s.root, id)
}

// lock returns the serialization mutex for one session id.
func (s *Store) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}

// Create allocates a new session: a fresh time-ordered ID, its directory,
// and an empty snapshot. Fails only on filesystem errors.
func (s *Store) Create() (string, error) {
	id := newSessionID(s.now())
	if err := os.MkdirAll(s.SessionDir(id), 0o755); err != nil {
		return "", fmt.Errorf("create session %s: %w", id, err)
	}
	snap := model.NewSnapshot()
	if err := s.Store(id, snap); err != nil {
		return "", err
	}
	return id, nil
}

// Store writes the full snapshot for a session atomically (temp file +
// rename), replacing any prior snapshot. A concurrent Load never observes a
// half-written file.
func (s *Store) Store(id string, snap *model.Snapshot) error {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	snap.SessionID = id
	snap.Version = model.SnapshotVersion
	snap.LastUpdateTime = s.now()
	if snap.Elements == nil {
		snap.Elements = make(map[string]model.UIElement)
	}

	// encoding/json sorts map keys, keeping the file deterministic.
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", id, err)
	}

	dir := s.SessionDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir %s: %w", id, err)
	}
	tmp, err := os.CreateTemp(dir, snapshotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("store session %s: %w", id, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store session %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store session %s: %w", id, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, snapshotFile)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store session %s: %w", id, err)
	}
	return nil
}

// loadState distinguishes why a snapshot could not be returned. It stays
// internal: the public API collapses everything but found to absence.
type loadState int

const (
	loadFound loadState = iota
	loadAbsent
	loadCorrupt
	loadIncompatible
)

func (s *Store) read(id string) (*model.Snapshot, loadState) {
	data, err := os.ReadFile(filepath.Join(s.SessionDir(id), snapshotFile))
	if err != nil {
		return nil, loadAbsent
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, loadCorrupt
	}
	if snap.Version != model.SnapshotVersion {
		return nil, loadIncompatible
	}
	return &snap, loadFound
}

// Load returns the session's snapshot, or ok=false if the file does not
// exist, is corrupt, or was written with an incompatible schema version.
// Corrupt and incompatible files are deleted so a broken session never
// blocks future writes to the same id. Load never returns an error: a
// missing session is routine, not exceptional.
func (s *Store) Load(id string) (*model.Snapshot, bool) {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	snap, state := s.read(id)
	switch state {
	case loadFound:
		return snap, true
	case loadCorrupt, loadIncompatible:
		os.Remove(filepath.Join(s.SessionDir(id), snapshotFile))
	}
	return nil, false
}

// MostRecentValid returns the newest session created within the validity
// window, letting a caller that omits an explicit session id reuse whatever
// was just captured. Sessions older than the window are ignored but kept.
func (s *Store) MostRecentValid() (string, bool) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return "", false
	}

	cutoff := s.now().Add(-ValidityWindow)
	var best string
	var bestTime time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		created, ok := sessionCreationTime(id)
		if !ok {
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			created = fi.ModTime()
		}
		if created.Before(cutoff) {
			continue
		}
		if created.After(bestTime) {
			best = id
			bestTime = created
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// List returns metadata for every session, newest first.
func (s *Store) List() ([]SessionInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	infos := make([]SessionInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := s.sessionInfo(entry.Name())
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Delete removes one session and all its artifacts.
func (s *Store) Delete(id string) error {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()
	if err := os.RemoveAll(s.SessionDir(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// DeleteOlderThan removes sessions created more than the given number of
// days ago. Returns how many sessions were removed.
func (s *Store) DeleteOlderThan(days int) (int, error) {
	infos, err := s.List()
	if err != nil {
		return 0, err
	}
	cutoff := s.now().AddDate(0, 0, -days)
	removed := 0
	for _, info := range infos {
		if info.CreatedAt.After(cutoff) {
			continue
		}
		if err := s.Delete(info.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// DeleteAll removes every session under the root.
func (s *Store) DeleteAll() (int, error) {
	infos, err := s.List()
	if err != nil {
		return 0, err
	}
	for i, info := range infos {
		if err := s.Delete(info.ID); err != nil {
			return i, err
		}
	}
	return len(infos), nil
}

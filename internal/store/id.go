package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session IDs embed a millisecond timestamp so that IDs sort chronologically,
// plus a random suffix so concurrent processes never collide. The timestamp
// is zero-padded to 13 digits to keep lexicographic and chronological order
// identical through 2286.
//
// Legacy sessions used the owning CLI process's PID as the whole ID; those
// are still recognized for listing and cleanup.

func newSessionID(t time.Time) string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing is not survivable in any meaningful way;
		// fall back to the nanosecond clock rather than returning an error
		// every caller would just have to propagate.
		return fmt.Sprintf("%013d-%08x", t.UnixMilli(), t.UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("%013d-%s", t.UnixMilli(), hex.EncodeToString(suffix))
}

// sessionCreationTime extracts the creation time embedded in a modern
// session ID. Legacy PID-style IDs carry no timestamp; ok is false.
func sessionCreationTime(id string) (time.Time, bool) {
	head, _, found := strings.Cut(id, "-")
	if !found || len(head) != 13 {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(head, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// legacyPID returns the owning process ID for legacy all-numeric session
// IDs, and 0 for modern IDs.
func legacyPID(id string) int {
	if id == "" {
		return 0
	}
	pid, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return pid
}

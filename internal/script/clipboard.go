package script

import (
	"sort"

	"github.com/mj1618/uidrive/internal/model"
)

// SlotManager is a named stack of saved clipboard payloads, scoped to one
// script run. Slots live in memory only; a fresh manager is created per
// Execute so concurrent runs never share saves.
type SlotManager struct {
	slots map[string]model.ClipboardPayload
}

// NewSlotManager returns an empty slot manager.
func NewSlotManager() *SlotManager {
	return &SlotManager{slots: make(map[string]model.ClipboardPayload)}
}

// Save stores a payload under name, overwriting any previous save there.
func (m *SlotManager) Save(name string, payload model.ClipboardPayload) {
	m.slots[name] = payload
}

// Restore returns the payload saved under name. ok is false for unknown
// slots; the caller must treat that as a hard error, never a silent no-op.
func (m *SlotManager) Restore(name string) (model.ClipboardPayload, bool) {
	payload, ok := m.slots[name]
	return payload, ok
}

// Names returns the saved slot names, sorted, for error messages.
func (m *SlotManager) Names() []string {
	names := make([]string, 0, len(m.slots))
	for name := range m.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

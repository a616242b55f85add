package session

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Snapshot is the durable representation of the current session.
// Only ID may be trusted on rehydration; it must be re-resolved against
// the live account table so that role/status changes made while the
// session was dormant take effect on next load.
type Snapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Manager holds the process-wide current session and mirrors it to a
// single JSON file so it survives restarts.
type Manager struct {
	path string

	mu   sync.RWMutex
	curr *Snapshot
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Set makes snap the current session and persists the mirror.
func (m *Manager) Set(snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err = ioutil.WriteFile(m.path, data, 0600); err != nil {
		return errors.Wrap(err, "writing session mirror")
	}
	m.curr = &snap
	return nil
}

// Clear drops the current session and removes the mirror.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.curr = nil
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session mirror")
	}
	return nil
}

// Current returns the in-memory session if set; otherwise it attempts to
// rehydrate from the mirror. A missing or corrupt mirror resolves to absent.
func (m *Manager) Current() (Snapshot, bool) {
	m.mu.RLock()
	if m.curr != nil {
		snap := *m.curr
		m.mu.RUnlock()
		return snap, true
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.curr != nil {
		return *m.curr, true
	}

	data, err := ioutil.ReadFile(m.path)
	if err != nil {
		return Snapshot{}, false
	}
	var snap Snapshot
	if err = json.Unmarshal(data, &snap); err != nil || snap.ID == "" {
		return Snapshot{}, false
	}
	m.curr = &snap
	return snap, true
}

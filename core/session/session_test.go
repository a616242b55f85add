package session

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Manager_SetCurrentClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	m := NewManager(path)

	_, ok := m.Current()
	assert.False(t, ok, "fresh manager should have no session")

	snap := Snapshot{ID: "acct-1", Name: "Ana", Email: "ana@example.com"}
	assert.NoError(t, m.Set(snap))

	got, ok := m.Current()
	assert.True(t, ok)
	assert.Equal(t, snap, got)

	assert.NoError(t, m.Clear())
	_, ok = m.Current()
	assert.False(t, ok, "cleared session should be absent")

	// clearing twice is fine
	assert.NoError(t, m.Clear())
}

func Test_Manager_Rehydrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	snap := Snapshot{ID: "acct-1", Name: "Ana", Email: "ana@example.com"}
	assert.NoError(t, NewManager(path).Set(snap))

	// a fresh manager on the same path picks the mirror back up
	got, ok := NewManager(path).Current()
	assert.True(t, ok)
	assert.Equal(t, snap, got)
}

func Test_Manager_CorruptMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte("{not json"), 0600))

	_, ok := NewManager(path).Current()
	assert.False(t, ok, "corrupt mirror should resolve to absent")
}

func Test_Manager_EmptyIDMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".session.json")
	assert.NoError(t, ioutil.WriteFile(path, []byte(`{"id":""}`), 0600))

	_, ok := NewManager(path).Current()
	assert.False(t, ok)
}

// Package persist saves and restores the manager's workspace/window
// snapshot across restarts: atomic JSON writes to the runtime
// directory, loaded once at startup and written on a periodic tick by
// the reactor.
package persist

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/1broseidon/termtile/internal/runtimepath"
	"github.com/1broseidon/termtile/internal/wmerr"
	"github.com/1broseidon/termtile/internal/wsmanager"
)

// Path returns the snapshot file location: the runtime directory's
// workspace registry file, shared with anything else that needs to
// find the active workspace state on disk.
func Path() (string, error) {
	return runtimepath.WorkspaceRegistryPath()
}

// Load reads a previously saved snapshot. A missing file is not an
// error: it yields the zero Snapshot, which RestoreWorkspaceShells
// treats as "nothing to restore".
func Load() (wsmanager.Snapshot, error) {
	path, err := Path()
	if err != nil {
		return wsmanager.Snapshot{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a previously saved snapshot from a specific path.
func LoadFrom(path string) (wsmanager.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wsmanager.Snapshot{}, nil
		}
		return wsmanager.Snapshot{}, wmerr.Wrap(wmerr.PersistenceError, path+": failed to read snapshot", err)
	}
	var snap wsmanager.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return wsmanager.Snapshot{}, wmerr.Wrap(wmerr.PersistenceError, path+": failed to parse snapshot", err)
	}
	return snap, nil
}

// Save writes a snapshot to the standard location.
func Save(snap wsmanager.Snapshot) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, snap)
}

// SaveTo writes a snapshot to a specific path, atomically via a
// temp-file-then-rename so a reader never observes a partial write.
func SaveTo(path string, snap wsmanager.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return wmerr.Wrap(wmerr.PersistenceError, dir+": failed to create snapshot directory", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return wmerr.Wrap(wmerr.PersistenceError, "failed to marshal snapshot", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return wmerr.Wrap(wmerr.PersistenceError, tmpPath+": failed to write snapshot", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return wmerr.Wrap(wmerr.PersistenceError, path+": failed to finalize snapshot", err)
	}
	return nil
}

// Package registry holds the secondary index from OS window handle to
// owning workspace id. The workspace manager (internal/wsmanager) is the
// sole owner of ManagedWindow records and the only user of this index,
// which answers "which workspace is this handle in" in O(1) without
// walking every workspace's tile list and floating set.
package registry

import "github.com/1broseidon/termtile/internal/platform"

// Registry is the handle -> workspace id secondary index. It carries no
// other state. The workspace manager keeps it current entry by entry with
// Set and Remove; Rebuild replaces the whole index in one call.
type Registry struct {
	byHandle map[platform.Handle]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byHandle: make(map[platform.Handle]int)}
}

// WorkspaceOf returns the workspace id owning h, and whether h is known.
func (r *Registry) WorkspaceOf(h platform.Handle) (int, bool) {
	id, ok := r.byHandle[h]
	return id, ok
}

// Set records h as belonging to workspaceID, overwriting any prior entry.
func (r *Registry) Set(h platform.Handle, workspaceID int) {
	r.byHandle[h] = workspaceID
}

// Remove deletes h's entry, if present.
func (r *Registry) Remove(h platform.Handle) {
	delete(r.byHandle, h)
}

// Len reports how many handles are currently indexed.
func (r *Registry) Len() int {
	return len(r.byHandle)
}

// Rebuild replaces the entire index with entries, used after bulk
// operations where incrementally updating would be error-prone.
func (r *Registry) Rebuild(entries map[platform.Handle]int) {
	fresh := make(map[platform.Handle]int, len(entries))
	for h, id := range entries {
		fresh[h] = id
	}
	r.byHandle = fresh
}

// Handles returns every indexed handle, order unspecified.
func (r *Registry) Handles() []platform.Handle {
	out := make([]platform.Handle, 0, len(r.byHandle))
	for h := range r.byHandle {
		out = append(out, h)
	}
	return out
}

package messenger

import "sync"

type presenceEntry struct {
	conn   Conn
	seller bool
}

// Registry maps a user id to its single live connection. It is the only
// shared mutable state of the messenger core; every mutation goes through
// the mutex, and the underlying table is never handed out.
type Registry struct {
	mu      sync.Mutex
	entries map[string]presenceEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]presenceEntry)}
}

// Register binds conn to userID, unconditionally replacing any prior
// binding. The superseded connection (if any) is returned so the caller can
// force-close it; the registry itself never closes connections.
func (r *Registry) Register(userID string, conn Conn, seller bool) (prev Conn, replaced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.entries[userID]; ok {
		prev, replaced = old.conn, true
	}
	r.entries[userID] = presenceEntry{conn: conn, seller: seller}
	return prev, replaced
}

func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	return entry.conn, true
}

// Remove deletes the binding for userID only while conn is still the bound
// connection. A disconnect of an already superseded connection is a no-op,
// so it cannot evict the newer registration.
func (r *Registry) Remove(userID string, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[userID]
	if !ok || entry.conn.ID() != conn.ID() {
		return false
	}
	delete(r.entries, userID)
	return true
}

// Conns returns a snapshot of all live connections for broadcast.
func (r *Registry) Conns() []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := make([]Conn, 0, len(r.entries))
	for _, entry := range r.entries {
		conns = append(conns, entry.conn)
	}
	return conns
}

// Len reports the number of live bindings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

package ws

import "sync"

// Session is the live binding between a connection and an identified
// user. Sessions exist only while the connection is live and are never
// persisted; the registry starts empty after a restart.
type Session struct {
	UserID   string
	Username string
}

// Registry tracks which connections belong to which identified user.
// Exactly one session exists per registered live connection. Fan-out
// only reads the registry; clients register on connect and unregister
// on disconnect.
type Registry struct {
	mu       sync.RWMutex
	sessions map[*Client]Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[*Client]Session),
	}
}

// Register binds the client to a session. Idempotent: registering the
// same client again overwrites its session.
func (r *Registry) Register(c *Client, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[c] = s
}

// Unregister removes the client's session. Idempotent: unknown clients
// are a no-op.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, c)
}

// Session returns the client's session, if registered.
func (r *Registry) Session(c *Client) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[c]
	return s, ok
}

// ForEach calls fn for every registered client while holding the read
// lock, so no client can unregister mid-iteration. fn must not block.
func (r *Registry) ForEach(fn func(c *Client, s Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c, s := range r.sessions {
		fn(c, s)
	}
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

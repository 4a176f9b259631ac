package chat

import (
	"net"
	"sync"

	"hzchat/internal/pkg/errs"
)

// ClientRegistry is the fixed-capacity table of connected clients: a name to
// client bijection over active clients, guarded by a single mutex (spec §4.C).
type ClientRegistry struct {
	mu    sync.Mutex
	slots [MaxClients]*Client
}

// NewClientRegistry returns an empty registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{}
}

// Reserve finds the first free slot, occupies it with a new Client wrapping
// conn and addr, and returns it. It fails with ErrServerFull when every slot
// is occupied; the caller is expected to reply "[ERROR] Server full." and
// close the transport.
func (r *ClientRegistry) Reserve(conn net.Conn, addr string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, slot := range r.slots {
		if slot == nil {
			c := &Client{
				ref:  slotRef{index: i},
				Conn: conn,
				Addr: addr,
			}
			r.slots[i] = c
			return c, nil
		}
	}

	return nil, errs.NewError(errs.ErrServerFull)
}

// Register atomically checks name uniqueness against every other occupied
// slot and, if unique, assigns it to c. It must be used instead of a separate
// FindByName-then-set sequence to avoid a check-then-act race between two
// connections registering the same name concurrently.
func (r *ClientRegistry) Register(c *Client, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, slot := range r.slots {
		if slot != nil && slot != c && slot.Name == name {
			return errs.NewError(errs.ErrUsernameTaken)
		}
	}

	c.Name = name
	return nil
}

// FindByName performs a linear scan for the active client with the given
// name. The registry lock is held for the duration of the scan, so the
// returned reference is safe to use immediately after the call returns, but
// may be stale (released) by the time a later operation touches it — callers
// that send to the result should tolerate a failed write.
func (r *ClientRegistry) FindByName(name string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, slot := range r.slots {
		if slot != nil && slot.Name == name {
			return slot, true
		}
	}
	return nil, false
}

// Release marks c's slot free, clearing name and room, and closes its
// transport if still open. After Release returns, c.Name is immediately
// eligible for reuse by a new registration.
func (r *ClientRegistry) Release(c *Client) {
	r.mu.Lock()
	if r.slots[c.ref.index] == c {
		r.slots[c.ref.index] = nil
	}
	c.Name = ""
	c.Room = ""
	r.mu.Unlock()

	_ = c.Conn.Close()
}

// Snapshot returns the currently active clients, for shutdown broadcast and
// admin-surface stats reporting. The returned slice is a copy; it does not
// alias the registry's internal state.
func (r *ClientRegistry) Snapshot() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Client, 0, MaxClients)
	for _, slot := range r.slots {
		if slot != nil {
			out = append(out, slot)
		}
	}
	return out
}

// Count returns the number of occupied slots.
func (r *ClientRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, slot := range r.slots {
		if slot != nil {
			n++
		}
	}
	return n
}

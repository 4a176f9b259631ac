package chat

import (
	"io"
	"net"
	"sync"
)

// slotRef identifies a client's fixed position in the registry array, so
// Release can clear the right slot in O(1) instead of a linear search.
type slotRef struct {
	index int
}

// Client is a connected session. Name is mutated only through ClientRegistry
// methods, which hold the registry's lock for the duration. Room is written
// only by the connection handler goroutine that owns this client — /join,
// /leave, and disconnect cleanup never run concurrently for a single client —
// so it needs no lock of its own.
type Client struct {
	ref  slotRef
	Conn net.Conn
	Addr string

	// writeMu serializes writes to Conn: the handler goroutine, broadcast and
	// whisper senders on other connections, and the transfer worker may all
	// write to the same client concurrently.
	writeMu sync.Mutex

	Name string
	Room string
}

// Send writes a single already-terminated line to the client's connection.
// It is safe to call concurrently from any goroutine holding a reference to
// the client.
func (c *Client) Send(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := io.WriteString(c.Conn, line)
	return err
}

/*
Package randx provides identifier generation for the server.

It generates a UUID per accepted connection, used purely as a correlation
ID threaded through the operational zerolog context (internal/pkg/logx),
the TCP-socket analogue of an HTTP request-ID middleware. It does not
generate room codes or guest IDs: room names and usernames in this protocol
are always client-chosen strings, never server generated (see DESIGN.md).
*/
package randx

import "github.com/google/uuid"

// ConnectionID returns a new random identifier suitable for correlating a
// single accepted connection's log lines across registration, command
// dispatch, and cleanup.
func ConnectionID() string {
	return uuid.New().String()
}

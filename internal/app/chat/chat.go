/*
Package chat implements the server's connection-handling core: the client and
room registries, the bounded file-upload queue, the wire protocol, the
per-connection command loop, the transfer worker, and the accept loop that
ties them together.

All mutating operations on the client registry, room registry, and upload
queue are serialized by their own mutex. The clients lock and the rooms lock
are never held at the same time by any code path in this package.
*/
package chat

import "time"

const (
	// MaxClients is the number of concurrent connections the server accepts.
	MaxClients = 15

	// MaxRooms is the number of rooms that may be active at once.
	MaxRooms = 10

	// MaxRoomMembers is the membership cap for a single room.
	MaxRoomMembers = 15

	// MaxUsernameLen is the longest accepted username, in bytes.
	MaxUsernameLen = 16

	// MaxRoomNameLen is the longest accepted room name, in bytes.
	MaxRoomNameLen = 32

	// MaxCommandLen is the longest accepted inbound command line, in bytes,
	// excluding the terminating newline.
	MaxCommandLen = 4095

	// MaxFileSize is the largest file size accepted by /sendfile, in bytes (3 MiB).
	MaxFileSize = 3 * 1024 * 1024

	// UploadQueueCapacity is the number of file-transfer jobs the upload queue
	// can hold at once.
	UploadQueueCapacity = 5
)

// TransferProcessingDelay is the simulated per-job processing time the
// transfer worker sleeps before attempting delivery.
const TransferProcessingDelay = 2 * time.Second

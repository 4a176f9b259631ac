package chat

import (
	"context"
	"time"

	"hzchat/internal/app/archive"
	"hzchat/internal/pkg/protolog"
)

// Server owns the shared registries and queue that every connection handler
// and the transfer worker operate on. It is created once by the listener and
// handed to goroutines read-only; all mutation happens through the
// registries' and queue's own locks.
type Server struct {
	Clients  *ClientRegistry
	Rooms    *RoomRegistry
	Queue    *UploadQueue
	ProtoLog *protolog.Sink

	// Archive mirrors the lifecycle events also written to ProtoLog into the
	// optional durable event store. A nil Archive (DATABASE_DSN unset) makes
	// recordEvent a no-op.
	Archive *archive.EventStore
}

// NewServer wires a fresh set of registries and queue around the given
// protocol log sink and optional event archive.
func NewServer(plog *protolog.Sink, arc *archive.EventStore) *Server {
	return &Server{
		Clients:  NewClientRegistry(),
		Rooms:    NewRoomRegistry(),
		Queue:    NewUploadQueue(),
		ProtoLog: plog,
		Archive:  arc,
	}
}

// recordEvent mirrors a lifecycle event already written to ProtoLog into the
// optional archive. EventStore.Record tolerates a nil receiver, so this never
// branches on whether archival is configured.
func (s *Server) recordEvent(ctx context.Context, kind, detail string) {
	s.Archive.Record(ctx, archive.Event{
		Kind:      kind,
		Detail:    detail,
		Timestamp: time.Now(),
	})
}

// Stats is a point-in-time snapshot of server occupancy, used by the admin
// HTTP surface.
type Stats struct {
	Clients    int            `json:"clients"`
	ClientCap  int            `json:"client_capacity"`
	Rooms      map[string]int `json:"rooms"`
	RoomCap    int            `json:"room_capacity"`
	QueueDepth int            `json:"queue_depth"`
	QueueCap   int            `json:"queue_capacity"`
}

// Snapshot reports current occupancy across every tracked resource.
func (s *Server) Snapshot() Stats {
	rooms := s.Rooms.Snapshot()
	roomCounts := make(map[string]int, len(rooms))
	for _, r := range rooms {
		roomCounts[r.Name] = len(r.Members)
	}

	return Stats{
		Clients:    s.Clients.Count(),
		ClientCap:  MaxClients,
		Rooms:      roomCounts,
		RoomCap:    MaxRooms,
		QueueDepth: s.Queue.Len(),
		QueueCap:   UploadQueueCapacity,
	}
}

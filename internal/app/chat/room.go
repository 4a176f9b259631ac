package chat

import (
	"fmt"
	"sync"

	"hzchat/internal/pkg/errs"
)

// Room is a named multicast group. Identity is its Name: two active rooms
// never share a name. Membership order is preserved across joins and leaves.
type Room struct {
	Name    string
	Members []*Client
	active  bool
}

// RoomRegistry is the fixed-capacity table of rooms, guarded by a single
// mutex (spec §4.D). It is acquired independently of ClientRegistry's lock;
// no code path in this package holds both at once.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms [MaxRooms]*Room
}

// NewRoomRegistry returns an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{}
}

// FindOrCreate returns the active room with the given name, creating it in
// the first free slot if no such room exists. It fails with
// ErrRoomUnavailable when every slot already holds an active room.
func (r *RoomRegistry) FindOrCreate(name string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, room := range r.rooms {
		if room != nil && room.active && room.Name == name {
			return room, nil
		}
	}

	for i, room := range r.rooms {
		if room == nil || !room.active {
			created := &Room{Name: name, active: true}
			r.rooms[i] = created
			return created, nil
		}
	}

	return nil, errs.NewError(errs.ErrRoomUnavailable)
}

// JoinOrCreate finds the active room named name, creating it in the first
// free slot if none exists, and appends c to it — all under a single lock
// acquisition. Callers that need find-then-join behavior (as opposed to
// FindOrCreate and Join called separately, which race: a concurrent Leave
// or JoinOrCreate for the same name can empty, deactivate, or replace the
// room object in the gap between the two calls) should use this instead.
func (r *RoomRegistry) JoinOrCreate(name string, c *Client) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var room *Room
	for _, candidate := range r.rooms {
		if candidate != nil && candidate.active && candidate.Name == name {
			room = candidate
			break
		}
	}

	if room == nil {
		for i, candidate := range r.rooms {
			if candidate == nil || !candidate.active {
				room = &Room{Name: name, active: true}
				r.rooms[i] = room
				break
			}
		}
		if room == nil {
			return nil, errs.NewError(errs.ErrRoomUnavailable)
		}
	}

	if len(room.Members) >= MaxRoomMembers {
		return nil, errs.NewError(errs.ErrRoomFull)
	}

	room.Members = append(room.Members, c)
	room.active = true
	return room, nil
}

// Join appends c to room's membership, failing with ErrRoomFull once the
// room already holds MaxRoomMembers clients. The caller is responsible for
// setting c.Room on success. Join re-marks room active: a caller that holds
// a *Room from an earlier, separate FindOrCreate call may be racing a
// concurrent Leave that emptied and deactivated it; appending a member
// always makes the room active again. Prefer JoinOrCreate over a separate
// FindOrCreate+Join pair where the room name, not a specific *Room object,
// is the caller's real intent.
func (r *RoomRegistry) Join(room *Room, c *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(room.Members) >= MaxRoomMembers {
		return errs.NewError(errs.ErrRoomFull)
	}

	room.Members = append(room.Members, c)
	room.active = true
	return nil
}

// Leave removes c from room's membership, preserving the relative order of
// the remaining members, and deactivates the room if that empties it.
// Leaving a room c is not a member of is a no-op.
func (r *RoomRegistry) Leave(room *Room, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range room.Members {
		if m == c {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}

	if len(room.Members) == 0 {
		room.active = false
	}
}

// Broadcast relays body to every member of the active room named roomName
// except sender. Member handles are copied out while the lock is held and
// the actual sends happen after it is released, so one slow peer never stalls
// delivery to the others or blocks unrelated room traffic (spec §9 open
// question, resolved toward the copy-then-send variant).
func (r *RoomRegistry) Broadcast(roomName, sender, body string) error {
	r.mu.Lock()
	var room *Room
	for _, candidate := range r.rooms {
		if candidate != nil && candidate.active && candidate.Name == roomName {
			room = candidate
			break
		}
	}
	if room == nil {
		r.mu.Unlock()
		return errs.NewError(errs.ErrNotInRoom)
	}

	recipients := make([]*Client, 0, len(room.Members))
	for _, m := range room.Members {
		if m.Name != sender {
			recipients = append(recipients, m)
		}
	}
	r.mu.Unlock()

	line := fmt.Sprintf("[%s] %s: %s\n", roomName, sender, body)
	for _, m := range recipients {
		_ = m.Send(line)
	}
	return nil
}

// Snapshot returns the currently active rooms with their membership,
// for admin-surface stats reporting.
func (r *RoomRegistry) Snapshot() []*Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Room, 0, MaxRooms)
	for _, room := range r.rooms {
		if room != nil && room.active {
			out = append(out, room)
		}
	}
	return out
}

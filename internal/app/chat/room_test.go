package chat

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func newTestClient(name string) *Client {
	return &Client{Conn: nopConn{}, Name: name}
}

func TestFindOrCreateReusesActiveRoom(t *testing.T) {
	r := NewRoomRegistry()
	a, err := r.FindOrCreate("lobby")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.FindOrCreate("lobby")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatal("expected the same room instance for the same name")
	}
}

func TestRoomCapacity(t *testing.T) {
	r := NewRoomRegistry()
	for i := 0; i < MaxRooms; i++ {
		if _, err := r.FindOrCreate(fmt.Sprintf("room%d", i)); err != nil {
			t.Fatalf("room %d: unexpected error: %v", i, err)
		}
	}
	if _, err := r.FindOrCreate("overflow"); err == nil {
		t.Fatal("expected ErrRoomUnavailable on 11th distinct room")
	}
}

func TestJoinLeaveMembership(t *testing.T) {
	r := NewRoomRegistry()
	room, _ := r.FindOrCreate("lobby")
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	if err := r.Join(room, alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Join(room, bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(room.Members) != 2 {
		t.Fatalf("Members = %d, want 2", len(room.Members))
	}

	r.Leave(room, alice)
	if len(room.Members) != 1 || room.Members[0] != bob {
		t.Fatalf("expected only bob to remain, got %v", room.Members)
	}

	r.Leave(room, bob)
	if room.active {
		t.Fatal("expected room to deactivate once empty")
	}
}

func TestRoomFullCapacity(t *testing.T) {
	r := NewRoomRegistry()
	room, _ := r.FindOrCreate("lobby")
	for i := 0; i < MaxRoomMembers; i++ {
		if err := r.Join(room, newTestClient("m")); err != nil {
			t.Fatalf("member %d: unexpected error: %v", i, err)
		}
	}
	if err := r.Join(room, newTestClient("overflow")); err == nil {
		t.Fatal("expected ErrRoomFull on 16th member")
	}
}

func TestJoinOrCreateReusesThenCreates(t *testing.T) {
	r := NewRoomRegistry()
	alice := newTestClient("alice")
	bob := newTestClient("bob")

	room, err := r.JoinOrCreate("lobby", alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := r.JoinOrCreate("lobby", bob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != room {
		t.Fatal("expected the same room instance for the same name")
	}
	if len(room.Members) != 2 {
		t.Fatalf("Members = %d, want 2", len(room.Members))
	}
}

// TestJoinOrCreateNoDuplicateAfterEmptying walks, sequentially and without
// concurrent goroutines, through the case behind the race a separate
// FindOrCreate-then-Join pair is vulnerable to: a room is emptied and
// deactivated, then joined again before anything else touches it.
// JoinOrCreate's single lock acquisition must leave the registry with
// exactly one active room named "lobby" holding bob, never two.
func TestJoinOrCreateNoDuplicateAfterEmptying(t *testing.T) {
	r := NewRoomRegistry()
	alice := newTestClient("alice")

	room, err := r.JoinOrCreate("lobby", alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Leave(room, alice)
	if room.active {
		t.Fatal("expected room to deactivate once empty")
	}

	bob := newTestClient("bob")
	if _, err := r.JoinOrCreate("lobby", bob); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active := 0
	for _, candidate := range r.rooms {
		if candidate != nil && candidate.active && candidate.Name == "lobby" {
			active++
			if len(candidate.Members) != 1 || candidate.Members[0] != bob {
				t.Fatalf("expected the active lobby room to hold only bob, got %v", candidate.Members)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly 1 active room named lobby, got %d", active)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	r := NewRoomRegistry()
	room, _ := r.FindOrCreate("lobby")
	aliceConn, bobConn := &recordConn{}, &recordConn{}
	alice := &Client{Conn: aliceConn, Name: "alice"}
	bob := &Client{Conn: bobConn, Name: "bob"}
	_ = r.Join(room, alice)
	_ = r.Join(room, bob)

	if err := r.Broadcast("lobby", "alice", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := aliceConn.String(); got != "" {
		t.Fatalf("sender received its own broadcast: %q", got)
	}
	if got, want := bobConn.String(), "[lobby] alice: hello\n"; got != want {
		t.Fatalf("bob received %q, want %q", got, want)
	}
}

// recordConn is a net.Conn double that keeps every byte written to it.
type recordConn struct {
	nopConn
	mu  sync.Mutex
	buf strings.Builder
}

func (c *recordConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *recordConn) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

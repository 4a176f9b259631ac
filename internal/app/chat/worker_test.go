package chat

import (
	"context"
	"net"
	"testing"
	"time"
)

func TestTransferWorkerDeliversToOnlineRecipient(t *testing.T) {
	s := newTestServer(t)

	serverSide, clientSide := net.Pipe()
	recipient, err := s.Clients.Reserve(serverSide, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Clients.Register(recipient, "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Queue.Enqueue(FileJob{Filename: "notes.txt", Sender: "alice", Receiver: "bob", Size: 42}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunTransferWorker(ctx)

	buf := make([]byte, 128)
	clientSide.SetReadDeadline(time.Now().Add(5 * time.Second))
	n, err := clientSide.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	got := string(buf[:n])
	want := "[FILE] Received 'notes.txt' from alice (42 bytes)\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTransferWorkerReleasesSlotOnOfflineRecipient(t *testing.T) {
	s := newTestServer(t)

	s.Queue.Enqueue(FileJob{Filename: "notes.txt", Sender: "alice", Receiver: "ghost", Size: 42}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunTransferWorker(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		// Dequeue empties the ring at once; the slot permit only comes back
		// after TransferProcessingDelay, so wait for both.
		if s.Queue.Len() == 0 && len(s.Queue.slots) == UploadQueueCapacity {
			select {
			case s.Queue.slots <- struct{}{}:
				t.Fatal("slot over-released: queue leaked or double-freed a slot")
			default:
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("worker never drained the job")
}

package chat

import (
	"context"
	"sync"
	"time"
)

// FileJob is a unit of work in the upload queue: a file transfer notification
// awaiting delivery by the transfer worker.
type FileJob struct {
	Filename   string
	Sender     string
	Receiver   string
	Size       int64
	EnqueuedAt time.Time
}

// UploadQueue is a fixed-capacity ring buffer of file-transfer jobs with two
// counting semaphores realized as buffered channels: slots (capacity minus
// in-flight jobs) and items (jobs ready for the consumer), plus a mutex
// protecting the ring's front/rear/count and contents (spec §4.E). Producers
// never block while holding the mutex; the only blocking points are the slots
// and items channel operations themselves.
type UploadQueue struct {
	mu    sync.Mutex
	ring  [UploadQueueCapacity]FileJob
	front int
	rear  int
	count int

	slots chan struct{}
	items chan struct{}
}

// NewUploadQueue returns an empty queue with every slot permit available.
func NewUploadQueue() *UploadQueue {
	q := &UploadQueue{
		slots: make(chan struct{}, UploadQueueCapacity),
		items: make(chan struct{}, UploadQueueCapacity),
	}
	for i := 0; i < UploadQueueCapacity; i++ {
		q.slots <- struct{}{}
	}
	return q
}

// Enqueue stores job in the ring once a slot is available. If no slot is
// immediately free, onFull is invoked exactly once (to let the caller emit
// "[INFO] Upload queue full. Waiting...") before Enqueue blocks until the
// worker releases one.
func (q *UploadQueue) Enqueue(job FileJob, onFull func()) {
	select {
	case <-q.slots:
	default:
		if onFull != nil {
			onFull()
		}
		<-q.slots
	}

	q.mu.Lock()
	q.ring[q.rear] = job
	q.rear = (q.rear + 1) % UploadQueueCapacity
	q.count++
	q.mu.Unlock()

	q.items <- struct{}{}
}

// Dequeue blocks until a job is ready or ctx is done (server shutdown). It
// returns ok=false only on context cancellation.
func (q *UploadQueue) Dequeue(ctx context.Context) (FileJob, bool) {
	select {
	case <-q.items:
	case <-ctx.Done():
		return FileJob{}, false
	}

	q.mu.Lock()
	job := q.ring[q.front]
	q.front = (q.front + 1) % UploadQueueCapacity
	q.count--
	q.mu.Unlock()

	return job, true
}

// Release posts a slot permit. The worker calls this exactly once per
// consumed job, regardless of delivery outcome.
func (q *UploadQueue) Release() {
	q.slots <- struct{}{}
}

// Len returns the number of jobs currently queued, for admin-surface stats.
func (q *UploadQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

package chat

import (
	"context"
	"fmt"
	"time"
)

// RunTransferWorker drains the upload queue one job at a time until ctx is
// canceled. Each job is delayed by TransferProcessingDelay to simulate
// transfer processing, then delivered as a notification to the receiver if
// still active; exactly one slot permit is released per job regardless of
// outcome (spec §4.G).
func (s *Server) RunTransferWorker(ctx context.Context) {
	for {
		job, ok := s.Queue.Dequeue(ctx)
		if !ok {
			return
		}

		s.processJob(ctx, job)
	}
}

func (s *Server) processJob(ctx context.Context, job FileJob) {
	defer s.Queue.Release()

	select {
	case <-ctx.Done():
	case <-time.After(TransferProcessingDelay):
	}

	recipient, online := s.Clients.FindByName(job.Receiver)
	if !online {
		detail := fmt.Sprintf("%s -> %s: %s (%d bytes) (failed - user offline)", job.Sender, job.Receiver, job.Filename, job.Size)
		s.ProtoLog.Logf("[SEND FILE] %s", detail)
		s.recordEvent(ctx, "SEND FILE", detail)
		return
	}

	notice := fmt.Sprintf("[FILE] Received '%s' from %s (%d bytes)\n", job.Filename, job.Sender, job.Size)
	if err := recipient.Send(notice); err != nil {
		detail := fmt.Sprintf("%s -> %s: %s (%d bytes) (failed - user offline)", job.Sender, job.Receiver, job.Filename, job.Size)
		s.ProtoLog.Logf("[SEND FILE] %s", detail)
		s.recordEvent(ctx, "SEND FILE", detail)
		return
	}

	detail := fmt.Sprintf("%s -> %s: %s (%d bytes) (success)", job.Sender, job.Receiver, job.Filename, job.Size)
	s.ProtoLog.Logf("[SEND FILE] %s", detail)
	s.recordEvent(ctx, "SEND FILE", detail)
}

package chat

import (
	"context"
	"fmt"
	"net"

	"hzchat/internal/pkg/limiter"
	"hzchat/internal/pkg/logx"
)

// Listen binds the chat TCP listener to port, spawns the single transfer
// worker, and runs the accept loop until ctx is canceled. connLimiter, if
// non-nil, is consulted per accepted connection's remote IP before a client
// slot is reserved; a rejected IP's connection is closed immediately without
// consuming a slot.
func (s *Server) Listen(ctx context.Context, port int, connLimiter *limiter.IPRateLimiter) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("chat: listen on port %d: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		s.shutdown(ln)
	}()

	go s.RunTransferWorker(ctx)

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return fmt.Errorf("chat: accept: %w", err)
			}
		}

		if connLimiter != nil {
			ip, _, splitErr := net.SplitHostPort(conn.RemoteAddr().String())
			if splitErr != nil {
				ip = conn.RemoteAddr().String()
			}
			if !connLimiter.Allow(ip) {
				logx.Warn("Connection rejected", "remote_addr", conn.RemoteAddr().String(), "reason", "rate limited")
				_ = conn.Close()
				continue
			}
		}

		go s.HandleConnection(conn)
	}
}

// shutdown runs the cooperative shutdown sequence: notify every active
// client, log the disconnect count, and close the listening socket. The
// transfer worker observes ctx.Done() at its next blocking point and exits on
// its own. Connection handlers do not watch ctx, and client connections are
// not closed here; they end when the process exits. shutdown waits for
// neither.
func (s *Server) shutdown(ln net.Listener) {
	clients := s.Clients.Snapshot()
	for _, c := range clients {
		_ = c.Send("[SERVER] Server shutting down. Goodbye!\n")
	}

	detail := fmt.Sprintf("server stopping. Disconnecting %d clients, saving logs.", len(clients))
	s.ProtoLog.Logf("[SHUTDOWN] %s", detail)
	s.recordEvent(context.Background(), "SHUTDOWN", detail)
	_ = ln.Close()
}

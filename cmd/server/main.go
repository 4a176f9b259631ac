/*
Package main is the entry point for the chat server.

It loads configuration, opens the protocol log, wires the chat domain and
its optional admin HTTP+WebSocket surface and archival sinks, and runs both
the TCP listener and the admin HTTP server until an interrupt signal starts
a graceful shutdown.
*/
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hzchat/internal/app/adminhub"
	"hzchat/internal/app/archive"
	"hzchat/internal/app/chat"
	"hzchat/internal/configs"
	"hzchat/internal/handler"
	"hzchat/internal/pkg/limiter"
	"hzchat/internal/pkg/logx"
	"hzchat/internal/pkg/protolog"
)

func main() {
	cfg, err := configs.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Info("Configuration loaded successfully",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"admin_addr", cfg.AdminAddr,
	)

	plog, err := protolog.Open(cfg.LogPath)
	if err != nil {
		logx.Fatal(err, "Failed to open protocol log")
	}
	defer plog.Close()

	eventStore, err := archive.NewEventStore(cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to initialize event archive")
	}
	if eventStore != nil {
		defer eventStore.Close()
		logx.Info("Event archive initialized")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shipper, err := archive.NewLogShipper(ctx, cfg.S3Bucket, cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKeyID, cfg.S3SecretAccessKey)
	if err != nil {
		logx.Fatal(err, "Failed to initialize S3 log shipper")
	}
	if shipper != nil {
		logx.Info("S3 log shipper initialized")
	}

	server := chat.NewServer(plog, eventStore)

	connLimiter := limiter.NewIPRateLimiter(cfg.ConnectRate, cfg.ConnectBurst)

	if shipper != nil {
		go runLogRotation(ctx, plog, shipper)
	}

	hub := adminhub.NewHub()
	go hub.Run(ctx, 5*time.Second, func() ([]byte, error) {
		return statsJSON(server.Snapshot())
	})

	var httpServer *http.Server
	if cfg.AdminAddr != "" {
		deps := &handler.AppDeps{
			Server:  server,
			Hub:     hub,
			Archive: eventStore,
			Config:  cfg,
		}
		httpServer = &http.Server{
			Addr:         cfg.AdminAddr,
			Handler:      handler.Router(deps),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			logx.Info("Admin HTTP surface starting", "addr", cfg.AdminAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logx.Fatal(err, "Admin HTTP surface failed to start")
			}
		}()
	}

	var listenerDone sync.WaitGroup
	listenerDone.Add(1)
	go func() {
		defer listenerDone.Done()
		logx.Info("Chat server listening", "port", cfg.Port)
		if err := server.Listen(ctx, cfg.Port, connLimiter); err != nil {
			logx.Fatal(err, "Chat listener failed")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logx.Error(err, "Admin HTTP surface forced to shutdown")
		}
	}

	// Listen's own shutdown sequence (notifying clients, closing the socket)
	// runs in a goroutine racing this one on ctx.Done(); wait for it so the
	// process never exits out from under clients still being notified.
	listenerDone.Wait()

	if shipper != nil {
		shipFinalSegment(plog, shipper)
	}

	logx.Info("Server gracefully stopped.")
}

// logRotationInterval is how often the running server rotates its protocol
// log and ships the closed segment to S3.
const logRotationInterval = 1 * time.Hour

// runLogRotation rotates plog on a fixed interval until ctx is canceled,
// shipping each closed segment through shipper. The final, still-open
// segment at shutdown is rotated and shipped separately by shipFinalSegment.
func runLogRotation(ctx context.Context, plog *protolog.Sink, shipper *archive.LogShipper) {
	ticker := time.NewTicker(logRotationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			segment, err := plog.Rotate()
			if err != nil {
				logx.Error(err, "Failed to rotate protocol log")
				continue
			}
			if segment == "" {
				continue
			}
			shipper.Ship(context.Background(), segment, time.Now())
		}
	}
}

// shipFinalSegment rotates plog one last time at shutdown and ships the
// closed segment, so the log content written since the last periodic
// rotation is not lost.
func shipFinalSegment(plog *protolog.Sink, shipper *archive.LogShipper) {
	segment, err := plog.Rotate()
	if err != nil {
		logx.Error(err, "Failed to rotate protocol log at shutdown")
		return
	}
	if segment == "" {
		return
	}
	shipper.Ship(context.Background(), segment, time.Now())
}

func statsJSON(stats chat.Stats) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":  "stats",
		"stats": stats,
	})
}

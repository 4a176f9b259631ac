package archive

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hzchat/internal/pkg/logx"
)

// Event is a single lifecycle event mirrored to the archive: logins,
// disconnects, room churn, file-transfer outcomes, and operator
// announcements. It never carries message bodies or room membership — only
// enough to reconstruct an activity timeline.
type Event struct {
	Kind      string
	Detail    string
	Timestamp time.Time
}

// EventStore is the optional Postgres-backed event archive. A nil
// *EventStore is valid and every method on it is a no-op, so callers do not
// need to branch on whether DATABASE_DSN was configured.
type EventStore struct {
	pool *pgxpool.Pool
}

// NewEventStore opens a pool and runs migrations against dsn. Pass an empty
// dsn to get a nil, no-op store.
func NewEventStore(dsn string) (*EventStore, error) {
	if dsn == "" {
		return nil, nil
	}

	pool, err := newPool(dsn)
	if err != nil {
		return nil, err
	}

	return &EventStore{pool: pool}, nil
}

// Record inserts ev into the archive, logging (but not returning) any
// failure: archive writes are best-effort and must never affect a client's
// session.
func (s *EventStore) Record(ctx context.Context, ev Event) {
	if s == nil || s.pool == nil {
		return
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_events (kind, detail, occurred_at) VALUES ($1, $2, $3)`,
		ev.Kind, ev.Detail, ev.Timestamp,
	)
	if err != nil {
		logx.Error(err, "Failed to record event to archive", "kind", ev.Kind)
	}
}

// Close releases the underlying connection pool, if any.
func (s *EventStore) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

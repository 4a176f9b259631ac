/*
Package protolog implements the append-only server log the chat protocol's
wire contract depends on (spec §4.A, §6): every record is prefixed with a
"YYYY-MM-DD HH:MM:SS - " local-time timestamp, followed by a free-form
message and a trailing newline, flushed before the lock is released, so
records never interleave.

This is deliberately not built on the operational zerolog logger
(internal/pkg/logx): zerolog emits leveled, keyed, JSON or console output,
and there is no record format option that reproduces the literal
"<timestamp> - <event>" line this package's callers and the test suite
require. A single mutex-guarded *os.File is the whole of the job.

Sink also supports rotation: renaming the current file aside and opening
the same path fresh, handing the caller the closed segment's path so it can
be shipped elsewhere (internal/app/archive).
*/
package protolog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

// Sink is a single-writer-at-a-time append log.
type Sink struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// Open opens (creating if necessary) the log file at path for appending.
func Open(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("protolog: open %s: %w", path, err)
	}

	return &Sink{file: f, path: path}, nil
}

// Rotate renames the current file aside with a nanosecond-timestamp suffix
// and opens path fresh for subsequent records. segment is the renamed
// file's path, or "" if there was nothing to rotate (the file was empty) —
// callers should skip shipping in that case.
//
// The rename happens before the old file is closed: on POSIX the open
// descriptor keeps writing to the renamed inode regardless of the name
// change, so a failed reopen leaves Logf still appending to that (now
// unlinked-from-s.path) descriptor instead of writing into a closed file.
// The old descriptor is only closed after the new one is in place.
func (s *Sink) Rotate() (segment string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.file.Stat()
	if err != nil {
		return "", fmt.Errorf("protolog: stat %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		return "", nil
	}

	segment = fmt.Sprintf("%s.%d", s.path, time.Now().UnixNano())
	if err := os.Rename(s.path, segment); err != nil {
		return "", fmt.Errorf("protolog: rename %s to %s: %w", s.path, segment, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("protolog: reopen %s: %w", s.path, err)
	}

	old := s.file
	s.file = f
	_ = old.Close()

	return segment, nil
}

// Logf formats a record from format and args and appends it to the sink,
// prefixed with the current local timestamp. The record is flushed to the
// underlying file before the lock is released; no two records interleave.
func (s *Sink) Logf(format string, args ...any) {
	line := fmt.Sprintf("%s - %s\n", time.Now().Format(timeLayout), fmt.Sprintf(format, args...))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.WriteString(line); err != nil {
		return
	}
	_ = s.file.Sync()
}

// Close closes the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file.Close()
}

package protolog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
)

func TestLogfFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sink.Close()

	sink.Logf("[LOGIN] user '%s' connected from %s", "alice", "127.0.0.1")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	line := strings.TrimRight(string(data), "\n")
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - \[LOGIN\] user 'alice' connected from 127\.0\.0\.1$`)
	if !re.MatchString(line) {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestLogfNoInterleaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sink.Close()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			sink.Logf("[JOIN] user 'u%d' joined room 'r'", i)
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != n {
		t.Fatalf("expected %d lines, got %d", n, len(lines))
	}

	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - \[JOIN\] user 'u\d+' joined room 'r'$`)
	for _, l := range lines {
		if !re.MatchString(l) {
			t.Fatalf("malformed/interleaved line: %q", l)
		}
	}
}

func TestRotateEmptyFileIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sink.Close()

	segment, err := sink.Rotate()
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if segment != "" {
		t.Fatalf("expected no segment for an empty log, got %q", segment)
	}
}

func TestRotateClosesSegmentAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	sink, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer sink.Close()

	sink.Logf("[LOGIN] user '%s' connected from %s", "alice", "127.0.0.1")

	segment, err := sink.Rotate()
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if segment == "" {
		t.Fatal("expected a non-empty segment path")
	}

	segData, err := os.ReadFile(segment)
	if err != nil {
		t.Fatalf("ReadFile(segment): %v", err)
	}
	if !strings.Contains(string(segData), "alice") {
		t.Fatalf("rotated segment missing prior record: %q", segData)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to be reopened fresh: %v", path, err)
	}

	sink.Logf("[LOGIN] user '%s' connected from %s", "bob", "127.0.0.1")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "alice") {
		t.Fatal("expected the reopened log to start fresh, not carry the rotated record")
	}
	if !strings.Contains(string(data), "bob") {
		t.Fatal("expected the new record to land in the reopened log")
	}
}

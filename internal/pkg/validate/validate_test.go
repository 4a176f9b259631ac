package validate

import (
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	cases := []struct {
		name string
		max  int
		want bool
	}{
		{"", 16, false},
		{"a", 16, true},
		{"1234567890123456", 16, true},
		{"12345678901234567", 16, false},
		{"bob", 16, true},
		{"bob_smith", 16, false},
		{"bob smith", 16, false},
		{"lobby", 32, true},
	}

	for _, c := range cases {
		if got := Name(c.name, c.max); got != c.want {
			t.Errorf("Name(%q, %d) = %v, want %v", c.name, c.max, got, c.want)
		}
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"x.txt", true},
		{"a.pdf", true},
		{"photo.jpg", true},
		{"photo.png", true},
		{"x.TXT", false},
		{"x.doc", false},
		{"noext", false},
		{"a.t", false},
		{"ab.txt", true},
	}

	for _, c := range cases {
		if got := Filename(c.name); got != c.want {
			t.Errorf("Filename(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFilenameLengthBound(t *testing.T) {
	atLimit := strings.Repeat("a", MaxFilenameLen-4) + ".txt"
	if len(atLimit) != MaxFilenameLen {
		t.Fatalf("test setup: atLimit is %d bytes, want %d", len(atLimit), MaxFilenameLen)
	}
	if !Filename(atLimit) {
		t.Errorf("Filename(%d bytes) = false, want true", len(atLimit))
	}

	overLimit := atLimit + "a"
	if Filename(overLimit) {
		t.Errorf("Filename(%d bytes) = true, want false", len(overLimit))
	}
}

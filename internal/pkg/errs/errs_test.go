package errs

import "testing"

func TestNewErrorKnownCode(t *testing.T) {
	e := NewError(ErrRoomFull)
	if e.Code != ErrRoomFull {
		t.Fatalf("Code = %d, want %d", e.Code, ErrRoomFull)
	}
	if e.Message != "Room is full." {
		t.Fatalf("Message = %q", e.Message)
	}
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	e := NewError(999999)
	if e.Code != ErrUnknown {
		t.Fatalf("Code = %d, want ErrUnknown", e.Code)
	}
}

func TestNewErrorWithFormatDetails(t *testing.T) {
	e := NewError(ErrMalformedCommand, "Usage: /whisper <username> <message>")
	if e.Message != "Usage: /whisper <username> <message>" {
		t.Fatalf("Message = %q", e.Message)
	}
}

func TestErrorStringer(t *testing.T) {
	e := NewError(ErrNotInRoom)
	if e.Error() == "" {
		t.Fatal("Error() returned empty string")
	}
}

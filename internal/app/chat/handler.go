package chat

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"hzchat/internal/pkg/errs"
	"hzchat/internal/pkg/logx"
	"hzchat/internal/pkg/randx"
	"hzchat/internal/pkg/validate"
)

// HandleConnection runs the full lifecycle of one accepted connection:
// reserving a client slot, the registration handshake, the command loop, and
// cleanup on disconnect or /exit. It returns once the connection is fully
// torn down. connID tags every operational log line this connection produces
// so its registration, commands, and cleanup can be correlated without a
// shared client name (which does not exist until registration succeeds).
func (s *Server) HandleConnection(conn net.Conn) {
	addr := conn.RemoteAddr().String()
	connID := randx.ConnectionID()

	client, err := s.Clients.Reserve(conn, addr)
	if err != nil {
		logx.Warn("Connection rejected", "conn_id", connID, "remote_addr", addr, "reason", "server full")
		_, _ = conn.Write([]byte(wireError(err.(*errs.CustomError))))
		_ = conn.Close()
		return
	}

	logx.Info("Connection accepted", "conn_id", connID, "remote_addr", addr)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, MaxCommandLen+1), MaxCommandLen+1)

	if !s.registerClient(client, scanner) {
		s.cleanup(client, connID)
		return
	}

	s.ProtoLog.Logf("[LOGIN] user '%s' connected from %s", client.Name, addr)
	s.recordEvent(context.Background(), "LOGIN", fmt.Sprintf("user '%s' connected from %s", client.Name, addr))
	_ = client.Send("[SUCCESS] Connected to chat server!\n")
	_ = client.Send(CommandSummary)

	for scanner.Scan() {
		cmd := parseLine(scanner.Text())
		if cmd.Name == "" {
			continue
		}
		if !s.dispatch(client, cmd) {
			break
		}
	}

	s.cleanup(client, connID)
}

// registerClient repeats the name-registration handshake until the client
// supplies a valid, unique name, or the connection fails/EOFs. It returns
// false in the latter case.
func (s *Server) registerClient(client *Client, scanner *bufio.Scanner) bool {
	for {
		if err := client.Send(UsernamePrompt); err != nil {
			return false
		}

		if !scanner.Scan() {
			return false
		}
		name := strings.TrimSpace(scanner.Text())

		if !validate.Name(name, MaxUsernameLen) {
			_ = client.Send(wireError(errs.NewError(errs.ErrInvalidUsername)))
			continue
		}

		if err := s.Clients.Register(client, name); err != nil {
			_ = client.Send(wireError(err.(*errs.CustomError)))
			s.ProtoLog.Logf("[REJECTED] Duplicate username attempted: %s", name)
			s.recordEvent(context.Background(), "REJECTED", fmt.Sprintf("Duplicate username attempted: %s", name))
			continue
		}

		return true
	}
}

// dispatch runs one parsed command against client's session and returns
// false when the connection should close (read failure or /exit).
func (s *Server) dispatch(client *Client, cmd parsedCommand) bool {
	switch cmd.Name {
	case "/join":
		s.handleJoin(client, cmd.Rest)
	case "/leave":
		s.handleLeave(client)
	case "/broadcast":
		s.handleBroadcast(client, cmd.Rest)
	case "/whisper":
		s.handleWhisper(client, cmd.Rest)
	case "/sendfile":
		s.handleSendFile(client, cmd.Rest)
	case "/exit":
		_ = client.Send("[INFO] Goodbye!\n")
		return false
	default:
		_ = client.Send(wireError(errs.NewError(errs.ErrUnknownCommand)))
	}
	return true
}

func (s *Server) handleJoin(client *Client, rest string) {
	room, _ := splitFirstToken(rest)
	if !validate.Name(room, MaxRoomNameLen) {
		_ = client.Send(wireError(errs.NewError(errs.ErrInvalidRoomName)))
		return
	}

	if client.Room != "" {
		s.leaveCurrentRoom(client)
	}

	if _, err := s.Rooms.JoinOrCreate(room, client); err != nil {
		_ = client.Send(wireError(err.(*errs.CustomError)))
		return
	}

	client.Room = room
	_ = client.Send(fmt.Sprintf("[SUCCESS] Joined room '%s'\n", room))
	s.ProtoLog.Logf("[JOIN] user '%s' joined room '%s'", client.Name, room)
	s.recordEvent(context.Background(), "JOIN", fmt.Sprintf("user '%s' joined room '%s'", client.Name, room))
}

func (s *Server) handleLeave(client *Client) {
	if client.Room == "" {
		_ = client.Send(wireError(errs.NewError(errs.ErrNotInRoom)))
		return
	}

	room := client.Room
	s.leaveCurrentRoom(client)
	_ = client.Send(fmt.Sprintf("[SUCCESS] Left room '%s'\n", room))
	s.ProtoLog.Logf("[LEAVE] user '%s' left room '%s'", client.Name, room)
	s.recordEvent(context.Background(), "LEAVE", fmt.Sprintf("user '%s' left room '%s'", client.Name, room))
}

// leaveCurrentRoom removes client from its current room, if any, and clears
// client.Room. Used both by an explicit /leave and by /join's implicit leave
// of a prior room.
func (s *Server) leaveCurrentRoom(client *Client) {
	if client.Room == "" {
		return
	}
	room, err := s.Rooms.FindOrCreate(client.Room)
	if err == nil {
		s.Rooms.Leave(room, client)
	}
	client.Room = ""
}

func (s *Server) handleBroadcast(client *Client, text string) {
	if client.Room == "" {
		_ = client.Send(wireError(errs.NewError(errs.ErrJoinRoomFirst)))
		return
	}
	if text == "" {
		_ = client.Send(wireError(errs.NewError(errs.ErrMalformedCommand, "Usage: /broadcast <text>")))
		return
	}

	_ = s.Rooms.Broadcast(client.Room, client.Name, text)
	_ = client.Send("[SUCCESS] Message broadcasted.\n")
	s.ProtoLog.Logf("[BROADCAST] user '%s' in room '%s': %s", client.Name, client.Room, text)
	s.recordEvent(context.Background(), "BROADCAST", fmt.Sprintf("user '%s' in room '%s'", client.Name, client.Room))
}

func (s *Server) handleWhisper(client *Client, rest string) {
	target, text := splitFirstToken(rest)
	if target == "" || text == "" {
		_ = client.Send(wireError(errs.NewError(errs.ErrMalformedCommand, "Usage: /whisper <username> <message>")))
		return
	}

	recipient, online := s.Clients.FindByName(target)
	if !online {
		_ = client.Send(wireError(errs.NewError(errs.ErrUserOffline)))
		return
	}

	_ = recipient.Send(fmt.Sprintf("[WHISPER from %s]: %s\n", client.Name, text))
	_ = client.Send("[SUCCESS] Whisper sent.\n")
	s.ProtoLog.Logf("[WHISPER] user '%s' to '%s': %s", client.Name, target, text)
	s.recordEvent(context.Background(), "WHISPER", fmt.Sprintf("user '%s' to '%s'", client.Name, target))
}

func (s *Server) handleSendFile(client *Client, rest string) {
	filename, receiverName := splitFirstToken(rest)
	if filename == "" || receiverName == "" {
		_ = client.Send(wireError(errs.NewError(errs.ErrMalformedCommand, "Usage: /sendfile <filename> <user>")))
		return
	}

	if !validate.Filename(filename) {
		_ = client.Send(wireError(errs.NewError(errs.ErrInvalidFilename)))
		return
	}

	if _, online := s.Clients.FindByName(receiverName); !online {
		_ = client.Send(wireError(errs.NewError(errs.ErrUserOffline)))
		return
	}

	size := statSize(filename)
	if size > MaxFileSize {
		_ = client.Send(wireError(errs.NewError(errs.ErrFileTooLarge)))
		return
	}

	job := FileJob{
		Filename: filename,
		Sender:   client.Name,
		Receiver: receiverName,
		Size:     size,
	}

	waited := false
	s.Queue.Enqueue(job, func() {
		waited = true
		_ = client.Send("[INFO] Upload queue full. Waiting...\n")
	})

	if waited {
		_ = client.Send("[SUCCESS] File queued for upload.\n")
	} else {
		_ = client.Send("[SUCCESS] File added to upload queue.\n")
	}
	s.ProtoLog.Logf("[FILE-QUEUE] user '%s' queued '%s' for '%s' (%d bytes)", client.Name, filename, receiverName, size)
	s.recordEvent(context.Background(), "FILE-QUEUE", fmt.Sprintf("user '%s' queued '%s' for '%s' (%d bytes)", client.Name, filename, receiverName, size))
}

// statSize best-effort stats filename on the local filesystem to recover its
// size, mirroring the reference server's fallback behavior: if the file
// cannot be stat'd (the protocol never transmits file content, so the name
// rarely resolves to a real local path), a conservative placeholder size of
// 1024 bytes is assumed rather than rejecting the transfer outright.
func statSize(filename string) int64 {
	info, err := os.Stat(filename)
	if err != nil {
		return 1024
	}
	return info.Size()
}

// cleanup removes client from any room it still occupies, logs the
// disconnect if it ever registered, and releases its slot. connID is the
// same correlation ID HandleConnection logged at accept time.
func (s *Server) cleanup(client *Client, connID string) {
	if client.Room != "" {
		s.leaveCurrentRoom(client)
	}
	if client.Name != "" {
		s.ProtoLog.Logf("[DISCONNECT] user '%s' disconnected", client.Name)
		s.recordEvent(context.Background(), "DISCONNECT", fmt.Sprintf("user '%s' disconnected", client.Name))
	}
	logx.Info("Connection closed", "conn_id", connID, "remote_addr", client.Addr, "user", client.Name)
	s.Clients.Release(client)
}

// wireError renders a CustomError as a single "[ERROR] <message>\n" wire
// line. CustomError.Error() is not used here: it includes the internal code
// and HTTP status, which have no place on the chat wire.
func wireError(e *errs.CustomError) string {
	return "[ERROR] " + e.Message + "\n"
}

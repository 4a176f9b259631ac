package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"hzchat/internal/app/archive"
	"hzchat/internal/pkg/errs"
	"hzchat/internal/pkg/req"
	"hzchat/internal/pkg/resp"
)

// announceRequest is the body of POST /admin/announce.
type announceRequest struct {
	Message string `json:"message"`
}

// HandleAnnounce relays an operator message to every connected chat client
// as a "[SERVER] ..." line, pushes the same text to any connected dashboard,
// and mirrors it to the optional event archive.
func HandleAnnounce(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body announceRequest
		if err := req.BindJSON(r, &body); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if body.Message == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		line := "[SERVER] " + body.Message + "\n"
		for _, c := range deps.Server.Clients.Snapshot() {
			_ = c.Send(line)
		}

		deps.Server.ProtoLog.Logf("[SERVER] announcement: %s", body.Message)

		if payload, err := json.Marshal(map[string]string{"type": "announcement", "message": body.Message}); err == nil {
			deps.Hub.Broadcast(payload)
		}

		if deps.Archive != nil {
			deps.Archive.Record(r.Context(), archive.Event{
				Kind:      "announcement",
				Detail:    body.Message,
				Timestamp: time.Now(),
			})
		}

		resp.RespondSuccess(w, r, map[string]string{"status": "sent"})
	}
}

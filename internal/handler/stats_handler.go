package handler

import (
	"net/http"

	"hzchat/internal/pkg/resp"
)

// HandleStats reports a point-in-time occupancy snapshot of the chat server.
func HandleStats(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Server.Snapshot())
	}
}

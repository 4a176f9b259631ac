package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"hzchat/internal/app/adminhub"
	"hzchat/internal/pkg/auth/jwt"
	"hzchat/internal/pkg/logx"
)

// HandleDashboard upgrades the connection and registers it with the admin
// hub, which from then on pushes periodic stats snapshots and announcement
// events to it. The first snapshot arrives on the hub's next tick rather
// than immediately on connect.
//
// Browsers cannot set an Authorization header on a WebSocket handshake, so
// the admin token travels as a "token" query parameter here instead of the
// Bearer header the rest of the admin surface uses.
func HandleDashboard(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Config.AdminSecret != "" {
			if _, err := jwt.ParseAdminToken(r.URL.Query().Get("token"), deps.Config.AdminSecret); err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade dashboard connection to WebSocket")
			return
		}

		client := adminhub.NewClient(deps.Hub, conn)

		go client.WritePump()
		deps.Hub.Register(client)
		client.ReadPump()
	}
}

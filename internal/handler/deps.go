/*
Package handler provides the admin HTTP+WebSocket surface: a small,
optional read side over the chat server's occupancy and a push channel for
operator announcements. It never participates in the chat wire protocol
itself.
*/
package handler

import (
	"hzchat/internal/app/adminhub"
	"hzchat/internal/app/archive"
	"hzchat/internal/app/chat"
	"hzchat/internal/configs"
)

// AppDeps bundles everything the admin router's handlers need.
type AppDeps struct {
	Server  *chat.Server
	Hub     *adminhub.Hub
	Archive *archive.EventStore
	Config  *configs.AppConfig
}

package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"AuraFM/core/auth"
	"AuraFM/core/player"
	"AuraFM/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers cannot set custom headers on websocket dials, so the
	// origin check stays permissive and auth rides in the query string.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NowPlayingWSHandler upgrades GET /ws/now-playing?token=<jwt> to a
// websocket subscribed to the caller's now-playing feed.
func (h *APIHandler) NowPlayingWSHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Token is required")
		return
	}
	claims, err := auth.ParseToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed", logger.ErrorField(err))
		return
	}

	client := &player.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		UserID: claims.UserID,
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

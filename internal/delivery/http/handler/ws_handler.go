package handler

import (
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/delivery/ws"
	"github.com/yashsaxena18/curesight-server/pkg/response"
)

// WSHandler upgrades authenticated requests into hub connections for chat
// and call signaling.
type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades the request to a websocket
// @Summary Open the realtime socket
// @Tags Realtime
// @Security BearerAuth
// @Router /ws [get]
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.hub.ServeWS(w, r, userID)
}

// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/linuxfoundation/lfx-pcc/pkg/validation"
	"github.com/linuxfoundation/lfx-pcc/services/gateway/downstream"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The gateway serves the console from the same origin; reverse
	// proxies rewrite the Origin header, so the check stays open.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is what the dashboard client sends.
type clientMessage struct {
	Action     string `json:"action"` // select_project or refresh
	ProjectUID string `json:"project_uid,omitempty"`
}

// Dashboard upgrades the connection and runs the session loop: one
// goroutine pushes snapshots on updates, the read loop applies client
// actions. A non-nil hub makes the session follow REST writes.
func Dashboard(projects downstream.ProjectService, meetings downstream.MeetingService, hub *Hub, log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error("websocket upgrade failed", "error", err)
			return
		}
		defer ws.Close()
		log.Info("dashboard client connected", "remote", ws.RemoteAddr())

		session := NewSession(projects, meetings, log)
		if hub != nil {
			defer session.Watch(hub)()
		}
		done := make(chan struct{})
		defer close(done)

		// The connection allows one concurrent writer, so every frame
		// (snapshots and error replies alike) goes out through this
		// goroutine; the read loop never writes.
		replies := make(chan gin.H, 8)
		go func() {
			for {
				select {
				case <-done:
					return
				case reply := <-replies:
					ws.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := ws.WriteJSON(reply); err != nil {
						log.Warn("reply write failed", "error", err)
						return
					}
				case <-session.Updates():
					ws.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := ws.WriteJSON(session.Snapshot()); err != nil {
						log.Warn("snapshot write failed", "error", err)
						return
					}
				}
			}
		}()

		reply := func(message string) {
			select {
			case replies <- gin.H{"error": message}:
			default:
				// A client that never reads loses error replies, not
				// the read loop.
			}
		}

		for {
			var msg clientMessage
			if err := ws.ReadJSON(&msg); err != nil {
				log.Info("dashboard client disconnected", "error", err.Error())
				return
			}
			switch msg.Action {
			case "select_project":
				if err := validation.ValidateUID(msg.ProjectUID); err != nil {
					reply("invalid project_uid")
					continue
				}
				session.SelectProject(c.Request.Context(), msg.ProjectUID)
			case "refresh":
				session.Refresh(c.Request.Context())
			default:
				reply("unknown action")
			}
		}
	}
}

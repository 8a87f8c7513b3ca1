// README: Live fare feed over WebSocket; pushes a fresh comparison on a timer or on a client refresh.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ridecompare/internal/http/middleware"
	"ridecompare/internal/logger"
	"ridecompare/internal/modules/comparison"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	DefaultLiveInterval = 30 * time.Second
	MinLiveInterval     = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The feed is public and read-only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMessage is sent to the client.
type liveMessage struct {
	Type       string                 `json:"type"`
	Comparison *comparison.Comparison `json:"comparison,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// liveCommand is read from the client. Only "refresh" is understood.
type liveCommand struct {
	Type string `json:"type"`
}

// Live handles GET /api/rides/live. It accepts the same query as Compare plus
// interval (seconds, at least 5).
func (h *CompareHandler) Live(c *gin.Context) {
	var q compareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err, "invalid query")
		return
	}
	req, err := q.toRequest()
	if err != nil {
		writeServiceError(c, err)
		return
	}
	interval := DefaultLiveInterval
	if v := c.Query("interval"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || time.Duration(secs)*time.Second < MinLiveInterval {
			writeError(c, http.StatusBadRequest, "interval must be at least 5 seconds")
			return
		}
		interval = time.Duration(secs) * time.Second
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		logger.Warn("websocket upgrade failed", zap.String("request_id", middleware.RequestID(c)), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	refresh := make(chan struct{}, 1)
	go readCommands(ctx, cancel, conn, refresh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := h.pushComparison(ctx, conn, req); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ticker.C:
			if err := h.pushComparison(ctx, conn, req); err != nil {
				return
			}
		case <-refresh:
			ticker.Reset(interval)
			if err := h.pushComparison(ctx, conn, req); err != nil {
				return
			}
		}
	}
}

func (h *CompareHandler) pushComparison(ctx context.Context, conn *websocket.Conn, req comparison.Request) error {
	msg := liveMessage{Type: "comparison"}
	res, err := h.svc.Compare(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg = liveMessage{Type: "error", Error: err.Error()}
	} else {
		msg.Comparison = res
		for _, o := range res.Options {
			quotesTotal.WithLabelValues(o.Type, string(o.Surge)).Inc()
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// readCommands owns the read side of conn and cancels ctx when the peer goes away.
func readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, refresh chan<- struct{}) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("live feed closed unexpectedly", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		var cmd liveCommand
		if err := json.Unmarshal(raw, &cmd); err != nil || cmd.Type != "refresh" {
			continue
		}
		select {
		case refresh <- struct{}{}:
		case <-ctx.Done():
			return
		default:
		}
	}
}

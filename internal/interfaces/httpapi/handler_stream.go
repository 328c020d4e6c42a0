package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPongWait     = 60 * time.Second
	streamPingInterval = (streamPongWait * 9) / 10
	streamReadLimit    = 512
)

// StreamTeams pushes a full team listing over a websocket whenever the teams
// collection changes. Each frame replaces the previous one; if the client is
// slow only the newest pending snapshot is kept.
func (h *Handler) StreamTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamTeams")
	defer span.End()

	input, err := parseListTeamsQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	send := make(chan []byte, 1)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		streamWritePump(ctx, conn, send, h.logger)
	}()
	go func() {
		defer cancel()
		streamReadPump(conn)
	}()

	err = h.dashboardService.WatchTeams(ctx, input, func(teams []team.Team) error {
		payload, err := sonic.Marshal(teamSnapshotDTO{
			Type:  "snapshot",
			Count: len(teams),
			Teams: teamsToDTO(teams),
		})
		if err != nil {
			return err
		}
		select {
		case send <- payload:
		default:
			select {
			case <-send:
			default:
			}
			send <- payload
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.WarnContext(ctx, "team stream stopped", "error", err)
	}

	cancel()
	<-writerDone
}

func streamWritePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte, logger *logging.Logger) {
	ticker := time.NewTicker(streamPingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Warn("write team snapshot failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// streamReadPump only drains control frames. It returns once the peer goes
// away, which ends the stream.
func streamReadPump(conn *websocket.Conn) {
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

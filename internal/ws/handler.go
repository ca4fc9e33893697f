package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/ymori/draft-duel-backend/internal/engine"
	"github.com/ymori/draft-duel-backend/internal/hub"
	"github.com/ymori/draft-duel-backend/internal/room"
	"github.com/ymori/draft-duel-backend/internal/types"
)

// Handler upgrades GET /ws?code=X&team=A to a websocket that streams
// per-team state snapshots and accepts draft commands. Join, create and
// result stay HTTP-only; the socket covers the in-draft loop.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		team, ok := engine.ParseTeam(r.URL.Query().Get("team"))
		if !ok {
			http.Error(w, "bad team", http.StatusBadRequest)
			return
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		clientID := randID(6)

		rm.Inbox() <- room.Watch{ClientID: clientID, Team: team, Outbox: out}
		defer func() { rm.Inbox() <- room.Unwatch{ClientID: clientID} }()

		log.Debug("ws client connected", zap.String("room", code), zap.String("team", string(team)))

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, View: &snap.View}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			res := make(chan room.Reply, 1)
			rm.Inbox() <- room.Do{Cmd: cmd, Reply: res}
			if rep := <-res; rep.Err != nil {
				writeError(r.Context(), conn, rep.Err.Error())
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toCommand(m types.ClientMessage) (engine.Command, bool) {
	team, ok := engine.ParseTeam(m.Team)
	if !ok {
		return engine.Command{}, false
	}

	switch m.Type {
	case "Draw":
		return engine.Command{Type: engine.CmdDraw, Team: team}, true
	case "Assign":
		cmd := engine.Command{Type: engine.CmdAssign, Team: team, Slot: -1}
		if m.Slot != nil {
			cmd.Slot = *m.Slot
		}
		return cmd, true
	case "Skip":
		return engine.Command{Type: engine.CmdSkip, Team: team}, true
	case "Swap":
		cmd := engine.Command{Type: engine.CmdSwap, Team: team, SkipSwap: m.Skip, Slot1: -1, Slot2: -1}
		if m.Slot1 != nil {
			cmd.Slot1 = *m.Slot1
		}
		if m.Slot2 != nil {
			cmd.Slot2 = *m.Slot2
		}
		return cmd, true
	default:
		return engine.Command{}, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

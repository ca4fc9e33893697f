package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ymori/draft-duel-backend/internal/engine"
	"github.com/ymori/draft-duel-backend/internal/hub"
	"github.com/ymori/draft-duel-backend/internal/room"
)

// ErrRoomNotFound is a registry-level error: the code names no room. All
// state-level errors come from the engine.
var ErrRoomNotFound = errors.New("room not found")

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateRoom(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *room.Room, 1)
			h.Inbox() <- hub.GetRoom{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			log.Warn("room code collision, regenerating", zap.String("code", c))
		}

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.EnsureRoom{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create room", http.StatusInternalServerError)
			return
		}

		log.Info("room created", zap.String("code", code))
		writeJSON(w, http.StatusCreated, map[string]string{"room": code, "team": string(engine.TeamA)})
	}
}

func JoinRoom(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errBadRequest)
			return
		}

		code := chi.URLParam(r, "code")
		rm, err := getRoom(h, code)
		if err != nil {
			writeError(w, err)
			return
		}

		reply := do(rm, engine.Command{Type: engine.CmdJoin, Username: req.Username})
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}

		team := engine.TeamA
		for _, ev := range reply.Events {
			if ev.Type == engine.EvtPlayerJoined {
				team = ev.Team
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"room": code, "team": string(team)})
	}
}

func GetState(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := engine.ParseTeam(chi.URLParam(r, "team"))
		if !ok {
			writeError(w, errBadRequest)
			return
		}

		rm, err := getRoom(h, chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, err)
			return
		}

		reply := make(chan engine.View, 1)
		rm.Inbox() <- room.GetView{Team: team, Reply: reply}
		writeJSON(w, http.StatusOK, <-reply)
	}
}

func Draw(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, rm, err := teamAndRoom(h, r)
		if err != nil {
			writeError(w, err)
			return
		}

		reply := do(rm, engine.Command{Type: engine.CmdDraw, Team: team})
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}

		for _, ev := range reply.Events {
			if ev.Type == engine.EvtCardDrawn {
				writeJSON(w, http.StatusOK, ev.Character)
				return
			}
		}
		http.Error(w, "draw produced no card", http.StatusInternalServerError)
	}
}

func Assign(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Team string `json:"team"`
			Slot *int   `json:"slot"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errBadRequest)
			return
		}
		team, ok := engine.ParseTeam(req.Team)
		if !ok {
			writeError(w, errBadRequest)
			return
		}

		rm, err := getRoom(h, chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, err)
			return
		}

		slot := -1
		if req.Slot != nil {
			slot = *req.Slot
		}
		reply := do(rm, engine.Command{Type: engine.CmdAssign, Team: team, Slot: slot})
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func Skip(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, rm, err := teamAndRoom(h, r)
		if err != nil {
			writeError(w, err)
			return
		}

		reply := do(rm, engine.Command{Type: engine.CmdSkip, Team: team})
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func Swap(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Team  string `json:"team"`
			Skip  bool   `json:"skip"`
			Slot1 *int   `json:"slot1"`
			Slot2 *int   `json:"slot2"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, errBadRequest)
			return
		}
		team, ok := engine.ParseTeam(req.Team)
		if !ok {
			writeError(w, errBadRequest)
			return
		}

		rm, err := getRoom(h, chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, err)
			return
		}

		cmd := engine.Command{Type: engine.CmdSwap, Team: team, SkipSwap: req.Skip, Slot1: -1, Slot2: -1}
		if req.Slot1 != nil {
			cmd.Slot1 = *req.Slot1
		}
		if req.Slot2 != nil {
			cmd.Slot2 = *req.Slot2
		}

		reply := do(rm, cmd)
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func Result(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, err := getRoom(h, chi.URLParam(r, "code"))
		if err != nil {
			writeError(w, err)
			return
		}

		reply := do(rm, engine.Command{Type: engine.CmdResolve})
		if reply.Err != nil {
			writeError(w, reply.Err)
			return
		}
		writeJSON(w, http.StatusOK, reply.Result)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func getRoom(h *hub.Hub, code string) (*room.Room, error) {
	reply := make(chan *room.Room, 1)
	h.Inbox() <- hub.GetRoom{Code: code, Reply: reply}
	rm := <-reply
	if rm == nil {
		return nil, ErrRoomNotFound
	}
	return rm, nil
}

// teamAndRoom handles the common {team}-body + {code}-path shape shared by
// draw and skip.
func teamAndRoom(h *hub.Hub, r *http.Request) (engine.Team, *room.Room, error) {
	var req struct {
		Team string `json:"team"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil, errBadRequest
	}
	team, ok := engine.ParseTeam(req.Team)
	if !ok {
		return "", nil, errBadRequest
	}
	rm, err := getRoom(h, chi.URLParam(r, "code"))
	if err != nil {
		return "", nil, err
	}
	return team, rm, nil
}

func do(rm *room.Room, cmd engine.Command) room.Reply {
	reply := make(chan room.Reply, 1)
	rm.Inbox() <- room.Do{Cmd: cmd, Reply: reply}
	return <-reply
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var errBadRequest = errors.New("bad request")

// writeError maps each engine error to a stable status, keeping the codes
// polling clients already expect.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrNotDrafting),
		errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrAssignFirst),
		errors.Is(err, engine.ErrSkipUnavailable),
		errors.Is(err, engine.ErrNotSwapPhase),
		errors.Is(err, engine.ErrAlreadyDecided),
		errors.Is(err, engine.ErrGameNotFinished):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrRoomFull),
		errors.Is(err, engine.ErrNoCardPending),
		errors.Is(err, engine.ErrSlotFilled),
		errors.Is(err, engine.ErrInvalidSlot),
		errors.Is(err, engine.ErrInvalidSwap),
		errors.Is(err, engine.ErrNoCharactersLeft),
		errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

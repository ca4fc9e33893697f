package types

import "github.com/ymori/draft-duel-backend/internal/engine"

// ClientMessage is a draft action sent over the websocket. Slot fields are
// pointers so an absent slot is distinguishable from slot 0.
type ClientMessage struct {
	Type  string `json:"type"` // "Draw" | "Assign" | "Skip" | "Swap"
	Team  string `json:"team,omitempty"`
	Slot  *int   `json:"slot,omitempty"`
	Skip  bool   `json:"skip,omitempty"`
	Slot1 *int   `json:"slot1,omitempty"`
	Slot2 *int   `json:"slot2,omitempty"`
}

type ServerMessage struct {
	Type    string       `json:"type"` // "StateSnapshot" | "Error"
	Version int          `json:"version,omitempty"`
	View    *engine.View `json:"view,omitempty"`
	Error   string       `json:"error,omitempty"`
}

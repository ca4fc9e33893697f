package engine

import "github.com/ymori/draft-duel-backend/internal/catalog"

// View is the read-only projection one team polls for. Nil roster entries
// are empty slots.
type View struct {
	Phase          Phase                `json:"phase"`
	YourTurn       bool                 `json:"your_turn"`
	YourTeam       []*catalog.Character `json:"your_team"`
	OpponentJoined bool                 `json:"opponent_joined"`
	SkipAvailable  bool                 `json:"skip_available"`
	Players        map[Team]string      `json:"players"`
	SwapDone       map[Team]bool        `json:"swap_done"`
}

// ViewFor projects s for one team. It copies the roster slice so transport
// marshaling never aliases actor-owned memory.
func ViewFor(s State, team Team) View {
	roster := make([]*catalog.Character, NumSlots)
	copy(roster, s.Rosters[team])

	players := map[Team]string{TeamA: s.Players[TeamA], TeamB: s.Players[TeamB]}
	swapDone := map[Team]bool{TeamA: s.SwapDone[TeamA], TeamB: s.SwapDone[TeamB]}

	return View{
		Phase:          s.Phase,
		YourTurn:       s.Current == team && s.Phase == PhaseDraft,
		YourTeam:       roster,
		OpponentJoined: s.Joined[TeamA] && s.Joined[TeamB],
		SkipAvailable:  s.Skips[team] > 0,
		Players:        players,
		SwapDone:       swapDone,
	}
}

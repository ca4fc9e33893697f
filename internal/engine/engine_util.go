package engine

import "github.com/ymori/draft-duel-backend/internal/catalog"

func NewEmptyState() State {
	return State{
		Players: map[Team]string{},
		Joined:  map[Team]bool{},
		Rosters: map[Team][]*catalog.Character{
			TeamA: make([]*catalog.Character, NumSlots),
			TeamB: make([]*catalog.Character, NumSlots),
		},
		Phase:    PhaseWaiting,
		Used:     map[string]bool{},
		Skips:    map[Team]int{TeamA: 1, TeamB: 1},
		SwapDone: map[Team]bool{TeamA: false, TeamB: false},
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// Reduce replays an event stream over an empty room. Events carry the drawn
// characters and the resolution, so no catalog or rng is needed here.
func Reduce(events []Event) State {
	s := NewEmptyState()
	for _, event := range events {
		switch event.Type {
		case EvtPlayerJoined:
			s.Players[event.Team] = event.Username
			s.Joined[event.Team] = true
		case EvtDraftStarted:
			s.Phase = PhaseDraft
			s.Current = TeamA
		case EvtCardDrawn:
			s.Pending = event.Character
		case EvtCardAssigned:
			s.Rosters[event.Team][event.Slot] = event.Character
			s.Used[event.Character.Name] = true
			s.Pending = nil
		case EvtTurnAdvanced:
			s.Current = s.Current.Other()
		case EvtDrawSkipped:
			s.Pending = nil
			s.Skips[event.Team]--
		case EvtSwapPhaseEntered:
			s.Phase = PhaseSwap
			s.Current = ""
			s.SwapDone = map[Team]bool{TeamA: false, TeamB: false}
		case EvtSlotsSwapped:
			roster := s.Rosters[event.Team]
			roster[event.Slot1], roster[event.Slot2] = roster[event.Slot2], roster[event.Slot1]
		case EvtSwapDecided:
			s.SwapDone[event.Team] = true
			if s.SwapDone[TeamA] && s.SwapDone[TeamB] {
				s.Phase = PhaseResult
			}
		case EvtGameResolved:
			s.Result = event.Result
		}
	}
	return s
}

package engine

import (
	"errors"
	"math/rand"

	"github.com/ymori/draft-duel-backend/internal/catalog"
)

var ErrRoomFull = errors.New("room full")
var ErrNotDrafting = errors.New("not drafting")
var ErrNotYourTurn = errors.New("not your turn")
var ErrAssignFirst = errors.New("assign first")
var ErrNoCardPending = errors.New("no card pending")
var ErrSlotFilled = errors.New("slot already filled")
var ErrInvalidSlot = errors.New("invalid slot")
var ErrSkipUnavailable = errors.New("skip already used")
var ErrNotSwapPhase = errors.New("not swap phase")
var ErrAlreadyDecided = errors.New("already decided")
var ErrInvalidSwap = errors.New("invalid swap")
var ErrNoCharactersLeft = errors.New("no characters left")
var ErrGameNotFinished = errors.New("game not finished")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// ParseTeam validates a wire-level team string.
func ParseTeam(s string) (Team, bool) {
	switch s {
	case "A":
		return TeamA, true
	case "B":
		return TeamB, true
	default:
		return "", false
	}
}

type Phase string

const (
	PhaseWaiting Phase = "WAITING"
	PhaseDraft   Phase = "DRAFT"
	PhaseSwap    Phase = "SWAP_OPTIONAL"
	PhaseResult  Phase = "RESULT"
)

// State is the full mutable state of one room. It is owned by a single room
// actor; Apply never mutates it on a failed command.
type State struct {
	Players  map[Team]string               `json:"players"`
	Joined   map[Team]bool                 `json:"joined"`
	Rosters  map[Team][]*catalog.Character `json:"teams"`
	Phase    Phase                         `json:"phase"`
	Current  Team                          `json:"current_team,omitempty"`
	Pending  *catalog.Character            `json:"pending_draw,omitempty"`
	Used     map[string]bool               `json:"used"`
	Skips    map[Team]int                  `json:"skips"`
	SwapDone map[Team]bool                 `json:"swap_done"`
	Result   *Result                       `json:"result,omitempty"`
}

type CommandType string

const (
	CmdJoin    CommandType = "Join"
	CmdDraw    CommandType = "Draw"
	CmdAssign  CommandType = "Assign"
	CmdSkip    CommandType = "Skip"
	CmdSwap    CommandType = "Swap"
	CmdResolve CommandType = "Resolve"
)

// Command is one player action. Slot1/Slot2 use -1 for "not provided" so the
// range check doubles as a presence check.
type Command struct {
	Type     CommandType
	Team     Team
	Username string
	Slot     int
	SkipSwap bool
	Slot1    int
	Slot2    int
}

type EventType string

const (
	EvtPlayerJoined     EventType = "PlayerJoined"
	EvtDraftStarted     EventType = "DraftStarted"
	EvtCardDrawn        EventType = "CardDrawn"
	EvtCardAssigned     EventType = "CardAssigned"
	EvtTurnAdvanced     EventType = "TurnAdvanced"
	EvtDrawSkipped      EventType = "DrawSkipped"
	EvtSlotsSwapped     EventType = "SlotsSwapped"
	EvtSwapDecided      EventType = "SwapDecided"
	EvtSwapPhaseEntered EventType = "SwapPhaseEntered"
	EvtGameResolved     EventType = "GameResolved"
)

// Event carries enough data that Reduce can rebuild the state from the
// event stream alone.
type Event struct {
	Type      EventType
	Team      Team
	Username  string
	Character *catalog.Character
	Slot      int
	Slot1     int
	Slot2     int
	Result    *Result
}

// Engine applies commands against room state. The catalog supplies the draw
// pool; the rng drives draw selection and resolution jitter and is injected
// so tests can seed it.
type Engine struct {
	catalog []catalog.Character
	rng     *rand.Rand
}

func New(cat []catalog.Character, rng *rand.Rand) *Engine {
	return &Engine{catalog: cat, rng: rng}
}

// Apply validates cmd against s and, on success, returns the emitted events
// and the updated state. On error the returned state is s unchanged.
func (e *Engine) Apply(s State, cmd Command) ([]Event, State, error) {
	switch cmd.Type {
	case CmdJoin:
		return e.applyJoin(s, cmd)
	case CmdDraw:
		return e.applyDraw(s, cmd)
	case CmdAssign:
		return e.applyAssign(s, cmd)
	case CmdSkip:
		return e.applySkip(s, cmd)
	case CmdSwap:
		return e.applySwap(s, cmd)
	case CmdResolve:
		return e.applyResolve(s)
	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func (e *Engine) applyJoin(s State, cmd Command) ([]Event, State, error) {
	newState := s

	if !s.Joined[TeamA] {
		newState.Players[TeamA] = cmd.Username
		newState.Joined[TeamA] = true
		return []Event{
			{Type: EvtPlayerJoined, Team: TeamA, Username: cmd.Username},
		}, newState, nil
	}

	if !s.Joined[TeamB] {
		newState.Players[TeamB] = cmd.Username
		newState.Joined[TeamB] = true
		newState.Phase = PhaseDraft
		newState.Current = TeamA
		return []Event{
			{Type: EvtPlayerJoined, Team: TeamB, Username: cmd.Username},
			{Type: EvtDraftStarted},
		}, newState, nil
	}

	return nil, s, ErrRoomFull
}

func (e *Engine) applyDraw(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseDraft {
		return nil, s, ErrNotDrafting
	}
	if s.Current != cmd.Team {
		return nil, s, ErrNotYourTurn
	}
	if s.Pending != nil {
		return nil, s, ErrAssignFirst
	}

	available := make([]*catalog.Character, 0, len(e.catalog))
	for i := range e.catalog {
		if !s.Used[e.catalog[i].Name] {
			available = append(available, &e.catalog[i])
		}
	}
	if len(available) == 0 {
		return nil, s, ErrNoCharactersLeft
	}

	char := available[e.rng.Intn(len(available))]
	newState := s
	newState.Pending = char

	return []Event{
		{Type: EvtCardDrawn, Team: cmd.Team, Character: char},
	}, newState, nil
}

func (e *Engine) applyAssign(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseDraft {
		return nil, s, ErrNotDrafting
	}
	if s.Current != cmd.Team {
		return nil, s, ErrNotYourTurn
	}
	if s.Pending == nil {
		return nil, s, ErrNoCardPending
	}
	if cmd.Slot < 0 || cmd.Slot >= NumSlots {
		return nil, s, ErrInvalidSlot
	}
	if s.Rosters[cmd.Team][cmd.Slot] != nil {
		return nil, s, ErrSlotFilled
	}

	newState := s
	char := s.Pending
	newState.Rosters[cmd.Team][cmd.Slot] = char
	newState.Used[char.Name] = true
	newState.Pending = nil
	newState.Current = cmd.Team.Other()

	events := []Event{
		{Type: EvtCardAssigned, Team: cmd.Team, Slot: cmd.Slot, Character: char},
		{Type: EvtTurnAdvanced},
	}

	if rosterFull(newState.Rosters[TeamA]) && rosterFull(newState.Rosters[TeamB]) {
		newState.Phase = PhaseSwap
		newState.Current = ""
		newState.SwapDone = map[Team]bool{TeamA: false, TeamB: false}
		events = append(events, Event{Type: EvtSwapPhaseEntered})
	}
	return events, newState, nil
}

func (e *Engine) applySkip(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseDraft {
		return nil, s, ErrNotDrafting
	}
	if s.Current != cmd.Team {
		return nil, s, ErrNotYourTurn
	}
	if s.Skips[cmd.Team] == 0 {
		return nil, s, ErrSkipUnavailable
	}
	if s.Pending == nil {
		return nil, s, ErrNoCardPending
	}

	newState := s
	newState.Pending = nil
	newState.Skips[cmd.Team] = s.Skips[cmd.Team] - 1

	// Turn does not advance; the same team draws again.
	return []Event{
		{Type: EvtDrawSkipped, Team: cmd.Team},
	}, newState, nil
}

func (e *Engine) applySwap(s State, cmd Command) ([]Event, State, error) {
	if s.Phase != PhaseSwap {
		return nil, s, ErrNotSwapPhase
	}
	if s.SwapDone[cmd.Team] {
		return nil, s, ErrAlreadyDecided
	}

	var events []Event
	newState := s

	if !cmd.SkipSwap {
		if cmd.Slot1 < 0 || cmd.Slot1 >= NumSlots ||
			cmd.Slot2 < 0 || cmd.Slot2 >= NumSlots ||
			cmd.Slot1 == cmd.Slot2 {
			return nil, s, ErrInvalidSwap
		}
		roster := newState.Rosters[cmd.Team]
		roster[cmd.Slot1], roster[cmd.Slot2] = roster[cmd.Slot2], roster[cmd.Slot1]
		events = append(events, Event{Type: EvtSlotsSwapped, Team: cmd.Team, Slot1: cmd.Slot1, Slot2: cmd.Slot2})
	}

	newState.SwapDone[cmd.Team] = true
	events = append(events, Event{Type: EvtSwapDecided, Team: cmd.Team})

	if newState.SwapDone[TeamA] && newState.SwapDone[TeamB] {
		newState.Phase = PhaseResult
	}
	return events, newState, nil
}

func (e *Engine) applyResolve(s State) ([]Event, State, error) {
	if s.Phase != PhaseResult {
		return nil, s, ErrGameNotFinished
	}
	// Resolution is memoized: the first call rolls the jitter, every later
	// call sees the same outcome.
	if s.Result != nil {
		return nil, s, nil
	}

	newState := s
	result := e.resolve(s)
	newState.Result = result

	return []Event{
		{Type: EvtGameResolved, Result: result},
	}, newState, nil
}

func rosterFull(roster []*catalog.Character) bool {
	for _, c := range roster {
		if c == nil {
			return false
		}
	}
	return true
}

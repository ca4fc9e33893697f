package room

import (
	"context"

	"github.com/ymori/draft-duel-backend/internal/engine"
)

type Msg interface{ isRoomMsg() }

// Do submits a player command and waits for the outcome on Reply.
type Do struct {
	Cmd   engine.Command
	Reply chan Reply
}

func (Do) isRoomMsg() {}

// Reply carries the result of one command. Events are the events the engine
// emitted; Result is set once the game has been resolved.
type Reply struct {
	Events []engine.Event
	Result *engine.Result
	Err    error
}

// GetView asks for one team's read-only projection.
type GetView struct {
	Team  engine.Team
	Reply chan engine.View
}

func (GetView) isRoomMsg() {}

// Watch registers a client for per-team snapshot pushes.
type Watch struct {
	ClientID string
	Team     engine.Team
	Outbox   chan Snapshot
}

func (Watch) isRoomMsg() {}

type Unwatch struct{ ClientID string }

func (Unwatch) isRoomMsg() {}

type Shutdown struct{}

func (Shutdown) isRoomMsg() {}

// Inspect reflects internal state without data races. Test-only.
type Inspect struct {
	Reply chan Internals
}

func (Inspect) isRoomMsg() {}

type Internals struct {
	Version     int
	NumWatchers int
	Phase       engine.Phase
}

// Snapshot is what watchers receive after every successful mutation. The
// view is computed inside the actor so it never aliases live state.
type Snapshot struct {
	Version int
	View    engine.View
}

type watcher struct {
	team   engine.Team
	outbox chan Snapshot
}

// Room serializes all operations on one game through a single goroutine,
// so two clients can never race on the same state.
type Room struct {
	inbox    chan Msg
	eng      *engine.Engine
	state    engine.State
	version  int
	watchers map[string]watcher
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, eng *engine.Engine) *Room {
	ctx, cancel := context.WithCancel(parent)

	r := &Room{
		inbox:    make(chan Msg, 64),
		eng:      eng,
		state:    engine.NewEmptyState(),
		version:  0,
		watchers: make(map[string]watcher),
		ctx:      ctx,
		cancel:   cancel,
	}

	go r.loop()
	return r
}

func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Do:
				events, newState, err := r.eng.Apply(r.state, msg.Cmd)
				if err != nil {
					msg.Reply <- Reply{Err: err}
					break
				}
				r.state = newState
				if len(events) > 0 {
					r.version++
					r.broadcast()
				}
				msg.Reply <- Reply{Events: events, Result: r.state.Result}

			case GetView:
				msg.Reply <- engine.ViewFor(r.state, msg.Team)

			case Watch:
				r.watchers[msg.ClientID] = watcher{team: msg.Team, outbox: msg.Outbox}
				msg.Outbox <- Snapshot{Version: r.version, View: engine.ViewFor(r.state, msg.Team)}

			case Unwatch:
				if w, ok := r.watchers[msg.ClientID]; ok {
					close(w.outbox)
					delete(r.watchers, msg.ClientID)
				}

			case Inspect:
				msg.Reply <- Internals{
					Version:     r.version,
					NumWatchers: len(r.watchers),
					Phase:       r.state.Phase,
				}

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) shutdown() {
	for id, w := range r.watchers {
		close(w.outbox)
		delete(r.watchers, id)
	}
	r.cancel()
}

func (r *Room) broadcast() {
	for id, w := range r.watchers {
		snap := Snapshot{Version: r.version, View: engine.ViewFor(r.state, w.team)}
		select {
		case w.outbox <- snap:
			// ok
		default:
			// Watcher is slow/full - drop them.
			close(w.outbox)
			delete(r.watchers, id)
		}
	}
}

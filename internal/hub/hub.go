package hub

import (
	"context"

	"github.com/ymori/draft-duel-backend/internal/engine"
	"github.com/ymori/draft-duel-backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

type CreateRoom struct {
	Code  string
	Reply chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room
}

// EnsureRoom creates the room if the code is unclaimed, else returns the
// existing one.
type EnsureRoom struct {
	Code  string
	Reply chan *room.Room
}

type RemoveRoom struct {
	Code string
}

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (EnsureRoom) isHubMsg()  {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Hub owns the room-code -> room registry. All access goes through the
// inbox so concurrent create/lookup never race.
//
// newEngine builds a fresh engine per room: a rand.Rand source is not safe
// for concurrent use, so each room actor rolls its own.
type Hub struct {
	inbox     chan HubMsg
	newEngine func() *engine.Engine
	rooms     map[string]*room.Room
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewHub(parent context.Context, newEngine func() *engine.Engine) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:     make(chan HubMsg, 64),
		newEngine: newEngine,
		rooms:     make(map[string]*room.Room),
		ctx:       ctx,
		cancel:    cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}
				rm := room.New(h.ctx, h.newEngine())
				h.rooms[msg.Code] = rm
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code] // May be nil

			case EnsureRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					msg.Reply <- rm
					break
				}

				rm := room.New(h.ctx, h.newEngine())
				h.rooms[msg.Code] = rm
				msg.Reply <- rm

			case RemoveRoom:
				if rm := h.rooms[msg.Code]; rm != nil {
					rm.Inbox() <- room.Shutdown{}
				}
				delete(h.rooms, msg.Code)

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Inbox() <- room.Shutdown{}
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}

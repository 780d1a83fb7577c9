package realtime

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Event is the JSON envelope for everything pushed over a socket.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// sessionConn is the slice of the websocket connection the hub needs.
// *websocket.Conn satisfies it; tests substitute a recorder.
type sessionConn interface {
	WriteJSON(v interface{}) error
}

// Session is one live socket for one identity. An identity may hold
// several sessions (multiple tabs/devices).
type Session struct {
	ID     string
	UserID uint

	conn sessionConn
	mu   sync.Mutex // serializes writes to conn
}

func (s *Session) send(event string, data interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(Event{Event: event, Data: data})
}

// UserRoom names the private delivery channel of an identity
func UserRoom(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// ChatRoom names the shared channel of a chat
func ChatRoom(chatID uint) string {
	return fmt.Sprintf("chat:%d", chatID)
}

// Hub is the process-wide registry of live sessions and the rooms they
// joined. All delivery is best-effort: a failed write is logged and the
// session is otherwise left alone.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session            // session id -> session
	rooms    map[string]map[string]*Session // room -> session id -> session
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		rooms:    make(map[string]map[string]*Session),
	}
}

// DefaultHub is the shared hub the HTTP controllers emit into.
var DefaultHub = NewHub()

// Register creates a session for the identity and joins its private room.
func (h *Hub) Register(userID uint, conn sessionConn) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	h.Join(s, UserRoom(userID))
	return s
}

// Unregister drops the session from every room and from the registry.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, s.ID)
	for room, members := range h.rooms {
		delete(members, s.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) Join(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Session)
		h.rooms[room] = members
	}
	members[s.ID] = s
}

func (h *Hub) Leave(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[room]; ok {
		delete(members, s.ID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// snapshot copies the member list so writes happen outside the hub lock.
func (h *Hub) snapshot(room string) []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[room]
	out := make([]*Session, 0, len(members))
	for _, s := range members {
		out = append(out, s)
	}
	return out
}

// Emit pushes an event to every session in the room.
func (h *Hub) Emit(room, event string, data interface{}) {
	for _, s := range h.snapshot(room) {
		if err := s.send(event, data); err != nil {
			slog.Warn("realtime emit failed", "room", room, "event", event, "session", s.ID, "err", err)
		}
	}
}

// EmitExcept pushes an event to every session in the room but the given one.
func (h *Hub) EmitExcept(room string, except *Session, event string, data interface{}) {
	for _, s := range h.snapshot(room) {
		if except != nil && s.ID == except.ID {
			continue
		}
		if err := s.send(event, data); err != nil {
			slog.Warn("realtime emit failed", "room", room, "event", event, "session", s.ID, "err", err)
		}
	}
}

// EmitToUser pushes an event to every session of one identity.
func (h *Hub) EmitToUser(userID uint, event string, data interface{}) {
	h.Emit(UserRoom(userID), event, data)
}

// Broadcast pushes an event to every connected session.
func (h *Hub) Broadcast(event string, data interface{}) {
	h.mu.RLock()
	all := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		all = append(all, s)
	}
	h.mu.RUnlock()

	for _, s := range all {
		if err := s.send(event, data); err != nil {
			slog.Warn("realtime broadcast failed", "event", event, "session", s.ID, "err", err)
		}
	}
}

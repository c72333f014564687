package service

import (
	"errors"
	"sync"

	"github.com/waveroom/waveroom-go/internal/registry"
	"github.com/waveroom/waveroom-go/internal/session"
	"github.com/waveroom/waveroom-go/internal/types"
)

var ErrNoSession = errors.New("no active session for room")

// SessionService owns at most one live session store per room and bridges
// store events onto the websocket subscribers.
type SessionService struct {
	registry *registry.Registry
	ws       *WebSocketService
	cfg      session.Config

	mu     sync.Mutex
	stores map[string]*session.Store
}

func NewSessionService(reg *registry.Registry, ws *WebSocketService, cfg session.Config) *SessionService {
	return &SessionService{
		registry: reg,
		ws:       ws,
		cfg:      cfg,
		stores:   make(map[string]*session.Store),
	}
}

// Bind ensures a live session for roomID; an empty id selects the first
// room in the registry. Binding a room that already has a session returns
// the current snapshot without restarting its timers.
func (s *SessionService) Bind(roomID string) (session.State, error) {
	room, err := s.registry.Room(roomID)
	if err != nil {
		return session.State{}, err
	}

	s.mu.Lock()
	store, ok := s.stores[room.ID]
	if ok {
		s.mu.Unlock()
		return store.Snapshot(), nil
	}

	store = session.NewStore(session.StoreOptions{
		Rooms:        s.registry.Rooms(),
		Participants: s.registry.ParticipantsFor,
		Messages:     s.registry.SeedMessagesFor,
		MessageBank:  s.registry.MessageBank(),
		Glyphs:       s.registry.Glyphs(),
		LocalUserID:  s.registry.LocalUserID(),
		Config:       s.cfg,
		Notify:       s.notify,
	})
	s.stores[room.ID] = store
	s.mu.Unlock()

	state, err := store.BindRoom(room.ID)
	if err != nil {
		s.mu.Lock()
		delete(s.stores, room.ID)
		s.mu.Unlock()
		return session.State{}, err
	}

	return state, nil
}

// Release tears the room's session down and forgets it.
func (s *SessionService) Release(roomID string) error {
	s.mu.Lock()
	store, ok := s.stores[roomID]
	delete(s.stores, roomID)
	s.mu.Unlock()

	if !ok {
		return ErrNoSession
	}

	store.Teardown()
	return nil
}

func (s *SessionService) Snapshot(roomID string) (session.State, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.State{}, err
	}
	return store.Snapshot(), nil
}

func (s *SessionService) ToggleMute(roomID string) (session.State, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.State{}, err
	}
	return store.ToggleMute(), nil
}

func (s *SessionService) ToggleChat(roomID string) (session.State, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.State{}, err
	}
	return store.ToggleChat(), nil
}

func (s *SessionService) ToggleLive(roomID string) (session.State, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.State{}, err
	}
	return store.ToggleLive(), nil
}

// SendMessage posts text as the local user. The bool reports whether the
// message was appended; blank text is dropped without error.
func (s *SessionService) SendMessage(roomID string, text string) (session.ChatMessage, bool, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.ChatMessage{}, false, err
	}

	msg, ok := store.SendMessage(text)
	return msg, ok, nil
}

// React spawns a reaction token at a participant's on-screen anchor.
func (s *SessionService) React(roomID string, participantID string, anchor session.Position) (session.ReactionToken, bool, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.ReactionToken{}, false, err
	}

	token, ok := store.OnUserClick(participantID, anchor)
	return token, ok, nil
}

// ReactRandom spawns a random reaction token.
func (s *SessionService) ReactRandom(roomID string) (session.ReactionToken, bool, error) {
	store, err := s.store(roomID)
	if err != nil {
		return session.ReactionToken{}, false, err
	}

	token, ok := store.SpawnRandomReaction()
	return token, ok, nil
}

// TeardownAll releases every live session. Called on shutdown.
func (s *SessionService) TeardownAll() {
	s.mu.Lock()
	stores := make([]*session.Store, 0, len(s.stores))
	for id, store := range s.stores {
		stores = append(stores, store)
		delete(s.stores, id)
	}
	s.mu.Unlock()

	for _, store := range stores {
		store.Teardown()
	}
}

func (s *SessionService) store(roomID string) (*session.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[roomID]
	if !ok {
		return nil, ErrNoSession
	}

	return store, nil
}

func (s *SessionService) notify(msg types.Message) {
	if s.ws == nil {
		return
	}

	s.ws.NotifyRoomClient(msg)

	// The rooms list view only cares about a room going live or a session
	// starting.
	if msg.Kind == types.MessageKindLiveToggled || msg.Kind == types.MessageKindSessionBound {
		s.ws.NotifyRoomsListClients(msg)
	}
}

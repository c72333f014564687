package session

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/waveroom/waveroom-go/internal/types"
)

// StoreOptions carries the injected collaborators for a Store. The room and
// participant registries, the message bank and the glyph bank are immutable
// configuration; the store copies whatever it keeps. Notify may be nil for
// pure library use.
type StoreOptions struct {
	Rooms        []Room
	Participants func(roomID string) []Participant
	Messages     func(roomID string) []ChatMessage
	MessageBank  []string
	Glyphs       []string
	LocalUserID  string
	Config       Config
	Scheduler    Scheduler
	Clock        Clock
	Rand         *rand.Rand
	Notify       func(types.Message)
}

// Store is the single owner of one room view's session state. It composes
// the room resolver, the speaker and chat simulators and the reaction pool,
// and serializes every mutation behind one mutex so timer callbacks and
// intent handlers run atomically with respect to each other. The relative
// firing order of the independent timers is unspecified.
type Store struct {
	opts  StoreOptions
	cfg   Config
	sched Scheduler
	clock Clock

	mu            sync.Mutex
	rng           *rand.Rand
	state         State
	bound         bool
	gen           uint64
	cancelSpeaker CancelFunc
	cancelChat    CancelFunc
	cancelAmbient CancelFunc
	reactions     *ReactionPool
}

func NewStore(opts StoreOptions) *Store {
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Store{
		opts:  opts,
		cfg:   opts.Config.withDefaults(),
		sched: opts.Scheduler,
		clock: opts.Clock,
		rng:   rng,
	}
}

// BindRoom resolves roomID ("" selects the first room) and replaces the
// session state wholesale. Every timer belonging to a previously bound room
// is cancelled before any new one starts, so at most one timer family per
// simulator is ever live. On a resolution failure the current state is left
// untouched and the error is returned for the caller to redirect on.
func (s *Store) BindRoom(roomID string) (State, error) {
	room, err := ResolveRoom(roomID, s.opts.Rooms)
	if err != nil {
		return State{}, err
	}

	s.mu.Lock()
	s.stopLocked()
	s.gen++
	gen := s.gen

	var participants []Participant
	if s.opts.Participants != nil {
		participants = append(participants, s.opts.Participants(room.ID)...)
	}
	var messages []ChatMessage
	if s.opts.Messages != nil {
		messages = append(messages, s.opts.Messages(room.ID)...)
	}

	s.state = State{
		Room:         room,
		Participants: participants,
		Messages:     messages,
		IsChatOpen:   true,
		IsLive:       room.IsLive,
	}
	s.bound = true

	s.reactions = NewReactionPool(s.sched, s.clock, s.cfg.ReactionTTL, s.opts.Glyphs, s.childRNGLocked(), func(token ReactionToken) {
		s.notify(types.Message{
			Kind:   types.MessageKindReactionExpired,
			Value:  types.ReactionExpired{ID: token.ID},
			RoomID: room.ID,
		})
	})

	s.cancelSpeaker = StartSpeakerSim(s.sched, s.cfg.SpeakerInterval, s.childRNGLocked(),
		func() []string { return s.speakerIDs(gen) },
		func(id string) { s.toggleTalking(gen, id) },
	)
	s.startChatLocked(gen)
	s.startAmbientLocked(room.ID)

	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(types.Message{
		Kind:   types.MessageKindSessionBound,
		Value:  types.SessionBound{RoomID: room.ID, RoomName: room.Name, IsLive: room.IsLive},
		RoomID: room.ID,
	})

	return snap, nil
}

// ToggleMute flips the local mute flag and mirrors it onto the local
// participant. Other participants are never touched.
func (s *Store) ToggleMute() State {
	s.mu.Lock()
	if !s.bound {
		defer s.mu.Unlock()
		return s.snapshotLocked()
	}

	s.state.IsMuted = !s.state.IsMuted
	for i := range s.state.Participants {
		if s.state.Participants[i].ID == s.opts.LocalUserID {
			s.state.Participants[i].Muted = s.state.IsMuted
			break
		}
	}

	muted := s.state.IsMuted
	roomID := s.state.Room.ID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(types.Message{Kind: types.MessageKindMuteToggled, Value: types.MuteToggled{Muted: muted}, RoomID: roomID})

	return snap
}

// SendMessage appends a message authored by the local user. Blank or
// whitespace-only text is a silent no-op, not an error.
func (s *Store) SendMessage(text string) (ChatMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return ChatMessage{}, false
	}

	s.mu.Lock()
	if !s.bound {
		s.mu.Unlock()
		return ChatMessage{}, false
	}

	msg := ChatMessage{
		ID:         newID(),
		AuthorID:   s.opts.LocalUserID,
		Text:       text,
		Timestamp:  s.clock.Now().UnixMilli(),
		OriginSelf: true,
	}
	s.state.Messages = append(s.state.Messages, msg)
	roomID := s.state.Room.ID
	s.mu.Unlock()

	s.notify(types.Message{
		Kind: types.MessageKindMessageCreated,
		Value: types.MessageCreated{
			ID:         msg.ID,
			AuthorID:   msg.AuthorID,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			OriginSelf: true,
		},
		RoomID: roomID,
	})

	return msg, true
}

// ToggleChat flips the chat surface and drives the chat simulator with it:
// opening starts a fresh timer, closing cancels the running one.
func (s *Store) ToggleChat() State {
	s.mu.Lock()
	if !s.bound {
		defer s.mu.Unlock()
		return s.snapshotLocked()
	}

	s.state.IsChatOpen = !s.state.IsChatOpen
	if s.state.IsChatOpen {
		s.startChatLocked(s.gen)
	} else if s.cancelChat != nil {
		s.cancelChat()
		s.cancelChat = nil
	}

	open := s.state.IsChatOpen
	roomID := s.state.Room.ID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(types.Message{Kind: types.MessageKindChatToggled, Value: types.ChatToggled{Open: open}, RoomID: roomID})

	return snap
}

// ToggleLive flips the broadcasting flag. Pure state, no simulator coupling.
func (s *Store) ToggleLive() State {
	s.mu.Lock()
	if !s.bound {
		defer s.mu.Unlock()
		return s.snapshotLocked()
	}

	s.state.IsLive = !s.state.IsLive
	live := s.state.IsLive
	roomID := s.state.Room.ID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(types.Message{Kind: types.MessageKindLiveToggled, Value: types.LiveToggled{Live: live}, RoomID: roomID})

	return snap
}

// OnUserClick spawns a reaction token at the participant's on-screen anchor
// as an observable side effect. Session state itself is not mutated; unknown
// participant ids are ignored.
func (s *Store) OnUserClick(participantID string, anchor Position) (ReactionToken, bool) {
	s.mu.Lock()
	if !s.bound {
		s.mu.Unlock()
		return ReactionToken{}, false
	}

	known := false
	for _, p := range s.state.Participants {
		if p.ID == participantID {
			known = true
			break
		}
	}
	pool := s.reactions
	roomID := s.state.Room.ID
	s.mu.Unlock()

	if !known || pool == nil {
		return ReactionToken{}, false
	}

	token := pool.Spawn("", anchor)
	if token.ID == "" {
		return ReactionToken{}, false
	}

	s.notifyReaction(token, roomID)

	return token, true
}

// SpawnRandomReaction spawns a random-glyph token at a random position.
func (s *Store) SpawnRandomReaction() (ReactionToken, bool) {
	s.mu.Lock()
	if !s.bound {
		s.mu.Unlock()
		return ReactionToken{}, false
	}
	pool := s.reactions
	roomID := s.state.Room.ID
	s.mu.Unlock()

	if pool == nil {
		return ReactionToken{}, false
	}

	token := pool.SpawnRandom()
	if token.ID == "" {
		return ReactionToken{}, false
	}

	s.notifyReaction(token, roomID)

	return token, true
}

// Teardown cancels the speaker simulator, the chat simulator and the
// reaction pool, in that order, and discards all state. Tolerates components
// that were never started.
func (s *Store) Teardown() {
	s.mu.Lock()
	s.stopLocked()
	s.gen++
	s.bound = false
	s.state = State{}
	s.mu.Unlock()
}

// Bound reports whether a room is currently bound.
func (s *Store) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Snapshot returns a deep copy of the current session state for rendering.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Participants = append([]Participant(nil), s.state.Participants...)
	snap.Messages = append([]ChatMessage(nil), s.state.Messages...)
	if s.reactions != nil {
		snap.Reactions = s.reactions.Tokens()
	}
	// isLive is a session-local override of the registry value.
	snap.Room.IsLive = s.state.IsLive

	return snap
}

func (s *Store) startChatLocked(gen uint64) {
	if !s.state.IsChatOpen {
		return
	}

	s.cancelChat = StartChatSim(s.sched, s.cfg.ChatInterval, s.clock, s.childRNGLocked(),
		func() []string { return s.eligibleAuthors(gen) },
		s.opts.MessageBank,
		func(msg ChatMessage) { s.appendSynthetic(gen, msg) },
	)
}

func (s *Store) startAmbientLocked(roomID string) {
	if s.cfg.AmbientReactionInterval <= 0 {
		return
	}

	pool := s.reactions
	t := startTicker(s.sched, s.cfg.AmbientReactionInterval, func() {
		token := pool.SpawnRandom()
		if token.ID == "" {
			return
		}
		s.notifyReaction(token, roomID)
	})
	s.cancelAmbient = t.Stop
}

func (s *Store) stopLocked() {
	if s.cancelSpeaker != nil {
		s.cancelSpeaker()
		s.cancelSpeaker = nil
	}
	if s.cancelChat != nil {
		s.cancelChat()
		s.cancelChat = nil
	}
	if s.cancelAmbient != nil {
		s.cancelAmbient()
		s.cancelAmbient = nil
	}
	if s.reactions != nil {
		s.reactions.Teardown()
		s.reactions = nil
	}
}

// speakerIDs re-reads the participant list so simulators never hold a stale
// speaker set across ticks. The gen guard makes a tick that raced a rebind
// or teardown harmless.
func (s *Store) speakerIDs(gen uint64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound || s.gen != gen {
		return nil
	}

	ids := make([]string, 0, len(s.state.Participants))
	for _, p := range s.state.Participants {
		if p.Role == RoleSpeaker {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

func (s *Store) eligibleAuthors(gen uint64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound || s.gen != gen {
		return nil
	}

	ids := make([]string, 0, len(s.state.Participants))
	for _, p := range s.state.Participants {
		if p.Role == RoleSpeaker && p.ID != s.opts.LocalUserID {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

func (s *Store) toggleTalking(gen uint64, id string) {
	s.mu.Lock()
	if !s.bound || s.gen != gen {
		s.mu.Unlock()
		return
	}

	roomID := s.state.Room.ID
	for i := range s.state.Participants {
		p := &s.state.Participants[i]
		if p.ID == id && p.Role == RoleSpeaker {
			p.Talking = !p.Talking
			talking := p.Talking
			s.mu.Unlock()
			s.notify(types.Message{
				Kind:   types.MessageKindSpeakerToggled,
				Value:  types.SpeakerToggled{ID: id, Talking: talking},
				RoomID: roomID,
			})
			return
		}
	}
	s.mu.Unlock()
}

func (s *Store) appendSynthetic(gen uint64, msg ChatMessage) {
	s.mu.Lock()
	if !s.bound || s.gen != gen || !s.state.IsChatOpen {
		s.mu.Unlock()
		return
	}

	s.state.Messages = append(s.state.Messages, msg)
	roomID := s.state.Room.ID
	s.mu.Unlock()

	s.notify(types.Message{
		Kind: types.MessageKindMessageCreated,
		Value: types.MessageCreated{
			ID:         msg.ID,
			AuthorID:   msg.AuthorID,
			Text:       msg.Text,
			Timestamp:  msg.Timestamp,
			OriginSelf: false,
		},
		RoomID: roomID,
	})
}

func (s *Store) notifyReaction(token ReactionToken, roomID string) {
	s.notify(types.Message{
		Kind: types.MessageKindReactionAdded,
		Value: types.ReactionAdded{
			ID:    token.ID,
			Glyph: token.Glyph,
			X:     token.Position.X,
			Y:     token.Position.Y,
			TTL:   token.TTL,
		},
		RoomID: roomID,
	})
}

func (s *Store) childRNGLocked() *rand.Rand {
	return rand.New(rand.NewSource(s.rng.Int63()))
}

func (s *Store) notify(msg types.Message) {
	if s.opts.Notify == nil {
		return
	}
	s.opts.Notify(msg)
}

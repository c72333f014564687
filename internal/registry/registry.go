// Package registry holds the immutable room and participant data the
// session core is configured with. A Registry is built once at startup and
// shared by reference; accessors hand out copies so callers can never mutate
// the seed.
package registry

import (
	"time"

	"github.com/waveroom/waveroom-go/internal/session"
)

type Registry struct {
	rooms        []session.Room
	participants []session.Participant
	seedMessages []seedMessage
	messageBank  []string
	glyphs       []string
	localUserID  string
}

type seedMessage struct {
	authorID string
	text     string
	age      time.Duration
}

// Rooms returns the room registry in listing order.
func (r *Registry) Rooms() []session.Room {
	return append([]session.Room(nil), r.rooms...)
}

// Room looks a room up by id.
func (r *Registry) Room(id string) (session.Room, error) {
	return session.ResolveRoom(id, r.rooms)
}

// ParticipantsFor returns the participant seed for a room.
func (r *Registry) ParticipantsFor(roomID string) []session.Participant {
	return append([]session.Participant(nil), r.participants...)
}

// SeedMessagesFor returns the chat backlog a room view starts with,
// timestamped relative to now.
func (r *Registry) SeedMessagesFor(roomID string) []session.ChatMessage {
	now := time.Now()
	messages := make([]session.ChatMessage, 0, len(r.seedMessages))
	for i, seed := range r.seedMessages {
		messages = append(messages, session.ChatMessage{
			ID:         seedMessageID(roomID, i),
			AuthorID:   seed.authorID,
			Text:       seed.text,
			Timestamp:  now.Add(-seed.age).UnixMilli(),
			OriginSelf: seed.authorID == r.localUserID,
		})
	}

	return messages
}

// MessageBank returns the synthetic chat strings the chat simulator draws
// from.
func (r *Registry) MessageBank() []string {
	return append([]string(nil), r.messageBank...)
}

// Glyphs returns the reaction glyph bank.
func (r *Registry) Glyphs() []string {
	return append([]string(nil), r.glyphs...)
}

// LocalUserID returns the id of the local user within the participant seed.
func (r *Registry) LocalUserID() string {
	return r.localUserID
}

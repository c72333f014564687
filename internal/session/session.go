// Package session implements the live-room session core: room resolution,
// participant and chat state, the background simulators that keep a room
// looking alive, and the ephemeral reaction tokens spawned on interaction.
package session

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSpeaker  Role = "speaker"
	RoleListener Role = "listener"
)

type Participant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Role    Role   `json:"role"`
	Talking bool   `json:"talking"`
	Muted   bool   `json:"muted"`
}

type Room struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Participants int    `json:"participants"`
	IsLive       bool   `json:"is_live"`
}

type ChatMessage struct {
	ID         string `json:"id"`
	AuthorID   string `json:"author_id"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	OriginSelf bool   `json:"origin_self"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ReactionToken struct {
	ID        string   `json:"id"`
	Glyph     string   `json:"glyph"`
	Position  Position `json:"position"`
	SpawnedAt int64    `json:"spawned_at"`
	TTL       int64    `json:"ttl"`
}

// State is the aggregate owned by a Store while one room view is mounted.
// Snapshots hand out copies; the store's internal state is never aliased.
type State struct {
	Room         Room            `json:"room"`
	Participants []Participant   `json:"participants"`
	Messages     []ChatMessage   `json:"messages"`
	Reactions    []ReactionToken `json:"reactions"`
	IsMuted      bool            `json:"is_muted"`
	IsChatOpen   bool            `json:"is_chat_open"`
	IsLive       bool            `json:"is_live"`
}

const (
	DefaultSpeakerInterval = 4 * time.Second
	DefaultChatInterval    = 12 * time.Second
	DefaultReactionTTL     = 3 * time.Second
)

// Config tunes the simulator timers. Zero values fall back to the defaults;
// AmbientReactionInterval is opt-in and leaves the ambient drizzle off when
// zero.
type Config struct {
	SpeakerInterval         time.Duration
	ChatInterval            time.Duration
	ReactionTTL             time.Duration
	AmbientReactionInterval time.Duration
}

func newID() string {
	return uuid.NewString()
}

func (c Config) withDefaults() Config {
	if c.SpeakerInterval <= 0 {
		c.SpeakerInterval = DefaultSpeakerInterval
	}
	if c.ChatInterval <= 0 {
		c.ChatInterval = DefaultChatInterval
	}
	if c.ReactionTTL <= 0 {
		c.ReactionTTL = DefaultReactionTTL
	}
	return c
}

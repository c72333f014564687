package types

const (
	MessageKindSessionBound    = "session_bound"
	MessageKindSpeakerToggled  = "speaker_toggled"
	MessageKindMessageCreated  = "message_created"
	MessageKindMuteToggled     = "mute_toggled"
	MessageKindChatToggled     = "chat_toggled"
	MessageKindLiveToggled     = "live_toggled"
	MessageKindReactionAdded   = "reaction_added"
	MessageKindReactionExpired = "reaction_expired"
)

type SessionBound struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	IsLive   bool   `json:"is_live"`
}

type SpeakerToggled struct {
	ID      string `json:"id"`
	Talking bool   `json:"talking"`
}

type MessageCreated struct {
	ID         string `json:"id"`
	AuthorID   string `json:"author_id"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
	OriginSelf bool   `json:"origin_self"`
}

type MuteToggled struct {
	Muted bool `json:"muted"`
}

type ChatToggled struct {
	Open bool `json:"open"`
}

type LiveToggled struct {
	Live bool `json:"live"`
}

type ReactionAdded struct {
	ID    string  `json:"id"`
	Glyph string  `json:"glyph"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	TTL   int64   `json:"ttl"`
}

type ReactionExpired struct {
	ID string `json:"id"`
}

type Message struct {
	Kind   string `json:"kind"`
	Value  any    `json:"value"`
	RoomID string `json:"-"`
}

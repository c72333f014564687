package registry

import (
	"fmt"
	"time"

	"github.com/waveroom/waveroom-go/internal/session"
)

// Default returns the registry shipped with the product mocks: six rooms,
// ten participants (the last one being the local user) and the banks the
// simulators draw from.
func Default() *Registry {
	return &Registry{
		rooms: []session.Room{
			{ID: "1", Name: "Music & Discussion", Description: "Late night vibes with the community", Participants: 247, IsLive: true},
			{ID: "2", Name: "Tech Talk", Description: "Discussing the latest in technology and coding", Participants: 189, IsLive: true},
			{ID: "3", Name: "Business Networking", Description: "Connect with professionals and entrepreneurs", Participants: 142, IsLive: true},
			{ID: "4", Name: "Gaming Community", Description: "Chat about your favorite games and strategies", Participants: 285, IsLive: false},
			{ID: "5", Name: "Mindfulness & Wellness", Description: "Share wellness tips and mindfulness practices", Participants: 102, IsLive: false},
			{ID: "6", Name: "Creative Arts", Description: "For artists, musicians, and creative minds", Participants: 156, IsLive: true},
		},
		participants: []session.Participant{
			{ID: "1", Name: "Alex M.", Avatar: avatarURL("1535713875002-d1d0cf377fde"), Role: session.RoleSpeaker, Talking: true},
			{ID: "2", Name: "Sophia R.", Avatar: avatarURL("1494790108377-be9c29b29330"), Role: session.RoleSpeaker, Muted: true},
			{ID: "3", Name: "David T.", Avatar: avatarURL("1507003211169-0a1dd7228f2d"), Role: session.RoleSpeaker},
			{ID: "4", Name: "Emma L.", Avatar: avatarURL("1573496359142-b8d87734a5a2"), Role: session.RoleSpeaker, Muted: true},
			{ID: "5", Name: "Jamie", Avatar: avatarURL("1567532939604-b6b5b0db2604"), Role: session.RoleListener},
			{ID: "6", Name: "Mike", Avatar: avatarURL("1568602471122-7832951cc4c5"), Role: session.RoleListener},
			{ID: "7", Name: "Sarah", Avatar: avatarURL("1548142813-c348350df52b"), Role: session.RoleListener},
			{ID: "8", Name: "John", Avatar: avatarURL("1570295999919-56ceb5ecca61"), Role: session.RoleListener},
			{ID: "9", Name: "Lisa", Avatar: avatarURL("1438761681033-6461ffad8d80"), Role: session.RoleListener},
			{ID: "10", Name: "You", Avatar: avatarURL("1603415526960-f7e0328c63b1"), Role: session.RoleListener},
		},
		seedMessages: []seedMessage{
			{authorID: "1", text: "Love how this track transitions from low energy to high!", age: 3 * time.Minute},
			{authorID: "10", text: "Absolutely! The melody is so catchy", age: 2 * time.Minute},
			{authorID: "2", text: "Can we talk about those vocals? 🔥", age: 5 * time.Second},
		},
		messageBank: []string{
			"This beat is amazing! 🎵",
			"Who's the artist again?",
			"I'm loving the vibe here tonight",
			"The audio quality is perfect 👌",
			"Can we get more bass? 🔊",
			"This reminds me of that concert last month",
			"Should we take this discussion deeper?",
			"I could listen to this all day",
			"Perfect for late night coding sessions",
			"Anyone else feeling the energy? ✨",
		},
		glyphs:      []string{"❤️", "🔥", "👏", "✨", "🎵", "🎧", "🎉"},
		localUserID: "10",
	}
}

func avatarURL(photoID string) string {
	return fmt.Sprintf("https://images.unsplash.com/photo-%s?w=150&h=150&fit=crop&crop=face", photoID)
}

func seedMessageID(roomID string, index int) string {
	return fmt.Sprintf("seed-%s-%d", roomID, index+1)
}

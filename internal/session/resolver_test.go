package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveroom/waveroom-go/internal/session"
)

func TestResolveRoom(t *testing.T) {
	rooms := []session.Room{
		{ID: "1", Name: "Music & Discussion", IsLive: true},
		{ID: "2", Name: "Tech Talk", IsLive: false},
	}

	t.Run("empty id selects the first room in registry order", func(t *testing.T) {
		room, err := session.ResolveRoom("", rooms)

		require.NoError(t, err)
		assert.Equal(t, "1", room.ID)
		assert.True(t, room.IsLive)
	})

	t.Run("known id resolves that room", func(t *testing.T) {
		room, err := session.ResolveRoom("2", rooms)

		require.NoError(t, err)
		assert.Equal(t, "2", room.ID)
		assert.False(t, room.IsLive)
	})

	t.Run("unknown id signals room not found", func(t *testing.T) {
		_, err := session.ResolveRoom("9", rooms)

		assert.ErrorIs(t, err, session.ErrRoomNotFound)
	})

	t.Run("empty id with empty registry signals no rooms available", func(t *testing.T) {
		_, err := session.ResolveRoom("", nil)

		assert.ErrorIs(t, err, session.ErrNoRoomsAvailable)
	})

	t.Run("does not mutate the registry", func(t *testing.T) {
		room, err := session.ResolveRoom("1", rooms)

		require.NoError(t, err)
		room.Name = "renamed"
		assert.Equal(t, "Music & Discussion", rooms[0].Name)
	})
}

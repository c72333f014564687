package session

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrNoRoomsAvailable = errors.New("no rooms available")
)

// ResolveRoom picks the active room for a view. An empty roomID selects the
// first room in registry order. Pure lookup; redirect behavior on failure
// belongs to the caller.
func ResolveRoom(roomID string, rooms []Room) (Room, error) {
	if roomID == "" {
		if len(rooms) == 0 {
			return Room{}, ErrNoRoomsAvailable
		}
		return rooms[0], nil
	}

	for _, room := range rooms {
		if room.ID == roomID {
			return room, nil
		}
	}

	return Room{}, ErrRoomNotFound
}

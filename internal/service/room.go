package service

import (
	"github.com/waveroom/waveroom-go/internal/registry"
	"github.com/waveroom/waveroom-go/internal/session"
)

type RoomService struct {
	Registry *registry.Registry
}

func NewRoomService(reg *registry.Registry) *RoomService {
	return &RoomService{Registry: reg}
}

func (s *RoomService) GetRooms() []session.Room {
	return s.Registry.Rooms()
}

func (s *RoomService) GetRoom(roomID string) (session.Room, error) {
	return s.Registry.Room(roomID)
}

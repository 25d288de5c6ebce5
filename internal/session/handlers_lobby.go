package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"dicesoccer/internal/game/match"
	"dicesoccer/internal/session/message"
)

// handleJoinRoom entra numa sala (ou a cria). No roteador da partida, só aceita
// a mesma sala, o que torna o re-join idempotente.
func handleJoinRoom(h *GameHandler, handle *Handle, payload json.RawMessage) error {
	var req message.JoinRoomRequest
	if err := decode(payload, &req); err != nil {
		return err
	}
	roomID := strings.TrimSpace(req.RoomID)

	if handle.InRoom() && handle.RoomID != roomID {
		return fmt.Errorf("%w: %s", match.ErrAlreadyInRoom, handle.RoomID)
	}

	res, err := h.registry.JoinOrCreate(roomID, strings.TrimSpace(req.DisplayName), handle.ConnID)
	if err != nil {
		if errors.Is(err, match.ErrRoomFull) {
			msg, msgErr := message.CreateGameFull(roomID)
			h.sendTo(handle.ConnID, msg, msgErr)
		}
		return err
	}

	handle.RoomID, handle.Role = roomID, res.Role
	s := res.Session
	if !res.Rejoined {
		s.AnnounceJoin(res.Role, res.Reclaimed)
	}
	h.logger.Info("player joined", "room", roomID, "role", res.Role, "conn", handle.ConnID,
		"created", res.Created, "reclaimed", res.Reclaimed)

	msg, err := message.CreateRoleAssignment(res.Role, s.Name(match.Role1), s.Name(match.Role2))
	h.sendTo(handle.ConnID, msg, err)
	h.pushState(s)
	h.publishRooms()
	return nil
}

// registerLobbyHandlers popula o roteador com os comandos de quem ainda não está numa sala.
func (h *GameHandler) registerLobbyHandlers() {
	h.lobbyRouter[message.TypeJoinRoom] = handleJoinRoom
}

func decode(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

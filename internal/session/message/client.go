package message

// Isso aqui são as mensagens que vão no sentido servidor -> cliente
import (
	"dicesoccer/internal/game/match"
	"dicesoccer/internal/network"
)

// Tipos enviados pelo servidor.
const (
	TypeRoleAssignment = "roleAssignment"
	TypeStateUpdate    = "stateUpdate"
	TypeActiveRooms    = "activeRoomsList"
	TypeGameFull       = "gameFull"
	TypeGameEnd        = "gameEnd"
	TypeGoToSetup      = "goToSetup"
	TypeGoToLobby      = "goToLobby"
	TypeActionRejected = "actionRejected"
)

type RoleAssignmentPayload struct {
	Role        match.Role `json:"role"`
	Player1Name string     `json:"player1Name"`
	Player2Name string     `json:"player2Name"`
}

type ActiveRoomsPayload struct {
	Rooms []string `json:"rooms"`
}

type GameFullPayload struct {
	RoomID string `json:"roomId"`
}

type GameEndPayload struct {
	Message string `json:"message"`
}

// RejectionPayload define a estrutura de uma intenção rejeitada.
type RejectionPayload struct {
	Kind    match.Kind `json:"kind"`
	Message string     `json:"message"`
}

func CreateRoleAssignment(role match.Role, player1Name, player2Name string) (network.Message, error) {
	return network.NewMessage(TypeRoleAssignment, RoleAssignmentPayload{
		Role:        role,
		Player1Name: player1Name,
		Player2Name: player2Name,
	})
}

func CreateStateUpdate(view match.StateView) (network.Message, error) {
	return network.NewMessage(TypeStateUpdate, view)
}

// CreateGoToSetup força o cliente de volta para a tela de tácticas.
func CreateGoToSetup(view match.StateView) (network.Message, error) {
	return network.NewMessage(TypeGoToSetup, view)
}

func CreateActiveRooms(rooms []string) (network.Message, error) {
	if rooms == nil {
		rooms = []string{}
	}
	return network.NewMessage(TypeActiveRooms, ActiveRoomsPayload{Rooms: rooms})
}

func CreateGameFull(roomID string) (network.Message, error) {
	return network.NewMessage(TypeGameFull, GameFullPayload{RoomID: roomID})
}

func CreateGameEnd(text string) (network.Message, error) {
	return network.NewMessage(TypeGameEnd, GameEndPayload{Message: text})
}

func CreateGoToLobby() (network.Message, error) {
	return network.NewMessage(TypeGoToLobby, nil)
}

func CreateRejection(kind match.Kind, text string) (network.Message, error) {
	return network.NewMessage(TypeActionRejected, RejectionPayload{Kind: kind, Message: text})
}

package message

// Mensagens no sentido cliente -> servidor.
import "dicesoccer/internal/game/match"

const (
	TypeJoinRoom        = "joinRoom"
	TypeSetup           = "setup"
	TypeRollAction      = "rollAction"
	TypeReadyForNewGame = "playerReadyForNewGame"
	TypeLeaveRoom       = "leaveRoom"
)

type JoinRoomRequest struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type SetupRequest struct {
	Role match.Role `json:"role"`
	D    int        `json:"d"`
	M    int        `json:"m"`
	A    int        `json:"a"`
}

func (r SetupRequest) Tactics() match.Tactics {
	return match.Tactics{D: r.D, M: r.M, A: r.A}
}

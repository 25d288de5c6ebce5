package match

import "errors"

// Erros de validação de intenção.
var (
	ErrInvalidTactics = errors.New("invalid tactics")
	ErrRoleMismatch   = errors.New("role does not match your seat")
	ErrInvalidRoom    = errors.New("invalid room id")
)

// Erros de ocupação e de ciclo de vida da sala.
var (
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotInRoom     = errors.New("not seated in a room")
	ErrAlreadyInRoom = errors.New("already seated in another room")
)

// Erros de ações fora de hora.
var (
	ErrSetupIncomplete = errors.New("wait for both players to lock their tactics")
	ErrGameOver        = errors.New("the match is over")
	ErrTacticsLocked   = errors.New("tactics are locked for this match")
	ErrAlreadyRolled   = errors.New("you already rolled in this confrontation")
	ErrNoActiveRole    = errors.New("you have no active role in this zone")
	ErrNotGameOver     = errors.New("the match is still in progress")
)

// Kind classifica uma rejeição para o cliente.
type Kind string

const (
	KindValidation    Kind = "ValidationError"
	KindRoomFull      Kind = "RoomFull"
	KindIllegalAction Kind = "IllegalAction"
)

// KindOf mapeia um erro do domínio para a sua categoria.
// Erros desconhecidos são tratados como ações ilegais.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrRoomFull):
		return KindRoomFull
	case errors.Is(err, ErrInvalidTactics),
		errors.Is(err, ErrRoleMismatch),
		errors.Is(err, ErrInvalidRoom):
		return KindValidation
	default:
		return KindIllegalAction
	}
}

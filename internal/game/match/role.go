package match

import "fmt"

// Role é a identidade estável de um jogador dentro da sala,
// independente da conexão que a ocupa.
type Role int

const (
	NoRole Role = iota
	Role1
	Role2
)

// Roles lista os dois papéis na ordem dos assentos.
var Roles = [2]Role{Role1, Role2}

func (r Role) Valid() bool {
	return r == Role1 || r == Role2
}

func (r Role) Opponent() Role {
	switch r {
	case Role1:
		return Role2
	case Role2:
		return Role1
	default:
		return NoRole
	}
}

func (r Role) String() string {
	if !r.Valid() {
		return "none"
	}
	return fmt.Sprintf("player%d", int(r))
}

func (r Role) index() int {
	return int(r) - 1
}

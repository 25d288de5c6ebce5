package session

import (
	"fmt"
	"slices"
	"strings"

	"dicesoccer/internal/game/match"
)

// graceTimers é a parte do gerente de abandono que o registro consulta ao resolver papéis.
type graceTimers interface {
	Pending(roomID string, role match.Role) bool
	Cancel(roomID string, role match.Role) bool
}

// JoinResult descreve como a conexão entrou na sala.
type JoinResult struct {
	Role    match.Role
	Session *match.Session

	Created   bool
	Reclaimed bool
	Rejoined  bool
}

// Registry é o dono do mapa de salas. Só é acessado pela goroutine do Hub.
type Registry struct {
	rooms     map[string]*match.Session
	maxPhases int
	timers    graceTimers
}

func NewRegistry(maxPhases int, timers graceTimers) *Registry {
	return &Registry{
		rooms:     make(map[string]*match.Session),
		maxPhases: maxPhases,
		timers:    timers,
	}
}

// JoinOrCreate resolve o papel da conexão na sala, criando a sala se preciso.
//
// Prioridade: a própria conexão já sentada (re-join idempotente), um assento
// com timer de graça pendente (reconexão), o primeiro assento livre.
// Sem nenhum deles a sala está cheia.
func (r *Registry) JoinOrCreate(roomID, displayName, connID string) (JoinResult, error) {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return JoinResult{}, match.ErrInvalidRoom
	}

	s, ok := r.rooms[roomID]
	created := false
	if !ok {
		s = match.NewSession(roomID, r.maxPhases)
		r.rooms[roomID] = s
		created = true
	}

	if role := s.RoleOf(connID); role.Valid() {
		s.Seat(role, connID, displayName)
		return JoinResult{Role: role, Session: s, Rejoined: true}, nil
	}

	for _, role := range match.Roles {
		if s.Player(role).Connected() || !r.timers.Pending(roomID, role) {
			continue
		}
		r.timers.Cancel(roomID, role)
		s.Seat(role, connID, displayName)
		s.AbandonedBy = match.NoRole
		return JoinResult{Role: role, Session: s, Reclaimed: true}, nil
	}

	if role := s.FirstEmpty(); role.Valid() {
		s.Seat(role, connID, displayName)
		return JoinResult{Role: role, Session: s, Created: created}, nil
	}

	return JoinResult{Session: s}, fmt.Errorf("join %s: %w", roomID, match.ErrRoomFull)
}

// Get retorna a sala, ou nil.
func (r *Registry) Get(roomID string) *match.Session {
	return r.rooms[roomID]
}

// ListJoinable é um retrato, em ordem, das salas com vaga.
func (r *Registry) ListJoinable() []string {
	rooms := make([]string, 0, len(r.rooms))
	for id, s := range r.rooms {
		if s.Occupancy() < 2 {
			rooms = append(rooms, id)
		}
	}
	slices.Sort(rooms)
	return rooms
}

// DestroyIfEmpty remove a sala quando ninguém ocupa os assentos.
func (r *Registry) DestroyIfEmpty(roomID string) bool {
	s, ok := r.rooms[roomID]
	if !ok || s.Occupancy() > 0 {
		return false
	}
	delete(r.rooms, roomID)
	return true
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

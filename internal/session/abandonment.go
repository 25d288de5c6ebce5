package session

import (
	"time"

	"dicesoccer/internal/game/match"
)

// DefaultGracePeriod é quanto tempo um assento fica reservado depois de uma queda.
const DefaultGracePeriod = 5 * time.Second

type graceKey struct {
	roomID string
	role   match.Role
}

type graceEntry struct {
	timer Timer
}

// Abandonment guarda os timers de reconexão, um por (sala, papel).
// Só é acessado pela goroutine do Hub.
type Abandonment struct {
	scheduler Scheduler
	grace     time.Duration
	timers    map[graceKey]*graceEntry
	onExpire  func(roomID string, role match.Role)
}

func NewAbandonment(scheduler Scheduler, grace time.Duration, onExpire func(roomID string, role match.Role)) *Abandonment {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Abandonment{
		scheduler: scheduler,
		grace:     grace,
		timers:    make(map[graceKey]*graceEntry),
		onExpire:  onExpire,
	}
}

// Arm inicia o período de graça do papel. Um timer anterior para a mesma chave é substituído.
func (a *Abandonment) Arm(roomID string, role match.Role) {
	key := graceKey{roomID: roomID, role: role}
	a.Cancel(roomID, role)

	entry := &graceEntry{}
	entry.timer = a.scheduler.AfterFunc(a.grace, func() { a.fire(key, entry) })
	a.timers[key] = entry
}

func (a *Abandonment) fire(key graceKey, entry *graceEntry) {
	// O timer pode ter disparado depois de ser cancelado ou substituído.
	if a.timers[key] != entry {
		return
	}
	delete(a.timers, key)
	a.onExpire(key.roomID, key.role)
}

// Cancel para o timer do papel. Cancelar um timer inexistente, já disparado
// ou já cancelado não faz nada. Retorna true se havia um timer pendente.
func (a *Abandonment) Cancel(roomID string, role match.Role) bool {
	key := graceKey{roomID: roomID, role: role}
	entry, ok := a.timers[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(a.timers, key)
	return true
}

// Pending indica se o papel está dentro do período de graça.
func (a *Abandonment) Pending(roomID string, role match.Role) bool {
	_, ok := a.timers[graceKey{roomID: roomID, role: role}]
	return ok
}

// CancelRoom cancela todos os timers da sala.
func (a *Abandonment) CancelRoom(roomID string) {
	for _, r := range match.Roles {
		a.Cancel(roomID, r)
	}
}

// Len retorna quantos timers estão pendentes.
func (a *Abandonment) Len() int {
	return len(a.timers)
}

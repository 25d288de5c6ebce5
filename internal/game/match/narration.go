package match

import "fmt"

// AnnounceJoin atualiza a narração depois que r ocupou um assento.
func (s *Session) AnnounceJoin(r Role, reconnected bool) {
	if s.Occupancy() < 2 {
		s.StatusMessage = fmt.Sprintf("Connected as %s. Waiting for an opponent.", s.Name(r))
		return
	}
	if s.SetupComplete || s.GameOver {
		s.StatusMessage = fmt.Sprintf("%s is back in the match.", s.Name(r))
		return
	}
	tag := ""
	if reconnected {
		tag = " (reconnected)"
	}
	s.StatusMessage = fmt.Sprintf("Both players connected!%s Spend your %d tactic points.", tag, TacticsPoints)
}

// AnnounceDisconnect narra a queda da conexão de r.
func (s *Session) AnnounceDisconnect(r Role) {
	s.StatusMessage = fmt.Sprintf("%s disconnected! Waiting for reconnection...", s.Name(r))
}

// AnnounceLeave narra a saída voluntária de r.
func (s *Session) AnnounceLeave(r Role) {
	s.StatusMessage = fmt.Sprintf("%s left! Waiting for an opponent...", s.Name(r))
}

package match

import "fmt"

// MarkRematchReady registra que r quer uma nova partida.
// A sessão é reiniciada quando o oponente também está pronto ou foi quem abandonou.
// Retorna true quando o reinício aconteceu.
func (s *Session) MarkRematchReady(r Role) (bool, error) {
	if !r.Valid() {
		return false, ErrRoleMismatch
	}
	if !s.GameOver {
		return false, ErrNotGameOver
	}

	s.ReadyForRematch[r.index()] = true
	opp := r.Opponent()

	if !s.ReadyForRematch[opp.index()] && s.AbandonedBy != opp {
		s.StatusMessage = fmt.Sprintf("%s is ready! Waiting for %s to start a new match...", s.Name(r), s.Name(opp))
		return false, nil
	}

	// Reset limpa as flags de prontidão e o AbandonedBy.
	s.Reset()
	return true, nil
}

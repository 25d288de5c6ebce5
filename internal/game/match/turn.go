package match

import (
	"fmt"

	"dicesoccer/internal/game/dice"
)

// RollStep diz o que uma intenção de rolagem aceita produziu.
type RollStep int

const (
	// StepFirstRoll: a primeira das duas rolagens foi registrada.
	StepFirstRoll RollStep = iota + 1
	// StepResolved: a segunda rolagem chegou e a confrontação foi resolvida.
	StepResolved
	// StepConfirmed: o papel confirmou o avanço; falta o oponente.
	StepConfirmed
	// StepAlreadyConfirmed: confirmação repetida, nada mudou.
	StepAlreadyConfirmed
	// StepAdvanced: os dois confirmaram e as rolagens foram limpas.
	StepAdvanced
)

func (s RollStep) String() string {
	switch s {
	case StepFirstRoll:
		return "first_roll"
	case StepResolved:
		return "resolved"
	case StepConfirmed:
		return "confirmed"
	case StepAlreadyConfirmed:
		return "already_confirmed"
	case StepAdvanced:
		return "advanced"
	default:
		return "unknown"
	}
}

// SubmitRoll aplica uma intenção de rolagem do papel r.
//
// Enquanto as duas rolagens da confrontação anterior ainda estão na mesa,
// a intenção vale como confirmação de avanço em vez de nova rolagem.
// Rejeições não alteram a sessão.
func (s *Session) SubmitRoll(r Role, roller dice.Roller) (RollStep, error) {
	if !r.Valid() {
		return 0, ErrRoleMismatch
	}
	if !s.SetupComplete {
		return 0, ErrSetupIncomplete
	}
	if s.GameOver {
		return 0, ErrGameOver
	}
	if s.BothRolled() {
		return s.confirmAdvance(r), nil
	}
	if s.Pending[r.index()] != nil {
		return 0, ErrAlreadyRolled
	}
	if !s.ActiveIn(r) {
		return 0, ErrNoActiveRole
	}

	face := roller.D6()
	mod := s.Modifier(r)
	s.Pending[r.index()] = &RollResult{Face: face, Modifier: mod, Total: face + mod}

	if !s.BothRolled() {
		s.StatusMessage = fmt.Sprintf("Waiting for %s's roll...", s.Name(r.Opponent()))
		return StepFirstRoll, nil
	}

	s.resolve()
	return StepResolved, nil
}

func (s *Session) confirmAdvance(r Role) RollStep {
	if s.Confirmed[r.index()] {
		return StepAlreadyConfirmed
	}
	s.Confirmed[r.index()] = true

	if !s.Confirmed[r.Opponent().index()] {
		s.StatusMessage = fmt.Sprintf("%s is ready for the next confrontation. Waiting for %s...",
			s.Name(r), s.Name(r.Opponent()))
		return StepConfirmed
	}

	s.Pending = [2]*RollResult{}
	s.Confirmed = [2]bool{}
	s.Details = ""
	if s.Zone == Midfield {
		s.StatusMessage = "KICK OFF! Roll for the midfield battle."
	} else {
		s.StatusMessage = "READY! The next confrontation begins."
	}
	return StepAdvanced
}

// FirstRollNarration devolve a narração da primeira rolagem de r:
// a versão completa para quem rolou e a versão sem o valor para o oponente.
func (s *Session) FirstRollNarration(r Role) (actor, opponent string) {
	roll := s.Pending[r.index()]
	if roll == nil {
		return s.StatusMessage, s.StatusMessage
	}
	actor = fmt.Sprintf("%s rolled %d (+%d = %d). Waiting for %s's roll...",
		s.Name(r), roll.Face, roll.Modifier, roll.Total, s.Name(r.Opponent()))
	opponent = fmt.Sprintf("%s has rolled. Your turn, roll the dice!", s.Name(r))
	return actor, opponent
}

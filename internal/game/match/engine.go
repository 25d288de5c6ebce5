package match

import "fmt"

// Outcome é o resultado de uma confrontação resolvida.
type Outcome int

const (
	MidfieldTie Outcome = iota
	MidfieldWon
	AttackHeld
	AttackBroke
	AttackRepelled
	GoalRebound
	GoalScored
	GoalSaved
)

var outcomeNames = map[Outcome]string{
	MidfieldTie:    "midfield_tie",
	MidfieldWon:    "midfield_won",
	AttackHeld:     "attack_held",
	AttackBroke:    "attack_broke",
	AttackRepelled: "attack_repelled",
	GoalRebound:    "goal_rebound",
	GoalScored:     "goal_scored",
	GoalSaved:      "goal_saved",
}

func (o Outcome) String() string {
	if n, ok := outcomeNames[o]; ok {
		return n
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Tie indica um empate: ninguém avança e a confrontação é repetida.
func (o Outcome) Tie() bool {
	return o == MidfieldTie || o == AttackHeld || o == GoalRebound
}

// EndsPhase indica que a bola volta ao meio-campo e a fase avança.
func (o Outcome) EndsPhase() bool {
	return o == AttackRepelled || o == GoalScored || o == GoalSaved
}

// Decision é o veredito puro de uma confrontação.
type Decision struct {
	Outcome Outcome
	// Winner é NoRole em empates.
	Winner Role
}

// Decide aplica a tabela de transição da zona aos dois totais.
// É determinística: depende apenas da zona, do atacante e dos totais.
func Decide(zone Zone, attacker Role, total1, total2 int) Decision {
	// --- Etapa 1: quem tirou mais ---
	winner := NoRole
	switch {
	case total1 > total2:
		winner = Role1
	case total2 > total1:
		winner = Role2
	}

	// --- Etapa 2: o que a vitória significa na zona ---
	switch zone {
	case Attack:
		switch winner {
		case NoRole:
			return Decision{Outcome: AttackHeld}
		case attacker:
			return Decision{Outcome: AttackBroke, Winner: winner}
		default:
			return Decision{Outcome: AttackRepelled, Winner: winner}
		}
	case Goal:
		switch winner {
		case NoRole:
			return Decision{Outcome: GoalRebound}
		case attacker:
			return Decision{Outcome: GoalScored, Winner: winner}
		default:
			return Decision{Outcome: GoalSaved, Winner: winner}
		}
	default:
		if winner == NoRole {
			return Decision{Outcome: MidfieldTie}
		}
		return Decision{Outcome: MidfieldWon, Winner: winner}
	}
}

// Modifier é o bônus de táctica do papel na zona atual.
// Na grande área nenhum modificador se aplica.
func (s *Session) Modifier(r Role) int {
	p := s.Player(r)
	if p == nil {
		return 0
	}
	switch s.Zone {
	case Midfield:
		return p.Tactics.M
	case Attack:
		if r == s.Attacker {
			return p.Tactics.A
		}
		return p.Tactics.D
	default:
		return 0
	}
}

// resolve consome as duas rolagens pendentes e aplica a transição de zona.
// As rolagens continuam visíveis até as duas confirmações.
func (s *Session) resolve() Decision {
	total1, total2 := s.Pending[0].Total, s.Pending[1].Total
	d := Decide(s.Zone, s.Attacker, total1, total2)
	s.Details = s.headline()

	totalOf := func(r Role) int { return s.Pending[r.index()].Total }

	switch d.Outcome {
	case MidfieldWon:
		s.Zone = Attack
		s.Attacker, s.Defender = d.Winner, d.Winner.Opponent()
		s.StatusMessage = fmt.Sprintf("WINNER: %s (%d > %d). Now ATTACKING!",
			s.Name(d.Winner), totalOf(d.Winner), totalOf(d.Winner.Opponent()))

	case MidfieldTie:
		s.StatusMessage = "TIE: both sides roll again!"

	case AttackBroke:
		s.Zone = Goal
		s.StatusMessage = fmt.Sprintf("WINNER: %s (%d > %d). GOAL CHANCE!",
			s.Name(s.Attacker), totalOf(s.Attacker), totalOf(s.Defender))

	case AttackRepelled:
		s.StatusMessage = fmt.Sprintf("WINNER: %s (%d > %d). The ball goes back to midfield. Phase +1!",
			s.Name(s.Defender), totalOf(s.Defender), totalOf(s.Attacker))
		s.endPhase()

	case AttackHeld:
		s.StatusMessage = "TIE: the attacking side keeps possession. Roll again!"

	case GoalScored:
		s.Player(s.Attacker).Score++
		s.StatusMessage = fmt.Sprintf("GOAL for %s! The ball goes back to midfield. Phase +1!", s.Name(s.Attacker))
		s.endPhase()

	case GoalSaved:
		s.StatusMessage = fmt.Sprintf("SAVE by %s! The ball goes back to midfield. Phase +1!", s.Name(s.Defender))
		s.endPhase()

	case GoalRebound:
		s.StatusMessage = "TIE: the striker follows up the rebound! Roll again!"
	}
	return d
}

func (s *Session) headline() string {
	switch s.Zone {
	case Attack:
		return fmt.Sprintf("Confrontation result: %s Attack (A vs D):", s.Name(s.Attacker))
	case Goal:
		return "Confrontation result: Goal chance (unmodified):"
	default:
		return "Confrontation result: Midfield (M vs M):"
	}
}

func (s *Session) endPhase() {
	s.Phase++
	s.Zone = Midfield
	s.Attacker, s.Defender = NoRole, NoRole

	if s.Phase >= s.MaxPhases {
		s.finish()
	}
}

func (s *Session) finish() {
	s.GameOver = true
	s.StatusMessage = "FULL TIME! The match is over. " + s.Result()
}

// Result descreve o placar final.
func (s *Session) Result() string {
	p1, p2 := s.Players[0].Score, s.Players[1].Score
	switch w := s.Winner(); w {
	case NoRole:
		return fmt.Sprintf("It's a DRAW! (%d - %d)", p1, p2)
	default:
		return fmt.Sprintf("%s WINS! (%d - %d)", s.Name(w), s.Player(w).Score, s.Player(w.Opponent()).Score)
	}
}

package match

import "fmt"

// Zone é a posição da bola. Determina quem rola e o que significa vencer.
type Zone string

const (
	Midfield Zone = "midfield"
	Attack   Zone = "attack"
	Goal     Zone = "goal"
)

// DefaultMaxPhases é o número de fases de uma partida nas regras de referência.
const DefaultMaxPhases = 1

// AbandonmentWinScore é o placar atribuído ao vencedor por abandono.
const AbandonmentWinScore = 5

// RollResult é uma rolagem já registrada para a confrontação corrente.
type RollResult struct {
	Face     int
	Modifier int
	Total    int
}

type Player struct {
	// ConnID vazio significa assento livre.
	ConnID  string
	Name    string
	Tactics Tactics
	Score   int
}

func (p *Player) Connected() bool {
	return p.ConnID != ""
}

// Session é a cópia autoritativa de uma partida.
// Não é segura para uso concorrente: só é tocada pela goroutine do Hub.
type Session struct {
	ID        string
	MaxPhases int

	Players [2]Player

	Phase    int
	Zone     Zone
	Attacker Role
	Defender Role

	SetupComplete bool

	Pending   [2]*RollResult
	Confirmed [2]bool

	GameOver        bool
	AbandonedBy     Role
	ReadyForRematch [2]bool

	// Narração. Informativo, não faz parte do estado autoritativo.
	StatusMessage string
	Details       string
}

func NewSession(id string, maxPhases int) *Session {
	if maxPhases < 1 {
		maxPhases = DefaultMaxPhases
	}
	s := &Session{ID: id, MaxPhases: maxPhases}
	for _, r := range Roles {
		s.Player(r).Name = DefaultName(r)
	}
	s.clearMatch()
	s.StatusMessage = fmt.Sprintf("Waiting for players. Spend your %d tactic points.", TacticsPoints)
	return s
}

// DefaultName é o nome usado quando o jogador entra sem se identificar.
func DefaultName(r Role) string {
	return fmt.Sprintf("Player %d", int(r))
}

// Player retorna o assento do papel. Papéis inválidos retornam nil.
func (s *Session) Player(r Role) *Player {
	if !r.Valid() {
		return nil
	}
	return &s.Players[r.index()]
}

func (s *Session) Name(r Role) string {
	p := s.Player(r)
	if p == nil || p.Name == "" {
		return DefaultName(r)
	}
	return p.Name
}

// Occupancy conta os assentos ocupados por uma conexão.
func (s *Session) Occupancy() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].Connected() {
			n++
		}
	}
	return n
}

// RoleOf retorna o papel ocupado pela conexão, ou NoRole.
func (s *Session) RoleOf(connID string) Role {
	if connID == "" {
		return NoRole
	}
	for _, r := range Roles {
		if s.Player(r).ConnID == connID {
			return r
		}
	}
	return NoRole
}

// FirstEmpty retorna o primeiro assento livre, ou NoRole se a sala está cheia.
func (s *Session) FirstEmpty() Role {
	for _, r := range Roles {
		if !s.Player(r).Connected() {
			return r
		}
	}
	return NoRole
}

// Seat coloca a conexão no assento. Um nome vazio mantém o nome atual.
func (s *Session) Seat(r Role, connID, name string) {
	p := s.Player(r)
	if p == nil {
		return
	}
	p.ConnID = connID
	if name != "" {
		p.Name = name
	}
}

// Vacate libera o assento e devolve a conexão que o ocupava.
func (s *Session) Vacate(r Role) string {
	p := s.Player(r)
	if p == nil {
		return ""
	}
	old := p.ConnID
	p.ConnID = ""
	return old
}

// Reset volta a sessão para a fase de configuração,
// preservando nomes e assentos.
func (s *Session) Reset() {
	for i := range s.Players {
		s.Players[i].Tactics = Tactics{}
		s.Players[i].Score = 0
	}
	s.clearMatch()
	s.StatusMessage = fmt.Sprintf("New match. Spend your %d tactic points.", TacticsPoints)
}

func (s *Session) clearMatch() {
	s.Phase = 0
	s.Zone = Midfield
	s.Attacker, s.Defender = NoRole, NoRole
	s.SetupComplete = false
	s.Pending = [2]*RollResult{}
	s.Confirmed = [2]bool{}
	s.GameOver = false
	s.AbandonedBy = NoRole
	s.ReadyForRematch = [2]bool{}
	s.Details = ""
}

// SetTactics registra a táctica do papel. A sessão fica pronta quando as duas
// tácticas estão bloqueadas, e a partir daí elas não mudam mais.
func (s *Session) SetTactics(r Role, t Tactics) error {
	p := s.Player(r)
	if p == nil {
		return ErrRoleMismatch
	}
	if s.GameOver {
		return ErrGameOver
	}
	if s.SetupComplete {
		return ErrTacticsLocked
	}
	if err := t.Validate(); err != nil {
		return err
	}

	p.Tactics = t
	s.StatusMessage = fmt.Sprintf("%s locked their tactics.", s.Name(r))

	if s.Players[0].Tactics.Committed() && s.Players[1].Tactics.Committed() {
		s.SetupComplete = true
		s.StatusMessage = "Tactics locked! Both players ready. Roll the dice!"
	}
	return nil
}

// ActiveIn indica se o papel participa da confrontação na zona atual.
func (s *Session) ActiveIn(r Role) bool {
	if !r.Valid() {
		return false
	}
	if s.Zone == Midfield {
		return true
	}
	return r == s.Attacker || r == s.Defender
}

// DeclareAbandonment encerra a partida em favor do oponente de r.
// O placar é sobrescrito para 5-0. Retorna false se a partida já tinha acabado.
func (s *Session) DeclareAbandonment(r Role) bool {
	if s.GameOver || !r.Valid() {
		return false
	}
	winner := r.Opponent()

	s.GameOver = true
	s.AbandonedBy = r
	s.Player(winner).Score = AbandonmentWinScore
	s.Player(r).Score = 0
	s.StatusMessage = fmt.Sprintf("WIN BY FORFEIT! %s abandoned the match. %s wins.", s.Name(r), s.Name(winner))
	return true
}

// Winner retorna o papel com placar estritamente maior, ou NoRole em caso de empate.
func (s *Session) Winner() Role {
	p1, p2 := s.Players[0].Score, s.Players[1].Score
	switch {
	case p1 > p2:
		return Role1
	case p2 > p1:
		return Role2
	default:
		return NoRole
	}
}

// BothRolled indica se as duas rolagens da confrontação já estão registradas.
func (s *Session) BothRolled() bool {
	return s.Pending[0] != nil && s.Pending[1] != nil
}

package match

// RollView é a rolagem como um destinatário pode vê-la.
// Uma rolagem não revelada tem Rolled=true e valores zerados.
type RollView struct {
	Rolled   bool `json:"rolled"`
	Revealed bool `json:"revealed"`
	Face     int  `json:"face"`
	Modifier int  `json:"modifier"`
	Total    int  `json:"total"`
}

type PlayerView struct {
	Role             Role     `json:"role"`
	Name             string   `json:"name"`
	Connected        bool     `json:"connected"`
	Tactics          Tactics  `json:"tactics"`
	TacticsLocked    bool     `json:"tacticsLocked"`
	Score            int      `json:"score"`
	Roll             RollView `json:"roll"`
	ConfirmedAdvance bool     `json:"confirmedAdvance"`
	ReadyForRematch  bool     `json:"readyForRematch"`
}

// StateView é a projeção pública de uma Session. Não expõe IDs de conexão.
type StateView struct {
	RoomID        string        `json:"roomId"`
	Players       [2]PlayerView `json:"players"`
	Phase         int           `json:"phase"`
	MaxPhases     int           `json:"maxPhases"`
	Zone          Zone          `json:"zone"`
	Attacker      Role          `json:"attacker,omitempty"`
	Defender      Role          `json:"defender,omitempty"`
	SetupComplete bool          `json:"setupComplete"`
	Occupancy     int           `json:"occupancy"`
	GameOver      bool          `json:"gameOver"`
	AbandonedBy   Role          `json:"abandonedBy,omitempty"`
	StatusMessage string        `json:"statusMessage"`
	Details       string        `json:"details,omitempty"`
}

// Player retorna a visão do assento do papel.
func (v *StateView) Player(r Role) *PlayerView {
	if !r.Valid() {
		return nil
	}
	return &v.Players[r.index()]
}

// Project constrói a visão completa, sem censura.
func Project(s *Session) StateView {
	v := StateView{
		RoomID:        s.ID,
		Phase:         s.Phase,
		MaxPhases:     s.MaxPhases,
		Zone:          s.Zone,
		Attacker:      s.Attacker,
		Defender:      s.Defender,
		SetupComplete: s.SetupComplete,
		Occupancy:     s.Occupancy(),
		GameOver:      s.GameOver,
		AbandonedBy:   s.AbandonedBy,
		StatusMessage: s.StatusMessage,
		Details:       s.Details,
	}
	for _, r := range Roles {
		p := s.Player(r)
		pv := PlayerView{
			Role:             r,
			Name:             s.Name(r),
			Connected:        p.Connected(),
			Tactics:          p.Tactics,
			TacticsLocked:    p.Tactics.Committed(),
			Score:            p.Score,
			ConfirmedAdvance: s.Confirmed[r.index()],
			ReadyForRematch:  s.ReadyForRematch[r.index()],
		}
		if roll := s.Pending[r.index()]; roll != nil {
			pv.Roll = RollView{
				Rolled:   true,
				Revealed: true,
				Face:     roll.Face,
				Modifier: roll.Modifier,
				Total:    roll.Total,
			}
		}
		v.Players[r.index()] = pv
	}
	return v
}

// Censor constrói a visão completa e esconde a rolagem do papel hidden.
// Todos os outros campos ficam idênticos aos de Project.
func Censor(s *Session, hidden Role) StateView {
	v := Project(s)
	if pv := v.Player(hidden); pv != nil {
		pv.Roll = RollView{Rolled: pv.Roll.Rolled}
	}
	return v
}

// ViewFor é a visão que o papel viewer pode receber agora.
// A rolagem do oponente só aparece quando as duas estão na mesa ou a partida acabou.
func ViewFor(s *Session, viewer Role) StateView {
	if s.GameOver || s.BothRolled() {
		return Project(s)
	}
	if !viewer.Valid() {
		v := Censor(s, Role1)
		v.Players[Role2.index()].Roll = RollView{Rolled: v.Players[Role2.index()].Roll.Rolled}
		return v
	}
	return Censor(s, viewer.Opponent())
}

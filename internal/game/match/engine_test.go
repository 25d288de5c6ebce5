package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		zone     Zone
		attacker Role
		t1, t2   int
		want     Decision
	}{
		{name: "midfield role1", zone: Midfield, t1: 9, t2: 7, want: Decision{MidfieldWon, Role1}},
		{name: "midfield role2", zone: Midfield, t1: 4, t2: 8, want: Decision{MidfieldWon, Role2}},
		{name: "midfield tie", zone: Midfield, t1: 6, t2: 6, want: Decision{Outcome: MidfieldTie}},
		{name: "attack broke", zone: Attack, attacker: Role2, t1: 3, t2: 8, want: Decision{AttackBroke, Role2}},
		{name: "attack repelled", zone: Attack, attacker: Role1, t1: 4, t2: 9, want: Decision{AttackRepelled, Role2}},
		{name: "attack held", zone: Attack, attacker: Role1, t1: 5, t2: 5, want: Decision{Outcome: AttackHeld}},
		{name: "goal scored", zone: Goal, attacker: Role1, t1: 6, t2: 2, want: Decision{GoalScored, Role1}},
		{name: "goal saved", zone: Goal, attacker: Role1, t1: 1, t2: 2, want: Decision{GoalSaved, Role2}},
		{name: "goal rebound", zone: Goal, attacker: Role2, t1: 3, t2: 3, want: Decision{Outcome: GoalRebound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.zone, tt.attacker, tt.t1, tt.t2))
		})
	}
}

func TestDecide_TiesNeverProgress(t *testing.T) {
	for _, zone := range []Zone{Midfield, Attack, Goal} {
		for _, attacker := range Roles {
			for total := 1; total <= 12; total++ {
				d := Decide(zone, attacker, total, total)
				assert.True(t, d.Outcome.Tie(), "%s %d", zone, total)
				assert.False(t, d.Outcome.EndsPhase())
				assert.Equal(t, NoRole, d.Winner)
			}
		}
	}
}

func TestDecide_HigherTotalWins(t *testing.T) {
	for _, zone := range []Zone{Midfield, Attack, Goal} {
		for _, attacker := range Roles {
			for t1 := 1; t1 <= 12; t1++ {
				for t2 := 1; t2 <= 12; t2++ {
					if t1 == t2 {
						continue
					}
					d := Decide(zone, attacker, t1, t2)
					want := Role1
					if t2 > t1 {
						want = Role2
					}
					assert.Equal(t, want, d.Winner)

					// Simetria: trocar os totais e o atacante espelha o vencedor.
					mirror := Decide(zone, attacker.Opponent(), t2, t1)
					assert.Equal(t, want.Opponent(), mirror.Winner)
					assert.Equal(t, d.Outcome, mirror.Outcome)
				}
			}
		}
	}
}

func TestModifier(t *testing.T) {
	s := newReadySession(t, DefaultMaxPhases)

	assert.Equal(t, 5, s.Modifier(Role1))
	assert.Equal(t, 4, s.Modifier(Role2))

	s.Zone, s.Attacker, s.Defender = Attack, Role1, Role2
	assert.Equal(t, 2, s.Modifier(Role1), "attacker uses A")
	assert.Equal(t, 4, s.Modifier(Role2), "defender uses D")

	s.Zone = Goal
	assert.Zero(t, s.Modifier(Role1))
	assert.Zero(t, s.Modifier(Role2))
}

func TestResult(t *testing.T) {
	s := NewSession("r", DefaultMaxPhases)
	assert.Equal(t, "It's a DRAW! (0 - 0)", s.Result())

	s.Player(Role2).Score = 2
	s.Player(Role2).Name = "Bea"
	assert.Equal(t, "Bea WINS! (2 - 0)", s.Result())
	assert.Equal(t, Role2, s.Winner())
}

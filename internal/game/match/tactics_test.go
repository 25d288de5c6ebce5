package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTactics_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tactics Tactics
		wantErr bool
	}{
		{name: "balanced", tactics: Tactics{D: 3, M: 5, A: 2}},
		{name: "defensive", tactics: Tactics{D: 5, M: 4, A: 1}},
		{name: "offensive", tactics: Tactics{D: 2, M: 4, A: 4}},
		{name: "sum too low", tactics: Tactics{D: 2, M: 3, A: 1}, wantErr: true},
		{name: "sum too high", tactics: Tactics{D: 5, M: 6, A: 4}, wantErr: true},
		{name: "defense below range", tactics: Tactics{D: 1, M: 6, A: 3}, wantErr: true},
		{name: "midfield above range", tactics: Tactics{D: 2, M: 7, A: 1}, wantErr: true},
		{name: "attack above range", tactics: Tactics{D: 2, M: 3, A: 5}, wantErr: true},
		{name: "zero value", tactics: Tactics{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tactics.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTactics)
				assert.False(t, tt.tactics.Committed())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.tactics.Committed())
		})
	}
}

func TestTactics_AcceptsExactlyTheRuleSet(t *testing.T) {
	for d := 0; d <= 8; d++ {
		for m := 0; m <= 8; m++ {
			for a := 0; a <= 8; a++ {
				want := d+m+a == 10 &&
					d >= 2 && d <= 5 &&
					m >= 3 && m <= 6 &&
					a >= 1 && a <= 4

				tac := Tactics{D: d, M: m, A: a}
				s := NewSession("room", DefaultMaxPhases)
				err := s.SetTactics(Role1, tac)

				if want {
					assert.NoError(t, err, "%+v", tac)
					continue
				}
				assert.ErrorIs(t, err, ErrInvalidTactics, "%+v", tac)
				assert.False(t, s.SetupComplete)
				assert.Equal(t, Tactics{}, s.Player(Role1).Tactics)
			}
		}
	}
}

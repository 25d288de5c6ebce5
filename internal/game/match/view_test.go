package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicesoccer/internal/game/dice"
)

func TestProject(t *testing.T) {
	s := newReadySession(t, DefaultMaxPhases)
	v := Project(s)

	assert.Equal(t, "room-1", v.RoomID)
	assert.Equal(t, 2, v.Occupancy)
	assert.Equal(t, "Ana", v.Player(Role1).Name)
	assert.True(t, v.Player(Role2).Connected)
	assert.True(t, v.Player(Role2).TacticsLocked)
	assert.False(t, v.Player(Role1).Roll.Rolled)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "conn-1", "connection ids never leave the server")
}

func TestViewFor_HidesOpponentPendingRoll(t *testing.T) {
	for _, actor := range Roles {
		t.Run(actor.String(), func(t *testing.T) {
			s := newReadySession(t, DefaultMaxPhases)
			_, err := s.SubmitRoll(actor, dice.NewSequence(6))
			require.NoError(t, err)

			own := ViewFor(s, actor)
			other := ViewFor(s, actor.Opponent())

			assert.Equal(t, RollView{Rolled: true, Revealed: true, Face: 6, Modifier: s.Modifier(actor), Total: 6 + s.Modifier(actor)},
				own.Player(actor).Roll)
			assert.Equal(t, RollView{Rolled: true}, other.Player(actor).Roll)

			// Fora a rolagem, as duas visões são idênticas.
			other.Player(actor).Roll = own.Player(actor).Roll
			assert.Equal(t, own, other)
		})
	}
}

func TestViewFor_RevealsOnceBothRolled(t *testing.T) {
	s := newReadySession(t, DefaultMaxPhases)
	roller := dice.NewSequence(4, 3)
	_, err := s.SubmitRoll(Role1, roller)
	require.NoError(t, err)
	_, err = s.SubmitRoll(Role2, roller)
	require.NoError(t, err)

	v1, v2 := ViewFor(s, Role1), ViewFor(s, Role2)
	assert.Equal(t, v1, v2)
	assert.Equal(t, 9, v2.Player(Role1).Roll.Total)
	assert.Equal(t, 7, v1.Player(Role2).Roll.Total)
}

func TestViewFor_UnseatedViewerSeesNoPendingRoll(t *testing.T) {
	s := newReadySession(t, DefaultMaxPhases)
	_, err := s.SubmitRoll(Role2, dice.NewSequence(5))
	require.NoError(t, err)

	v := ViewFor(s, NoRole)
	assert.Equal(t, RollView{Rolled: true}, v.Player(Role2).Roll)
	assert.Equal(t, RollView{}, v.Player(Role1).Roll)
}

func TestCensor_GameOverIsNotCensoredByViewFor(t *testing.T) {
	s := newReadySession(t, DefaultMaxPhases)
	_, err := s.SubmitRoll(Role1, dice.NewSequence(2))
	require.NoError(t, err)
	s.DeclareAbandonment(Role2)

	v := ViewFor(s, Role2)
	assert.True(t, v.Player(Role1).Roll.Revealed)
	assert.Equal(t, 7, v.Player(Role1).Roll.Total)

	// Censor continua disponível para quem quiser esconder explicitamente.
	cv := Censor(s, Role1)
	assert.False(t, cv.Player(Role1).Roll.Revealed)
}

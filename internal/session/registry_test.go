package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicesoccer/internal/game/match"
)

func newTestRegistry() (*Registry, *Abandonment) {
	a := NewAbandonment(&manualScheduler{}, 5*time.Second, func(string, match.Role) {})
	return NewRegistry(match.DefaultMaxPhases, a), a
}

func TestRegistry_JoinOrCreate(t *testing.T) {
	r, _ := newTestRegistry()

	res, err := r.JoinOrCreate("r1", "Ana", "a")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, match.Role1, res.Role)
	assert.Equal(t, "Ana", res.Session.Name(match.Role1))

	res, err = r.JoinOrCreate("r1", "", "b")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, match.Role2, res.Role)
	assert.Equal(t, "Player 2", res.Session.Name(match.Role2))
	assert.Equal(t, 2, res.Session.Occupancy())

	_, err = r.JoinOrCreate("r1", "Cid", "c")
	assert.ErrorIs(t, err, match.ErrRoomFull)
	assert.Equal(t, match.NoRole, res.Session.RoleOf("c"))
	assert.Equal(t, "Ana", res.Session.Name(match.Role1))
}

func TestRegistry_RejoinIsIdempotent(t *testing.T) {
	r, _ := newTestRegistry()

	_, err := r.JoinOrCreate("r1", "Ana", "a")
	require.NoError(t, err)

	res, err := r.JoinOrCreate("r1", "Ana", "a")
	require.NoError(t, err)
	assert.True(t, res.Rejoined)
	assert.Equal(t, match.Role1, res.Role)
	assert.Equal(t, 1, res.Session.Occupancy(), "same connection is never seated twice")
}

func TestRegistry_ReclaimsPendingSlot(t *testing.T) {
	r, a := newTestRegistry()

	_, err := r.JoinOrCreate("r1", "Ana", "a")
	require.NoError(t, err)
	res, err := r.JoinOrCreate("r1", "Bea", "b")
	require.NoError(t, err)
	s := res.Session

	// Role1 cai; Role2 também, mas sem timer (ex: saiu antes).
	s.Vacate(match.Role1)
	a.Arm("r1", match.Role1)
	s.Vacate(match.Role2)

	res, err = r.JoinOrCreate("r1", "Ana again", "a2")
	require.NoError(t, err)
	assert.True(t, res.Reclaimed)
	assert.Equal(t, match.Role1, res.Role)
	assert.False(t, a.Pending("r1", match.Role1))
	assert.Equal(t, "Ana again", s.Name(match.Role1))

	res, err = r.JoinOrCreate("r1", "", "c")
	require.NoError(t, err)
	assert.False(t, res.Reclaimed)
	assert.Equal(t, match.Role2, res.Role)
}

func TestRegistry_ReclaimPrefersRole1(t *testing.T) {
	r, a := newTestRegistry()
	_, _ = r.JoinOrCreate("r1", "", "a")
	res, _ := r.JoinOrCreate("r1", "", "b")
	s := res.Session

	s.Vacate(match.Role2)
	a.Arm("r1", match.Role2)
	s.Vacate(match.Role1)
	a.Arm("r1", match.Role1)

	res, err := r.JoinOrCreate("r1", "", "x")
	require.NoError(t, err)
	assert.Equal(t, match.Role1, res.Role)
	assert.True(t, a.Pending("r1", match.Role2))
}

func TestRegistry_InvalidRoom(t *testing.T) {
	r, _ := newTestRegistry()
	_, err := r.JoinOrCreate("   ", "Ana", "a")
	assert.ErrorIs(t, err, match.ErrInvalidRoom)
	assert.Zero(t, r.Len())
}

func TestRegistry_ListJoinable(t *testing.T) {
	r, _ := newTestRegistry()
	assert.Empty(t, r.ListJoinable())

	_, _ = r.JoinOrCreate("zeta", "", "z")
	_, _ = r.JoinOrCreate("alpha", "", "a1")
	_, _ = r.JoinOrCreate("alpha", "", "a2")
	_, _ = r.JoinOrCreate("beta", "", "b")

	assert.Equal(t, []string{"beta", "zeta"}, r.ListJoinable())

	// Cada chamada é um retrato novo.
	first := r.ListJoinable()
	first[0] = "mutated"
	assert.Equal(t, []string{"beta", "zeta"}, r.ListJoinable())
}

func TestRegistry_DestroyIfEmpty(t *testing.T) {
	r, _ := newTestRegistry()
	res, _ := r.JoinOrCreate("r1", "", "a")

	assert.False(t, r.DestroyIfEmpty("r1"))
	assert.False(t, r.DestroyIfEmpty("missing"))

	res.Session.Vacate(match.Role1)
	assert.True(t, r.DestroyIfEmpty("r1"))
	assert.Nil(t, r.Get("r1"))
}

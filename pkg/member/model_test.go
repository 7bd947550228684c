package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember_WithTeam(t *testing.T) {
	teamA := &Team{ID: 7, Name: "teamA"}

	m := NewMember("user1", 10, teamA)
	require.NotNil(t, m.Username)
	assert.Equal(t, "user1", *m.Username)
	assert.Equal(t, 10, m.Age)
	assert.True(t, m.BelongsTo(teamA))
}

func TestNewMember_WithoutTeam(t *testing.T) {
	m := NewMember("loner", 0, nil)
	assert.Nil(t, m.TeamID)
	assert.False(t, m.BelongsTo(&Team{ID: 1}))
}

func TestChangeTeam(t *testing.T) {
	teamA := &Team{ID: 1, Name: "teamA"}
	teamB := &Team{ID: 2, Name: "teamB"}
	m := NewMember("user1", 10, teamA)

	m.ChangeTeam(teamB)
	assert.False(t, m.BelongsTo(teamA))
	assert.True(t, m.BelongsTo(teamB))

	// the link is a copy of the id at the time of the change
	teamB.ID = 3
	assert.Equal(t, int64(2), *m.TeamID)

	m.LeaveTeam()
	assert.Nil(t, m.TeamID)
}

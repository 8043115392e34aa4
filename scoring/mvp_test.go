package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pubg-tournament-tracker/models"
)

func TestComputeMVP(t *testing.T) {
	stats := []models.PlayerStat{
		{TeamID: 1, PlayerName: "shroud", Kills: 4, Damage: 410},
		{TeamID: 2, PlayerName: "chocoTaco", Kills: 6, Damage: 388},
		{TeamID: 1, PlayerName: "shroud", Kills: 5, Damage: 502},
	}

	mvp := ComputeMVP(stats)

	require.NotNil(t, mvp)
	assert.Equal(t, "shroud", mvp.PlayerName)
	assert.Equal(t, 9, mvp.TotalKills)
	assert.Equal(t, 2, mvp.MatchesCount)
}

func TestComputeMVPTieKeepsFirstSeen(t *testing.T) {
	stats := []models.PlayerStat{
		{TeamID: 1, PlayerName: "alice", Kills: 7},
		{TeamID: 2, PlayerName: "bob", Kills: 7},
	}

	mvp := ComputeMVP(stats)

	require.NotNil(t, mvp)
	assert.Equal(t, "alice", mvp.PlayerName)
}

func TestComputeMVPEmpty(t *testing.T) {
	assert.Nil(t, ComputeMVP(nil))
	assert.Nil(t, ComputeMVP([]models.PlayerStat{}))
}

func TestComputeMVPExactNameGrouping(t *testing.T) {
	// Names differing only in case are distinct players.
	stats := []models.PlayerStat{
		{TeamID: 1, PlayerName: "Viper", Kills: 3},
		{TeamID: 1, PlayerName: "viper", Kills: 2},
		{TeamID: 1, PlayerName: "Viper", Kills: 2},
	}

	mvp := ComputeMVP(stats)

	require.NotNil(t, mvp)
	assert.Equal(t, "Viper", mvp.PlayerName)
	assert.Equal(t, 5, mvp.TotalKills)
}

func TestComputeTopDamage(t *testing.T) {
	stats := []models.PlayerStat{
		{TeamID: 1, PlayerName: "alice", Kills: 9, Damage: 300},
		{TeamID: 2, PlayerName: "bob", Kills: 1, Damage: 820},
	}

	top := ComputeTopDamage(stats)

	require.NotNil(t, top)
	assert.Equal(t, "bob", top.PlayerName)
	assert.Equal(t, 820, top.TotalDamage)

	// The kill title is independent of the damage title.
	mvp := ComputeMVP(stats)
	require.NotNil(t, mvp)
	assert.Equal(t, "alice", mvp.PlayerName)
}

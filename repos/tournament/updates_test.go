package tournament

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

func TestFinishedMatchUpdate(t *testing.T) {
	finishedAt := time.Date(2026, 1, 17, 12, 30, 0, 0, time.UTC)
	live := &livematch.LiveMatch{
		ID:         "match-9",
		HomeScore:  2,
		AwayScore:  2,
		Overtime:   livematch.Score{Home: 1, Away: 0},
		Penalties:  livematch.Score{},
		Status:     livematch.StatusFinished,
		DecidedBy:  livematch.DecidedOvertime,
		FinishedAt: &finishedAt,
		Events: []livematch.MatchEvent{
			{ID: "event-1", Kind: livematch.EventGoal},
		},
	}

	update := FinishedMatchUpdate(live)

	require.NotNil(t, update.HomeScore)
	require.NotNil(t, update.AwayScore)
	assert.Equal(t, 3, *update.HomeScore, "home score should include overtime goals")
	assert.Equal(t, 2, *update.AwayScore)
	require.NotNil(t, update.MatchStatus)
	assert.Equal(t, MatchFinished, *update.MatchStatus)
	require.NotNil(t, update.DecidedBy)
	assert.Equal(t, "overtime", *update.DecidedBy)
	require.NotNil(t, update.FinishedAt)
	assert.True(t, update.FinishedAt.Equal(finishedAt))
	require.NotNil(t, update.OvertimeScore)
	assert.Equal(t, livematch.Score{Home: 1, Away: 0}, *update.OvertimeScore)
	require.NotNil(t, update.Events)
	assert.Len(t, *update.Events, 1)

	// Fields the scoreboard does not own stay unset.
	assert.Nil(t, update.Number)
	assert.Nil(t, update.HomeTeamID)
	assert.Nil(t, update.Kickoff)
}

func TestFinishedMatchUpdate_EmptyEventLog(t *testing.T) {
	live := &livematch.LiveMatch{ID: "match-9", DecidedBy: livematch.DecidedRegular}

	update := FinishedMatchUpdate(live)

	require.NotNil(t, update.Events)
	assert.NotNil(t, *update.Events, "nil event log should become an empty list")
}

func TestCreateMatchUpdates_OnlySetFields(t *testing.T) {
	score := 3
	status := MatchFinished
	update := &Match{HomeScore: &score, MatchStatus: &status}

	updates := createMatchUpdates(update)

	require.Len(t, updates, 2)
	paths := []string{updates[0].Path, updates[1].Path}
	assert.Contains(t, paths, "HomeScore")
	assert.Contains(t, paths, "MatchStatus")
}

func TestCreateMatchUpdates_Empty(t *testing.T) {
	updates := createMatchUpdates(&Match{})
	assert.Empty(t, updates)
}

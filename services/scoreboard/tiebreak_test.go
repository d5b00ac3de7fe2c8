package scoreboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/tournament"
)

func TestFinishMatch_ImmediateZeroZero(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerNone)
	ctx := context.Background()

	fixture := groupFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)

	result, match, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.NeedsTiebreaker)
	assert.Equal(t, livematch.DecidedRegular, result.DecidedBy)

	assert.Equal(t, livematch.StatusFinished, match.Status)
	assert.Equal(t, 600, match.Elapsed, "elapsed is pinned to the configured duration")
	require.NotNil(t, match.FinishedAt)
	assert.Nil(t, match.TimerStartedAt)

	last := match.Events[len(match.Events)-1]
	assert.Equal(t, livematch.EventStatusChange, last.Kind)
	assert.Equal(t, livematch.StatusFinished, last.StatusChange.To)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 0, *record.HomeScore)
	assert.Equal(t, 0, *record.AwayScore)
	assert.Equal(t, tournament.MatchFinished, *record.MatchStatus)
	assert.Equal(t, "regular", *record.DecidedBy)
	require.NotNil(t, record.Events)
	assert.Len(t, *record.Events, 1, "the canonical record carries the whole event history")
}

func TestFinishMatch_GroupStageDrawFinishes(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerOvertime)
	ctx := context.Background()

	fixture := groupFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamAway})
	require.NoError(t, err)

	result, _, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.True(t, result.Success, "a draw is a legal result in the group stage")
	assert.False(t, result.NeedsTiebreaker)
}

func TestFinishMatch_KnockoutDrawParks(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerOvertime)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, err = env.service.StartMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	env.clock.Advance(12 * time.Minute)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamAway})
	require.NoError(t, err)

	result, match, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.True(t, result.NeedsTiebreaker)

	assert.Equal(t, livematch.StatusPaused, match.Status)
	assert.True(t, match.AwaitingTiebreakerChoice)
	assert.Equal(t, 720, match.Elapsed, "the timer is materialized when the match parks")

	_, err = env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.ErrorIs(t, err, tournament.ErrMatchNotFound, "no result is written while the tie-break is pending")
}

func TestFinishMatch_KnockoutWithoutModeFinishes(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerNone)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)

	result, _, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.True(t, result.Success, "without a configured mode a level knockout match just finishes")
}

func TestOvertimeFlow(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerOvertime)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamAway})
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	match, err := env.service.StartOvertime(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.Equal(t, livematch.PhaseOvertime, match.PlayPhase)
	assert.Equal(t, livematch.StatusRunning, match.Status)
	assert.Equal(t, 300, match.DurationSeconds, "overtime gets its own duration")
	assert.False(t, match.AwaitingTiebreakerChoice)

	state, err := env.service.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.ElapsedSeconds, "the overtime sub-clock restarts at zero")

	env.clock.Advance(90 * time.Second)
	match, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)

	assert.Equal(t, livematch.Score{Home: 1, Away: 0}, match.Overtime, "overtime goals land in the overtime pair")
	assert.Equal(t, 1, match.HomeScore, "regulation score stays untouched")
	event := match.Events[len(match.Events)-1]
	assert.Equal(t, livematch.PhaseOvertime, event.Goal.Phase)
	assert.Equal(t, 90, event.Seconds)
	assert.Equal(t, livematch.Score{Home: 2, Away: 1}, event.ScoreAfter, "the snapshot shows the combined score")

	result, match, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, livematch.DecidedOvertime, result.DecidedBy)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 2, *record.HomeScore, "the canonical score combines regulation and overtime")
	assert.Equal(t, 1, *record.AwayScore)
	assert.Equal(t, livematch.Score{Home: 1, Away: 0}, *record.OvertimeScore)
	assert.Equal(t, "overtime", *record.DecidedBy)
}

func TestOvertimeStillLevelParksAgain(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerOvertime)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	_, err = env.service.StartOvertime(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	result, match, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.True(t, result.NeedsTiebreaker, "a level combined score parks the match again")
	assert.True(t, match.AwaitingTiebreakerChoice)
	assert.Equal(t, livematch.PhaseOvertime, match.PlayPhase)
}

func TestGoldenGoalAutoFinish(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerGoldenGoal)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	_, err = env.service.StartGoldenGoal(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	// A corrective minus does not end the match.
	match, err := env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome, Delta: -1})
	require.NoError(t, err)
	assert.Equal(t, livematch.StatusRunning, match.Status)

	match, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamAway})
	require.NoError(t, err)

	assert.Equal(t, livematch.StatusFinished, match.Status, "the golden goal ends the match on the spot")
	assert.Equal(t, livematch.DecidedGoldenGoal, match.DecidedBy)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 0, *record.HomeScore)
	assert.Equal(t, 1, *record.AwayScore)
	assert.Equal(t, "goldenGoal", *record.DecidedBy)
}

func TestPenaltyShootoutFlow(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerPenalties)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamAway})
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	match, err := env.service.StartPenaltyShootout(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.Equal(t, livematch.PhasePenalty, match.PlayPhase)
	assert.Equal(t, livematch.StatusPaused, match.Status, "no clock runs during a shootout")
	assert.False(t, match.AwaitingTiebreakerChoice)

	match, err = env.service.RecordPenaltyResult(ctx, testSlug, fixture.MatchID, PenaltyResultRequest{HomeScore: 4, AwayScore: 2})
	require.NoError(t, err)

	assert.Equal(t, livematch.StatusFinished, match.Status)
	assert.Equal(t, livematch.DecidedPenalty, match.DecidedBy)
	assert.Equal(t, livematch.Score{Home: 4, Away: 2}, match.Penalties)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 1, *record.HomeScore, "the canonical score stays the combined regulation score")
	assert.Equal(t, 1, *record.AwayScore)
	assert.Equal(t, livematch.Score{Home: 4, Away: 2}, *record.PenaltyScore)
	assert.Equal(t, "penalty", *record.DecidedBy)
}

func TestFinishDuringShootoutNeverParks(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerPenalties)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	_, err = env.service.StartPenaltyShootout(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	result, _, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.True(t, result.Success, "the penalty phase never asks for another tie-breaker")
	assert.Equal(t, livematch.DecidedPenalty, result.DecidedBy)
}

func TestGoalDuringShootoutRoutesToRegulation(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerPenalties)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	_, err = env.service.StartPenaltyShootout(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	match, err := env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)

	assert.Equal(t, 1, match.HomeScore, "stray goals in the penalty phase go to the regulation pair")
	assert.Equal(t, livematch.Score{}, match.Penalties)
}

func TestCancelTiebreaker(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerOvertime)
	ctx := context.Background()

	fixture := knockoutFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	match, err := env.service.CancelTiebreaker(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	assert.Equal(t, livematch.StatusFinished, match.Status)
	assert.Equal(t, livematch.DecidedRegular, match.DecidedBy)
	assert.False(t, match.AwaitingTiebreakerChoice)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 0, *record.HomeScore)
	assert.Equal(t, 0, *record.AwayScore)
	assert.Equal(t, "regular", *record.DecidedBy)
}

// flakyTournamentStore fails a configurable number of canonical writes, the
// way a dropped connection would mid-finalization.
type flakyTournamentStore struct {
	inner    TournamentStore
	failures int
}

func (f *flakyTournamentStore) Get(ctx context.Context, slug string) (*tournament.Tournament, error) {
	return f.inner.Get(ctx, slug)
}

func (f *flakyTournamentStore) UpdateMatch(ctx context.Context, slug, matchID string, update *tournament.Match) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("canonical store unavailable")
	}
	return f.inner.UpdateMatch(ctx, slug, matchID, update)
}

func TestFinishMatch_RetryAfterFailedCanonicalWrite(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerNone)
	flaky := &flakyTournamentStore{inner: env.tournaments, failures: 1}
	env.service.tournaments = flaky
	ctx := context.Background()

	fixture := groupFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, err = env.service.RecordGoal(ctx, testSlug, fixture.MatchID, GoalRequest{Team: livematch.TeamHome})
	require.NoError(t, err)

	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.Error(t, err, "the failed canonical write surfaces to the caller")

	state, err := env.service.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, livematch.StatusFinished, state.Match.Status, "the live entity stays finished")

	_, err = env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.ErrorIs(t, err, tournament.ErrMatchNotFound)

	// Finishing again resubmits the canonical write from live state.
	result, _, err := env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	record, err := env.tournaments.GetMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)
	assert.Equal(t, 1, *record.HomeScore)
	assert.Equal(t, tournament.MatchFinished, *record.MatchStatus)
}

type channelNotifier struct {
	sent chan string
}

func (n *channelNotifier) SendResultMail(ctx context.Context, tournamentID string, match *livematch.LiveMatch) error {
	n.sent <- match.ID
	return nil
}

func TestFinalizeSendsResultMail(t *testing.T) {
	env := newTestEnv(t, livematch.TiebreakerNone)
	notifier := &channelNotifier{sent: make(chan string, 1)}
	env.service.notifier = notifier
	ctx := context.Background()

	fixture := groupFixture()
	_, err := env.service.InitializeMatch(ctx, testSlug, fixture)
	require.NoError(t, err)
	_, _, err = env.service.FinishMatch(ctx, testSlug, fixture.MatchID)
	require.NoError(t, err)

	select {
	case matchID := <-notifier.sent:
		assert.Equal(t, fixture.MatchID, matchID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a result mail after finalization")
	}
}

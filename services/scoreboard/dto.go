package scoreboard

import (
	"time"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

// ScheduledFixture is the slice of the schedule the scoreboard needs to open
// a match: ids, round info and any score carried over from a manual edit of
// the schedule.
type ScheduledFixture struct {
	MatchID    string    `json:"matchId"`
	Number     int       `json:"number"`
	Phase      string    `json:"phase"`
	GroupStage bool      `json:"groupStage"`
	Field      string    `json:"field"`
	Kickoff    time.Time `json:"kickoff"`
	HomeTeamID string    `json:"homeTeamId"`
	AwayTeamID string    `json:"awayTeamId"`
	HomeScore  int       `json:"homeScore"`
	AwayScore  int       `json:"awayScore"`
}

type GoalRequest struct {
	Team           livematch.TeamSide `json:"team"`
	Delta          int                `json:"delta"`
	PlayerNumber   *int               `json:"playerNumber"`
	Assists        []int              `json:"assists"`
	WithoutDetails bool               `json:"withoutDetails"`
}

type CardRequest struct {
	Team         livematch.TeamSide `json:"team"`
	PlayerNumber *int               `json:"playerNumber"`
	Red          bool               `json:"red"`
}

type TimePenaltyRequest struct {
	Team            livematch.TeamSide `json:"team"`
	PlayerNumber    *int               `json:"playerNumber"`
	DurationSeconds int                `json:"durationSeconds"`
}

type SubstitutionRequest struct {
	Team       livematch.TeamSide `json:"team"`
	PlayersIn  []int              `json:"playersIn"`
	PlayersOut []int              `json:"playersOut"`
}

type FoulRequest struct {
	Team         livematch.TeamSide `json:"team"`
	PlayerNumber *int               `json:"playerNumber"`
}

type ResultRequest struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

type AdjustTimeRequest struct {
	ElapsedSeconds int `json:"elapsedSeconds"`
}

// EventUpdateRequest corrects a historical event. Only the set fields are
// applied; the score snapshot of the event is never touched.
type EventUpdateRequest struct {
	PlayerNumber *int  `json:"playerNumber"`
	Incomplete   *bool `json:"incomplete"`
}

type PenaltyResultRequest struct {
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// FinishResult tells the operator client how a finish attempt ended: done,
// or parked because the match needs a tie-breaker first.
type FinishResult struct {
	Success         bool                `json:"success"`
	NeedsTiebreaker bool                `json:"needsTiebreaker"`
	DecidedBy       livematch.DecidedBy `json:"decidedBy,omitempty"`
}

// MatchState is the read view of a live match: the stored entity plus the
// elapsed seconds materialized at read time and the staleness flag.
type MatchState struct {
	Match          *livematch.LiveMatch `json:"match"`
	ElapsedSeconds int                  `json:"elapsedSeconds"`
	Stale          bool                 `json:"stale"`
}

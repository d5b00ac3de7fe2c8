package livematch

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no live match exists for the requested id.
var ErrNotFound = errors.New("live match not found")

// MatchStatus is the lifecycle state of a live match.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "NOT_STARTED"
	StatusRunning    MatchStatus = "RUNNING"
	StatusPaused     MatchStatus = "PAUSED"
	StatusFinished   MatchStatus = "FINISHED"
)

// PlayPhase says which period goals currently count towards.
type PlayPhase string

const (
	PhaseRegular    PlayPhase = "regular"
	PhaseOvertime   PlayPhase = "overtime"
	PhaseGoldenGoal PlayPhase = "goldenGoal"
	PhasePenalty    PlayPhase = "penalty"
)

// TiebreakerMode is the tournament-level setting for resolving knockout draws.
type TiebreakerMode string

const (
	TiebreakerNone       TiebreakerMode = "NONE"
	TiebreakerOvertime   TiebreakerMode = "OVERTIME"
	TiebreakerGoldenGoal TiebreakerMode = "GOLDEN_GOAL"
	TiebreakerPenalties  TiebreakerMode = "PENALTIES"
)

// TeamSide selects one of the two teams of a match.
type TeamSide string

const (
	TeamHome TeamSide = "HOME"
	TeamAway TeamSide = "AWAY"
)

// DecidedBy records which period settled a finished match.
type DecidedBy string

const (
	DecidedRegular    DecidedBy = "regular"
	DecidedOvertime   DecidedBy = "overtime"
	DecidedGoldenGoal DecidedBy = "goldenGoal"
	DecidedPenalty    DecidedBy = "penalty"
)

// DecidedByPhase maps the phase a match finished in to its decider.
func DecidedByPhase(phase PlayPhase) DecidedBy {
	switch phase {
	case PhaseOvertime:
		return DecidedOvertime
	case PhaseGoldenGoal:
		return DecidedGoldenGoal
	case PhasePenalty:
		return DecidedPenalty
	default:
		return DecidedRegular
	}
}

// Score is a home/away goal pair.
type Score struct {
	Home int `firestore:"home" json:"home"`
	Away int `firestore:"away" json:"away"`
}

// TeamInfo is the denormalized team snapshot a live match carries so displays
// never have to join against the tournament document.
type TeamInfo struct {
	ID        string `firestore:"id" json:"id"`
	Name      string `firestore:"name" json:"name"`
	ShortName string `firestore:"shortName,omitempty" json:"shortName,omitempty"`
	LogoURL   string `firestore:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Color     string `firestore:"color,omitempty" json:"color,omitempty"`
	AltColor  string `firestore:"altColor,omitempty" json:"altColor,omitempty"`
}

// LiveMatch is the working state of one match on the scoreboard: the scores,
// the timer anchors and the full incident log. It is loaded, mutated and
// written back as a whole document.
type LiveMatch struct {
	ID           string      `firestore:"id" json:"id"`
	TournamentID string      `firestore:"tournamentId" json:"tournamentId"`
	Number       int         `firestore:"number" json:"number"`
	Phase        string      `firestore:"phase,omitempty" json:"phase,omitempty"`
	GroupStage   bool        `firestore:"groupStage" json:"groupStage"`
	Field        string      `firestore:"field,omitempty" json:"field,omitempty"`
	Kickoff      time.Time   `firestore:"kickoff" json:"kickoff"`
	HomeTeam     TeamInfo    `firestore:"homeTeam" json:"homeTeam"`
	AwayTeam     TeamInfo    `firestore:"awayTeam" json:"awayTeam"`
	HomeScore    int         `firestore:"homeScore" json:"homeScore"`
	AwayScore    int         `firestore:"awayScore" json:"awayScore"`
	Status       MatchStatus `firestore:"status" json:"status"`

	// Timer anchors. While RUNNING, timerStartTime marks the start of the
	// current interval and timerElapsedSeconds holds what was on the clock
	// when it started. While not RUNNING, elapsedSeconds is authoritative.
	TimerStartedAt  *time.Time `firestore:"timerStartTime,omitempty" json:"timerStartTime,omitempty"`
	TimerPausedAt   *time.Time `firestore:"timerPausedAt,omitempty" json:"timerPausedAt,omitempty"`
	TimerElapsed    int        `firestore:"timerElapsedSeconds" json:"timerElapsedSeconds"`
	Elapsed         int        `firestore:"elapsedSeconds" json:"elapsedSeconds"`
	DurationSeconds int        `firestore:"durationSeconds" json:"durationSeconds"`

	PlayPhase                PlayPhase      `firestore:"playPhase" json:"playPhase"`
	TiebreakerMode           TiebreakerMode `firestore:"tiebreakerMode,omitempty" json:"tiebreakerMode,omitempty"`
	OvertimeSeconds          int            `firestore:"overtimeSeconds,omitempty" json:"overtimeSeconds,omitempty"`
	Overtime                 Score          `firestore:"overtimeScore" json:"overtimeScore"`
	Penalties                Score          `firestore:"penaltyScore" json:"penaltyScore"`
	AwaitingTiebreakerChoice bool           `firestore:"awaitingTiebreakerChoice" json:"awaitingTiebreakerChoice"`

	DecidedBy  DecidedBy  `firestore:"decidedBy,omitempty" json:"decidedBy,omitempty"`
	FinishedAt *time.Time `firestore:"finishedAt,omitempty" json:"finishedAt,omitempty"`

	Events []MatchEvent `firestore:"events" json:"events"`
}

// EventKind discriminates the payload of a MatchEvent.
type EventKind string

const (
	EventGoal         EventKind = "GOAL"
	EventYellowCard   EventKind = "YELLOW_CARD"
	EventRedCard      EventKind = "RED_CARD"
	EventSubstitution EventKind = "SUBSTITUTION"
	EventFoul         EventKind = "FOUL"
	EventStatusChange EventKind = "STATUS_CHANGE"
	EventTimePenalty  EventKind = "TIME_PENALTY"
	EventResultEdit   EventKind = "RESULT_EDIT"
)

// MatchEvent is one entry in the append-only incident log. Kind selects which
// detail pointer is set, the others stay nil. ScoreAfter freezes the total
// score as it stood once the event applied and is never recomputed.
type MatchEvent struct {
	ID         string    `firestore:"id" json:"id"`
	MatchID    string    `firestore:"matchId" json:"matchId"`
	Seconds    int       `firestore:"timestampSeconds" json:"timestampSeconds"`
	Kind       EventKind `firestore:"kind" json:"kind"`
	ScoreAfter Score     `firestore:"scoreAfter" json:"scoreAfter"`
	Incomplete bool      `firestore:"incomplete,omitempty" json:"incomplete,omitempty"`

	Goal         *GoalDetail         `firestore:"goal,omitempty" json:"goal,omitempty"`
	Card         *CardDetail         `firestore:"card,omitempty" json:"card,omitempty"`
	Substitution *SubstitutionDetail `firestore:"substitution,omitempty" json:"substitution,omitempty"`
	Foul         *FoulDetail         `firestore:"foul,omitempty" json:"foul,omitempty"`
	StatusChange *StatusChangeDetail `firestore:"statusChange,omitempty" json:"statusChange,omitempty"`
	TimePenalty  *TimePenaltyDetail  `firestore:"timePenalty,omitempty" json:"timePenalty,omitempty"`
	ResultEdit   *ResultEditDetail   `firestore:"resultEdit,omitempty" json:"resultEdit,omitempty"`
}

// GoalDetail carries the side and the signed delta of a goal event. Phase is
// the play phase the goal was recorded in; undo routes by the match's current
// phase instead, so this field is informational.
type GoalDetail struct {
	Team         TeamSide  `firestore:"team" json:"team"`
	Delta        int       `firestore:"delta" json:"delta"`
	PlayerNumber *int      `firestore:"playerNumber,omitempty" json:"playerNumber,omitempty"`
	Assists      []int     `firestore:"assists,omitempty" json:"assists,omitempty"`
	Phase        PlayPhase `firestore:"phase" json:"phase"`
}

type CardDetail struct {
	Team         TeamSide `firestore:"team" json:"team"`
	PlayerNumber *int     `firestore:"playerNumber,omitempty" json:"playerNumber,omitempty"`
}

type SubstitutionDetail struct {
	Team       TeamSide `firestore:"team" json:"team"`
	PlayersIn  []int    `firestore:"playersIn,omitempty" json:"playersIn,omitempty"`
	PlayersOut []int    `firestore:"playersOut,omitempty" json:"playersOut,omitempty"`
}

type FoulDetail struct {
	Team         TeamSide `firestore:"team" json:"team"`
	PlayerNumber *int     `firestore:"playerNumber,omitempty" json:"playerNumber,omitempty"`
}

type StatusChangeDetail struct {
	To MatchStatus `firestore:"to" json:"to"`
}

type TimePenaltyDetail struct {
	Team            TeamSide `firestore:"team" json:"team"`
	PlayerNumber    *int     `firestore:"playerNumber,omitempty" json:"playerNumber,omitempty"`
	DurationSeconds int      `firestore:"durationSeconds" json:"durationSeconds"`
}

type ResultEditDetail struct {
	HomeScore int `firestore:"homeScore" json:"homeScore"`
	AwayScore int `firestore:"awayScore" json:"awayScore"`
}

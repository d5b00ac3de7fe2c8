package tournament

import (
	"errors"
	"time"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

var (
	// ErrNotFound is returned when no tournament exists for the slug.
	ErrNotFound = errors.New("tournament not found")

	// ErrMatchNotFound is returned when the tournament has no canonical
	// record for the match.
	ErrMatchNotFound = errors.New("tournament match not found")
)

// Canonical match statuses. The schedule generator writes scheduled, the
// scoreboard writes finished.
const (
	MatchScheduled = "scheduled"
	MatchFinished  = "finished"
)

// Tournament is the canonical tournament document: team metadata plus the
// settings the scoreboard copies onto a live match at initialization.
type Tournament struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	ContactEmail string   `json:"contactEmail"`
	Teams        []Team   `json:"teams"`
	Settings     Settings `json:"settings"`
}

type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	LogoURL   string `json:"logoUrl"`
	Color     string `json:"color"`
	AltColor  string `json:"altColor"`
}

// Settings carries the per-tournament game configuration.
type Settings struct {
	GameSeconds       int                      `json:"gameSeconds"`
	FinalsGameSeconds int                      `json:"finalsGameSeconds"`
	OvertimeSeconds   int                      `json:"overtimeSeconds"`
	TiebreakerMode    livematch.TiebreakerMode `json:"tiebreakerMode"`
}

// Match is the canonical match record. All fields are pointers so a partial
// update only touches what the caller set.
type Match struct {
	ID            *string                 `json:"id"`
	Number        *int                    `json:"number"`
	Phase         *string                 `json:"phase"`
	IsGroupStage  *bool                   `json:"isGroupStage"`
	FieldName     *string                 `json:"fieldName"`
	Kickoff       *time.Time              `json:"kickoff"`
	HomeTeamID    *string                 `json:"homeTeamId"`
	AwayTeamID    *string                 `json:"awayTeamId"`
	HomeScore     *int                    `json:"homeScore"`
	AwayScore     *int                    `json:"awayScore"`
	MatchStatus   *string                 `json:"matchStatus"`
	FinishedAt    *time.Time              `json:"finishedAt"`
	OvertimeScore *livematch.Score        `json:"overtimeScore"`
	PenaltyScore  *livematch.Score        `json:"penaltyScore"`
	DecidedBy     *string                 `json:"decidedBy"`
	Events        *[]livematch.MatchEvent `json:"events"`
}

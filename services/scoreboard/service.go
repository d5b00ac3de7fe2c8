package scoreboard

import (
	"context"
	"errors"
	"log"

	"github.com/samborkent/uuidv7"

	"github.com/Stieges/hallenfussball-pwa-sub008/pkg/clock"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/tournament"
)

var (
	// ErrMatchFinished is returned when a mutation hits a finished match.
	// Finished is terminal; only the tie-break operations reopen a match.
	ErrMatchFinished = errors.New("match already finished")

	// ErrEventNotFound is returned when an event correction names an id the
	// match log does not contain.
	ErrEventNotFound = errors.New("event not found")

	// ErrInvalidTeam is returned when a request names neither HOME nor AWAY.
	ErrInvalidTeam = errors.New("invalid team side")
)

const (
	defaultGameSeconds        = 600
	defaultOvertimeSeconds    = 300
	defaultTimePenaltySeconds = 120
)

// LiveMatchStore is the live-state backend the scoreboard runs against.
type LiveMatchStore interface {
	Get(ctx context.Context, tournamentID, matchID string) (*livematch.LiveMatch, error)
	Save(ctx context.Context, tournamentID string, match *livematch.LiveMatch) error
}

// TournamentStore is the canonical side: tournament settings in, final
// results out.
type TournamentStore interface {
	Get(ctx context.Context, slug string) (*tournament.Tournament, error)
	UpdateMatch(ctx context.Context, slug, matchID string, update *tournament.Match) error
}

// Broadcaster pushes updated live matches to connected displays. Optional.
type Broadcaster interface {
	BroadcastMatch(tournamentID string, match *livematch.LiveMatch)
}

// Notifier sends the final result to the tournament contact. Optional.
type Notifier interface {
	SendResultMail(ctx context.Context, tournamentID string, match *livematch.LiveMatch) error
}

// Service runs the scoreboard: it owns every mutation of a live match, from
// the first whistle through tie-breakers to the canonical result write.
type Service struct {
	liveStore   LiveMatchStore
	tournaments TournamentStore
	clock       clock.Clock
	broadcaster Broadcaster
	notifier    Notifier
}

// NewService creates a new scoreboard service. Broadcaster and notifier may
// be nil.
func NewService(liveStore LiveMatchStore, tournaments TournamentStore, clk clock.Clock, broadcaster Broadcaster, notifier Notifier) *Service {
	return &Service{
		liveStore:   liveStore,
		tournaments: tournaments,
		clock:       clk,
		broadcaster: broadcaster,
		notifier:    notifier,
	}
}

// InitializeMatch opens a fixture on the scoreboard. When a live entity
// already exists it is returned untouched, so opening the same match twice
// never resets a running game. Otherwise the entity is built from the fixture
// plus the tournament settings, with NOT_STARTED status and a zeroed timer.
func (s *Service) InitializeMatch(ctx context.Context, slug string, fixture ScheduledFixture) (*livematch.LiveMatch, error) {
	existing, err := s.liveStore.Get(ctx, slug, fixture.MatchID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, livematch.ErrNotFound) {
		return nil, err
	}

	tourn, err := s.tournaments.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	match := &livematch.LiveMatch{
		ID:              fixture.MatchID,
		TournamentID:    slug,
		Number:          fixture.Number,
		Phase:           fixture.Phase,
		GroupStage:      fixture.GroupStage,
		Field:           fixture.Field,
		Kickoff:         fixture.Kickoff,
		HomeTeam:        resolveTeam(tourn, fixture.HomeTeamID),
		AwayTeam:        resolveTeam(tourn, fixture.AwayTeamID),
		HomeScore:       clampScore(fixture.HomeScore),
		AwayScore:       clampScore(fixture.AwayScore),
		Status:          livematch.StatusNotStarted,
		DurationSeconds: durationFor(tourn, fixture.GroupStage),
		PlayPhase:       livematch.PhaseRegular,
		TiebreakerMode:  tiebreakerModeFor(tourn),
		OvertimeSeconds: tourn.Settings.OvertimeSeconds,
		Events:          []livematch.MatchEvent{},
	}

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// GetMatch returns the live match with elapsed seconds materialized at read
// time and the staleness flag, so clients never do timer math themselves.
func (s *Service) GetMatch(ctx context.Context, slug, matchID string) (*MatchState, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	return &MatchState{
		Match:          match,
		ElapsedSeconds: match.ElapsedAt(now),
		Stale:          match.StaleAt(now),
	}, nil
}

// StartMatch starts (or restarts after a pause) the match clock. Starting a
// match that is already running is a no-op.
func (s *Service) StartMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}
	if match.Status == livematch.StatusRunning {
		return match, nil
	}

	s.startTimer(match)
	s.appendStatusEvent(match, livematch.StatusRunning)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// PauseMatch freezes the match clock. Pausing a match that is not running is
// a no-op.
func (s *Service) PauseMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}
	if match.Status != livematch.StatusRunning {
		return match, nil
	}

	s.pauseTimer(match)
	s.appendStatusEvent(match, livematch.StatusPaused)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// ResumeMatch continues a paused match. Mechanically identical to starting:
// the stored elapsed value becomes the base of a fresh running interval.
func (s *Service) ResumeMatch(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	return s.StartMatch(ctx, slug, matchID)
}

// RecordGoal applies a goal (or a corrective -1) to whichever score pair the
// current play phase owns and appends a GOAL event. During golden goal a
// positive delta ends the match on the spot.
func (s *Service) RecordGoal(ctx context.Context, slug, matchID string, req GoalRequest) (*livematch.LiveMatch, error) {
	if err := validTeam(req.Team); err != nil {
		return nil, err
	}
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	delta := 1
	if req.Delta < 0 {
		delta = -1
	}
	applyGoal(match, req.Team, delta)

	event := s.newEvent(match, livematch.EventGoal)
	event.Incomplete = req.WithoutDetails
	event.Goal = &livematch.GoalDetail{
		Team:         req.Team,
		Delta:        delta,
		PlayerNumber: req.PlayerNumber,
		Assists:      req.Assists,
		Phase:        match.PlayPhase,
	}
	match.Events = append(match.Events, event)

	if match.PlayPhase == livematch.PhaseGoldenGoal && delta > 0 {
		// Sudden death: the goal itself decides the match.
		if err := s.finalize(ctx, slug, match, livematch.DecidedGoldenGoal); err != nil {
			return nil, err
		}
		return match, nil
	}

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// RecordCard appends a yellow or red card event. Cards never touch the score.
func (s *Service) RecordCard(ctx context.Context, slug, matchID string, req CardRequest) (*livematch.LiveMatch, error) {
	if err := validTeam(req.Team); err != nil {
		return nil, err
	}
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	kind := livematch.EventYellowCard
	if req.Red {
		kind = livematch.EventRedCard
	}
	event := s.newEvent(match, kind)
	event.Card = &livematch.CardDetail{Team: req.Team, PlayerNumber: req.PlayerNumber}
	match.Events = append(match.Events, event)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// RecordTimePenalty appends a time penalty event, defaulting to two minutes.
func (s *Service) RecordTimePenalty(ctx context.Context, slug, matchID string, req TimePenaltyRequest) (*livematch.LiveMatch, error) {
	if err := validTeam(req.Team); err != nil {
		return nil, err
	}
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	duration := req.DurationSeconds
	if duration <= 0 {
		duration = defaultTimePenaltySeconds
	}
	event := s.newEvent(match, livematch.EventTimePenalty)
	event.TimePenalty = &livematch.TimePenaltyDetail{
		Team:            req.Team,
		PlayerNumber:    req.PlayerNumber,
		DurationSeconds: duration,
	}
	match.Events = append(match.Events, event)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// RecordSubstitution appends a substitution event.
func (s *Service) RecordSubstitution(ctx context.Context, slug, matchID string, req SubstitutionRequest) (*livematch.LiveMatch, error) {
	if err := validTeam(req.Team); err != nil {
		return nil, err
	}
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	event := s.newEvent(match, livematch.EventSubstitution)
	event.Substitution = &livematch.SubstitutionDetail{
		Team:       req.Team,
		PlayersIn:  req.PlayersIn,
		PlayersOut: req.PlayersOut,
	}
	match.Events = append(match.Events, event)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// RecordFoul appends a foul event.
func (s *Service) RecordFoul(ctx context.Context, slug, matchID string, req FoulRequest) (*livematch.LiveMatch, error) {
	if err := validTeam(req.Team); err != nil {
		return nil, err
	}
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	event := s.newEvent(match, livematch.EventFoul)
	event.Foul = &livematch.FoulDetail{Team: req.Team, PlayerNumber: req.PlayerNumber}
	match.Events = append(match.Events, event)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// UpdateResult overrides the regulation score directly. This is a correction
// tool, not a game incident, and deliberately does not append to the event
// log the way goals do.
func (s *Service) UpdateResult(ctx context.Context, slug, matchID string, req ResultRequest) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	match.HomeScore = clampScore(req.HomeScore)
	match.AwayScore = clampScore(req.AwayScore)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// AdjustTime sets the match clock to an absolute value. On a running match
// the anchor is reset to now so the clock continues from the new value.
func (s *Service) AdjustTime(ctx context.Context, slug, matchID string, req AdjustTimeRequest) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	seconds := req.ElapsedSeconds
	if seconds < 0 {
		seconds = 0
	}
	match.Elapsed = seconds
	match.TimerElapsed = seconds
	if match.Status == livematch.StatusRunning {
		now := s.clock.Now()
		match.TimerStartedAt = &now
	}

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// UpdateEvent corrects a historical event, the only mutation the log allows:
// filling in a player number or clearing the incomplete flag. The score
// snapshot stays as recorded.
func (s *Service) UpdateEvent(ctx context.Context, slug, matchID, eventID string, req EventUpdateRequest) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	for i := range match.Events {
		if match.Events[i].ID != eventID {
			continue
		}
		event := &match.Events[i]
		if req.PlayerNumber != nil {
			switch {
			case event.Goal != nil:
				event.Goal.PlayerNumber = req.PlayerNumber
			case event.Card != nil:
				event.Card.PlayerNumber = req.PlayerNumber
			case event.Foul != nil:
				event.Foul.PlayerNumber = req.PlayerNumber
			case event.TimePenalty != nil:
				event.TimePenalty.PlayerNumber = req.PlayerNumber
			}
		}
		if req.Incomplete != nil {
			event.Incomplete = *req.Incomplete
		}

		if err := s.persist(ctx, slug, match); err != nil {
			return nil, err
		}
		return match, nil
	}

	return nil, ErrEventNotFound
}

// UndoLastEvent pops the newest event off the log. A goal event also gives
// its delta back to the score pair of the current play phase, clamped at
// zero. Undoing on an empty log is a no-op.
func (s *Service) UndoLastEvent(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}
	if len(match.Events) == 0 {
		return match, nil
	}

	last := match.Events[len(match.Events)-1]
	match.Events = match.Events[:len(match.Events)-1]

	if last.Kind == livematch.EventGoal && last.Goal != nil {
		// The reversal routes by the phase the match is in now, not the
		// phase recorded on the event.
		applyGoal(match, last.Goal.Team, -last.Goal.Delta)
	}

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// FinishMatch tries to close the match. A knockout match standing level with
// a tie-break mode configured is parked instead: paused, flagged as awaiting
// the operator's tie-breaker choice, with no result written. Finishing an
// already finished match resubmits the canonical result, which makes the
// call a safe retry after a failed write.
func (s *Service) FinishMatch(ctx context.Context, slug, matchID string) (FinishResult, *livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return FinishResult{}, nil, err
	}

	if match.Status == livematch.StatusFinished {
		if err := s.tournaments.UpdateMatch(ctx, slug, match.ID, tournament.FinishedMatchUpdate(match)); err != nil {
			return FinishResult{}, nil, err
		}
		return FinishResult{Success: true, DecidedBy: match.DecidedBy}, match, nil
	}

	if needsTiebreaker(match) {
		s.parkForTiebreaker(match)
		if err := s.persist(ctx, slug, match); err != nil {
			return FinishResult{}, nil, err
		}
		return FinishResult{NeedsTiebreaker: true}, match, nil
	}

	decided := livematch.DecidedByPhase(match.PlayPhase)
	if err := s.finalize(ctx, slug, match, decided); err != nil {
		return FinishResult{}, nil, err
	}
	return FinishResult{Success: true, DecidedBy: decided}, match, nil
}

// StartOvertime begins an overtime period: fresh sub-clock, zeroed overtime
// score pair, running.
func (s *Service) StartOvertime(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	return s.startTiebreakPeriod(ctx, slug, matchID, livematch.PhaseOvertime)
}

// StartGoldenGoal begins a golden-goal period. Same mechanics as overtime,
// except the next positive goal ends the match immediately.
func (s *Service) StartGoldenGoal(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	return s.startTiebreakPeriod(ctx, slug, matchID, livematch.PhaseGoldenGoal)
}

// StartPenaltyShootout switches the match into the penalty phase. No clock
// runs during a shootout; the timer is materialized and frozen.
func (s *Service) StartPenaltyShootout(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}

	match.PlayPhase = livematch.PhasePenalty
	match.Penalties = livematch.Score{}
	match.AwaitingTiebreakerChoice = false
	match.DecidedBy = ""
	match.FinishedAt = nil
	if match.Status == livematch.StatusRunning {
		s.pauseTimer(match)
		s.appendStatusEvent(match, livematch.StatusPaused)
	} else if match.Status != livematch.StatusPaused {
		match.Status = livematch.StatusPaused
		s.appendStatusEvent(match, livematch.StatusPaused)
	}

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// RecordPenaltyResult stores the shootout outcome and immediately finalizes
// the match as decided by penalties.
func (s *Service) RecordPenaltyResult(ctx context.Context, slug, matchID string, req PenaltyResultRequest) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	match.PlayPhase = livematch.PhasePenalty
	match.Penalties = livematch.Score{
		Home: clampScore(req.HomeScore),
		Away: clampScore(req.AwayScore),
	}

	if err := s.finalize(ctx, slug, match, livematch.DecidedPenalty); err != nil {
		return nil, err
	}
	return match, nil
}

// CancelTiebreaker abandons a pending tie-break and finalizes the match with
// the level score standing as the final draw. Only call this where a draw is
// a legal outcome; the scoreboard does not second-guess the operator here.
func (s *Service) CancelTiebreaker(ctx context.Context, slug, matchID string) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}
	if match.Status == livematch.StatusFinished {
		return nil, ErrMatchFinished
	}

	match.AwaitingTiebreakerChoice = false
	if err := s.finalize(ctx, slug, match, livematch.DecidedRegular); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *Service) startTiebreakPeriod(ctx context.Context, slug, matchID string, phase livematch.PlayPhase) (*livematch.LiveMatch, error) {
	match, err := s.liveStore.Get(ctx, slug, matchID)
	if err != nil {
		return nil, err
	}

	duration := match.OvertimeSeconds
	if duration <= 0 {
		duration = defaultOvertimeSeconds
	}

	// The period gets its own sub-clock: elapsed restarts at zero against
	// the overtime duration. Regulation score and events stay in place.
	match.PlayPhase = phase
	match.Overtime = livematch.Score{}
	match.DurationSeconds = duration
	match.Elapsed = 0
	match.AwaitingTiebreakerChoice = false
	match.DecidedBy = ""
	match.FinishedAt = nil
	s.startTimer(match)
	s.appendStatusEvent(match, livematch.StatusRunning)

	if err := s.persist(ctx, slug, match); err != nil {
		return nil, err
	}
	return match, nil
}

// finalize closes the match: live entity first, then the canonical record,
// then the optional result mail. The live write committing first means a
// failed canonical write can always be resubmitted from live state alone.
func (s *Service) finalize(ctx context.Context, slug string, match *livematch.LiveMatch, decided livematch.DecidedBy) error {
	now := s.clock.Now()
	match.Status = livematch.StatusFinished
	match.Elapsed = match.DurationSeconds
	match.TimerElapsed = match.DurationSeconds
	match.TimerStartedAt = nil
	match.TimerPausedAt = &now
	match.AwaitingTiebreakerChoice = false
	match.DecidedBy = decided
	match.FinishedAt = &now

	s.appendStatusEvent(match, livematch.StatusFinished)

	if err := s.persist(ctx, slug, match); err != nil {
		return err
	}

	if err := s.tournaments.UpdateMatch(ctx, slug, match.ID, tournament.FinishedMatchUpdate(match)); err != nil {
		log.Printf("Failed to write canonical result for match %s: %v\n", match.ID, err)
		return err
	}

	if s.notifier != nil {
		snapshot := *match
		go func() {
			if err := s.notifier.SendResultMail(context.Background(), slug, &snapshot); err != nil {
				log.Printf("Failed to send result mail for match %s: %v\n", snapshot.ID, err)
			}
		}()
	}
	return nil
}

func (s *Service) parkForTiebreaker(match *livematch.LiveMatch) {
	if match.Status == livematch.StatusRunning {
		s.pauseTimer(match)
		s.appendStatusEvent(match, livematch.StatusPaused)
	} else if match.Status != livematch.StatusPaused {
		match.Status = livematch.StatusPaused
		s.appendStatusEvent(match, livematch.StatusPaused)
	}
	match.AwaitingTiebreakerChoice = true
}

// needsTiebreaker gates the tie-break flow: knockout match, a mode
// configured, not already in a shootout, and the relevant score level. In
// regulation only the regulation pair counts; from overtime on the combined
// score decides.
func needsTiebreaker(m *livematch.LiveMatch) bool {
	if m.GroupStage {
		return false
	}
	if m.TiebreakerMode == "" || m.TiebreakerMode == livematch.TiebreakerNone {
		return false
	}
	if m.PlayPhase == livematch.PhasePenalty {
		return false
	}
	if m.PlayPhase == livematch.PhaseRegular {
		return m.HomeScore == m.AwayScore
	}
	combined := m.CombinedScore()
	return combined.Home == combined.Away
}

func (s *Service) startTimer(m *livematch.LiveMatch) {
	now := s.clock.Now()
	m.TimerElapsed = m.Elapsed
	m.TimerStartedAt = &now
	m.TimerPausedAt = nil
	m.Status = livematch.StatusRunning
}

func (s *Service) pauseTimer(m *livematch.LiveMatch) {
	now := s.clock.Now()
	elapsed := m.ElapsedAt(now)
	m.Elapsed = elapsed
	m.TimerElapsed = elapsed
	m.TimerStartedAt = nil
	m.TimerPausedAt = &now
	m.Status = livematch.StatusPaused
}

func (s *Service) newEvent(m *livematch.LiveMatch, kind livematch.EventKind) livematch.MatchEvent {
	return livematch.MatchEvent{
		ID:         uuidv7.New().String(),
		MatchID:    m.ID,
		Seconds:    m.ElapsedAt(s.clock.Now()),
		Kind:       kind,
		ScoreAfter: m.CombinedScore(),
	}
}

func (s *Service) appendStatusEvent(m *livematch.LiveMatch, to livematch.MatchStatus) {
	event := s.newEvent(m, livematch.EventStatusChange)
	event.StatusChange = &livematch.StatusChangeDetail{To: to}
	m.Events = append(m.Events, event)
}

func (s *Service) persist(ctx context.Context, slug string, match *livematch.LiveMatch) error {
	if err := s.liveStore.Save(ctx, slug, match); err != nil {
		return err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMatch(slug, match)
	}
	return nil
}

// applyGoal adds delta to the score pair the current play phase owns. During
// a shootout the regulation pair takes stray goal events; the shootout tally
// itself only moves through the penalty result.
func applyGoal(m *livematch.LiveMatch, team livematch.TeamSide, delta int) {
	switch m.PlayPhase {
	case livematch.PhaseOvertime, livematch.PhaseGoldenGoal:
		if team == livematch.TeamHome {
			m.Overtime.Home = clampScore(m.Overtime.Home + delta)
		} else {
			m.Overtime.Away = clampScore(m.Overtime.Away + delta)
		}
	default:
		if team == livematch.TeamHome {
			m.HomeScore = clampScore(m.HomeScore + delta)
		} else {
			m.AwayScore = clampScore(m.AwayScore + delta)
		}
	}
}

func validTeam(team livematch.TeamSide) error {
	if team != livematch.TeamHome && team != livematch.TeamAway {
		return ErrInvalidTeam
	}
	return nil
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func resolveTeam(t *tournament.Tournament, teamID string) livematch.TeamInfo {
	for _, team := range t.Teams {
		if team.ID == teamID {
			return livematch.TeamInfo{
				ID:        team.ID,
				Name:      team.Name,
				ShortName: team.ShortName,
				LogoURL:   team.LogoURL,
				Color:     team.Color,
				AltColor:  team.AltColor,
			}
		}
	}
	// Fixture references a team the tournament does not know, keep the raw
	// id so the scoreboard still shows something.
	return livematch.TeamInfo{ID: teamID, Name: teamID}
}

func durationFor(t *tournament.Tournament, groupStage bool) int {
	if !groupStage && t.Settings.FinalsGameSeconds > 0 {
		return t.Settings.FinalsGameSeconds
	}
	if t.Settings.GameSeconds > 0 {
		return t.Settings.GameSeconds
	}
	return defaultGameSeconds
}

func tiebreakerModeFor(t *tournament.Tournament) livematch.TiebreakerMode {
	if t.Settings.TiebreakerMode == "" {
		return livematch.TiebreakerNone
	}
	return t.Settings.TiebreakerMode
}

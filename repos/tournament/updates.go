package tournament

import (
	"cloud.google.com/go/firestore"
	"github.com/xorcare/pointer"

	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

// FinishedMatchUpdate builds the canonical partial update for a finished live
// match: combined final score, the tie-break pairs, the decider and the full
// event log. The update is a pure function of the live entity, so resubmitting
// it after a failed write lands on the same data.
func FinishedMatchUpdate(m *livematch.LiveMatch) *Match {
	combined := m.CombinedScore()
	overtime := m.Overtime
	penalties := m.Penalties
	events := m.Events
	if events == nil {
		events = []livematch.MatchEvent{}
	}

	return &Match{
		ID:            pointer.String(m.ID),
		HomeScore:     pointer.Int(combined.Home),
		AwayScore:     pointer.Int(combined.Away),
		MatchStatus:   pointer.String(MatchFinished),
		FinishedAt:    m.FinishedAt,
		OvertimeScore: &overtime,
		PenaltyScore:  &penalties,
		DecidedBy:     pointer.String(string(m.DecidedBy)),
		Events:        &events,
	}
}

func createMatchUpdates(match *Match) []firestore.Update {
	var updates []firestore.Update

	if match.ID != nil {
		updates = append(updates, firestore.Update{Path: "ID", Value: *match.ID})
	}
	if match.Number != nil {
		updates = append(updates, firestore.Update{Path: "Number", Value: *match.Number})
	}
	if match.Phase != nil {
		updates = append(updates, firestore.Update{Path: "Phase", Value: *match.Phase})
	}
	if match.IsGroupStage != nil {
		updates = append(updates, firestore.Update{Path: "IsGroupStage", Value: *match.IsGroupStage})
	}
	if match.FieldName != nil {
		updates = append(updates, firestore.Update{Path: "FieldName", Value: *match.FieldName})
	}
	if match.Kickoff != nil {
		updates = append(updates, firestore.Update{Path: "Kickoff", Value: *match.Kickoff})
	}
	if match.HomeTeamID != nil {
		updates = append(updates, firestore.Update{Path: "HomeTeamID", Value: *match.HomeTeamID})
	}
	if match.AwayTeamID != nil {
		updates = append(updates, firestore.Update{Path: "AwayTeamID", Value: *match.AwayTeamID})
	}
	if match.HomeScore != nil {
		updates = append(updates, firestore.Update{Path: "HomeScore", Value: *match.HomeScore})
	}
	if match.AwayScore != nil {
		updates = append(updates, firestore.Update{Path: "AwayScore", Value: *match.AwayScore})
	}
	if match.MatchStatus != nil {
		updates = append(updates, firestore.Update{Path: "MatchStatus", Value: *match.MatchStatus})
	}
	if match.FinishedAt != nil {
		updates = append(updates, firestore.Update{Path: "FinishedAt", Value: *match.FinishedAt})
	}
	if match.OvertimeScore != nil {
		updates = append(updates, firestore.Update{Path: "OvertimeScore", Value: *match.OvertimeScore})
	}
	if match.PenaltyScore != nil {
		updates = append(updates, firestore.Update{Path: "PenaltyScore", Value: *match.PenaltyScore})
	}
	if match.DecidedBy != nil {
		updates = append(updates, firestore.Update{Path: "DecidedBy", Value: *match.DecidedBy})
	}
	if match.Events != nil {
		updates = append(updates, firestore.Update{Path: "Events", Value: *match.Events})
	}

	return updates
}

func mergeMatch(dst, src *Match) {
	if src.ID != nil {
		dst.ID = src.ID
	}
	if src.Number != nil {
		dst.Number = src.Number
	}
	if src.Phase != nil {
		dst.Phase = src.Phase
	}
	if src.IsGroupStage != nil {
		dst.IsGroupStage = src.IsGroupStage
	}
	if src.FieldName != nil {
		dst.FieldName = src.FieldName
	}
	if src.Kickoff != nil {
		dst.Kickoff = src.Kickoff
	}
	if src.HomeTeamID != nil {
		dst.HomeTeamID = src.HomeTeamID
	}
	if src.AwayTeamID != nil {
		dst.AwayTeamID = src.AwayTeamID
	}
	if src.HomeScore != nil {
		dst.HomeScore = src.HomeScore
	}
	if src.AwayScore != nil {
		dst.AwayScore = src.AwayScore
	}
	if src.MatchStatus != nil {
		dst.MatchStatus = src.MatchStatus
	}
	if src.FinishedAt != nil {
		dst.FinishedAt = src.FinishedAt
	}
	if src.OvertimeScore != nil {
		dst.OvertimeScore = src.OvertimeScore
	}
	if src.PenaltyScore != nil {
		dst.PenaltyScore = src.PenaltyScore
	}
	if src.DecidedBy != nil {
		dst.DecidedBy = src.DecidedBy
	}
	if src.Events != nil {
		dst.Events = src.Events
	}
}

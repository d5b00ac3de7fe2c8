package display

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Stieges/hallenfussball-pwa-sub008/pkg/sharecode"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
)

// LiveStore reads the live matches displays render from.
type LiveStore interface {
	Get(ctx context.Context, tournamentID string, matchID string) (*livematch.LiveMatch, error)
	List(ctx context.Context, tournamentID string) ([]*livematch.LiveMatch, error)
}

// DisplayService feeds the hall displays: a full snapshot on connect, pushed
// updates through the hub afterwards, plus join codes for single-match views.
type DisplayService struct {
	liveStore LiveStore
	hub       *Hub
}

func NewDisplayService(liveStore LiveStore, hub *Hub) *DisplayService {
	return &DisplayService{
		liveStore: liveStore,
		hub:       hub,
	}
}

// Snapshot returns every live match of the tournament.
func (s *DisplayService) Snapshot(ctx context.Context, tournamentID string) ([]*livematch.LiveMatch, error) {
	matches, err := s.liveStore.List(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*livematch.LiveMatch{}
	}
	return matches, nil
}

// Subscribe registers an upgraded connection with the hub and queues the
// current snapshot so the display has state before the first push arrives.
// The connection is owned by the pumps from here on.
func (s *DisplayService) Subscribe(ctx context.Context, tournamentID string, conn *websocket.Conn) error {
	matches, err := s.Snapshot(ctx, tournamentID)
	if err != nil {
		return err
	}
	snapshot, err := json.Marshal(Message{Type: MessageMatchSnapshot, Payload: matches})
	if err != nil {
		return err
	}

	c := &client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
		room: tournamentID,
	}
	c.send <- snapshot
	s.hub.register <- c

	go c.writePump()
	go c.readPump()
	return nil
}

// Ticker renders the event log of a match as display lines, newest last.
func (s *DisplayService) Ticker(ctx context.Context, tournamentID string, matchID string) ([]string, error) {
	match, err := s.liveStore.Get(ctx, tournamentID, matchID)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(match.Events))
	for _, event := range match.Events {
		lines = append(lines, eventLine(event))
	}
	return lines, nil
}

// ShareCode builds the join code a single-match display scans.
func (s *DisplayService) ShareCode(tournamentID string, matchID string) string {
	return sharecode.Encode(tournamentID, matchID)
}

// ResolveShareCode turns a join code back into its tournament and match.
func (s *DisplayService) ResolveShareCode(code string) (string, string, error) {
	return sharecode.Decode(code)
}

func eventLine(event livematch.MatchEvent) string {
	clock := fmt.Sprintf("%02d:%02d", event.Seconds/60, event.Seconds%60)
	score := fmt.Sprintf("%d:%d", event.ScoreAfter.Home, event.ScoreAfter.Away)

	switch event.Kind {
	case livematch.EventGoal:
		if event.Goal == nil {
			return fmt.Sprintf("%s Goal (%s)", clock, score)
		}
		label := "Goal"
		if event.Goal.Delta < 0 {
			label = "Goal revoked"
		}
		line := fmt.Sprintf("%s %s %s", clock, label, event.Goal.Team)
		if event.Goal.PlayerNumber != nil {
			line = fmt.Sprintf("%s #%d", line, *event.Goal.PlayerNumber)
		}
		return fmt.Sprintf("%s (%s)", line, score)
	case livematch.EventYellowCard, livematch.EventRedCard:
		label := "Yellow card"
		if event.Kind == livematch.EventRedCard {
			label = "Red card"
		}
		if event.Card == nil {
			return fmt.Sprintf("%s %s", clock, label)
		}
		line := fmt.Sprintf("%s %s %s", clock, label, event.Card.Team)
		if event.Card.PlayerNumber != nil {
			line = fmt.Sprintf("%s #%d", line, *event.Card.PlayerNumber)
		}
		return line
	case livematch.EventTimePenalty:
		if event.TimePenalty == nil {
			return fmt.Sprintf("%s Time penalty", clock)
		}
		line := fmt.Sprintf("%s Time penalty %s", clock, event.TimePenalty.Team)
		if event.TimePenalty.PlayerNumber != nil {
			line = fmt.Sprintf("%s #%d", line, *event.TimePenalty.PlayerNumber)
		}
		return fmt.Sprintf("%s (%ds)", line, event.TimePenalty.DurationSeconds)
	case livematch.EventSubstitution:
		if event.Substitution == nil {
			return fmt.Sprintf("%s Substitution", clock)
		}
		line := fmt.Sprintf("%s Substitution %s", clock, event.Substitution.Team)
		if len(event.Substitution.PlayersOut) > 0 {
			line = fmt.Sprintf("%s %s off", line, joinNumbers(event.Substitution.PlayersOut))
		}
		if len(event.Substitution.PlayersIn) > 0 {
			line = fmt.Sprintf("%s %s on", line, joinNumbers(event.Substitution.PlayersIn))
		}
		return line
	case livematch.EventFoul:
		if event.Foul == nil {
			return fmt.Sprintf("%s Foul", clock)
		}
		line := fmt.Sprintf("%s Foul %s", clock, event.Foul.Team)
		if event.Foul.PlayerNumber != nil {
			line = fmt.Sprintf("%s #%d", line, *event.Foul.PlayerNumber)
		}
		return line
	case livematch.EventStatusChange:
		if event.StatusChange == nil {
			return fmt.Sprintf("%s Status change", clock)
		}
		switch event.StatusChange.To {
		case livematch.StatusRunning:
			return fmt.Sprintf("%s Clock started", clock)
		case livematch.StatusPaused:
			return fmt.Sprintf("%s Clock paused", clock)
		case livematch.StatusFinished:
			return fmt.Sprintf("%s Full time (%s)", clock, score)
		default:
			return fmt.Sprintf("%s Status %s", clock, event.StatusChange.To)
		}
	case livematch.EventResultEdit:
		if event.ResultEdit == nil {
			return fmt.Sprintf("%s Result corrected (%s)", clock, score)
		}
		return fmt.Sprintf("%s Result corrected to %d:%d", clock,
			event.ResultEdit.HomeScore, event.ResultEdit.AwayScore)
	default:
		return fmt.Sprintf("%s %s (%s)", clock, event.Kind, score)
	}
}

func joinNumbers(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("#%d", n))
	}
	return strings.Join(parts, ", ")
}

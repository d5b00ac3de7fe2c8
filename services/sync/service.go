package sync

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Stieges/hallenfussball-pwa-sub008/pkg/clock"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/livematch"
	"github.com/Stieges/hallenfussball-pwa-sub008/repos/tournament"
)

// ErrThrottled is returned when a resync for the tournament ran within the
// last resyncInterval and force was not set.
var ErrThrottled = errors.New("resync ran recently")

const (
	resyncInterval = 30 * time.Second
	resyncParallel = 4
)

// LiveStore lists the live matches of a tournament.
type LiveStore interface {
	List(ctx context.Context, tournamentID string) ([]*livematch.LiveMatch, error)
}

// TournamentStore reads and rewrites canonical match records.
type TournamentStore interface {
	GetMatch(ctx context.Context, slug, matchID string) (*tournament.Match, error)
	UpdateMatch(ctx context.Context, slug, matchID string, update *tournament.Match) error
}

// SyncService resubmits canonical results for live matches whose second
// write leg was lost. A finished live match is the source of truth; the
// sweep rebuilds the canonical record from it and is safe to repeat.
type SyncService struct {
	liveStore   LiveStore
	tournaments TournamentStore
	clock       clock.Clock

	mu         sync.Mutex
	lastResync map[string]time.Time
}

func NewSyncService(liveStore LiveStore, tournaments TournamentStore, clk clock.Clock) *SyncService {
	return &SyncService{
		liveStore:   liveStore,
		tournaments: tournaments,
		clock:       clk,
		lastResync:  make(map[string]time.Time),
	}
}

// ResyncResults sweeps every finished live match of the tournament and
// rewrites the canonical records that are missing or still unfinished.
func (s *SyncService) ResyncResults(ctx context.Context, tournamentID string, force bool) (*ResyncReport, error) {
	if !force && s.throttled(tournamentID) {
		return nil, ErrThrottled
	}

	liveMatches, err := s.liveStore.List(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	report := &ResyncReport{TournamentID: tournamentID}
	var reportMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(resyncParallel)
	for _, liveMatch := range liveMatches {
		if liveMatch.Status != livematch.StatusFinished {
			continue
		}
		report.Checked++

		liveMatch := liveMatch // per-iteration copy; required while go.mod declares go < 1.22
		g.Go(func() error {
			resubmitted, err := s.resyncMatch(gCtx, tournamentID, liveMatch)

			reportMu.Lock()
			defer reportMu.Unlock()
			switch {
			case err != nil:
				log.Printf("Resync of match %s in %s failed: %v\n", liveMatch.ID, tournamentID, err)
				report.Failed = append(report.Failed, liveMatch.ID)
			case resubmitted:
				report.Resubmitted++
			default:
				report.Skipped++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(report.Failed)
	log.Printf("Resync for %s: checked %d, resubmitted %d, skipped %d, failed %d\n",
		tournamentID, report.Checked, report.Resubmitted, report.Skipped, len(report.Failed))
	return report, nil
}

// resyncMatch reports whether the canonical record had to be rewritten.
func (s *SyncService) resyncMatch(ctx context.Context, tournamentID string, liveMatch *livematch.LiveMatch) (bool, error) {
	existing, err := s.tournaments.GetMatch(ctx, tournamentID, liveMatch.ID)
	if err != nil && !errors.Is(err, tournament.ErrMatchNotFound) {
		return false, err
	}
	if existing != nil && existing.MatchStatus != nil && *existing.MatchStatus == tournament.MatchFinished {
		return false, nil
	}

	if err := s.tournaments.UpdateMatch(ctx, tournamentID, liveMatch.ID, tournament.FinishedMatchUpdate(liveMatch)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SyncService) throttled(tournamentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if last, ok := s.lastResync[tournamentID]; ok && now.Sub(last) < resyncInterval {
		return true
	}
	s.lastResync[tournamentID] = now
	return false
}

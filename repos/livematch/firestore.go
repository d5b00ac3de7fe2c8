package livematch

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const liveMatchesCollection = "LiveMatches"

// FirestoreStore keeps live matches in Firestore so a scoring session can move
// between devices and displays can follow along.
type FirestoreStore struct {
	Client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{Client: client}
}

// Get loads the live match document. Returns ErrNotFound when the document is
// missing or belongs to another tournament.
func (s *FirestoreStore) Get(ctx context.Context, tournamentID, matchID string) (*LiveMatch, error) {
	doc, err := s.Client.Collection(liveMatchesCollection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var match LiveMatch
	if err := doc.DataTo(&match); err != nil {
		return nil, xerrors.Errorf("consistency error. Converting document %s to live match failed: %w", doc.Ref.ID, err)
	}
	if match.TournamentID != tournamentID {
		return nil, ErrNotFound
	}
	return &match, nil
}

// Save writes the whole live match document.
func (s *FirestoreStore) Save(ctx context.Context, tournamentID string, match *LiveMatch) error {
	match.TournamentID = tournamentID
	if _, err := s.Client.Collection(liveMatchesCollection).Doc(match.ID).Set(ctx, match); err != nil {
		log.Printf("Failed to write live match %s to Firestore: %v\n", match.ID, err)
		return err
	}
	return nil
}

// List returns all live matches of a tournament.
func (s *FirestoreStore) List(ctx context.Context, tournamentID string) ([]*LiveMatch, error) {
	iter := s.Client.Collection(liveMatchesCollection).Where("tournamentId", "==", tournamentID).Documents(ctx)
	defer iter.Stop()

	var matches []*LiveMatch
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var match LiveMatch
		if err := doc.DataTo(&match); err != nil {
			return nil, xerrors.Errorf("consistency error. Converting document %s to live match failed: %w", doc.Ref.ID, err)
		}
		matches = append(matches, &match)
	}
	return matches, nil
}

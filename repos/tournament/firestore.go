package tournament

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	tournamentsCollection = "Tournaments"
	matchesCollection     = "Matches"
)

// FirestoreStore reads and updates the canonical tournament documents.
type FirestoreStore struct {
	Client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{Client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, slug string) (*Tournament, error) {
	doc, err := s.Client.Collection(tournamentsCollection).Doc(slug).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var t Tournament
	if err := doc.DataTo(&t); err != nil {
		return nil, xerrors.Errorf("consistency error. Converting document %s to tournament failed: %w", slug, err)
	}
	return &t, nil
}

func (s *FirestoreStore) GetMatch(ctx context.Context, slug, matchID string) (*Match, error) {
	doc, err := s.Client.Collection(tournamentsCollection).Doc(slug).Collection(matchesCollection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	var match Match
	if err := doc.DataTo(&match); err != nil {
		return nil, xerrors.Errorf("consistency error. Converting document %s to match failed: %w", matchID, err)
	}
	return &match, nil
}

// UpdateMatch applies a partial update to the canonical match record. An
// existing document only gets the fields the caller set; a missing document
// is created from the update.
func (s *FirestoreStore) UpdateMatch(ctx context.Context, slug, matchID string, match *Match) error {
	docRef := s.Client.Collection(tournamentsCollection).Doc(slug).Collection(matchesCollection).Doc(matchID)

	doc, _ := docRef.Get(ctx)

	if doc.Exists() {
		updates := createMatchUpdates(match)
		if len(updates) == 0 {
			return nil
		}
		if _, err := docRef.Update(ctx, updates); err != nil {
			log.Printf("Failed to update match %s in Firestore: %v\n", matchID, err)
			return err
		}
		return nil
	}

	if _, err := docRef.Set(ctx, match); err != nil {
		log.Printf("Failed to write match %s to Firestore: %v\n", matchID, err)
		return err
	}
	return nil
}

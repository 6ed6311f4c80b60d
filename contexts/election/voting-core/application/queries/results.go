package queries

import (
	"context"
	"strings"

	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

type CandidateQueryUseCase struct {
	Candidates ports.CandidateRepository
}

// ListCandidatesWithTallies returns every candidate of the event ordered by id.
// Candidates without votes carry a zero count.
func (uc CandidateQueryUseCase) ListCandidatesWithTallies(ctx context.Context, eventID string) ([]entities.CandidateTally, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}
	return uc.Candidates.ListCandidateTallies(ctx, eventID)
}

type ResultsUseCase struct {
	Candidates ports.CandidateRepository
	Votes      ports.VoteRepository
}

func (uc ResultsUseCase) GetResults(ctx context.Context, eventID string) (entities.Results, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}
	tallies, err := uc.Candidates.ListCandidateTallies(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return entities.ResultsFromTallies(tallies), nil
}

func (uc ResultsUseCase) HasVoted(ctx context.Context, userID string, eventID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	if userID == "" {
		return false, domainerrors.ErrInvalidUserID
	}
	if eventID == "" {
		return false, domainerrors.ErrInvalidEventID
	}
	return uc.Votes.HasVoted(ctx, userID, eventID)
}

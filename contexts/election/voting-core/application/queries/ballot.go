package queries

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"

	application "evote/contexts/election/voting-core/application"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

// BallotUseCase hands out an event's candidate list to holders of the event
// password.
type BallotUseCase struct {
	Events     EventQueryUseCase
	Candidates ports.CandidateRepository
	Logger     *slog.Logger
}

// GetBallot returns found=false when the event is unknown or the password
// does not match. Entries never carry photos.
func (uc BallotUseCase) GetBallot(ctx context.Context, eventID string, eventPassword string) ([]entities.BallotEntry, bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, false, domainerrors.ErrInvalidEventID
	}
	if eventPassword == "" {
		return nil, false, nil
	}

	matched, err := uc.verify(ctx, eventID, eventPassword)
	if err != nil || !matched {
		return nil, false, err
	}

	tallies, err := uc.Candidates.ListCandidateTallies(ctx, eventID)
	if err != nil {
		return nil, false, err
	}
	entries := make([]entities.BallotEntry, 0, len(tallies))
	for _, tally := range tallies {
		entries = append(entries, entities.BallotEntry{
			CandidateID: entities.FormatCandidateID(tally.CandidateID),
			Name:        tally.Name,
		})
	}
	return entries, true, nil
}

// verify checks the cached password first and falls back to storage on a
// mismatch, so a stale cache entry never locks voters out.
func (uc BallotUseCase) verify(ctx context.Context, eventID string, candidate string) (bool, error) {
	if cached, ok := uc.Events.cached(ctx, eventID); ok && passwordsEqual(cached, candidate) {
		return true, nil
	}
	stored, found, err := uc.Events.loadPassword(ctx, eventID)
	if err != nil || !found {
		return false, err
	}
	if !passwordsEqual(stored, candidate) {
		application.ResolveLogger(uc.Logger).Info("ballot password rejected",
			"event", "voting_ballot_password_rejected",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
		)
		return false, nil
	}
	return true, nil
}

func passwordsEqual(a string, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

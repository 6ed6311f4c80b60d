package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "evote/contexts/election/voting-core/application"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

type VoteUseCase struct {
	Votes  ports.VoteRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// CastVote records one vote. It returns false without an error when the
// account already voted in the event.
func (uc VoteUseCase) CastVote(ctx context.Context, userID string, eventID string, candidateID string) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID = strings.TrimSpace(userID)
	eventID = strings.TrimSpace(eventID)
	if userID == "" {
		return false, domainerrors.ErrInvalidUserID
	}
	if eventID == "" {
		return false, domainerrors.ErrInvalidEventID
	}
	id, ok := entities.ParseCandidateID(candidateID)
	if !ok {
		logger.Warn("vote validation failed",
			"event", "voting_vote_validation_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"user_id", userID,
		)
		return false, domainerrors.ErrInvalidCandidateID
	}

	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	accepted, err := uc.Votes.CastVote(ctx, entities.Vote{
		UserID:      userID,
		CandidateID: id,
		EventID:     eventID,
		CastAt:      now,
	})
	if err != nil {
		logger.Error("vote cast failed",
			"event", "voting_vote_cast_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"user_id", userID,
			"candidate_id", id,
			"error", err.Error(),
		)
		return false, err
	}
	if !accepted {
		logger.Info("duplicate vote rejected",
			"event", "voting_vote_rejected_duplicate",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"user_id", userID,
		)
		return false, nil
	}

	logger.Info("vote cast",
		"event", "voting_vote_cast",
		"module", application.LogModule,
		"layer", application.LogLayer,
		"event_id", eventID,
		"user_id", userID,
		"candidate_id", id,
	)
	return true, nil
}

package commands

import (
	"context"
	"log/slog"
	"strings"

	application "evote/contexts/election/voting-core/application"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

const DefaultMaxPhotoBytes = 16 << 20

type CandidateUseCase struct {
	Candidates    ports.CandidateRepository
	MaxPhotoBytes int
	Logger        *slog.Logger
}

// AddCandidate returns the storage-assigned id as a decimal string.
func (uc CandidateUseCase) AddCandidate(ctx context.Context, eventID string, name string, photo []byte) (string, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID = strings.TrimSpace(eventID)
	name = strings.TrimSpace(name)
	if eventID == "" {
		return "", domainerrors.ErrInvalidEventID
	}
	if name == "" {
		return "", domainerrors.ErrInvalidCandidateName
	}
	if err := uc.checkPhoto(photo); err != nil {
		return "", err
	}

	candidateID, err := uc.Candidates.AddCandidate(ctx, ports.NewCandidate{
		EventID: eventID,
		Name:    name,
		Photo:   photo,
	})
	if err != nil {
		logger.Error("candidate add failed",
			"event", "voting_candidate_add_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"error", err.Error(),
		)
		return "", err
	}

	logger.Info("candidate added",
		"event", "voting_candidate_added",
		"module", application.LogModule,
		"layer", application.LogLayer,
		"event_id", eventID,
		"candidate_id", candidateID,
		"has_photo", len(photo) > 0,
	)
	return entities.FormatCandidateID(candidateID), nil
}

// UpdateCandidate applies the non-empty parts of the patch. A nil or blank
// name and a nil photo keep the stored values.
func (uc CandidateUseCase) UpdateCandidate(
	ctx context.Context,
	eventID string,
	candidateID string,
	newName *string,
	newPhoto []byte,
) (bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return false, domainerrors.ErrInvalidEventID
	}
	id, ok := entities.ParseCandidateID(candidateID)
	if !ok {
		return false, domainerrors.ErrInvalidCandidateID
	}
	if err := uc.checkPhoto(newPhoto); err != nil {
		return false, err
	}

	patch := ports.CandidatePatch{Photo: newPhoto}
	if newName != nil {
		if trimmed := strings.TrimSpace(*newName); trimmed != "" {
			patch.Name = &trimmed
		}
	}
	if patch.Empty() {
		return false, nil
	}

	updated, err := uc.Candidates.UpdateCandidate(ctx, eventID, id, patch)
	if err != nil {
		return false, err
	}
	if updated {
		application.ResolveLogger(uc.Logger).Info("candidate updated",
			"event", "voting_candidate_updated",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"candidate_id", id,
		)
	}
	return updated, nil
}

// DeleteCandidate removes the candidate and every vote cast for it.
func (uc CandidateUseCase) DeleteCandidate(ctx context.Context, eventID string, candidateID string) (bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return false, domainerrors.ErrInvalidEventID
	}
	id, ok := entities.ParseCandidateID(candidateID)
	if !ok {
		return false, domainerrors.ErrInvalidCandidateID
	}

	deleted, err := uc.Candidates.DeleteCandidate(ctx, eventID, id)
	if err != nil {
		return false, err
	}
	if deleted {
		application.ResolveLogger(uc.Logger).Info("candidate deleted",
			"event", "voting_candidate_deleted",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"candidate_id", id,
		)
	}
	return deleted, nil
}

func (uc CandidateUseCase) checkPhoto(photo []byte) error {
	limit := uc.MaxPhotoBytes
	if limit <= 0 {
		limit = DefaultMaxPhotoBytes
	}
	if len(photo) > limit {
		return domainerrors.ErrPhotoTooLarge
	}
	return nil
}

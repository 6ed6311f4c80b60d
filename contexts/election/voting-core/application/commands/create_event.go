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

// EventUseCase creates and deletes events. The event password is generated
// here, returned once in plaintext and persisted encrypted.
type EventUseCase struct {
	Events        ports.EventRepository
	PasswordCache ports.EventPasswordCache
	Codec         ports.CredentialCodec
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

// CreateEvent persists a new event. A failed insert is not retried.
func (uc EventUseCase) CreateEvent(ctx context.Context, name string) (entities.Event, error) {
	logger := application.ResolveLogger(uc.Logger)
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Warn("event create validation failed",
			"event", "voting_event_create_validation_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
		)
		return entities.Event{}, domainerrors.ErrInvalidEventName
	}

	eventID, err := application.ShortCode(ctx, uc.IDGen, application.EventIDLength, true)
	if err != nil {
		return entities.Event{}, err
	}
	password, err := application.ShortCode(ctx, uc.IDGen, application.EventPasswordLength, false)
	if err != nil {
		return entities.Event{}, err
	}
	encrypted, err := uc.Codec.Encrypt(password)
	if err != nil {
		logger.Error("event password encryption failed",
			"event", "voting_event_password_encrypt_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"error", err.Error(),
		)
		return entities.Event{}, err
	}

	now := uc.now()
	if err := uc.Events.CreateEvent(ctx, ports.EventRecord{
		EventID:           eventID,
		Name:              name,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
	}); err != nil {
		logger.Error("event create failed",
			"event", "voting_event_create_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"error", err.Error(),
		)
		return entities.Event{}, err
	}

	logger.Info("event created",
		"event", "voting_event_created",
		"module", application.LogModule,
		"layer", application.LogLayer,
		"event_id", eventID,
		"event_name", name,
	)
	return entities.Event{
		EventID:   eventID,
		Name:      name,
		Password:  password,
		CreatedAt: now,
	}, nil
}

// DeleteEvent removes an event together with its candidates, accounts and
// votes, and drops any cached password for it.
func (uc EventUseCase) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return false, domainerrors.ErrInvalidEventID
	}

	deleted, err := uc.Events.DeleteEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if uc.PasswordCache != nil {
		if err := uc.PasswordCache.Invalidate(ctx, eventID); err != nil {
			logger.Warn("event password cache invalidation failed",
				"event", "voting_event_cache_invalidate_failed",
				"module", application.LogModule,
				"layer", application.LogLayer,
				"event_id", eventID,
				"error", err.Error(),
			)
		}
	}
	if deleted {
		logger.Info("event deleted",
			"event", "voting_event_deleted",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
		)
	}
	return deleted, nil
}

func (uc EventUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

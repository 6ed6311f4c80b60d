package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "evote/contexts/election/voting-core/application"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

const DefaultPasswordCacheTTL = 5 * time.Minute

// EventQueryUseCase reads events. Event passwords are served through a
// read-through cache in front of the repository.
type EventQueryUseCase struct {
	Events        ports.EventRepository
	Codec         ports.CredentialCodec
	PasswordCache ports.EventPasswordCache
	CacheTTL      time.Duration
	Clock         ports.Clock
	Logger        *slog.Logger
}

func (uc EventQueryUseCase) GetEvent(ctx context.Context, eventID string) (entities.EventSummary, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return entities.EventSummary{}, domainerrors.ErrInvalidEventID
	}
	record, err := uc.Events.GetEvent(ctx, eventID)
	if err != nil {
		return entities.EventSummary{}, err
	}
	return entities.EventSummary{
		EventID:   record.EventID,
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
	}, nil
}

// GetEventPassword returns the decrypted event password. found is false when
// the event does not exist.
func (uc EventQueryUseCase) GetEventPassword(ctx context.Context, eventID string) (string, bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return "", false, domainerrors.ErrInvalidEventID
	}
	if password, ok := uc.cached(ctx, eventID); ok {
		return password, true, nil
	}
	return uc.loadPassword(ctx, eventID)
}

// loadPassword reads the stored password, decrypts it and refreshes the cache.
func (uc EventQueryUseCase) loadPassword(ctx context.Context, eventID string) (string, bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	record, err := uc.Events.GetEvent(ctx, eventID)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	password, err := uc.Codec.Decrypt(record.EncryptedPassword)
	if err != nil {
		logger.Error("event password decryption failed",
			"event", "voting_event_password_decrypt_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"error", err.Error(),
		)
		return "", false, err
	}
	if uc.PasswordCache != nil {
		ttl := uc.CacheTTL
		if ttl <= 0 {
			ttl = DefaultPasswordCacheTTL
		}
		if err := uc.PasswordCache.Set(ctx, eventID, password, uc.now().Add(ttl)); err != nil {
			logger.Warn("event password cache write failed",
				"event", "voting_event_cache_set_failed",
				"module", application.LogModule,
				"layer", application.LogLayer,
				"event_id", eventID,
				"error", err.Error(),
			)
		}
	}
	return password, true, nil
}

func (uc EventQueryUseCase) cached(ctx context.Context, eventID string) (string, bool) {
	if uc.PasswordCache == nil {
		return "", false
	}
	password, ok, err := uc.PasswordCache.Get(ctx, eventID, uc.now())
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("event password cache read failed",
			"event", "voting_event_cache_get_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"error", err.Error(),
		)
		return "", false
	}
	return password, ok
}

func (uc EventQueryUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

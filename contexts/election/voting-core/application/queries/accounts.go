package queries

import (
	"context"
	"log/slog"
	"strings"

	application "evote/contexts/election/voting-core/application"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

type AccountQueryUseCase struct {
	Accounts ports.AccountRepository
	Codec    ports.CredentialCodec
	Logger   *slog.Logger
}

// ListAccounts returns the event's accounts with plaintext passwords. Rows
// that fail to decrypt are logged and left out.
func (uc AccountQueryUseCase) ListAccounts(ctx context.Context, eventID string) ([]entities.Account, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}

	records, err := uc.Accounts.ListAccounts(ctx, eventID)
	if err != nil {
		return nil, err
	}
	accounts := make([]entities.Account, 0, len(records))
	for _, record := range records {
		password, err := uc.Codec.Decrypt(record.EncryptedPassword)
		if err != nil {
			logger.Warn("account dropped from listing",
				"event", "voting_account_decrypt_failed",
				"module", application.LogModule,
				"layer", application.LogLayer,
				"event_id", eventID,
				"user_id", record.AccountID,
				"error", err.Error(),
			)
			continue
		}
		accounts = append(accounts, entities.Account{
			AccountID: record.AccountID,
			Username:  record.Username,
			Password:  password,
			EventID:   record.EventID,
			CreatedAt: record.CreatedAt,
		})
	}
	return accounts, nil
}

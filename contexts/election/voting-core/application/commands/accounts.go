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

const DefaultMaxAccountsPerRequest = 1000

// AccountUseCase provisions one-time voter accounts in bulk.
type AccountUseCase struct {
	Events      ports.EventRepository
	Accounts    ports.AccountRepository
	Codec       ports.CredentialCodec
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	MaxAccounts int
	Logger      *slog.Logger
}

// CreateAccounts generates count accounts for the event. Accounts that fail
// to generate or persist are logged and skipped, so the result may be shorter
// than count without an error.
func (uc AccountUseCase) CreateAccounts(ctx context.Context, eventID string, count int) ([]entities.Account, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domainerrors.ErrInvalidEventID
	}
	limit := uc.MaxAccounts
	if limit <= 0 {
		limit = DefaultMaxAccountsPerRequest
	}
	if count <= 0 || count > limit {
		logger.Warn("account provisioning validation failed",
			"event", "voting_accounts_validation_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", eventID,
			"requested", count,
			"limit", limit,
		)
		return nil, domainerrors.ErrInvalidAccountCount
	}
	if _, err := uc.Events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	accounts := make([]entities.Account, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return accounts, err
		}
		account, err := uc.createOne(ctx, eventID)
		if err != nil {
			logger.Warn("account provisioning skipped",
				"event", "voting_account_create_skipped",
				"module", application.LogModule,
				"layer", application.LogLayer,
				"event_id", eventID,
				"index", i,
				"error", err.Error(),
			)
			continue
		}
		accounts = append(accounts, account)
	}

	logger.Info("accounts provisioned",
		"event", "voting_accounts_provisioned",
		"module", application.LogModule,
		"layer", application.LogLayer,
		"event_id", eventID,
		"requested", count,
		"created", len(accounts),
	)
	return accounts, nil
}

func (uc AccountUseCase) createOne(ctx context.Context, eventID string) (entities.Account, error) {
	accountID, err := application.ShortCode(ctx, uc.IDGen, application.AccountIDLength, true)
	if err != nil {
		return entities.Account{}, err
	}
	username, err := application.ShortCode(ctx, uc.IDGen, application.UsernameLength, false)
	if err != nil {
		return entities.Account{}, err
	}
	password, err := application.ShortCode(ctx, uc.IDGen, application.AccountPasswordLength, true)
	if err != nil {
		return entities.Account{}, err
	}
	encrypted, err := uc.Codec.Encrypt(password)
	if err != nil {
		return entities.Account{}, err
	}

	now := uc.now()
	if err := uc.Accounts.CreateAccount(ctx, ports.AccountRecord{
		AccountID:         accountID,
		Username:          username,
		EncryptedPassword: encrypted,
		EventID:           eventID,
		CreatedAt:         now,
	}); err != nil {
		return entities.Account{}, err
	}
	return entities.Account{
		AccountID: accountID,
		Username:  username,
		Password:  password,
		EventID:   eventID,
		CreatedAt: now,
	}, nil
}

func (uc AccountUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

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

type LoginUseCase struct {
	Accounts ports.AccountRepository
	Codec    ports.CredentialCodec
	Logger   *slog.Logger

	// Decoy is a ciphertext decrypted for unknown usernames so they cost the
	// same as a wrong password. Login encrypts one on demand when unset.
	Decoy string
}

// Login authenticates a voter. Unknown usernames and wrong passwords both
// yield ErrAuthFailed.
func (uc LoginUseCase) Login(ctx context.Context, username string, password string) (entities.Session, error) {
	logger := application.ResolveLogger(uc.Logger)
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return entities.Session{}, domainerrors.ErrInvalidCredentials
	}

	login, found, err := uc.Accounts.FindAccountByUsername(ctx, username)
	if err != nil {
		return entities.Session{}, err
	}
	if !found {
		uc.compareDecoy(password)
		logger.Info("login rejected",
			"event", "voting_login_rejected",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"reason", "unknown_username",
		)
		return entities.Session{}, domainerrors.ErrAuthFailed
	}

	stored, err := uc.Codec.Decrypt(login.Account.EncryptedPassword)
	if err != nil {
		logger.Error("account password decryption failed",
			"event", "voting_account_password_decrypt_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"user_id", login.Account.AccountID,
			"error", err.Error(),
		)
		return entities.Session{}, err
	}
	if !passwordsEqual(stored, password) {
		logger.Info("login rejected",
			"event", "voting_login_rejected",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"user_id", login.Account.AccountID,
			"reason", "password_mismatch",
		)
		return entities.Session{}, domainerrors.ErrAuthFailed
	}

	eventPassword, err := uc.Codec.Decrypt(login.EventEncryptedPassword)
	if err != nil {
		logger.Error("event password decryption failed",
			"event", "voting_event_password_decrypt_failed",
			"module", application.LogModule,
			"layer", application.LogLayer,
			"event_id", login.Account.EventID,
			"error", err.Error(),
		)
		return entities.Session{}, err
	}

	logger.Info("login succeeded",
		"event", "voting_login_succeeded",
		"module", application.LogModule,
		"layer", application.LogLayer,
		"user_id", login.Account.AccountID,
		"event_id", login.Account.EventID,
	)
	return entities.Session{
		UserID:        login.Account.AccountID,
		EventID:       login.Account.EventID,
		EventName:     login.EventName,
		EventPassword: eventPassword,
	}, nil
}

func (uc LoginUseCase) compareDecoy(password string) {
	decoy := uc.Decoy
	if decoy == "" {
		var err error
		if decoy, err = uc.Codec.Encrypt(password); err != nil {
			return
		}
	}
	if stored, err := uc.Codec.Decrypt(decoy); err == nil {
		_ = passwordsEqual(stored, password)
	}
}

// VerifyAccount checks an account id and password pair.
func (uc LoginUseCase) VerifyAccount(ctx context.Context, userID string, password string) (bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, domainerrors.ErrInvalidUserID
	}
	if password == "" {
		return false, nil
	}
	record, found, err := uc.Accounts.GetAccount(ctx, userID)
	if err != nil || !found {
		return false, err
	}
	stored, err := uc.Codec.Decrypt(record.EncryptedPassword)
	if err != nil {
		return false, err
	}
	return passwordsEqual(stored, password), nil
}

package ports

import (
	"context"
	"time"

	"evote/contexts/election/voting-core/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator returns fresh random identifiers. Short event ids, passwords and
// usernames are cut from these values by the application layer.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CredentialCodec encrypts secrets for storage. Encrypt uses a fresh random
// nonce per call, so ciphertexts must never be compared with each other.
type CredentialCodec interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

// EventRecord is the stored form of an event.
type EventRecord struct {
	EventID           string
	Name              string
	EncryptedPassword string
	CreatedAt         time.Time
}

type EventRepository interface {
	CreateEvent(ctx context.Context, record EventRecord) error
	GetEvent(ctx context.Context, eventID string) (EventRecord, error)
	DeleteEvent(ctx context.Context, eventID string) (bool, error)
}

// EventPasswordCache is advisory. Entries expire and the repository stays the
// source of truth.
type EventPasswordCache interface {
	Get(ctx context.Context, eventID string, now time.Time) (string, bool, error)
	Set(ctx context.Context, eventID string, password string, expiresAt time.Time) error
	Invalidate(ctx context.Context, eventID string) error
}

type NewCandidate struct {
	EventID string
	Name    string
	Photo   []byte
}

// CandidatePatch carries a partial update. A nil field keeps the stored value.
type CandidatePatch struct {
	Name  *string
	Photo []byte
}

// Empty reports whether no field was supplied. UpdateCandidate reports true
// for any non-empty patch on an existing candidate, including one that
// repeats the stored values, since postgres counts matched rows.
func (p CandidatePatch) Empty() bool {
	return p.Name == nil && p.Photo == nil
}

type CandidateRepository interface {
	AddCandidate(ctx context.Context, input NewCandidate) (int64, error)
	UpdateCandidate(ctx context.Context, eventID string, candidateID int64, patch CandidatePatch) (bool, error)
	DeleteCandidate(ctx context.Context, eventID string, candidateID int64) (bool, error)
	ListCandidateTallies(ctx context.Context, eventID string) ([]entities.CandidateTally, error)
}

// AccountRecord is the stored form of a voter account.
type AccountRecord struct {
	AccountID         string
	Username          string
	EncryptedPassword string
	EventID           string
	CreatedAt         time.Time
}

// AccountLogin is an account joined with the event it authenticates into.
type AccountLogin struct {
	Account                AccountRecord
	EventName              string
	EventEncryptedPassword string
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, record AccountRecord) error
	ListAccounts(ctx context.Context, eventID string) ([]AccountRecord, error)
	GetAccount(ctx context.Context, accountID string) (AccountRecord, bool, error)
	FindAccountByUsername(ctx context.Context, username string) (AccountLogin, bool, error)
}

// VoteRepository owns the one-vote invariant. CastVote must be atomic: it
// returns false, not an error, when a vote for (UserID, EventID) already
// exists, including when a concurrent caller wins the race.
type VoteRepository interface {
	CastVote(ctx context.Context, vote entities.Vote) (bool, error)
	HasVoted(ctx context.Context, userID string, eventID string) (bool, error)
}

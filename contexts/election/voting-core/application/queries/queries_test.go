package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"evote/contexts/election/voting-core/adapters/crypto"
	"evote/contexts/election/voting-core/adapters/memory"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seeded struct {
	store   *memory.Store
	cache   *memory.PasswordCache
	codec   *crypto.AESCodec
	clock   fixedClock
	eventID string
	eventPW string
}

// seedEvent stores an event and accounts the way the command side does, with
// encrypted passwords.
func seedEvent(t *testing.T, eventID string, eventPassword string, accounts map[string]string) seeded {
	t.Helper()
	ctx := context.Background()
	codec, err := crypto.NewAESCodec("test-secret")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	store := memory.NewStore()
	encrypted, _ := codec.Encrypt(eventPassword)
	if err := store.CreateEvent(ctx, ports.EventRecord{EventID: eventID, Name: "Club Election", EncryptedPassword: encrypted}); err != nil {
		t.Fatalf("create event: %v", err)
	}
	i := 0
	for username, password := range accounts {
		i++
		encryptedPW, _ := codec.Encrypt(password)
		if err := store.CreateAccount(ctx, ports.AccountRecord{
			AccountID:         eventID + "-U" + string(rune('0'+i)),
			Username:          username,
			EncryptedPassword: encryptedPW,
			EventID:           eventID,
		}); err != nil {
			t.Fatalf("create account: %v", err)
		}
	}
	return seeded{
		store:   store,
		cache:   memory.NewPasswordCache(),
		codec:   codec,
		clock:   fixedClock{now: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)},
		eventID: eventID,
		eventPW: eventPassword,
	}
}

func (s seeded) eventQueries() EventQueryUseCase {
	return EventQueryUseCase{
		Events:        s.store,
		Codec:         s.codec,
		PasswordCache: s.cache,
		CacheTTL:      time.Minute,
		Clock:         s.clock,
	}
}

func TestLoginRoundTrip(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "PASSWORD"})
	login := LoginUseCase{Accounts: s.store, Codec: s.codec}

	session, err := login.Login(context.Background(), "voter001", "PASSWORD")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.EventID != s.eventID || session.EventName != "Club Election" || session.EventPassword != "abc123" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "PASSWORD"})
	login := LoginUseCase{Accounts: s.store, Codec: s.codec}
	ctx := context.Background()

	_, wrongPassword := login.Login(ctx, "voter001", "WRONG")
	_, unknownUser := login.Login(ctx, "nobody", "PASSWORD")
	if !errors.Is(wrongPassword, domainerrors.ErrAuthFailed) || !errors.Is(unknownUser, domainerrors.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed for both, got %v and %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("failure messages must not reveal which part was wrong")
	}
	if _, err := login.Login(ctx, " ", "x"); !errors.Is(err, domainerrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for blank username, got %v", err)
	}
}

type countingCodec struct {
	ports.CredentialCodec
	decrypts int
}

func (c *countingCodec) Decrypt(ciphertext string) (string, error) {
	c.decrypts++
	return c.CredentialCodec.Decrypt(ciphertext)
}

func TestLoginUnknownUsernameDecryptsLikeWrongPassword(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "PASSWORD"})
	ctx := context.Background()

	for _, decoy := range []string{"", mustEncrypt(t, s.codec, "other")} {
		codec := &countingCodec{CredentialCodec: s.codec}
		login := LoginUseCase{Accounts: s.store, Codec: codec, Decoy: decoy}

		if _, err := login.Login(ctx, "voter001", "WRONG"); !errors.Is(err, domainerrors.ErrAuthFailed) {
			t.Fatalf("expected auth failure, got %v", err)
		}
		wrongPassword := codec.decrypts
		codec.decrypts = 0
		if _, err := login.Login(ctx, "nobody", "PASSWORD"); !errors.Is(err, domainerrors.ErrAuthFailed) {
			t.Fatalf("expected auth failure, got %v", err)
		}
		if codec.decrypts != wrongPassword {
			t.Fatalf("decoy %q: unknown username decrypted %d times, wrong password %d", decoy, codec.decrypts, wrongPassword)
		}
	}
}

func mustEncrypt(t *testing.T, codec ports.CredentialCodec, plaintext string) string {
	t.Helper()
	ciphertext, err := codec.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	return ciphertext
}

func TestVerifyAccount(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "PASSWORD"})
	login := LoginUseCase{Accounts: s.store, Codec: s.codec}
	ctx := context.Background()

	ok, err := login.VerifyAccount(ctx, "EV000001-U1", "PASSWORD")
	if err != nil || !ok {
		t.Fatalf("expected verified account, got %v err=%v", ok, err)
	}
	ok, err = login.VerifyAccount(ctx, "EV000001-U1", "nope")
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v err=%v", ok, err)
	}
	ok, err = login.VerifyAccount(ctx, "missing", "PASSWORD")
	if err != nil || ok {
		t.Fatalf("expected unknown account to be false, got %v err=%v", ok, err)
	}
}

func TestBallotGating(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", nil)
	ctx := context.Background()
	_, _ = s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Alice", Photo: []byte{9}})
	_, _ = s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Bob"})

	_ = s.store.CreateEvent(ctx, ports.EventRecord{EventID: "EV000002", Name: "Other", EncryptedPassword: mustEncrypt(t, s.codec, "zzz999")})
	_, _ = s.store.AddCandidate(ctx, ports.NewCandidate{EventID: "EV000002", Name: "Mallory"})

	ballot := BallotUseCase{Events: s.eventQueries(), Candidates: s.store}

	entries, found, err := ballot.GetBallot(ctx, s.eventID, "abc123")
	if err != nil || !found {
		t.Fatalf("expected ballot, got found=%v err=%v", found, err)
	}
	if len(entries) != 2 || entries[0].Name != "Alice" || entries[1].Name != "Bob" {
		t.Fatalf("unexpected ballot entries: %+v", entries)
	}

	if _, found, err := ballot.GetBallot(ctx, s.eventID, "wrong1"); err != nil || found {
		t.Fatalf("expected wrong password to be absent, got found=%v err=%v", found, err)
	}
	if _, found, err := ballot.GetBallot(ctx, "MISSING1", "abc123"); err != nil || found {
		t.Fatalf("expected unknown event to be absent, got found=%v err=%v", found, err)
	}
	if _, found, _ := ballot.GetBallot(ctx, s.eventID, "zzz999"); found {
		t.Fatalf("another event's password must not open this ballot")
	}
}

func TestBallotFallsBackToStorageOnStaleCache(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", nil)
	ctx := context.Background()
	_ = s.cache.Set(ctx, s.eventID, "stale0", s.clock.now.Add(time.Hour))

	ballot := BallotUseCase{Events: s.eventQueries(), Candidates: s.store}
	if _, found, err := ballot.GetBallot(ctx, s.eventID, "abc123"); err != nil || !found {
		t.Fatalf("expected storage to win over stale cache, got found=%v err=%v", found, err)
	}
	cached, ok, _ := s.cache.Get(ctx, s.eventID, s.clock.now)
	if !ok || cached != "abc123" {
		t.Fatalf("expected cache refreshed, got %q ok=%v", cached, ok)
	}
}

func TestGetEventPasswordReadsThroughCache(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", nil)
	ctx := context.Background()
	uc := s.eventQueries()

	password, found, err := uc.GetEventPassword(ctx, s.eventID)
	if err != nil || !found || password != "abc123" {
		t.Fatalf("unexpected password lookup: %q found=%v err=%v", password, found, err)
	}
	if cached, ok, _ := s.cache.Get(ctx, s.eventID, s.clock.now); !ok || cached != "abc123" {
		t.Fatalf("expected cache populated")
	}
	if _, found, err := uc.GetEventPassword(ctx, "MISSING1"); err != nil || found {
		t.Fatalf("expected unknown event to be absent, got found=%v err=%v", found, err)
	}
}

func TestListAccountsDropsUndecryptableRows(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "PASS0001", "voter002": "PASS0002"})
	if !s.store.CorruptAccountPassword("EV000001-U1", "not-a-ciphertext") {
		t.Fatalf("expected seeded account")
	}

	uc := AccountQueryUseCase{Accounts: s.store, Codec: s.codec}
	accounts, err := uc.ListAccounts(context.Background(), s.eventID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].AccountID != "EV000001-U2" {
		t.Fatalf("expected only the readable account, got %+v", accounts)
	}
	if accounts[0].Password != "PASS0001" && accounts[0].Password != "PASS0002" {
		t.Fatalf("expected plaintext password, got %q", accounts[0].Password)
	}
}

func TestResultsIncludeZeroVoteCandidates(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "P1", "voter002": "P2", "voter003": "P3"})
	ctx := context.Background()
	alice, _ := s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Alice"})
	_, _ = s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Bob"})
	for _, userID := range []string{"EV000001-U1", "EV000001-U2"} {
		if ok, err := s.store.CastVote(ctx, entities.Vote{UserID: userID, EventID: s.eventID, CandidateID: alice}); err != nil || !ok {
			t.Fatalf("seed vote: %v %v", ok, err)
		}
	}

	uc := ResultsUseCase{Candidates: s.store, Votes: s.store}
	results, err := uc.GetResults(ctx, s.eventID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	if results["Alice"] != 2 {
		t.Fatalf("expected Alice=2, got %d", results["Alice"])
	}
	if count, ok := results["Bob"]; !ok || count != 0 {
		t.Fatalf("expected Bob present with 0, got %d ok=%v", count, ok)
	}
	if results.Total() != s.store.VoteCount(s.eventID) {
		t.Fatalf("results total %d must equal vote rows %d", results.Total(), s.store.VoteCount(s.eventID))
	}

	voted, _ := uc.HasVoted(ctx, "EV000001-U1", s.eventID)
	notVoted, _ := uc.HasVoted(ctx, "EV000001-U3", s.eventID)
	if !voted || notVoted {
		t.Fatalf("unexpected vote status: voted=%v notVoted=%v", voted, notVoted)
	}
}

func TestResultsSumDuplicateCandidateNames(t *testing.T) {
	s := seedEvent(t, "EV000001", "abc123", map[string]string{"voter001": "P1", "voter002": "P2"})
	ctx := context.Background()
	first, _ := s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Sam"})
	second, _ := s.store.AddCandidate(ctx, ports.NewCandidate{EventID: s.eventID, Name: "Sam"})
	_, _ = s.store.CastVote(ctx, entities.Vote{UserID: "EV000001-U1", EventID: s.eventID, CandidateID: first})
	_, _ = s.store.CastVote(ctx, entities.Vote{UserID: "EV000001-U2", EventID: s.eventID, CandidateID: second})

	results, err := ResultsUseCase{Candidates: s.store, Votes: s.store}.GetResults(ctx, s.eventID)
	if err != nil {
		t.Fatalf("get results: %v", err)
	}
	if len(results) != 1 || results["Sam"] != 2 {
		t.Fatalf("expected Sam=2, got %+v", results)
	}
}

func mustEncrypt(t *testing.T, codec *crypto.AESCodec, value string) string {
	t.Helper()
	encoded, err := codec.Encrypt(value)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	return encoded
}

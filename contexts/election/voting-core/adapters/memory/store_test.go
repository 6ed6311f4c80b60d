package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"
)

func seedEvent(t *testing.T, store *Store, eventID string) {
	t.Helper()
	if err := store.CreateEvent(context.Background(), ports.EventRecord{EventID: eventID, Name: eventID, EncryptedPassword: "x"}); err != nil {
		t.Fatalf("create event: %v", err)
	}
}

func TestCastVoteIsAtomicUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedEvent(t, store, "EV1")
	candidateID, err := store.AddCandidate(ctx, ports.NewCandidate{EventID: "EV1", Name: "Alice"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if err := store.CreateAccount(ctx, ports.AccountRecord{AccountID: "U1", Username: "u1", EventID: "EV1"}); err != nil {
		t.Fatalf("create account: %v", err)
	}

	const racers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.CastVote(ctx, entities.Vote{UserID: "U1", EventID: "EV1", CandidateID: candidateID})
			if err != nil {
				t.Errorf("cast vote: %v", err)
				return
			}
			if ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Fatalf("expected exactly one accepted vote, got %d", accepted)
	}
	if store.VoteCount("EV1") != 1 {
		t.Fatalf("expected one stored vote, got %d", store.VoteCount("EV1"))
	}
}

func TestCastVoteRejectsCrossEventReferences(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedEvent(t, store, "EV1")
	seedEvent(t, store, "EV2")
	otherCandidate, _ := store.AddCandidate(ctx, ports.NewCandidate{EventID: "EV2", Name: "Bob"})
	ownCandidate, _ := store.AddCandidate(ctx, ports.NewCandidate{EventID: "EV1", Name: "Alice"})
	_ = store.CreateAccount(ctx, ports.AccountRecord{AccountID: "U1", Username: "u1", EventID: "EV1"})

	if _, err := store.CastVote(ctx, entities.Vote{UserID: "U1", EventID: "EV1", CandidateID: otherCandidate}); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if _, err := store.CastVote(ctx, entities.Vote{UserID: "U1", EventID: "EV2", CandidateID: otherCandidate}); !errors.Is(err, domainerrors.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if store.VoteCount("EV1")+store.VoteCount("EV2") != 0 {
		t.Fatalf("expected no stored votes")
	}
	if ok, err := store.CastVote(ctx, entities.Vote{UserID: "U1", EventID: "EV1", CandidateID: ownCandidate}); err != nil || !ok {
		t.Fatalf("expected accepted vote, got ok=%v err=%v", ok, err)
	}
}

func TestDeleteEventCascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedEvent(t, store, "EV1")
	candidateID, _ := store.AddCandidate(ctx, ports.NewCandidate{EventID: "EV1", Name: "Alice"})
	_ = store.CreateAccount(ctx, ports.AccountRecord{AccountID: "U1", Username: "u1", EventID: "EV1"})
	_, _ = store.CastVote(ctx, entities.Vote{UserID: "U1", EventID: "EV1", CandidateID: candidateID})

	deleted, err := store.DeleteEvent(ctx, "EV1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got deleted=%v err=%v", deleted, err)
	}
	if _, err := store.GetEvent(ctx, "EV1"); !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, found, _ := store.FindAccountByUsername(ctx, "u1"); found {
		t.Fatalf("expected account removed with event")
	}
	tallies, _ := store.ListCandidateTallies(ctx, "EV1")
	if len(tallies) != 0 || store.VoteCount("EV1") != 0 {
		t.Fatalf("expected candidates and votes removed, got %d tallies", len(tallies))
	}

	again, err := store.DeleteEvent(ctx, "EV1")
	if err != nil || again {
		t.Fatalf("expected second delete to report false, got %v err=%v", again, err)
	}
}

func TestCreateAccountRejectsDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedEvent(t, store, "EV1")
	if err := store.CreateAccount(ctx, ports.AccountRecord{AccountID: "U1", Username: "same", EventID: "EV1"}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	err := store.CreateAccount(ctx, ports.AccountRecord{AccountID: "U2", Username: "same", EventID: "EV1"})
	if !errors.Is(err, domainerrors.ErrAccountConflict) {
		t.Fatalf("expected ErrAccountConflict, got %v", err)
	}
}

func TestPasswordCacheExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewPasswordCache()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_ = cache.Set(ctx, "EV1", "abc123", now.Add(time.Minute))
	if password, ok, _ := cache.Get(ctx, "EV1", now); !ok || password != "abc123" {
		t.Fatalf("expected cached password, got %q ok=%v", password, ok)
	}
	if _, ok, _ := cache.Get(ctx, "EV1", now.Add(2*time.Minute)); ok {
		t.Fatalf("expected expired entry")
	}

	_ = cache.Set(ctx, "EV1", "abc123", now.Add(time.Minute))
	_ = cache.Invalidate(ctx, "EV1")
	if _, ok, _ := cache.Get(ctx, "EV1", now); ok {
		t.Fatalf("expected invalidated entry")
	}
}

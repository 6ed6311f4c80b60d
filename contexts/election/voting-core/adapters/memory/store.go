package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"

	"github.com/google/uuid"
)

type voteKey struct {
	userID  string
	eventID string
}

// Store is an in-process implementation of every voting-core repository. One
// mutex guards all maps so check-then-insert sequences are atomic.
type Store struct {
	mu sync.RWMutex

	events     map[string]ports.EventRecord
	candidates map[int64]entities.Candidate
	accounts   map[string]ports.AccountRecord
	usernames  map[string]string
	votes      map[voteKey]entities.Vote

	nextCandidateID int64
}

func NewStore() *Store {
	return &Store{
		events:     make(map[string]ports.EventRecord),
		candidates: make(map[int64]entities.Candidate),
		accounts:   make(map[string]ports.AccountRecord),
		usernames:  make(map[string]string),
		votes:      make(map[voteKey]entities.Vote),
	}
}

func (s *Store) CreateEvent(_ context.Context, record ports.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[record.EventID]; exists {
		return domainerrors.ErrEventConflict
	}
	s.events[record.EventID] = record
	return nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.events[strings.TrimSpace(eventID)]
	if !ok {
		return ports.EventRecord{}, domainerrors.ErrEventNotFound
	}
	return record, nil
}

// DeleteEvent removes the event and everything that references it.
func (s *Store) DeleteEvent(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eventID = strings.TrimSpace(eventID)
	if _, ok := s.events[eventID]; !ok {
		return false, nil
	}
	delete(s.events, eventID)
	for id, candidate := range s.candidates {
		if candidate.EventID == eventID {
			delete(s.candidates, id)
		}
	}
	for id, account := range s.accounts {
		if account.EventID == eventID {
			delete(s.accounts, id)
			delete(s.usernames, account.Username)
		}
	}
	for key := range s.votes {
		if key.eventID == eventID {
			delete(s.votes, key)
		}
	}
	return true, nil
}

func (s *Store) AddCandidate(_ context.Context, input ports.NewCandidate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[input.EventID]; !ok {
		return 0, domainerrors.ErrEventNotFound
	}
	s.nextCandidateID++
	id := s.nextCandidateID
	s.candidates[id] = entities.Candidate{
		CandidateID: id,
		EventID:     input.EventID,
		Name:        input.Name,
		Photo:       cloneBytes(input.Photo),
	}
	return id, nil
}

func (s *Store) UpdateCandidate(_ context.Context, eventID string, candidateID int64, patch ports.CandidatePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, ok := s.candidates[candidateID]
	if !ok || candidate.EventID != eventID {
		return false, nil
	}
	if patch.Empty() {
		return false, nil
	}
	if patch.Name != nil {
		candidate.Name = *patch.Name
	}
	if patch.Photo != nil {
		candidate.Photo = cloneBytes(patch.Photo)
	}
	s.candidates[candidateID] = candidate
	return true, nil
}

// DeleteCandidate removes the candidate and the votes cast for it.
func (s *Store) DeleteCandidate(_ context.Context, eventID string, candidateID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, ok := s.candidates[candidateID]
	if !ok || candidate.EventID != eventID {
		return false, nil
	}
	delete(s.candidates, candidateID)
	for key, vote := range s.votes {
		if vote.CandidateID == candidateID {
			delete(s.votes, key)
		}
	}
	return true, nil
}

func (s *Store) ListCandidateTallies(_ context.Context, eventID string) ([]entities.CandidateTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[int64]int)
	for key, vote := range s.votes {
		if key.eventID == eventID {
			counts[vote.CandidateID]++
		}
	}
	items := make([]entities.CandidateTally, 0)
	for _, candidate := range s.candidates {
		if candidate.EventID != eventID {
			continue
		}
		items = append(items, entities.CandidateTally{
			CandidateID: candidate.CandidateID,
			EventID:     candidate.EventID,
			Name:        candidate.Name,
			Photo:       cloneBytes(candidate.Photo),
			VoteCount:   counts[candidate.CandidateID],
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CandidateID < items[j].CandidateID
	})
	return items, nil
}

func (s *Store) CreateAccount(_ context.Context, record ports.AccountRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[record.EventID]; !ok {
		return domainerrors.ErrEventNotFound
	}
	if _, exists := s.accounts[record.AccountID]; exists {
		return domainerrors.ErrAccountConflict
	}
	if _, exists := s.usernames[record.Username]; exists {
		return domainerrors.ErrAccountConflict
	}
	s.accounts[record.AccountID] = record
	s.usernames[record.Username] = record.AccountID
	return nil
}

func (s *Store) ListAccounts(_ context.Context, eventID string) ([]ports.AccountRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.AccountRecord, 0)
	for _, account := range s.accounts {
		if account.EventID == eventID {
			items = append(items, account)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].AccountID < items[j].AccountID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (ports.AccountRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[strings.TrimSpace(accountID)]
	return account, ok, nil
}

func (s *Store) FindAccountByUsername(_ context.Context, username string) (ports.AccountLogin, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountID, ok := s.usernames[strings.TrimSpace(username)]
	if !ok {
		return ports.AccountLogin{}, false, nil
	}
	account := s.accounts[accountID]
	event, ok := s.events[account.EventID]
	if !ok {
		return ports.AccountLogin{}, false, nil
	}
	return ports.AccountLogin{
		Account:                account,
		EventName:              event.Name,
		EventEncryptedPassword: event.EncryptedPassword,
	}, true, nil
}

// CastVote mirrors the postgres transaction: the account and candidate must
// both belong to the event, and an existing vote turns the call into a no-op.
func (s *Store) CastVote(_ context.Context, vote entities.Vote) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[vote.UserID]
	if !ok || account.EventID != vote.EventID {
		return false, domainerrors.ErrAccountNotFound
	}
	candidate, ok := s.candidates[vote.CandidateID]
	if !ok || candidate.EventID != vote.EventID {
		return false, domainerrors.ErrCandidateNotFound
	}
	key := voteKey{userID: vote.UserID, eventID: vote.EventID}
	if _, exists := s.votes[key]; exists {
		return false, nil
	}
	s.votes[key] = vote
	return true, nil
}

func (s *Store) HasVoted(_ context.Context, userID string, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.votes[voteKey{userID: userID, eventID: eventID}]
	return exists, nil
}

// CorruptAccountPassword replaces a stored ciphertext. Tests use it to check
// that unreadable rows are skipped.
func (s *Store) CorruptAccountPassword(accountID string, encrypted string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return false
	}
	account.EncryptedPassword = encrypted
	s.accounts[accountID] = account
	return true
}

func (s *Store) VoteCount(eventID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for key := range s.votes {
		if key.eventID == eventID {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	return bytes.Clone(value)
}

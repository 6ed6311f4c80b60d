package entities

import (
	"strconv"
	"strings"
)

type Candidate struct {
	CandidateID int64
	EventID     string
	Name        string
	Photo       []byte
}

// CandidateTally is a candidate row joined with its vote count.
type CandidateTally struct {
	CandidateID int64
	EventID     string
	Name        string
	Photo       []byte
	VoteCount   int
}

func (t CandidateTally) HasPhoto() bool {
	return len(t.Photo) > 0
}

// BallotEntry is what a voter sees after event-password verification.
type BallotEntry struct {
	CandidateID string
	Name        string
}

// ParseCandidateID converts the opaque candidate id used at the edge into the
// storage key. ok is false for anything that is not a positive integer.
func ParseCandidateID(raw string) (int64, bool) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func FormatCandidateID(id int64) string {
	return strconv.FormatInt(id, 10)
}

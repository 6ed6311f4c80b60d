package entities

import "time"

// Vote links one account to one candidate within one event. (UserID, EventID)
// is unique for the lifetime of the event.
type Vote struct {
	UserID      string
	CandidateID int64
	EventID     string
	CastAt      time.Time
}

// Results maps candidate name to vote count.
type Results map[string]int

func (r Results) Total() int {
	total := 0
	for _, count := range r {
		total += count
	}
	return total
}

// ResultsFromTallies folds tallies into name-keyed results. Candidates sharing
// a name are summed so the total always matches the number of vote rows.
func ResultsFromTallies(tallies []CandidateTally) Results {
	results := make(Results, len(tallies))
	for _, tally := range tallies {
		results[tally.Name] += tally.VoteCount
	}
	return results
}

package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateEventRequest struct {
	EventName string `json:"event_name"`
}

type EventResponse struct {
	EventID   string `json:"event_id"`
	EventName string `json:"event_name"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"created_at"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// CandidateRequest carries the photo as standard base64. On update an absent
// name or photo keeps the stored value.
type CandidateRequest struct {
	Name        *string `json:"name,omitempty"`
	PhotoBase64 *string `json:"photo_base64,omitempty"`
}

type CandidateCreatedResponse struct {
	CandidateID string `json:"candidate_id"`
}

type UpdateResponse struct {
	Updated bool `json:"updated"`
}

type CandidateTallyItem struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	PhotoBase64 string `json:"photo_base64,omitempty"`
	VoteCount   int    `json:"vote_count"`
}

type CandidateTallyResponse struct {
	EventID    string               `json:"event_id"`
	Candidates []CandidateTallyItem `json:"candidates"`
	TotalVotes int                  `json:"total_votes"`
}

type BallotItem struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
}

type BallotResponse struct {
	EventID    string       `json:"event_id"`
	Candidates []BallotItem `json:"candidates"`
}

type CreateAccountsRequest struct {
	EventSize int `json:"event_size"`
}

type AccountItem struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccountsResponse struct {
	EventID  string        `json:"event_id"`
	Accounts []AccountItem `json:"accounts"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID        string `json:"user_id"`
	EventID       string `json:"event_id"`
	EventName     string `json:"event_name"`
	EventPassword string `json:"event_password"`
}

type CastVoteRequest struct {
	UserID      string `json:"user_id"`
	CandidateID string `json:"candidate_id"`
}

type CastVoteResponse struct {
	Accepted bool `json:"accepted"`
}

type VoteStatusResponse struct {
	UserID   string `json:"user_id"`
	EventID  string `json:"event_id"`
	HasVoted bool   `json:"has_voted"`
}

type ResultsResponse struct {
	EventID    string         `json:"event_id"`
	Results    map[string]int `json:"results"`
	TotalVotes int            `json:"total_votes"`
}

package httpadapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"evote/contexts/election/voting-core/application/facade"
	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	httptransport "evote/contexts/election/voting-core/transport/http"
)

// Handler converts transport DTOs into VotingCore calls.
type Handler struct {
	Core   facade.VotingCore
	Logger *slog.Logger
}

// CreateEventHandler godoc
// @Summary Create an election event
// @Description Creates an event and returns its id with the plaintext event password, shown once.
// @Tags voting-core
// @Accept json
// @Produce json
// @Param request body httptransport.CreateEventRequest true "Event name"
// @Success 201 {object} httptransport.EventResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/events [post]
func (h Handler) CreateEventHandler(ctx context.Context, req httptransport.CreateEventRequest) (httptransport.EventResponse, error) {
	event, err := h.Core.CreateEvent(ctx, req.EventName)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return httptransport.EventResponse{
		EventID:   event.EventID,
		EventName: event.Name,
		Password:  event.Password,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// GetEventHandler godoc
// @Summary Get an event
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.EventResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id} [get]
func (h Handler) GetEventHandler(ctx context.Context, eventID string) (httptransport.EventResponse, error) {
	event, err := h.Core.GetEvent(ctx, eventID)
	if err != nil {
		return httptransport.EventResponse{}, err
	}
	return httptransport.EventResponse{
		EventID:   event.EventID,
		EventName: event.Name,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// DeleteEventHandler godoc
// @Summary Delete an event
// @Description Removes the event with its candidates, accounts and votes.
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.DeleteResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id} [delete]
func (h Handler) DeleteEventHandler(ctx context.Context, eventID string) (httptransport.DeleteResponse, error) {
	deleted, err := h.Core.DeleteEvent(ctx, eventID)
	if err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Deleted: deleted}, nil
}

// AddCandidateHandler godoc
// @Summary Add a candidate
// @Tags voting-core
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.CandidateRequest true "Candidate name and optional base64 photo"
// @Success 201 {object} httptransport.CandidateCreatedResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 413 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id}/candidates [post]
func (h Handler) AddCandidateHandler(ctx context.Context, eventID string, req httptransport.CandidateRequest) (httptransport.CandidateCreatedResponse, error) {
	photo, err := decodePhoto(req.PhotoBase64)
	if err != nil {
		return httptransport.CandidateCreatedResponse{}, err
	}
	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	candidateID, err := h.Core.AddCandidate(ctx, eventID, name, photo)
	if err != nil {
		return httptransport.CandidateCreatedResponse{}, err
	}
	return httptransport.CandidateCreatedResponse{CandidateID: candidateID}, nil
}

// UpdateCandidateHandler godoc
// @Summary Update a candidate
// @Description Omitted or blank fields keep their stored value.
// @Tags voting-core
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param candidate_id path string true "Candidate id"
// @Param request body httptransport.CandidateRequest true "Fields to change"
// @Success 200 {object} httptransport.UpdateResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id}/candidates/{candidate_id} [put]
func (h Handler) UpdateCandidateHandler(
	ctx context.Context,
	eventID string,
	candidateID string,
	req httptransport.CandidateRequest,
) (httptransport.UpdateResponse, error) {
	photo, err := decodePhoto(req.PhotoBase64)
	if err != nil {
		return httptransport.UpdateResponse{}, err
	}
	updated, err := h.Core.UpdateCandidate(ctx, eventID, candidateID, req.Name, photo)
	if err != nil {
		return httptransport.UpdateResponse{}, err
	}
	return httptransport.UpdateResponse{Updated: updated}, nil
}

// DeleteCandidateHandler godoc
// @Summary Delete a candidate
// @Description Removes the candidate and the votes cast for it.
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Param candidate_id path string true "Candidate id"
// @Success 200 {object} httptransport.DeleteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id}/candidates/{candidate_id} [delete]
func (h Handler) DeleteCandidateHandler(ctx context.Context, eventID string, candidateID string) (httptransport.DeleteResponse, error) {
	deleted, err := h.Core.DeleteCandidate(ctx, eventID, candidateID)
	if err != nil {
		return httptransport.DeleteResponse{}, err
	}
	return httptransport.DeleteResponse{Deleted: deleted}, nil
}

// ListCandidatesHandler godoc
// @Summary List candidates with vote counts
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.CandidateTallyResponse
// @Router /api/events/{event_id}/candidates [get]
func (h Handler) ListCandidatesHandler(ctx context.Context, eventID string) (httptransport.CandidateTallyResponse, error) {
	tallies, err := h.Core.ListCandidatesWithTallies(ctx, eventID)
	if err != nil {
		return httptransport.CandidateTallyResponse{}, err
	}
	resp := httptransport.CandidateTallyResponse{
		EventID:    eventID,
		Candidates: make([]httptransport.CandidateTallyItem, 0, len(tallies)),
	}
	for _, tally := range tallies {
		item := httptransport.CandidateTallyItem{
			CandidateID: entities.FormatCandidateID(tally.CandidateID),
			Name:        tally.Name,
			VoteCount:   tally.VoteCount,
		}
		if tally.HasPhoto() {
			item.PhotoBase64 = base64.StdEncoding.EncodeToString(tally.Photo)
		}
		resp.Candidates = append(resp.Candidates, item)
		resp.TotalVotes += tally.VoteCount
	}
	return resp, nil
}

// BallotHandler godoc
// @Summary Get the ballot
// @Description Returns candidate ids and names when the event password matches.
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Param password query string false "Event password"
// @Param X-Event-Password header string false "Event password"
// @Success 200 {object} httptransport.BallotResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id}/ballot [get]
func (h Handler) BallotHandler(ctx context.Context, eventID string, password string) (httptransport.BallotResponse, bool, error) {
	entries, found, err := h.Core.GetBallot(ctx, eventID, password)
	if err != nil || !found {
		return httptransport.BallotResponse{}, found, err
	}
	resp := httptransport.BallotResponse{
		EventID:    eventID,
		Candidates: make([]httptransport.BallotItem, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Candidates = append(resp.Candidates, httptransport.BallotItem{
			CandidateID: entry.CandidateID,
			Name:        entry.Name,
		})
	}
	return resp, true, nil
}

// CreateAccountsHandler godoc
// @Summary Provision voter accounts
// @Description Returns the created credentials in plaintext. Failed inserts are skipped.
// @Tags voting-core
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.CreateAccountsRequest true "Number of accounts"
// @Success 201 {object} httptransport.AccountsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/events/{event_id}/accounts [post]
func (h Handler) CreateAccountsHandler(ctx context.Context, eventID string, req httptransport.CreateAccountsRequest) (httptransport.AccountsResponse, error) {
	accounts, err := h.Core.CreateAccounts(ctx, eventID, req.EventSize)
	if err != nil {
		return httptransport.AccountsResponse{}, err
	}
	return mapAccounts(eventID, accounts), nil
}

// ListAccountsHandler godoc
// @Summary List voter accounts
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.AccountsResponse
// @Router /api/events/{event_id}/accounts [get]
func (h Handler) ListAccountsHandler(ctx context.Context, eventID string) (httptransport.AccountsResponse, error) {
	accounts, err := h.Core.ListAccounts(ctx, eventID)
	if err != nil {
		return httptransport.AccountsResponse{}, err
	}
	return mapAccounts(eventID, accounts), nil
}

// LoginHandler godoc
// @Summary Log in a voter
// @Tags voting-core
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Voter credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/events/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	session, err := h.Core.Login(ctx, req.Username, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		UserID:        session.UserID,
		EventID:       session.EventID,
		EventName:     session.EventName,
		EventPassword: session.EventPassword,
	}, nil
}

// CastVoteHandler godoc
// @Summary Cast a vote
// @Description Only the first vote per account and event is accepted.
// @Tags voting-core
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.CastVoteRequest true "Voter and candidate"
// @Success 201 {object} httptransport.CastVoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.CastVoteResponse
// @Router /api/events/{event_id}/vote [post]
func (h Handler) CastVoteHandler(ctx context.Context, eventID string, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	accepted, err := h.Core.CastVote(ctx, req.UserID, eventID, req.CandidateID)
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{Accepted: accepted}, nil
}

// VoteStatusHandler godoc
// @Summary Report whether an account has voted
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Param user_id path string true "Account id"
// @Success 200 {object} httptransport.VoteStatusResponse
// @Router /api/events/{event_id}/vote-status/{user_id} [get]
func (h Handler) VoteStatusHandler(ctx context.Context, eventID string, userID string) (httptransport.VoteStatusResponse, error) {
	voted, err := h.Core.HasVoted(ctx, userID, eventID)
	if err != nil {
		return httptransport.VoteStatusResponse{}, err
	}
	return httptransport.VoteStatusResponse{
		UserID:   userID,
		EventID:  eventID,
		HasVoted: voted,
	}, nil
}

// ResultsHandler godoc
// @Summary Get results
// @Description Votes summed per candidate name.
// @Tags voting-core
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.ResultsResponse
// @Router /api/events/{event_id}/results [get]
func (h Handler) ResultsHandler(ctx context.Context, eventID string) (httptransport.ResultsResponse, error) {
	results, err := h.Core.GetResults(ctx, eventID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{
		EventID:    eventID,
		Results:    results,
		TotalVotes: results.Total(),
	}, nil
}

func mapAccounts(eventID string, accounts []entities.Account) httptransport.AccountsResponse {
	items := make([]httptransport.AccountItem, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, httptransport.AccountItem{
			UserID:   account.AccountID,
			Username: account.Username,
			Password: account.Password,
		})
	}
	return httptransport.AccountsResponse{
		EventID:  eventID,
		Accounts: items,
	}
}

func decodePhoto(encoded *string) ([]byte, error) {
	if encoded == nil || *encoded == "" {
		return nil, nil
	}
	photo, err := base64.StdEncoding.DecodeString(*encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: photo_base64 is not valid base64", domainerrors.ErrInvalidArgument)
	}
	return photo, nil
}

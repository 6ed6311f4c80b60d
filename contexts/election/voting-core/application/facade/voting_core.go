package facade

import (
	"context"

	"evote/contexts/election/voting-core/application/commands"
	"evote/contexts/election/voting-core/application/queries"
	"evote/contexts/election/voting-core/domain/entities"
)

// VotingCore is the single capability surface of the voting core. It only
// routes calls to the use cases and adds no behaviour of its own.
type VotingCore struct {
	Events         commands.EventUseCase
	EventQueries   queries.EventQueryUseCase
	Candidates     commands.CandidateUseCase
	CandidateTally queries.CandidateQueryUseCase
	Accounts       commands.AccountUseCase
	AccountQueries queries.AccountQueryUseCase
	Authentication queries.LoginUseCase
	Votes          commands.VoteUseCase
	Ballots        queries.BallotUseCase
	Results        queries.ResultsUseCase
}

func (c VotingCore) CreateEvent(ctx context.Context, name string) (entities.Event, error) {
	return c.Events.CreateEvent(ctx, name)
}

func (c VotingCore) GetEvent(ctx context.Context, eventID string) (entities.EventSummary, error) {
	return c.EventQueries.GetEvent(ctx, eventID)
}

func (c VotingCore) GetEventPassword(ctx context.Context, eventID string) (string, bool, error) {
	return c.EventQueries.GetEventPassword(ctx, eventID)
}

func (c VotingCore) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	return c.Events.DeleteEvent(ctx, eventID)
}

func (c VotingCore) AddCandidate(ctx context.Context, eventID string, name string, photo []byte) (string, error) {
	return c.Candidates.AddCandidate(ctx, eventID, name, photo)
}

func (c VotingCore) UpdateCandidate(
	ctx context.Context,
	eventID string,
	candidateID string,
	newName *string,
	newPhoto []byte,
) (bool, error) {
	return c.Candidates.UpdateCandidate(ctx, eventID, candidateID, newName, newPhoto)
}

func (c VotingCore) DeleteCandidate(ctx context.Context, eventID string, candidateID string) (bool, error) {
	return c.Candidates.DeleteCandidate(ctx, eventID, candidateID)
}

func (c VotingCore) ListCandidatesWithTallies(ctx context.Context, eventID string) ([]entities.CandidateTally, error) {
	return c.CandidateTally.ListCandidatesWithTallies(ctx, eventID)
}

func (c VotingCore) CreateAccounts(ctx context.Context, eventID string, count int) ([]entities.Account, error) {
	return c.Accounts.CreateAccounts(ctx, eventID, count)
}

func (c VotingCore) ListAccounts(ctx context.Context, eventID string) ([]entities.Account, error) {
	return c.AccountQueries.ListAccounts(ctx, eventID)
}

func (c VotingCore) Login(ctx context.Context, username string, password string) (entities.Session, error) {
	return c.Authentication.Login(ctx, username, password)
}

func (c VotingCore) VerifyAccount(ctx context.Context, userID string, password string) (bool, error) {
	return c.Authentication.VerifyAccount(ctx, userID, password)
}

func (c VotingCore) GetBallot(ctx context.Context, eventID string, eventPassword string) ([]entities.BallotEntry, bool, error) {
	return c.Ballots.GetBallot(ctx, eventID, eventPassword)
}

func (c VotingCore) CastVote(ctx context.Context, userID string, eventID string, candidateID string) (bool, error) {
	return c.Votes.CastVote(ctx, userID, eventID, candidateID)
}

func (c VotingCore) HasVoted(ctx context.Context, userID string, eventID string) (bool, error) {
	return c.Results.HasVoted(ctx, userID, eventID)
}

func (c VotingCore) GetResults(ctx context.Context, eventID string) (entities.Results, error) {
	return c.Results.GetResults(ctx, eventID)
}

package votingcore

import (
	"log/slog"
	"time"

	httpadapter "evote/contexts/election/voting-core/adapters/http"
	"evote/contexts/election/voting-core/adapters/memory"
	"evote/contexts/election/voting-core/application/commands"
	"evote/contexts/election/voting-core/application/facade"
	"evote/contexts/election/voting-core/application/queries"
	"evote/contexts/election/voting-core/ports"
)

type Module struct {
	Core    facade.VotingCore
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Events        ports.EventRepository
	Candidates    ports.CandidateRepository
	Accounts      ports.AccountRepository
	Votes         ports.VoteRepository
	PasswordCache ports.EventPasswordCache
	Codec         ports.CredentialCodec
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	CacheTTL      time.Duration
	MaxAccounts   int
	MaxPhotoBytes int
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	eventQueries := queries.EventQueryUseCase{
		Events:        deps.Events,
		Codec:         deps.Codec,
		PasswordCache: deps.PasswordCache,
		CacheTTL:      deps.CacheTTL,
		Clock:         deps.Clock,
		Logger:        deps.Logger,
	}
	core := facade.VotingCore{
		Events: commands.EventUseCase{
			Events:        deps.Events,
			PasswordCache: deps.PasswordCache,
			Codec:         deps.Codec,
			Clock:         deps.Clock,
			IDGen:         deps.IDGen,
			Logger:        deps.Logger,
		},
		EventQueries: eventQueries,
		Candidates: commands.CandidateUseCase{
			Candidates:    deps.Candidates,
			MaxPhotoBytes: deps.MaxPhotoBytes,
			Logger:        deps.Logger,
		},
		CandidateTally: queries.CandidateQueryUseCase{
			Candidates: deps.Candidates,
		},
		Accounts: commands.AccountUseCase{
			Events:      deps.Events,
			Accounts:    deps.Accounts,
			Codec:       deps.Codec,
			Clock:       deps.Clock,
			IDGen:       deps.IDGen,
			MaxAccounts: deps.MaxAccounts,
			Logger:      deps.Logger,
		},
		AccountQueries: queries.AccountQueryUseCase{
			Accounts: deps.Accounts,
			Codec:    deps.Codec,
			Logger:   deps.Logger,
		},
		Authentication: queries.LoginUseCase{
			Accounts: deps.Accounts,
			Codec:    deps.Codec,
			Decoy:    loginDecoy(deps.Codec),
			Logger:   deps.Logger,
		},
		Votes: commands.VoteUseCase{
			Votes:  deps.Votes,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Ballots: queries.BallotUseCase{
			Events:     eventQueries,
			Candidates: deps.Candidates,
			Logger:     deps.Logger,
		},
		Results: queries.ResultsUseCase{
			Candidates: deps.Candidates,
			Votes:      deps.Votes,
		},
	}
	return Module{
		Core: core,
		Handler: httpadapter.Handler{
			Core:   core,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires every repository to one memory.Store. The codec is
// still required because credentials are always stored encrypted.
func NewInMemoryModule(codec ports.CredentialCodec, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Events:        store,
		Candidates:    store,
		Accounts:      store,
		Votes:         store,
		PasswordCache: memory.NewPasswordCache(),
		Codec:         codec,
		Clock:         store,
		IDGen:         store,
		CacheTTL:      queries.DefaultPasswordCacheTTL,
		MaxAccounts:   commands.DefaultMaxAccountsPerRequest,
		MaxPhotoBytes: commands.DefaultMaxPhotoBytes,
		Logger:        logger,
	})
	module.Store = store
	return module
}

func loginDecoy(codec ports.CredentialCodec) string {
	if codec == nil {
		return ""
	}
	decoy, err := codec.Encrypt("decoy-password")
	if err != nil {
		return ""
	}
	return decoy
}

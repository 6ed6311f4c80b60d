package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"evote/contexts/election/voting-core/domain/entities"
	domainerrors "evote/contexts/election/voting-core/domain/errors"
	"evote/contexts/election/voting-core/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errDuplicateVote = errors.New("vote already recorded")

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateEvent(ctx context.Context, record ports.EventRecord) error {
	row := eventModel{
		ID:        strings.TrimSpace(record.EventID),
		Name:      record.Name,
		Password:  record.EncryptedPassword,
		CreatedAt: normalizeTime(record.CreatedAt),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEventConflict
		}
		return r.logError("voting_core_repo_create_event_failed", err, "event_id", row.ID)
	}
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.EventRecord, error) {
	var row eventModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventRecord{}, domainerrors.ErrEventNotFound
		}
		return ports.EventRecord{}, r.logError("voting_core_repo_get_event_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	return row.toRecord(), nil
}

// DeleteEvent relies on ON DELETE CASCADE for candidates, users and votes.
func (r *Repository) DeleteEvent(ctx context.Context, eventID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(eventID)).
		Delete(&eventModel{})
	if result.Error != nil {
		return false, r.logError("voting_core_repo_delete_event_failed", result.Error, "event_id", strings.TrimSpace(eventID))
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) AddCandidate(ctx context.Context, input ports.NewCandidate) (int64, error) {
	row := candidateModel{
		EventID: strings.TrimSpace(input.EventID),
		Name:    input.Name,
		Photo:   input.Photo,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isForeignKeyViolation(err) {
			return 0, domainerrors.ErrEventNotFound
		}
		return 0, r.logError("voting_core_repo_add_candidate_failed", err, "event_id", row.EventID)
	}
	return row.ID, nil
}

func (r *Repository) UpdateCandidate(
	ctx context.Context,
	eventID string,
	candidateID int64,
	patch ports.CandidatePatch,
) (bool, error) {
	updates := make(map[string]any, 2)
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Photo != nil {
		updates["photo"] = patch.Photo
	}
	if len(updates) == 0 {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&candidateModel{}).
		Where("id = ? AND event_id = ?", candidateID, strings.TrimSpace(eventID)).
		Updates(updates)
	if result.Error != nil {
		return false, r.logError("voting_core_repo_update_candidate_failed", result.Error,
			"event_id", strings.TrimSpace(eventID),
			"candidate_id", candidateID,
		)
	}
	return result.RowsAffected > 0, nil
}

// DeleteCandidate relies on ON DELETE CASCADE for the candidate's votes.
func (r *Repository) DeleteCandidate(ctx context.Context, eventID string, candidateID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", candidateID, strings.TrimSpace(eventID)).
		Delete(&candidateModel{})
	if result.Error != nil {
		return false, r.logError("voting_core_repo_delete_candidate_failed", result.Error,
			"event_id", strings.TrimSpace(eventID),
			"candidate_id", candidateID,
		)
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListCandidateTallies(ctx context.Context, eventID string) ([]entities.CandidateTally, error) {
	var rows []tallyRow
	err := tallyQuery(r.db.WithContext(ctx), eventID).
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("voting_core_repo_list_tallies_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	items := make([]entities.CandidateTally, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CreateAccount(ctx context.Context, record ports.AccountRecord) error {
	row := accountModel{
		ID:        strings.TrimSpace(record.AccountID),
		Username:  strings.TrimSpace(record.Username),
		Password:  record.EncryptedPassword,
		EventID:   strings.TrimSpace(record.EventID),
		CreatedAt: normalizeTime(record.CreatedAt),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		switch {
		case isUniqueViolation(err):
			return domainerrors.ErrAccountConflict
		case isForeignKeyViolation(err):
			return domainerrors.ErrEventNotFound
		}
		return r.logError("voting_core_repo_create_account_failed", err,
			"event_id", row.EventID,
			"user_id", row.ID,
		)
	}
	return nil
}

func (r *Repository) ListAccounts(ctx context.Context, eventID string) ([]ports.AccountRecord, error) {
	var rows []accountModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_core_repo_list_accounts_failed", err, "event_id", strings.TrimSpace(eventID))
	}
	items := make([]ports.AccountRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toRecord())
	}
	return items, nil
}

func (r *Repository) GetAccount(ctx context.Context, accountID string) (ports.AccountRecord, bool, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(accountID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AccountRecord{}, false, nil
		}
		return ports.AccountRecord{}, false, r.logError("voting_core_repo_get_account_failed", err, "user_id", strings.TrimSpace(accountID))
	}
	return row.toRecord(), true, nil
}

func (r *Repository) FindAccountByUsername(ctx context.Context, username string) (ports.AccountLogin, bool, error) {
	var row accountLoginRow
	result := r.db.WithContext(ctx).
		Table("users AS u").
		Select("u.id, u.username, u.password, u.event_id, u.created_at, e.name AS event_name, e.password AS event_password").
		Joins("JOIN events e ON e.id = u.event_id").
		Where("u.username = ?", strings.TrimSpace(username)).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return ports.AccountLogin{}, false, r.logError("voting_core_repo_find_account_failed", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.AccountLogin{}, false, nil
	}
	return ports.AccountLogin{
		Account: ports.AccountRecord{
			AccountID:         row.ID,
			Username:          row.Username,
			EncryptedPassword: row.Password,
			EventID:           row.EventID,
			CreatedAt:         row.CreatedAt.UTC(),
		},
		EventName:              row.EventName,
		EventEncryptedPassword: row.EventPassword,
	}, true, nil
}

// CastVote checks membership and inserts the vote in one transaction. The
// (user_id, event_id) primary key decides races: a losing insert affects no
// rows and reports false.
func (r *Repository) CastVote(ctx context.Context, vote entities.Vote) (bool, error) {
	row := voteModel{
		UserID:      strings.TrimSpace(vote.UserID),
		CandidateID: vote.CandidateID,
		EventID:     strings.TrimSpace(vote.EventID),
		CastAt:      normalizeTime(vote.CastAt),
	}

	accepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account accountModel
		if err := voterQuery(tx, row.UserID, row.EventID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		var candidates int64
		if err := tx.Model(&candidateModel{}).
			Where("id = ? AND event_id = ?", row.CandidateID, row.EventID).
			Count(&candidates).Error; err != nil {
			return err
		}
		if candidates == 0 {
			return domainerrors.ErrCandidateNotFound
		}

		var existing int64
		if err := tx.Model(&voteModel{}).
			Where("user_id = ? AND event_id = ?", row.UserID, row.EventID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errDuplicateVote
		}

		create := insertVote(tx, &row)
		if create.Error != nil {
			switch {
			case isUniqueViolation(create.Error):
				return errDuplicateVote
			case isForeignKeyViolation(create.Error):
				return domainerrors.ErrCandidateNotFound
			}
			return create.Error
		}
		accepted = create.RowsAffected > 0
		return nil
	})
	switch {
	case err == nil:
		return accepted, nil
	case errors.Is(err, errDuplicateVote):
		return false, nil
	case errors.Is(err, domainerrors.ErrNotFound):
		return false, err
	}
	return false, r.logError("voting_core_repo_cast_vote_failed", err,
		"event_id", row.EventID,
		"user_id", row.UserID,
		"candidate_id", row.CandidateID,
	)
}

// tallyQuery counts votes per candidate, keeping candidates with none.
func tallyQuery(db *gorm.DB, eventID string) *gorm.DB {
	return db.
		Table("candidates AS c").
		Select("c.id AS candidate_id, c.event_id, c.name, c.photo, COUNT(v.user_id) AS vote_count").
		Joins("LEFT JOIN votes v ON v.candidate_id = c.id AND v.event_id = c.event_id").
		Where("c.event_id = ?", strings.TrimSpace(eventID)).
		Group("c.id").
		Order("c.id ASC")
}

// voterQuery share-locks the voter's row so the account cannot be deleted
// while its vote is inserted.
func voterQuery(tx *gorm.DB, userID string, eventID string) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ? AND event_id = ?", userID, eventID)
}

func insertVote(tx *gorm.DB, row *voteModel) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
		DoNothing: true,
	}).Create(row)
}

func (r *Repository) HasVoted(ctx context.Context, userID string, eventID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("user_id = ? AND event_id = ?", strings.TrimSpace(userID), strings.TrimSpace(eventID)).
		Count(&count).Error; err != nil {
		return false, r.logError("voting_core_repo_has_voted_failed", err,
			"event_id", strings.TrimSpace(eventID),
			"user_id", strings.TrimSpace(userID),
		)
	}
	return count > 0, nil
}

// logError records the driver error and returns it wrapped in ErrPersistence.
func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election/voting-core",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting core repository operation failed", fields...)
	return fmt.Errorf("%w: %w", domainerrors.ErrPersistence, err)
}

type eventModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Password  string    `gorm:"column:password"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (eventModel) TableName() string {
	return "events"
}

func (m eventModel) toRecord() ports.EventRecord {
	return ports.EventRecord{
		EventID:           m.ID,
		Name:              m.Name,
		EncryptedPassword: m.Password,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

type candidateModel struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	EventID string `gorm:"column:event_id"`
	Name    string `gorm:"column:name"`
	Photo   []byte `gorm:"column:photo"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

type tallyRow struct {
	CandidateID int64  `gorm:"column:candidate_id"`
	EventID     string `gorm:"column:event_id"`
	Name        string `gorm:"column:name"`
	Photo       []byte `gorm:"column:photo"`
	VoteCount   int    `gorm:"column:vote_count"`
}

func (m tallyRow) toEntity() entities.CandidateTally {
	return entities.CandidateTally{
		CandidateID: m.CandidateID,
		EventID:     m.EventID,
		Name:        m.Name,
		Photo:       m.Photo,
		VoteCount:   m.VoteCount,
	}
}

type accountModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Username  string    `gorm:"column:username"`
	Password  string    `gorm:"column:password"`
	EventID   string    `gorm:"column:event_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string {
	return "users"
}

func (m accountModel) toRecord() ports.AccountRecord {
	return ports.AccountRecord{
		AccountID:         m.ID,
		Username:          m.Username,
		EncryptedPassword: m.Password,
		EventID:           m.EventID,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

type accountLoginRow struct {
	ID            string    `gorm:"column:id"`
	Username      string    `gorm:"column:username"`
	Password      string    `gorm:"column:password"`
	EventID       string    `gorm:"column:event_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	EventName     string    `gorm:"column:event_name"`
	EventPassword string    `gorm:"column:event_password"`
}

type voteModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	EventID     string    `gorm:"column:event_id;primaryKey"`
	CandidateID int64     `gorm:"column:candidate_id"`
	CastAt      time.Time `gorm:"column:cast_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func normalizeTime(value time.Time) time.Time {
	if value.IsZero() {
		return time.Now().UTC()
	}
	return value.UTC()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

var _ ports.EventRepository = (*Repository)(nil)
var _ ports.CandidateRepository = (*Repository)(nil)
var _ ports.AccountRepository = (*Repository)(nil)
var _ ports.VoteRepository = (*Repository)(nil)

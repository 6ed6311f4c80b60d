package postgresadapter

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	domainerrors "evote/contexts/election/voting-core/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	foreign := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})

	if !isUniqueViolation(unique) || isUniqueViolation(foreign) {
		t.Fatalf("unique violation misclassified")
	}
	if !isForeignKeyViolation(foreign) || isForeignKeyViolation(unique) {
		t.Fatalf("foreign key violation misclassified")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Fatalf("plain error must not be a unique violation")
	}
}

func TestLogErrorWrapsPersistence(t *testing.T) {
	var buf bytes.Buffer
	repo := NewRepository(nil, slog.New(slog.NewJSONHandler(&buf, nil)))
	cause := errors.New("connection reset")

	err := repo.logError("voting_core_repo_get_event_failed", cause, "event_id", "EV1")
	if !errors.Is(err, domainerrors.ErrPersistence) || !errors.Is(err, cause) {
		t.Fatalf("expected persistence error wrapping cause, got %v", err)
	}
	if !strings.Contains(buf.String(), `"event":"voting_core_repo_get_event_failed"`) {
		t.Fatalf("expected structured event attribute, got %s", buf.String())
	}
}

func TestSchemaKeepsOneVotePerAccountPerEvent(t *testing.T) {
	var votes string
	for _, statement := range SchemaStatements {
		if !strings.Contains(statement, "IF NOT EXISTS") {
			t.Fatalf("schema statement is not idempotent: %s", statement)
		}
		if strings.Contains(statement, "TABLE IF NOT EXISTS votes") {
			votes = statement
		}
	}
	if !strings.Contains(votes, "PRIMARY KEY (user_id, event_id)") {
		t.Fatalf("votes table must be keyed by (user_id, event_id)")
	}
	if strings.Count(votes, "ON DELETE CASCADE") != 3 {
		t.Fatalf("votes references must cascade")
	}
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=evote dbname=evote sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestInsertVoteIgnoresConflictOnVoterAndEvent(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		row := voteModel{
			UserID:      "U1",
			EventID:     "EV1",
			CandidateID: 7,
			CastAt:      time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
		}
		return insertVote(tx, &row)
	})

	if !strings.HasPrefix(sql, `INSERT INTO "votes"`) {
		t.Fatalf("expected insert into votes, got %s", sql)
	}
	if !strings.Contains(sql, `ON CONFLICT ("user_id","event_id") DO NOTHING`) {
		t.Fatalf("expected conflict on (user_id, event_id) to be ignored, got %s", sql)
	}
}

func TestVoterQueryTakesShareLock(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var account accountModel
		return voterQuery(tx, "U1", "EV1").First(&account)
	})

	if !strings.Contains(sql, `FROM "users"`) {
		t.Fatalf("expected users lookup, got %s", sql)
	}
	if !strings.Contains(sql, "event_id = 'EV1'") {
		t.Fatalf("expected lookup scoped to the event, got %s", sql)
	}
	if !strings.Contains(sql, "FOR SHARE") {
		t.Fatalf("expected share lock, got %s", sql)
	}
}

func TestTallyQueryKeepsCandidatesWithoutVotes(t *testing.T) {
	db := dryRunDB(t)
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []tallyRow
		return tallyQuery(tx, " EV1 ").Scan(&rows)
	})

	join := strings.Index(sql, "LEFT JOIN votes v")
	group := strings.Index(sql, "GROUP BY")
	if join < 0 || group < join {
		t.Fatalf("expected LEFT JOIN ... GROUP BY, got %s", sql)
	}
	if !strings.Contains(sql, "c.event_id = 'EV1'") {
		t.Fatalf("expected trimmed event filter, got %s", sql)
	}
}

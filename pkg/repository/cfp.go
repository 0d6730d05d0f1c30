package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/cfptrack/pkg/domain"
)

// CFPRepository handles cfp-related database operations
type CFPRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// cfpSQL represents a cfp for SQL operations
type cfpSQL struct {
	ID                  int64        `db:"id"`
	ConferenceName      string       `db:"conference_name"`
	SubmissionDeadline  dateSQL      `db:"submission_deadline"`
	ConferenceStartDate dateSQL      `db:"conference_start_date"`
	ConferenceEndDate   dateSQL      `db:"conference_end_date"`
	Location            string       `db:"location"`
	IsVirtual           bool         `db:"is_virtual"`
	Topics              topicsSQL    `db:"topics"`
	SubmissionURL       string       `db:"submission_url"`
	SourceURL           string       `db:"source_url"`
	Source              string       `db:"source"`
	Description         string       `db:"description"`
	CreatedAt           timestampSQL `db:"created_at"`
	UpdatedAt           timestampSQL `db:"updated_at"`
}

// topicsSQL is a JSON array of topic strings for SQL operations
type topicsSQL []string

// Value implements driver.Valuer for database storage
func (t topicsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (t *topicsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*t = topicsSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported topics type %T", value)
	}
	return json.Unmarshal(data, t)
}

// dateSQL is an optional calendar date stored as YYYY-MM-DD, empty value is NULL
type dateSQL string

func toDateSQL(t *time.Time) dateSQL {
	if t == nil {
		return ""
	}
	return dateSQL(t.Format(time.DateOnly))
}

// Value implements driver.Valuer for database storage
func (d dateSQL) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements sql.Scanner for database retrieval
func (d *dateSQL) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case string:
		*d = dateSQL(v)
	case []byte:
		*d = dateSQL(v)
	case time.Time:
		*d = dateSQL(v.Format(time.DateOnly))
	default:
		return fmt.Errorf("unsupported date type %T", value)
	}
	return nil
}

func (d dateSQL) time() (*time.Time, error) {
	if d == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, string(d))
	if err != nil {
		return nil, fmt.Errorf("parse stored date %q: %w", d, err)
	}
	return &t, nil
}

// NewCFPRepository creates a new cfp repository
func NewCFPRepository(db *sqlx.DB) *CFPRepository {
	return &CFPRepository{db: db, now: time.Now}
}

// BeginRound starts a transaction for one ingestion round, lock errors are retried
func (r *CFPRepository) BeginRound(ctx context.Context) (*Round, error) {
	var tx *sqlx.Tx
	err := withLockRetry(ctx, func() error {
		var err error
		tx, err = r.db.BeginTxx(ctx, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Round{tx: tx, now: r.now}, nil
}

// ListCreatedSince returns CFPs first stored at or after since, oldest first
func (r *CFPRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.CFP, error) {
	var recs []cfpSQL
	err := r.db.SelectContext(ctx, &recs, "SELECT * FROM cfps WHERE created_at >= ? ORDER BY created_at, id", timestampSQL(since))
	if err != nil {
		return nil, fmt.Errorf("list cfps created since %v: %w", since, err)
	}
	return toDomainCFPs(recs)
}

// GetCFP retrieves a cfp by ID
func (r *CFPRepository) GetCFP(ctx context.Context, id int64) (*domain.CFP, error) {
	var rec cfpSQL
	if err := r.db.GetContext(ctx, &rec, "SELECT * FROM cfps WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get cfp %d: %w", id, err)
	}
	return rec.toDomain()
}

// Count returns the number of stored CFPs
func (r *CFPRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM cfps"); err != nil {
		return 0, fmt.Errorf("count cfps: %w", err)
	}
	return count, nil
}

// Round is a write transaction of one ingestion round. It is not safe for concurrent use.
type Round struct {
	tx  *sqlx.Tx
	now func() time.Time
}

// FindByDedupKey returns the oldest CFP matching the key, nil if there is none.
// Nil key deadline matches records without a deadline, empty key source matches any source.
func (r *Round) FindByDedupKey(ctx context.Context, key domain.DedupKey) (*domain.CFP, error) {
	query := `SELECT * FROM cfps WHERE conference_name = ? AND submission_deadline IS ?`
	args := []any{key.ConferenceName, toDateSQL(key.Deadline)}
	if key.Source != "" {
		query += " AND source = ?"
		args = append(args, key.Source)
	}
	query += " ORDER BY id LIMIT 1"

	var rec cfpSQL
	err := r.tx.GetContext(ctx, &rec, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by dedup key: %w", err)
	}
	return rec.toDomain()
}

// Insert adds a new CFP, sets its ID and timestamps
func (r *Round) Insert(ctx context.Context, cfp *domain.CFP) error {
	now := r.now().UTC()
	rec := fromDomain(cfp)
	rec.CreatedAt, rec.UpdatedAt = timestampSQL(now), timestampSQL(now)

	query := `
		INSERT INTO cfps (conference_name, submission_deadline, conference_start_date, conference_end_date,
			location, is_virtual, topics, submission_url, source_url, source, description, created_at, updated_at)
		VALUES (:conference_name, :submission_deadline, :conference_start_date, :conference_end_date,
			:location, :is_virtual, :topics, :submission_url, :source_url, :source, :description, :created_at, :updated_at)
	`
	result, err := r.tx.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("insert cfp: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get insert id: %w", err)
	}
	cfp.ID, cfp.CreatedAt, cfp.UpdatedAt = id, now, now
	return nil
}

// Update overwrites all normalized fields of the CFP with matching ID, creation time is not changed
func (r *Round) Update(ctx context.Context, cfp *domain.CFP) error {
	now := r.now().UTC()
	rec := fromDomain(cfp)
	rec.UpdatedAt = timestampSQL(now)

	query := `
		UPDATE cfps SET conference_name = :conference_name, submission_deadline = :submission_deadline,
			conference_start_date = :conference_start_date, conference_end_date = :conference_end_date,
			location = :location, is_virtual = :is_virtual, topics = :topics, submission_url = :submission_url,
			source_url = :source_url, source = :source, description = :description, updated_at = :updated_at
		WHERE id = :id
	`
	result, err := r.tx.NamedExecContext(ctx, query, rec)
	if err != nil {
		return fmt.Errorf("update cfp %d: %w", cfp.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update cfp %d: %w", cfp.ID, sql.ErrNoRows)
	}
	cfp.UpdatedAt = now
	return nil
}

// Commit persists all writes of the round
func (r *Round) Commit() error {
	if err := r.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback discards all writes of the round
func (r *Round) Rollback() error {
	if err := r.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func fromDomain(c *domain.CFP) cfpSQL {
	return cfpSQL{
		ID:                  c.ID,
		ConferenceName:      c.ConferenceName,
		SubmissionDeadline:  toDateSQL(c.SubmissionDeadline),
		ConferenceStartDate: toDateSQL(c.ConferenceStartDate),
		ConferenceEndDate:   toDateSQL(c.ConferenceEndDate),
		Location:            c.Location,
		IsVirtual:           c.IsVirtual,
		Topics:              topicsSQL(c.Topics),
		SubmissionURL:       c.SubmissionURL,
		SourceURL:           c.SourceURL,
		Source:              c.Source,
		Description:         c.Description,
	}
}

func (c *cfpSQL) toDomain() (*domain.CFP, error) {
	deadline, err := c.SubmissionDeadline.time()
	if err != nil {
		return nil, err
	}
	start, err := c.ConferenceStartDate.time()
	if err != nil {
		return nil, err
	}
	end, err := c.ConferenceEndDate.time()
	if err != nil {
		return nil, err
	}
	topics := []string(c.Topics)
	if topics == nil {
		topics = []string{}
	}
	return &domain.CFP{
		ID:                  c.ID,
		ConferenceName:      c.ConferenceName,
		SubmissionDeadline:  deadline,
		ConferenceStartDate: start,
		ConferenceEndDate:   end,
		Location:            c.Location,
		IsVirtual:           c.IsVirtual,
		Topics:              topics,
		SubmissionURL:       c.SubmissionURL,
		SourceURL:           c.SourceURL,
		Source:              c.Source,
		Description:         c.Description,
		CreatedAt:           time.Time(c.CreatedAt),
		UpdatedAt:           time.Time(c.UpdatedAt),
	}, nil
}

func toDomainCFPs(recs []cfpSQL) ([]domain.CFP, error) {
	res := make([]domain.CFP, 0, len(recs))
	for i := range recs {
		c, err := recs[i].toDomain()
		if err != nil {
			return nil, err
		}
		res = append(res, *c)
	}
	return res, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/article-backup/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS backup_runs (
	run_id      TEXT PRIMARY KEY,
	account     TEXT NOT NULL,
	state       TEXT NOT NULL,
	listed      INTEGER NOT NULL DEFAULT 0,
	written     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	output_path TEXT NOT NULL DEFAULT '',
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS post_backups (
	url             TEXT PRIMARY KEY,
	run_id          TEXT NOT NULL REFERENCES backup_runs (run_id),
	sequence_number TEXT NOT NULL,
	title           TEXT NOT NULL,
	tags            TEXT NOT NULL,
	body            TEXT NOT NULL,
	backed_up_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostArchiveRepoImpl provides a concrete implementation for the PostArchiveRepository interface using PostgreSQL.
type PostArchiveRepoImpl struct {
	db *pgxpool.Pool
}

// NewPostArchiveRepo creates a new instance of PostArchiveRepoImpl.
func NewPostArchiveRepo(db *pgxpool.Pool) *PostArchiveRepoImpl {
	return &PostArchiveRepoImpl{db: db}
}

// EnsureSchema creates the archive tables if they do not exist.
func (r *PostArchiveRepoImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create archive schema: %w", err)
	}
	return nil
}

// SaveRun stores or updates the run row.
func (r *PostArchiveRepoImpl) SaveRun(ctx context.Context, status *entity.RunStatus) error {
	query := `
		INSERT INTO backup_runs (run_id, account, state, listed, written, failed, output_path, error, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_id) DO UPDATE SET
			state = EXCLUDED.state,
			listed = EXCLUDED.listed,
			written = EXCLUDED.written,
			failed = EXCLUDED.failed,
			output_path = EXCLUDED.output_path,
			error = EXCLUDED.error,
			finished_at = EXCLUDED.finished_at;
	`
	_, err := r.db.Exec(ctx, query,
		status.RunID,
		status.Account,
		string(status.State),
		status.Listed,
		status.Written,
		status.Failed,
		status.OutputPath,
		status.Error,
		status.StartedAt,
		status.FinishedAt,
	)
	return err
}

// Save stores the latest backed up content of a post. The URL is the key, so
// repeated runs keep one row per post.
func (r *PostArchiveRepoImpl) Save(ctx context.Context, runID string, record *entity.PostRecord) error {
	query := `
		INSERT INTO post_backups (url, run_id, sequence_number, title, tags, body, backed_up_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (url) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			sequence_number = EXCLUDED.sequence_number,
			title = EXCLUDED.title,
			tags = EXCLUDED.tags,
			body = EXCLUDED.body,
			backed_up_at = EXCLUDED.backed_up_at;
	`
	_, err := r.db.Exec(ctx, query,
		record.URL,
		runID,
		record.SequenceNumber,
		record.Title,
		record.Tags,
		record.Text,
	)
	return err
}

// Ping checks the database connection.
func (r *PostArchiveRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

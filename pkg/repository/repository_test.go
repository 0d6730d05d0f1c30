package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates repositories on a private in-memory database
func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	return repos, func() { assert.NoError(t, repos.Close()) }
}

func TestNewRepositories(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repos.Ping(context.Background()))
	assert.NotNil(t, repos.CFP)
	assert.NotNil(t, repos.Setting)

	count, err := repos.CFP.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunMigrations(t *testing.T) {
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)
	ctx := context.Background()

	require.NoError(t, initSchema(ctx, db))

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pragma_table_info('cfps') WHERE name = 'description'`))
	assert.Equal(t, 1, count, "description is part of the base schema")

	require.NoError(t, runMigrations(ctx, db))
	require.NoError(t, runMigrations(ctx, db), "migrations are idempotent")

	var indexes int
	require.NoError(t, db.GetContext(ctx, &indexes, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_cfps_%'`))
	assert.Equal(t, 4, indexes)
}

func TestSplitStatements(t *testing.T) {
	sql := `-- comment
CREATE INDEX a ON t(x);

-- another
CREATE INDEX b
  ON t(y);
SELECT 1`
	stmts := splitStatements(sql)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE INDEX a ON t(x);", stmts[0])
	assert.Equal(t, "CREATE INDEX b\n  ON t(y);", stmts[1])
	assert.Equal(t, "SELECT 1", stmts[2])
	assert.Empty(t, splitStatements("-- only comments\n\n"))
}

package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the oracle library statements.
type Queries struct {
	db DBTX
}

// New creates Queries over a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Oracle is a stored source text.
type Oracle struct {
	ID         string
	Name       string
	SourcePath sql.NullString
	Text       string
	TextHash   string
	WordCount  int64
	CreatedAt  time.Time
}

// OracleSummary is an oracle without its text.
type OracleSummary struct {
	ID         string
	Name       string
	SourcePath sql.NullString
	WordCount  int64
	CreatedAt  time.Time
}

const createOracle = `
INSERT INTO oracles (id, name, source_path, text, text_hash, word_count)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreateOracleParams holds the columns for CreateOracle.
type CreateOracleParams struct {
	ID         string
	Name       string
	SourcePath sql.NullString
	Text       string
	TextHash   string
	WordCount  int64
}

// CreateOracle inserts an oracle and returns the stored row.
func (q *Queries) CreateOracle(ctx context.Context, arg CreateOracleParams) (Oracle, error) {
	_, err := q.db.ExecContext(ctx, createOracle,
		arg.ID,
		arg.Name,
		arg.SourcePath,
		arg.Text,
		arg.TextHash,
		arg.WordCount,
	)
	if err != nil {
		return Oracle{}, err
	}
	return q.GetOracleByName(ctx, arg.Name)
}

const getOracleByName = `
SELECT id, name, source_path, text, text_hash, word_count, created_at
FROM oracles
WHERE name = ?
`

// GetOracleByName returns sql.ErrNoRows when no oracle has that name.
func (q *Queries) GetOracleByName(ctx context.Context, name string) (Oracle, error) {
	row := q.db.QueryRowContext(ctx, getOracleByName, name)
	var i Oracle
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SourcePath,
		&i.Text,
		&i.TextHash,
		&i.WordCount,
		&i.CreatedAt,
	)
	return i, err
}

const getOracleByHash = `
SELECT id, name, source_path, text, text_hash, word_count, created_at
FROM oracles
WHERE text_hash = ?
`

// GetOracleByHash returns sql.ErrNoRows when the text is not stored.
func (q *Queries) GetOracleByHash(ctx context.Context, textHash string) (Oracle, error) {
	row := q.db.QueryRowContext(ctx, getOracleByHash, textHash)
	var i Oracle
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.SourcePath,
		&i.Text,
		&i.TextHash,
		&i.WordCount,
		&i.CreatedAt,
	)
	return i, err
}

const listOracles = `
SELECT id, name, source_path, word_count, created_at
FROM oracles
ORDER BY name
`

// ListOracles returns all oracles ordered by name.
func (q *Queries) ListOracles(ctx context.Context) ([]OracleSummary, error) {
	rows, err := q.db.QueryContext(ctx, listOracles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OracleSummary
	for rows.Next() {
		var i OracleSummary
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.SourcePath,
			&i.WordCount,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteOracleByName = `DELETE FROM oracles WHERE name = ?`

// DeleteOracleByName returns the number of rows removed.
func (q *Queries) DeleteOracleByName(ctx context.Context, name string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteOracleByName, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countOracles = `SELECT COUNT(*) FROM oracles`

// CountOracles returns the number of stored oracles.
func (q *Queries) CountOracles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countOracles).Scan(&count)
	return count, err
}

const sumWordCount = `SELECT COALESCE(SUM(word_count), 0) FROM oracles`

// SumWordCount returns the total number of words across all oracles.
func (q *Queries) SumWordCount(ctx context.Context) (int64, error) {
	var total int64
	err := q.db.QueryRowContext(ctx, sumWordCount).Scan(&total)
	return total, err
}

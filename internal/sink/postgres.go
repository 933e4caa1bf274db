// internal/sink/postgres.go
package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"

	"application-intake/internal/common/config"
	"application-intake/internal/common/database"
	"application-intake/internal/common/errors"
	"application-intake/internal/common/logger"

	"github.com/lib/pq"
)

const (
	createTablesSQL = `CREATE TABLE IF NOT EXISTS sheet_tables (
	name       TEXT PRIMARY KEY,
	header     JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	createRowsSQL = `CREATE TABLE IF NOT EXISTS sheet_rows (
	id          BIGSERIAL PRIMARY KEY,
	table_name  TEXT NOT NULL REFERENCES sheet_tables(name),
	row_data    JSONB NOT NULL,
	appended_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	// an existing table only receives a header when it has none
	upsertTableSQL = `INSERT INTO sheet_tables (name, header) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET header = EXCLUDED.header
WHERE sheet_tables.header = '[]'::jsonb`
	insertRowSQL  = `INSERT INTO sheet_rows (table_name, row_data) VALUES ($1, $2)`
	currentDBSQL  = `SELECT current_database()`
	listTablesSQL = `SELECT name FROM sheet_tables ORDER BY name`
)

// Postgres error codes the sink distinguishes.
const (
	pqForeignKeyViolation   = "23503"
	pqUndefinedTable        = "42P01"
	pqInsufficientPrivilege = "42501"
	pqInvalidPassword       = "28P01"
	pqInvalidAuthorization  = "28000"
)

// PostgresSink stores every table in two relations: one row per table with
// its header, and one JSON row per appended data row.
type PostgresSink struct {
	client *database.PostgresClient
	logger logger.Logger

	mu          sync.Mutex
	schemaReady bool
}

func NewPostgresSink(client *database.PostgresClient, log logger.Logger) *PostgresSink {
	return &PostgresSink{
		client: client,
		logger: log.WithFields(map[string]interface{}{"sink": config.SinkDriverPostgres}),
	}
}

func (p *PostgresSink) Name() string {
	return config.SinkDriverPostgres
}

func (p *PostgresSink) Probe(ctx context.Context) (*ProbeResult, error) {
	result := &ProbeResult{Tables: []string{}}
	if err := p.client.QueryRow(ctx, currentDBSQL).Scan(&result.Title); err != nil {
		return nil, p.classify(err, func(err error) *errors.StandardError {
			return errors.NewSinkUnreachableError(p.Name(), err)
		})
	}

	rows, err := p.client.DB.QueryContext(ctx, listTablesSQL)
	if err != nil {
		if pqCode(err) == pqUndefinedTable {
			return result, nil
		}
		return nil, p.classify(err, func(err error) *errors.StandardError {
			return errors.NewSinkUnreachableError(p.Name(), err)
		})
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.NewSinkUnreachableError(p.Name(), err)
		}
		result.Tables = append(result.Tables, name)
	}
	return result, rows.Err()
}

func (p *PostgresSink) EnsureTablesExist(ctx context.Context, tables []Table) error {
	if err := p.ensureSchema(ctx); err != nil {
		return p.classify(err, errors.NewSinkPreparationFailedError)
	}

	err := p.client.WithTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tables {
			header, err := json.Marshal(t.Header)
			if err != nil {
				return fmt.Errorf("failed to encode header of %s: %w", t.Name, err)
			}
			if _, err := tx.ExecContext(ctx, upsertTableSQL, t.Name, header); err != nil {
				return fmt.Errorf("failed to ensure table %s: %w", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return p.classify(err, errors.NewSinkPreparationFailedError)
	}
	return nil
}

func (p *PostgresSink) ensureSchema(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schemaReady {
		return nil
	}
	for _, stmt := range []string{createTablesSQL, createRowsSQL} {
		if _, err := p.client.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create sink schema: %w", err)
		}
	}
	p.schemaReady = true
	p.logger.Debug("sink schema ready", nil)
	return nil
}

func (p *PostgresSink) AppendRow(ctx context.Context, table string, row []interface{}) error {
	data, err := json.Marshal(row)
	if err != nil {
		return errors.NewSinkAppendFailedError(table, err)
	}

	if _, err := p.client.Exec(ctx, insertRowSQL, table, data); err != nil {
		return p.classify(err, func(err error) *errors.StandardError {
			return errors.NewSinkAppendFailedError(table, err)
		})
	}
	return nil
}

func (p *PostgresSink) classify(err error, fallback func(error) *errors.StandardError) *errors.StandardError {
	switch pqCode(err) {
	case pqForeignKeyViolation, pqUndefinedTable:
		return errors.NewSinkNotFoundError(p.Name(), err)
	case pqInsufficientPrivilege:
		return errors.NewSinkPermissionDeniedError(p.Name(), err)
	case pqInvalidPassword, pqInvalidAuthorization:
		return errors.NewSinkAuthFailedError(p.Name(), err)
	}
	if isUnreachable(err) || stderrors.Is(err, sql.ErrConnDone) {
		return errors.NewSinkUnreachableError(p.Name(), err)
	}
	return fallback(err)
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

package audit

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/stakewarden/stakewarden/internal/vault"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS vault_events (
	id           TEXT PRIMARY KEY,
	event_type   TEXT NOT NULL,
	staker       TEXT NOT NULL,
	record_count BIGINT NOT NULL,
	record_index BIGINT NOT NULL,
	acceptor     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS vault_events_staker_idx ON vault_events (staker, created_at);
`

const insertEventSQL = `
INSERT INTO vault_events (id, event_type, staker, record_count, record_index, acceptor, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING;
`

// Store persists every vault signal into Postgres for off-system
// observers. It implements vault.EventSink.
type Store struct {
	logger hclog.Logger
	pool   *pgxpool.Pool
}

func NewStore(ctx context.Context, logger hclog.Logger, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to the audit database")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "audit database is not reachable")
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to create the audit schema")
	}
	return &Store{
		logger: logger.Named("audit"),
		pool:   pool,
	}, nil
}

func (s *Store) Notify(event *vault.Event) error {
	_, err := s.pool.Exec(context.Background(), insertEventSQL,
		event.ID,
		string(event.Type),
		event.Staker.String(),
		int64(event.Count),
		int64(event.Index),
		event.Acceptor.String(),
		event.Time,
	)
	return errors.Wrap(err, "failed to insert the audit event")
}

func (s *Store) Close() {
	s.pool.Close()
}

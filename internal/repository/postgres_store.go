package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/pkg/cleanup"
)

type PostgresStore struct {
	conn PgConnection
}

func NewPostgresStore(cfg DBConfig) *PostgresStore {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for postgres kv store error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for postgres kv store: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PostgresStore{
		conn: pool,
	}
}

func NewPostgresStoreWithConn(conn PgConnection) *PostgresStore {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for postgres kv store: " + err.Error())
	}
	return &PostgresStore{
		conn: conn,
	}
}

func (ps *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	row := ps.conn.QueryRow(ctx, `SELECT value FROM kv_records WHERE key = $1;`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrKeyNotFound
		}
		return nil, errors.New("reading kv record error: " + err.Error())
	}
	return []byte(value), nil
}

func (ps *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := ps.conn.Exec(
		ctx,
		`INSERT INTO kv_records (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now();`,
		key,
		string(value),
	)
	if err != nil {
		return errors.New("writing kv record error: " + err.Error())
	}
	return nil
}

func (ps *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := ps.conn.Exec(ctx, `DELETE FROM kv_records WHERE key = $1;`, key)
	if err != nil {
		return errors.New("deleting kv record error: " + err.Error())
	}
	return nil
}

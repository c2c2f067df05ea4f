package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/squirrels/pkg/entity"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . KVStore,StateRepositoryI

type KVStore interface {
	// Reads the value stored under key. Returns ErrKeyNotFound on miss
	Get(ctx context.Context, key string) ([]byte, error)
	// Writes value under key, replacing what was there
	Set(ctx context.Context, key string, value []byte) error
	// Removes key. Removing an absent key is not an error
	Delete(ctx context.Context, key string) error
}

type StateRepositoryI interface {
	// Reads the user database. Never fails: unreadable data yields an empty database
	Load(ctx context.Context) entity.Database
	// Reads the active user id. ok is false when logged out or the record is unusable
	LoadSession(ctx context.Context) (id string, ok bool)
	// Writes the whole database record
	Save(ctx context.Context, db entity.Database) error
	// Writes the session record, or deletes it when id is empty
	SetSession(ctx context.Context, id string) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}

type RedisCfg struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/squirrels/internal/error_values"
	"github.com/limbo/squirrels/internal/observability"
	"github.com/limbo/squirrels/pkg/entity"
)

const (
	DefaultDatabaseKey = "flying_squirrels_db_v1"
	DefaultSessionKey  = "flying_squirrels_session_v1"

	dateLayout = "2006-01-02"

	recordDatabase = "database"
	recordSession  = "session"
)

type StateKeys struct {
	Database string
	Session  string
}

func DefaultKeys() StateKeys {
	return StateKeys{
		Database: DefaultDatabaseKey,
		Session:  DefaultSessionKey,
	}
}

// StateRepository keeps the user database and the session pointer as two
// independent records of a KVStore. Reads are defensive: nothing stored can
// make Load or LoadSession fail.
type StateRepository struct {
	kv      KVStore
	catalog *entity.Catalog
	keys    StateKeys
	logger  *slog.Logger
}

func NewStateRepo(kv KVStore, catalog *entity.Catalog, keys StateKeys, logger *slog.Logger) *StateRepository {
	if logger == nil {
		logger = slog.Default()
	}
	if keys.Database == "" {
		keys.Database = DefaultDatabaseKey
	}
	if keys.Session == "" {
		keys.Session = DefaultSessionKey
	}
	return &StateRepository{
		kv:      kv,
		catalog: catalog,
		keys:    keys,
		logger:  logger.With(slog.String("component", "state_repository")),
	}
}

func (sr *StateRepository) Load(ctx context.Context) entity.Database {
	blob, err := sr.kv.Get(ctx, sr.keys.Database)
	if err != nil {
		if errors.Is(err, errorvalues.ErrKeyNotFound) {
			sr.logger.Info("no stored database, starting empty")
			return entity.Database{}
		}
		sr.logger.Warn("reading database record failed, starting empty", slog.String("error", err.Error()))
		observability.RecordRecovery(recordDatabase, "read_error")
		return entity.Database{}
	}
	dec := schemaDecoder{catalog: sr.catalog}
	db := dec.decodeDatabase(blob)
	for _, issue := range dec.issues {
		sr.logger.Warn("dropped invalid stored data",
			slog.String("error", errorvalues.ErrCorruptRecord.Error()),
			slog.String("path", issue.Path),
			slog.String("reason", issue.Reason),
		)
		observability.RecordRecovery(recordDatabase, issue.Reason)
	}
	return db
}

func (sr *StateRepository) LoadSession(ctx context.Context) (string, bool) {
	raw, err := sr.kv.Get(ctx, sr.keys.Session)
	if err != nil {
		if !errors.Is(err, errorvalues.ErrKeyNotFound) {
			sr.logger.Warn("reading session record failed, treating as logged out", slog.String("error", err.Error()))
			observability.RecordRecovery(recordSession, "read_error")
		}
		return "", false
	}
	id, ok := decodeSession(raw)
	if !ok {
		sr.logger.Warn("malformed session record, treating as logged out")
		observability.RecordRecovery(recordSession, reasonMalformed)
		return "", false
	}
	return id, true
}

func (sr *StateRepository) Save(ctx context.Context, db entity.Database) error {
	if db == nil {
		db = entity.Database{}
	}
	blob, err := sonic.ConfigStd.Marshal(db)
	if err != nil {
		return errors.New("encoding database record error: " + err.Error())
	}
	if err = sr.kv.Set(ctx, sr.keys.Database, blob); err != nil {
		observability.RecordWriteError(recordDatabase)
		return errors.New("saving database record error: " + err.Error())
	}
	observability.RecordSaved(time.Now())
	return nil
}

func (sr *StateRepository) SetSession(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = sr.kv.Delete(ctx, sr.keys.Session)
	} else {
		err = sr.kv.Set(ctx, sr.keys.Session, []byte(id))
	}
	if err != nil {
		observability.RecordWriteError(recordSession)
		return errors.New("saving session record error: " + err.Error())
	}
	return nil
}

// Package bundlestore persists compiled bundle artifacts and compile-job
// history so a compile service can serve a repeat request for an identical
// bundle config without re-assembling it. Grounded on server/dao/sqlite's
// single-sql.DB-per-store, repository-per-table shape (server/dao/sqlite/sqlite.go,
// server/dao/sqlite/games.go).
package bundlestore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codetalcott/hyperfixi/internal/bundle"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound is returned when a lookup by ID or config hash finds no
	// matching row.
	ErrNotFound = errors.New("the requested bundle artifact was not found")
)

// Artifact is a single assembled bundle, as served back out of the store.
type Artifact struct {
	ID         uuid.UUID
	ConfigHash string
	Config     bundle.Config
	Result     bundle.Result
	Created    time.Time
}

// Store is the persistence surface internal/compileserver depends on. It is
// an interface (mirroring dao.Store's repository-behind-an-interface shape)
// so the HTTP layer can be tested against an in-memory fake without opening
// a real database file.
type Store interface {
	// Put records a newly-assembled artifact and returns the stored row,
	// including its generated ID.
	Put(ctx context.Context, cfg bundle.Config, res bundle.Result) (Artifact, error)

	// GetByID retrieves a previously stored artifact by its job ID.
	GetByID(ctx context.Context, id uuid.UUID) (Artifact, error)

	// GetByConfigHash retrieves a previously stored artifact whose config
	// hash matches ConfigHash(cfg), so a caller can skip Assemble entirely
	// on a cache hit. Returns ErrNotFound on a miss, never a zero Artifact.
	GetByConfigHash(ctx context.Context, hash string) (Artifact, error)

	Close() error
}

// ConfigHash computes the cache key for cfg: a sha256 digest of its
// canonical JSON encoding. Two configs with identical field values hash
// identically regardless of which API call produced them.
func ConfigHash(cfg bundle.Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode bundle config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) a sqlite-backed Store at file.
func Open(file string) (Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st := &sqliteStore{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (st *sqliteStore) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS bundle_artifacts (
		id TEXT NOT NULL PRIMARY KEY,
		config_hash TEXT NOT NULL UNIQUE,
		config_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := st.db.Exec(stmt)
	return wrapDBError(err)
}

func (st *sqliteStore) Put(ctx context.Context, cfg bundle.Config, res bundle.Result) (Artifact, error) {
	hash, err := ConfigHash(cfg)
	if err != nil {
		return Artifact{}, err
	}

	if existing, err := st.GetByConfigHash(ctx, hash); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Artifact{}, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return Artifact{}, fmt.Errorf("could not generate ID: %w", err)
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode config: %w", err)
	}
	resJSON, err := json.Marshal(res)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode result: %w", err)
	}

	created := time.Now()

	stmt, err := st.db.Prepare(`INSERT INTO bundle_artifacts (id, config_hash, config_json, result_json, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Artifact{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, id.String(), hash, string(cfgJSON), string(resJSON), created.Unix())
	if err != nil {
		return Artifact{}, wrapDBError(err)
	}

	return Artifact{
		ID:         id,
		ConfigHash: hash,
		Config:     cfg,
		Result:     res,
		Created:    created,
	}, nil
}

func (st *sqliteStore) GetByID(ctx context.Context, id uuid.UUID) (Artifact, error) {
	row := st.db.QueryRowContext(ctx, `SELECT config_hash, config_json, result_json, created FROM bundle_artifacts WHERE id = ?;`, id.String())
	return scanArtifact(id, row)
}

func (st *sqliteStore) GetByConfigHash(ctx context.Context, hash string) (Artifact, error) {
	row := st.db.QueryRowContext(ctx, `SELECT id, config_json, result_json, created FROM bundle_artifacts WHERE config_hash = ?;`, hash)

	var idStr string
	var cfgJSON, resJSON string
	var created int64
	if err := row.Scan(&idStr, &cfgJSON, &resJSON, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return Artifact{}, fmt.Errorf("stored ID %q is invalid: %w", idStr, err)
	}

	return decodeArtifact(id, hash, cfgJSON, resJSON, created)
}

func scanArtifact(id uuid.UUID, row *sql.Row) (Artifact, error) {
	var hash, cfgJSON, resJSON string
	var created int64
	if err := row.Scan(&hash, &cfgJSON, &resJSON, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, wrapDBError(err)
	}
	return decodeArtifact(id, hash, cfgJSON, resJSON, created)
}

func decodeArtifact(id uuid.UUID, hash, cfgJSON, resJSON string, created int64) (Artifact, error) {
	var cfg bundle.Config
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return Artifact{}, fmt.Errorf("decode stored config: %w", err)
	}
	var res bundle.Result
	if err := json.Unmarshal([]byte(resJSON), &res); err != nil {
		return Artifact{}, fmt.Errorf("decode stored result: %w", err)
	}
	return Artifact{
		ID:         id,
		ConfigHash: hash,
		Config:     cfg,
		Result:     res,
		Created:    time.Unix(created, 0),
	}, nil
}

func (st *sqliteStore) Close() error {
	return st.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

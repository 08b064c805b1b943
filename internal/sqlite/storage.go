package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/teenjuna/deq/internal"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned when there is no snapshot with the requested name.
	ErrNotFound = errors.New("snapshot not found")
)

const (
	memory = ":memory:"
)

// Storage is a persistent storage of named deque snapshots backed by SQLite.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - URI: ":memory:" (in-memory database)
//   - Workers: 1
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.URI(memory)
	cfg.Workers(1)
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Put stores the snapshot under its name, replacing any previous snapshot with the same name.
//
// Returns the unique ID generated for the stored snapshot and [ErrClosed] if the storage has been
// closed.
func (s *Storage) Put(ctx context.Context, snapshot Snapshot) (SnapshotID, error) {
	if snapshot.Data == nil {
		snapshot.Data = []byte{}
	}

	id := internal.GenerateID()
	_, err := s.db.ExecContext(
		ctx,
		`
		insert into snapshot (
			name,
			id,
			data,
			size,
			capacity,
			saved_at
		) values (
			:name,
			:id,
			:data,
			:size,
			:capacity,
			:saved_at
		)
		on conflict (name) do update set
			id = excluded.id,
			data = excluded.data,
			size = excluded.size,
			capacity = excluded.capacity,
			saved_at = excluded.saved_at
		`,
		sql.Named("name", snapshot.Name),
		sql.Named("id", id),
		sql.Named("data", snapshot.Data),
		sql.Named("size", snapshot.Size),
		sql.Named("capacity", snapshot.Capacity),
		sql.Named("saved_at", toTimestamp(time.Now())),
	)
	if err != nil {
		return "", wrap(err)
	}

	return id, nil
}

// Get returns the snapshot with the given name.
//
// Returns [ErrNotFound] if there is no such snapshot.
func (s *Storage) Get(ctx context.Context, name string) (*Snapshot, error) {
	var (
		snapshot Snapshot
		savedAt  int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`
		select name, id, data, size, capacity, saved_at
		from snapshot
		where name = :name
		`,
		sql.Named("name", name),
	).Scan(
		&snapshot.Name,
		&snapshot.ID,
		&snapshot.Data,
		&snapshot.Size,
		&snapshot.Capacity,
		&savedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, wrap(err)
	}

	snapshot.SavedAt = fromTimestamp(savedAt)

	return &snapshot, nil
}

// Delete permanently removes the snapshot with the given name.
//
// Returns [ErrNotFound] if there is no such snapshot.
func (s *Storage) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(
		ctx,
		`
		delete from snapshot
		where name = :name
		`,
		sql.Named("name", name),
	)
	if err != nil {
		return wrap(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// List returns all stored snapshots without their data, ordered by name.
func (s *Storage) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`
		select name, id, size, capacity, saved_at
		from snapshot
		order by name asc
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", wrap(err))
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0)
	for rows.Next() {
		var (
			snapshot Snapshot
			savedAt  int64
		)
		if err := rows.Scan(
			&snapshot.Name,
			&snapshot.ID,
			&snapshot.Size,
			&snapshot.Capacity,
			&savedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		snapshot.SavedAt = fromTimestamp(savedAt)
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return snapshots, nil
}

// Stats returns current storage statistics.
func (s *Storage) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(
		ctx,
		`
		select
			coalesce(count(*), 0) as snapshots,
			coalesce(sum(size), 0) as items
		from
			snapshot
		`,
	).Scan(
		&stats.Snapshots,
		&stats.Items,
	)
	if err != nil {
		return nil, wrap(err)
	}

	return &stats, nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Snapshot is an encoded deque stored under a name.
type Snapshot struct {
	// Name is the key the snapshot is stored under.
	Name string
	// ID is the unique identifier generated every time a snapshot is stored.
	ID SnapshotID
	// Data is the encoded items of the deque. It's empty when returned by [Storage.List].
	Data []byte
	// Size is the number of items in the snapshot.
	Size int
	// Capacity is the capacity of the deque when the snapshot was taken.
	Capacity int
	// SavedAt is the time when the snapshot was stored.
	SavedAt time.Time
}

type SnapshotID = string

// Stats represents statistics about the storage.
type Stats struct {
	// Snapshots is the total number of snapshots in storage.
	Snapshots int
	// Items is the total number of items across all snapshots.
	Items int
}

// IsBusy reports whether err means that the database was busy or locked by another connection,
// which is worth retrying.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}

func open(cfg *Config) (*sql.DB, error) {
	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	params.Add("_foreign_keys", "on")

	dsn := cfg.path
	inMemory := cfg.path == memory
	if inMemory {
		dsn = "file:" + internal.GenerateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
		params.Add("_cache_size", "-20000") // 20mb
	}
	for k, v := range cfg.query {
		if len(v) != 0 {
			params.Set(k, v[0])
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	if inMemory {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.workers)
		db.SetMaxIdleConns(cfg.workers)
	}

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists snapshot (
			name     text primary key,
			id       text not null,
			data     blob not null,
			size     int not null,
			capacity int not null,
			saved_at int not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

func wrap(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}

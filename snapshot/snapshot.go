// Package snapshot persists deques in SQLite under names and restores them.
//
// A snapshot stores the items of a deque in logical order, encoded by a [codec.Codec], together
// with the capacity of the deque. A restored deque has the same items in the same order and at
// least the same capacity, with its front at the first slot of the storage.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/deq"
	"github.com/teenjuna/deq/codec"
	"github.com/teenjuna/deq/internal/sqlite"
	"github.com/teenjuna/deq/retry"
)

var (
	// ErrNotFound is returned when there is no snapshot with the requested name.
	ErrNotFound = sqlite.ErrNotFound
	// ErrClosed is returned when the store has been closed.
	ErrClosed = sqlite.ErrClosed
)

// Store keeps named snapshots of deques. It's safe for concurrent use, but the deques passed to it
// are not: a deque must not be modified while it is being saved.
type Store struct {
	cfg     *Config
	storage *sqlite.Storage
}

// Info describes a stored snapshot.
type Info struct {
	Name     string
	ID       string
	Size     int
	Capacity int
	SavedAt  time.Time
}

// Open opens a store with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:"
//   - Workers: 1
//   - RetryPolicy: exponential, 10 attempts from 10ms to 1s
func Open(configFuncs ...ConfigFunc) (*Store, error) {
	cfg := &Config{}
	cfg.File(memory)
	cfg.Workers(1)
	cfg.RetryPolicy(retry.Exponential(10, 10*time.Millisecond, time.Second))
	for _, cf := range configFuncs {
		cf(cfg)
	}

	storage, err := sqlite.New(func(c *sqlite.Config) {
		c.URI(cfg.uri())
		c.Workers(cfg.workers)
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	return &Store{cfg: cfg, storage: storage}, nil
}

// Save encodes the items of d and stores them under name, replacing any previous snapshot with
// the same name. Returns the ID of the stored snapshot.
func Save[Item any](
	ctx context.Context,
	store *Store,
	name string,
	c codec.Codec[Item],
	d *deq.Deque[Item],
) (string, error) {
	data, err := c.Encode(d.Values())
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}

	var id string
	err = store.retry(ctx, func() error {
		id, err = store.storage.Put(ctx, sqlite.Snapshot{
			Name:     name,
			Data:     data,
			Size:     d.Size(),
			Capacity: d.Capacity(),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("put snapshot %q: %w", name, err)
	}

	return id, nil
}

// SaveAll saves every deque of the map under its key. Deques are encoded and stored concurrently
// by up to Workers goroutines, each with its own codec derived from c.
//
// Returns the IDs of the stored snapshots by name, or the first error that occurred.
func SaveAll[Item any](
	ctx context.Context,
	store *Store,
	c codec.Codec[Item],
	deques map[string]*deq.Deque[Item],
) (map[string]string, error) {
	type result struct {
		name string
		id   string
	}

	var (
		results   = make(chan result, len(deques))
		group, gc = errgroup.WithContext(ctx)
	)
	group.SetLimit(store.cfg.workers)

	for name, d := range deques {
		group.Go(func() error {
			id, err := Save(gc, store, name, c.Derive(), d)
			if err != nil {
				return err
			}
			results <- result{name: name, id: id}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	close(results)

	ids := make(map[string]string, len(deques))
	for r := range results {
		ids[r.name] = r.id
	}

	return ids, nil
}

// Load restores the deque stored under name. The configuration functions are applied to the new
// deque; its capacity is raised to the capacity of the snapshot if it is lower.
//
// Returns [ErrNotFound] if there is no such snapshot.
func Load[Item any](
	ctx context.Context,
	store *Store,
	name string,
	c codec.Codec[Item],
	configFuncs ...deq.ConfigFunc,
) (*deq.Deque[Item], error) {
	var (
		snapshot *sqlite.Snapshot
		err      error
	)
	err = store.retry(ctx, func() error {
		snapshot, err = store.storage.Get(ctx, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", name, err)
	}

	d := deq.New[Item](configFuncs...)
	d.Reserve(snapshot.Capacity)
	if err := c.Decode(snapshot.Data, d.PushBack); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if d.Size() != snapshot.Size {
		return nil, fmt.Errorf("decode items: got %d items, snapshot has %d", d.Size(), snapshot.Size)
	}

	return d, nil
}

// Delete removes the snapshot stored under name.
//
// Returns [ErrNotFound] if there is no such snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	err := s.retry(ctx, func() error {
		return s.storage.Delete(ctx, name)
	})
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	return nil
}

// List describes all stored snapshots, ordered by name.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	var (
		snapshots []sqlite.Snapshot
		err       error
	)
	err = s.retry(ctx, func() error {
		snapshots, err = s.storage.List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	infos := make([]Info, len(snapshots))
	for i, snapshot := range snapshots {
		infos[i] = Info{
			Name:     snapshot.Name,
			ID:       snapshot.ID,
			Size:     snapshot.Size,
			Capacity: snapshot.Capacity,
			SavedAt:  snapshot.SavedAt,
		}
	}

	return infos, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

func (s *Store) retry(ctx context.Context, fn func() error) error {
	return retry.Do(ctx, s.cfg.retryPolicy, sqlite.IsBusy, fn)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/go-redis/redis"
	"github.com/peterbourgon/diskv"
	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
)

// Store is a small key/value blob storage.
// Load returns app.ErrNotFound for a missing key. Save overwrites in a single step.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// DiskStore keeps one file per key under a directory.
type DiskStore struct {
	dir string
	d   *diskv.Diskv
}

func flatTransform(s string) []string { return []string{} }

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, faults.Errorf("creating store dir '%s': %w", dir, err)
	}
	return &DiskStore{
		dir: dir,
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024,
			FilePerm:     0o600,
		}),
	}, nil
}

func (s *DiskStore) Load(_ context.Context, key string) ([]byte, error) {
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, faults.Errorf("reading '%s': %w", key, app.ErrNotFound)
		}
		return nil, faults.Errorf("reading '%s': %w", key, err)
	}
	return b, nil
}

func (s *DiskStore) Save(_ context.Context, key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return faults.Errorf("writing '%s': %w", key, err)
	}
	return nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return faults.Errorf("erasing '%s': %w", key, err)
	}
	return nil
}

func (s *DiskStore) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

const redisPrefix = "noovo:"

// RedisStore keeps every key under the noovo: prefix.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClientWithURL creates a redis client and checks the connection.
func NewRedisClientWithURL(url string) (*redis.Client, error) {
	option, err := redis.ParseURL(url)
	if err != nil {
		return nil, faults.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(option)
	if _, err := client.Ping().Result(); err != nil {
		client.Close()
		return nil, faults.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.WithContext(ctx).Get(redisPrefix + key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, faults.Errorf("getting '%s': %w", key, app.ErrNotFound)
		}
		return nil, faults.Errorf("getting '%s': %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.WithContext(ctx).Set(redisPrefix+key, data, 0).Err(); err != nil {
		return faults.Errorf("setting '%s': %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.WithContext(ctx).Del(redisPrefix + key).Err(); err != nil {
		return faults.Errorf("deleting '%s': %w", key, err)
	}
	return nil
}

// Ping will check if the connection works right
func (s *RedisStore) Ping(ctx context.Context) error {
	_, err := s.client.WithContext(ctx).Ping().Result()
	return err
}

// PostgresStore keeps the blobs in the noovo_state table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the table when missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS noovo_state (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return faults.Errorf("creating noovo_state: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM noovo_state WHERE key = $1", key).Scan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, faults.Errorf("selecting '%s': %w", key, app.ErrNotFound)
		}
		return nil, faults.Errorf("selecting '%s': %w", key, err)
	}
	return b, nil
}

const upsertState = `INSERT INTO noovo_state (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated = NOW()`

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, upsertState, key, data)
	if err != nil {
		return faults.Errorf("saving '%s': %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM noovo_state WHERE key = $1", key); err != nil {
		return faults.Errorf("deleting '%s': %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

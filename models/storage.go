package models

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"coach-crm/monitoring"
	"coach-crm/utils"
)

// Storage is the persistence port: the whole collection is read and
// rewritten as a unit, never partially.
type Storage interface {
	// LoadAll fails soft: an absent or malformed blob yields an empty
	// collection, not an error.
	LoadAll(ctx context.Context) ([]Client, error)
	// SaveAll overwrites the entire stored blob.
	SaveAll(ctx context.Context, clients []Client) error
}

// RedisStorage keeps the collection as one JSON blob under a single
// Redis key.
type RedisStorage struct {
	client utils.RedisClient
	key    string
}

func NewRedisStorage(client utils.RedisClient, key string) *RedisStorage {
	if key == "" {
		key = "coach_crm_clients"
	}
	return &RedisStorage{client: client, key: key}
}

func (s *RedisStorage) LoadAll(ctx context.Context) ([]Client, error) {
	raw, err := s.client.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, utils.ErrNoState) {
			return []Client{}, nil
		}
		return nil, err
	}

	var clients []Client
	if err := json.Unmarshal([]byte(raw), &clients); err != nil {
		// Corrupt blob: treat the store as empty rather than fail.
		log.Printf("Warning: invalid client collection JSON, starting empty: %v", err)
		return []Client{}, nil
	}

	return clients, nil
}

func (s *RedisStorage) SaveAll(ctx context.Context, clients []Client) error {
	if clients == nil {
		clients = []Client{}
	}

	raw, err := json.Marshal(clients)
	if err != nil {
		return err
	}

	monitoring.StorageWrites.Inc()
	return s.client.Save(ctx, s.key, string(raw))
}

// MemoryStorage is an in-process Storage, used by tests in place of
// Redis. It round-trips through JSON so stored records do not share
// memory with callers.
type MemoryStorage struct {
	raw []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) LoadAll(ctx context.Context) ([]Client, error) {
	if s.raw == nil {
		return []Client{}, nil
	}

	var clients []Client
	if err := json.Unmarshal(s.raw, &clients); err != nil {
		return []Client{}, nil
	}
	return clients, nil
}

func (s *MemoryStorage) SaveAll(ctx context.Context, clients []Client) error {
	if clients == nil {
		clients = []Client{}
	}

	raw, err := json.Marshal(clients)
	if err != nil {
		return err
	}
	s.raw = raw
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// Redis keys holding each collection as a single JSON array.
const (
	PatientsKey      = "hepatotrack_patients"
	ConsultationsKey = "hepatotrack_consultations"
	AuditLogsKey     = "hepatotrack_audit_logs"
)

// appendMaxRetries bounds the optimistic WATCH/MULTI loop on a contended key.
const appendMaxRetries = 5

// redisCollection stores a whole collection under one key and is read and
// written as a unit.
type redisCollection[T any] struct {
	client *redis.Client
	key    string
	// id, when set, rejects appends whose id is already stored.
	id func(T) string
}

func (c *redisCollection[T]) readAll(ctx context.Context) ([]T, error) {
	return decodeCollection[T](c.client.Get(ctx, c.key), c.key)
}

func (c *redisCollection[T]) append(ctx context.Context, item T) error {
	txf := func(tx *redis.Tx) error {
		items, err := decodeCollection[T](tx.Get(ctx, c.key), c.key)
		if err != nil {
			return err
		}
		if c.id != nil {
			newID := c.id(item)
			for _, existing := range items {
				if c.id(existing) == newID {
					return domainRepo.ErrDuplicateID
				}
			}
		}
		items = append(items, item)

		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.key, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < appendMaxRetries; i++ {
		err := c.client.Watch(ctx, txf, c.key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return domainRepo.ErrStoreConflict
}

// initialize writes items only when the key does not exist yet.
func (c *redisCollection[T]) initialize(ctx context.Context, items []T) (bool, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.client.SetNX(ctx, c.key, data, 0).Result()
}

func decodeCollection[T any](cmd *redis.StringCmd, key string) ([]T, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, nil
}

func idOfPatient(p entity.Patient) string { return p.ID }

func idOfConsultation(c entity.Consultation) string { return c.ID }

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// redisAuditLogRepository appends entries to a Redis list; unlike patients and
// consultations the audit trail is never read back as a whole.
type redisAuditLogRepository struct {
	client *redis.Client
}

func NewRedisAuditLogRepository(client *redis.Client) domainRepo.AuditLogRepository {
	return &redisAuditLogRepository{client: client}
}

func (r *redisAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode audit log: %w", err)
	}
	return r.client.RPush(ctx, AuditLogsKey, data).Err()
}

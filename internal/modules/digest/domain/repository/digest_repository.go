package repository

import (
	"context"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
)

// RunRepository 摘要执行审计，只追加
type RunRepository interface {
	Append(ctx context.Context, run *digest.DigestRun) error
	ListRecent(ctx context.Context, limit int) ([]digest.DigestRun, error)
}

type NotificationRepository interface {
	// InsertIgnore 按 (recipient_id, dedupe_key) 去重插入，已存在时返回 false 且不修改原记录
	InsertIgnore(ctx context.Context, n *digest.Notification) (bool, error)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]digest.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string, at time.Time) (bool, error)
}

// CooldownLockRepository 冷却锁，TryAcquire 必须是原子的比较并设置
type CooldownLockRepository interface {
	TryAcquire(ctx context.Context, key, actorID string, now time.Time, window time.Duration) (digest.CooldownResult, error)
}

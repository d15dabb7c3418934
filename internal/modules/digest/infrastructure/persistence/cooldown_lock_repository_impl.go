package persistence

import (
	"context"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cooldownLockRepositoryImpl struct {
	db *gorm.DB
}

func NewCooldownLockRepository(db *gorm.DB) repository.CooldownLockRepository {
	return &cooldownLockRepositoryImpl{db: db}
}

// TryAcquire 先做条件更新（CAS），不存在时再尝试插入；两步都失败说明窗口内已有人执行
func (r *cooldownLockRepositoryImpl) TryAcquire(ctx context.Context, key, actorID string, now time.Time, window time.Duration) (digest.CooldownResult, error) {
	db := r.db.WithContext(ctx)

	res := db.Model(&digest.CooldownLock{}).
		Where("lock_key = ? AND last_run_at <= ?", key, now.Add(-window)).
		Updates(map[string]interface{}{
			"last_run_at": now,
			"last_run_by": actorID,
			"updated_at":  now,
		})
	if res.Error != nil {
		return digest.CooldownResult{}, res.Error
	}
	if res.RowsAffected > 0 {
		return digest.CooldownResult{Acquired: true, LastRunAt: now, LastRunBy: actorID}, nil
	}

	res = db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&digest.CooldownLock{LockKey: key, LastRunAt: now, LastRunBy: actorID, UpdatedAt: now})
	if res.Error != nil {
		return digest.CooldownResult{}, res.Error
	}
	if res.RowsAffected > 0 {
		return digest.CooldownResult{Acquired: true, LastRunAt: now, LastRunBy: actorID}, nil
	}

	var lock digest.CooldownLock
	if err := db.Where("lock_key = ?", key).First(&lock).Error; err != nil {
		return digest.CooldownResult{}, err
	}
	return digest.CooldownResult{
		Acquired:        false,
		LastRunAt:       lock.LastRunAt,
		LastRunBy:       lock.LastRunBy,
		NextAvailableAt: lock.LastRunAt.Add(window),
	}, nil
}

package lock

import (
	"context"
	"encoding/json"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"
	"FleetOps/pkg/redis"
)

const keyPrefix = "fleetops:cooldown:"

type lockValue struct {
	LastRunAt int64  `json:"last_run_at"`
	LastRunBy string `json:"last_run_by"`
}

// redisCooldownLock 多实例部署时用 SET NX PX 代替数据库行
type redisCooldownLock struct{}

func NewRedisCooldownLock() repository.CooldownLockRepository {
	return &redisCooldownLock{}
}

func (l *redisCooldownLock) TryAcquire(ctx context.Context, key, actorID string, now time.Time, window time.Duration) (digest.CooldownResult, error) {
	raw, err := json.Marshal(lockValue{LastRunAt: now.UnixMilli(), LastRunBy: actorID})
	if err != nil {
		return digest.CooldownResult{}, err
	}
	ok, err := redis.SetNX(ctx, keyPrefix+key, raw, window)
	if err != nil {
		return digest.CooldownResult{}, err
	}
	if ok {
		return digest.CooldownResult{Acquired: true, LastRunAt: now, LastRunBy: actorID}, nil
	}

	res := digest.CooldownResult{}
	if s, err := redis.Get(ctx, keyPrefix+key); err == nil {
		var v lockValue
		if json.Unmarshal([]byte(s), &v) == nil {
			res.LastRunAt = time.UnixMilli(v.LastRunAt)
			res.LastRunBy = v.LastRunBy
		}
	} else if !redis.IsNil(err) {
		return digest.CooldownResult{}, err
	}

	ttl, err := redis.PTTL(ctx, keyPrefix+key)
	if err != nil {
		return digest.CooldownResult{}, err
	}
	if ttl > 0 {
		res.NextAvailableAt = now.Add(ttl)
	} else if !res.LastRunAt.IsZero() {
		res.NextAvailableAt = res.LastRunAt.Add(window)
	} else {
		// key 恰好在 SETNX 与 PTTL 之间过期
		res.NextAvailableAt = now
	}
	return res, nil
}

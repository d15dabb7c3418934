package initial

import (
	"context"
	"fmt"
	"time"

	"FleetOps/internal/config"
	"FleetOps/pkg/redis"
	"FleetOps/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func init() {
	conf := config.GetConfig()
	host := conf.RedisConfig.Host
	port := conf.RedisConfig.Port

	// 如果未配置主机，则跳过 Redis 初始化，冷却锁回落到 MySQL
	if host == "" {
		zlog.Info("redis not configured, skipping")
		return
	}
	if port == 0 {
		port = 6379
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	zlog.Info("redis connecting", zap.String("addr", addr))

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.DB,
		PoolSize:     conf.RedisConfig.PoolSize,
		MinIdleConns: conf.RedisConfig.MinIdleConns,
	})

	redis.SetClient(client)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// 连不上就当作未配置，冷却锁回落到 MySQL
	if err := redis.Ping(ctx); err != nil {
		zlog.Error("redis connect failed", zap.String("addr", addr), zap.Error(err))
		_ = redis.Close()
		redis.SetClient(nil)
		return
	}
	zlog.Info("redis connected", zap.String("addr", addr))
}

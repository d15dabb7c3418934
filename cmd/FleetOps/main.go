package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	https_server "FleetOps/api/http"
	"FleetOps/internal/config"
	"FleetOps/internal/initial"
	"FleetOps/internal/modules/digest/interface/scheduler"
	"FleetOps/internal/modules/trend/infrastructure/mq/kafka"
	"FleetOps/internal/modules/trend/infrastructure/queue"
	"FleetOps/pkg/redis"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. 遥测消费者：未配置 kafka 时只走 HTTP 上报
	if len(conf.KafkaConfig.Brokers) > 0 && conf.KafkaConfig.TelemetryTopic != "" {
		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:  conf.KafkaConfig.Brokers,
			GroupID:  conf.KafkaConfig.ConsumerGroupID,
			Topic:    conf.KafkaConfig.TelemetryTopic,
			ClientID: conf.KafkaConfig.ClientID,
		})
		if err != nil {
			zlog.Error("telemetry consumer init failed", zap.Error(err))
		} else {
			defer consumer.Close()
			worker := queue.NewTelemetryConsumerWorker(consumer, https_server.ActionSvc)
			go func() {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					zlog.Error("telemetry consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	// 3. 进程内调度：没有外部 cron 调用 /cron/trend-digest 时开启
	var sched *scheduler.SchedulerManager
	if conf.DigestConfig.InProcessCron {
		sched = scheduler.NewSchedulerManager(https_server.DigestSvc, conf.DigestConfig.Spec())
		if err := sched.Start(); err != nil {
			zlog.Fatal("trend digest scheduler start failed", zap.Error(err))
		}
	}

	// 4. 启动 HTTP 服务
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	srv := &http.Server{Addr: addr, Handler: https_server.GE}
	go func() {
		zlog.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start failed", zap.Error(err))
		}
	}()

	// 5. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("server shutting down")
	cancel()
	if sched != nil {
		sched.Stop()
	}
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	if initial.KafkaPublisher != nil {
		_ = initial.KafkaPublisher.Close()
	}
	_ = redis.Close()
	if sqlDB, err := initial.GormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("server stopped")
	zlog.Sync()
}

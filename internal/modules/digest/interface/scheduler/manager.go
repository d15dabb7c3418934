package scheduler

import (
	"context"
	"fmt"
	"time"

	"FleetOps/internal/modules/digest/application/service"
	"FleetOps/pkg/zlog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SchedulerManager 进程内的分钟级触发，等价于外部调度器调用 /cron/trend-digest
type SchedulerManager struct {
	cron    *cron.Cron
	svc     service.DigestService
	spec    string
	timeout time.Duration
	now     func() time.Time
}

func NewSchedulerManager(svc service.DigestService, spec string) *SchedulerManager {
	return &SchedulerManager{
		// 使用标准5段Cron表达式（不含秒），上一轮没跑完就跳过本轮
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		svc:     svc,
		spec:    spec,
		timeout: 2 * time.Minute,
		now:     time.Now,
	}
}

func (m *SchedulerManager) Start() error {
	if _, err := m.cron.AddFunc(m.spec, m.tick); err != nil {
		return fmt.Errorf("schedule trend digest %q: %w", m.spec, err)
	}
	m.cron.Start()
	zlog.Info("trend digest scheduler started", zap.String("spec", m.spec))
	return nil
}

// Stop 等待正在执行的一轮结束
func (m *SchedulerManager) Stop() {
	<-m.cron.Stop().Done()
}

func (m *SchedulerManager) tick() {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error("trend digest tick panic", zap.Any("panic", r))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	// 秒级抖动不影响整点判断
	now := m.now().Truncate(time.Minute)
	if _, err := m.svc.RunCron(ctx, now); err != nil {
		zlog.Warn("trend digest tick failed", zap.Error(err))
	}
}

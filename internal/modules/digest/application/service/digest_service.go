package service

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"FleetOps/internal/modules/digest/application/dto/respond"
	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"
	telemetryRepository "FleetOps/internal/modules/telemetry/domain/repository"
	trendRepository "FleetOps/internal/modules/trend/domain/repository"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	userRepository "FleetOps/internal/modules/user/domain/repository"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

var ErrManualForbidden = xerr.New(xerr.Forbidden, "only owners can run the trend digest manually")

// EventNotification websocket 推送的事件类型
const EventNotification = "notification"

type DigestService interface {
	// RunCron 外部每分钟触发，只有当地整点命中才真正执行
	RunCron(ctx context.Context, now time.Time) (*respond.RunResult, error)
	// RunManual owner 手动触发，受冷却锁限制
	RunManual(ctx context.Context, now time.Time, actor userEntity.Actor) (*respond.RunResult, error)
	ListRuns(ctx context.Context, limit int) ([]digest.DigestRun, error)
}

type Mailer interface {
	Send(ctx context.Context, msg digest.Email) error
}

type Pusher interface {
	Push(userID string, eventType string, data interface{}) bool
}

type Options struct {
	Location     *time.Location
	TargetHour   int
	Cooldown     time.Duration
	TopN         int
	From         string
	AppURL       string
	EmailWorkers int
	EmailTimeout time.Duration
}

type digestServiceImpl struct {
	runRepo       repository.RunRepository
	notifRepo     repository.NotificationRepository
	lockRepo      repository.CooldownLockRepository
	actionRepo    trendRepository.TrendActionRepository
	telemetryRepo telemetryRepository.TelemetryRepository
	profileRepo   userRepository.ProfileRepository
	mailer        Mailer
	pusher        Pusher
	opts          Options
}

func NewDigestService(
	runRepo repository.RunRepository,
	notifRepo repository.NotificationRepository,
	lockRepo repository.CooldownLockRepository,
	actionRepo trendRepository.TrendActionRepository,
	telemetryRepo telemetryRepository.TelemetryRepository,
	profileRepo userRepository.ProfileRepository,
	mailer Mailer,
	pusher Pusher,
	opts Options,
) DigestService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 15 * time.Minute
	}
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.EmailWorkers <= 0 {
		opts.EmailWorkers = 5
	}
	if opts.EmailTimeout <= 0 {
		opts.EmailTimeout = 10 * time.Second
	}
	return &digestServiceImpl{
		runRepo:       runRepo,
		notifRepo:     notifRepo,
		lockRepo:      lockRepo,
		actionRepo:    actionRepo,
		telemetryRepo: telemetryRepo,
		profileRepo:   profileRepo,
		mailer:        mailer,
		pusher:        pusher,
		opts:          opts,
	}
}

func (s *digestServiceImpl) newRun(source string, initiatedBy *string, now time.Time) *digest.DigestRun {
	return &digest.DigestRun{
		ID:          util.GenerateUUID(),
		RunSource:   source,
		InitiatedBy: initiatedBy,
		RanAt:       now,
		DateKey:     digest.DateKey(now, s.opts.Location),
		Meta:        datatypes.NewJSONType(digest.RunMeta{}),
	}
}

func (s *digestServiceImpl) RunCron(ctx context.Context, now time.Time) (*respond.RunResult, error) {
	run := s.newRun(digest.RunSourceCron, nil, now)
	if !digest.InSendWindow(now, s.opts.Location, s.opts.TargetHour) {
		run.Success = true
		run.Skipped = true
		run.SkipReason = digest.SkipReasonOutsideWindow
		return s.finish(ctx, run)
	}
	return s.execute(ctx, run)
}

func (s *digestServiceImpl) RunManual(ctx context.Context, now time.Time, actor userEntity.Actor) (*respond.RunResult, error) {
	if !actor.IsOwner() {
		return nil, ErrManualForbidden
	}
	actorID := actor.ID
	run := s.newRun(digest.RunSourceManual, &actorID, now)

	// 先占锁再干活，并发的手动触发只有一个能进来
	lock, err := s.lockRepo.TryAcquire(ctx, digest.ManualCooldownKey, actorID, now, s.opts.Cooldown)
	if err != nil {
		return s.fail(ctx, run, fmt.Errorf("acquire cooldown lock: %w", err))
	}
	if !lock.Acquired {
		retry := int(math.Ceil(lock.RetryAfter(now).Seconds()))
		run.Success = true
		run.Skipped = true
		run.SkipReason = digest.SkipReasonCooldown
		meta := run.Meta.Data()
		meta.RetryAfterSeconds = retry
		meta.Lines = []string{fmt.Sprintf("last manual run at %s by %s", lock.LastRunAt.In(s.opts.Location).Format(time.RFC3339), lock.LastRunBy)}
		run.Meta = datatypes.NewJSONType(meta)

		res, err := s.finish(ctx, run)
		next := lock.NextAvailableAt
		res.NextAvailableAt = &next
		if err != nil {
			return res, err
		}
		return res, xerr.New(xerr.TooManyRequests,
			fmt.Sprintf("trend digest was run recently, next run available at %s", next.In(s.opts.Location).Format("15:04 MST")))
	}
	return s.execute(ctx, run)
}

func (s *digestServiceImpl) execute(ctx context.Context, run *digest.DigestRun) (*respond.RunResult, error) {
	actions, err := s.actionRepo.ListActive(ctx)
	if err != nil {
		return s.fail(ctx, run, fmt.Errorf("load open trend actions: %w", err))
	}
	labels, err := s.telemetryRepo.AssetLabels(ctx, digest.AssetRefs(actions))
	if err != nil {
		return s.fail(ctx, run, fmt.Errorf("resolve asset labels: %w", err))
	}
	summary := digest.Aggregate(run.DateKey, actions, labels, s.opts.TopN)
	run.OpenCount = summary.OpenCount
	run.InReviewCount = summary.InReviewCount
	meta := digest.RunMeta{
		Lines:        summary.Lines,
		TopAssets:    summary.TopAssets,
		ByActionType: summary.ByActionType,
	}
	run.Meta = datatypes.NewJSONType(meta)

	if summary.Total == 0 {
		run.Success = true
		return s.finish(ctx, run)
	}

	recipients, err := s.profileRepo.ListByRoles(ctx, []string{userEntity.RoleOwner, userEntity.RoleMechanic})
	if err != nil {
		return s.fail(ctx, run, fmt.Errorf("load recipients: %w", err))
	}
	run.SentTo = len(recipients)

	created, err := s.deliverInApp(ctx, run, summary, recipients)
	meta.NotificationsCreated = created
	run.Meta = datatypes.NewJSONType(meta)
	if err != nil {
		return s.fail(ctx, run, err)
	}

	run.EmailAttempted, run.EmailSent, run.EmailFailed = s.deliverEmail(ctx, summary, recipients)
	run.Success = true
	return s.finish(ctx, run)
}

// deliverInApp 顺序写入，已存在的 (recipient, dedupe_key) 保持原样
func (s *digestServiceImpl) deliverInApp(ctx context.Context, run *digest.DigestRun, summary digest.Summary, recipients []userEntity.Profile) (int, error) {
	dedupeKey := digest.DedupeKey(run.DateKey)
	created := 0
	for _, r := range recipients {
		n := &digest.Notification{
			ID:          util.GenerateUUID(),
			RecipientID: r.ID,
			DedupeKey:   dedupeKey,
			Title:       summary.Title,
			Body:        summary.Body(),
			Severity:    summary.Severity(),
			Kind:        digest.NotificationKind,
			EntityType:  digest.NotificationEntityType,
			EntityID:    run.DateKey,
			CreatedAt:   run.RanAt,
		}
		ok, err := s.notifRepo.InsertIgnore(ctx, n)
		if err != nil {
			return created, fmt.Errorf("write notification for %s: %w", r.ID, err)
		}
		if !ok {
			continue
		}
		created++
		if s.pusher != nil {
			s.pusher.Push(r.ID, EventNotification, n)
		}
	}
	return created, nil
}

// deliverEmail 并发发送，单个失败只计数，不影响其他收件人
func (s *digestServiceImpl) deliverEmail(ctx context.Context, summary digest.Summary, recipients []userEntity.Profile) (attempted, sent, failed int) {
	targets := make([]userEntity.Profile, 0, len(recipients))
	for _, r := range recipients {
		if r.WantsDigestEmail() {
			targets = append(targets, r)
		}
	}
	if len(targets) == 0 {
		return 0, 0, 0
	}
	if s.mailer == nil {
		zlog.Warn("trend digest email skipped, transport not configured", zap.Int("recipients", len(targets)))
		return 0, 0, 0
	}
	html, err := summary.HTML(s.opts.AppURL)
	if err != nil {
		zlog.Error("trend digest render email failed", zap.Error(err))
		return len(targets), 0, len(targets)
	}

	var okCount, failCount atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.opts.EmailWorkers)
	for _, r := range targets {
		r := r
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, s.opts.EmailTimeout)
			defer cancel()
			err := s.mailer.Send(sendCtx, digest.Email{
				To:      r.Email,
				From:    s.opts.From,
				Subject: summary.Title,
				HTML:    html,
			})
			if err != nil {
				failCount.Add(1)
				zlog.Warn("trend digest email failed", zap.String("recipient_id", r.ID), zap.Error(err))
				return nil
			}
			okCount.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return len(targets), int(okCount.Load()), int(failCount.Load())
}

func (s *digestServiceImpl) fail(ctx context.Context, run *digest.DigestRun, cause error) (*respond.RunResult, error) {
	msg := cause.Error()
	run.Success = false
	run.ErrorMessage = &msg
	zlog.Error("trend digest run failed", zap.String("run_id", run.ID), zap.String("source", run.RunSource), zap.Error(cause))
	res, err := s.finish(ctx, run)
	if err != nil {
		cause = fmt.Errorf("%w; %v", cause, err)
	}
	return res, xerr.Wrap(xerr.InternalServerError, "trend digest run failed: "+msg, cause)
}

// finish 写审计行，每次调用恰好一行
func (s *digestServiceImpl) finish(ctx context.Context, run *digest.DigestRun) (*respond.RunResult, error) {
	res := respond.NewRunResult(run)
	if err := s.runRepo.Append(ctx, run); err != nil {
		zlog.Error("trend digest record run failed", zap.String("run_id", run.ID), zap.Error(err))
		return res, xerr.Wrap(xerr.InternalServerError, "trend digest run could not be recorded", err)
	}
	zlog.Info("trend digest run",
		zap.String("run_id", run.ID),
		zap.String("source", run.RunSource),
		zap.String("date_key", run.DateKey),
		zap.Bool("success", run.Success),
		zap.Bool("skipped", run.Skipped),
		zap.String("skip_reason", run.SkipReason),
		zap.Int("open", run.OpenCount),
		zap.Int("in_review", run.InReviewCount),
		zap.Int("sent_to", run.SentTo),
		zap.Int("email_sent", run.EmailSent),
		zap.Int("email_failed", run.EmailFailed))
	return res, nil
}

func (s *digestServiceImpl) ListRuns(ctx context.Context, limit int) ([]digest.DigestRun, error) {
	return s.runRepo.ListRecent(ctx, util.ClampLimit(limit, 50, 200))
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	telemetryEntity "FleetOps/internal/modules/telemetry/domain/entity"
	telemetryRepository "FleetOps/internal/modules/telemetry/domain/repository"
	"FleetOps/internal/modules/trend/application/dto/request"
	"FleetOps/internal/modules/trend/application/dto/respond"
	"FleetOps/internal/modules/trend/domain/action"
	"FleetOps/internal/modules/trend/domain/repository"
	userEntity "FleetOps/internal/modules/user/domain/entity"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
	"FleetOps/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SystemTelemetryActor 遥测消费者自动评估时使用的操作人
const SystemTelemetryActor = "system:telemetry"

// 判定只需要最后三个点
const declineWindow = 3

type ActionService interface {
	EnsureAction(ctx context.Context, req request.EnsureActionRequest, actor userEntity.Actor) (*respond.EnsureActionRespond, error)
	SetStatus(ctx context.Context, actionID string, req request.SetStatusRequest, actor userEntity.Actor) (*respond.TrendActionItem, error)
	ListRecentActions(ctx context.Context, assetType, assetID string, limit int) ([]respond.TrendActionItem, error)
	EvaluateAsset(ctx context.Context, req request.EvaluateAssetRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error)
	RecordTelemetry(ctx context.Context, req request.RecordTelemetryRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error)
	// IngestTelemetry 消息队列入口，不做角色校验
	IngestTelemetry(ctx context.Context, point *telemetryEntity.TelemetryPoint) (*respond.EvaluateRespond, error)
}

// ActionEventPublisher 新动作创建后的通知出口，可为 nil
type ActionEventPublisher interface {
	PublishActionOpened(ctx context.Context, a *action.TrendAction) error
}

type actionServiceImpl struct {
	repo          repository.TrendActionRepository
	telemetryRepo telemetryRepository.TelemetryRepository
	publisher     ActionEventPublisher
	now           func() time.Time
}

func NewActionService(repo repository.TrendActionRepository, telemetryRepo telemetryRepository.TelemetryRepository, publisher ActionEventPublisher) ActionService {
	return &actionServiceImpl{
		repo:          repo,
		telemetryRepo: telemetryRepo,
		publisher:     publisher,
		now:           time.Now,
	}
}

func (s *actionServiceImpl) EnsureAction(ctx context.Context, req request.EnsureActionRequest, actor userEntity.Actor) (*respond.EnsureActionRespond, error) {
	if !actor.CanManageTrendActions() {
		return nil, action.ErrForbidden
	}
	if !telemetryEntity.ValidAssetType(req.AssetType) {
		return nil, action.ErrInvalidAssetType
	}
	if !action.ValidType(req.ActionType) {
		return nil, action.ErrInvalidActionType
	}
	assetID := strings.TrimSpace(req.AssetID)
	if assetID == "" {
		return nil, xerr.ErrParam
	}
	points := make([]action.ScorePoint, 0, len(req.Points))
	for _, p := range req.Points {
		points = append(points, action.ScorePoint{Value: p.Value, RecordedAt: p.RecordedAt})
	}
	summary := strings.TrimSpace(req.Summary)
	if summary == "" {
		summary = composeSummary(req.ActionType, points)
	}
	detail := action.NewDetail(req.ActionType, points, req.Note)
	a, created, err := s.ensure(ctx, req.AssetType, assetID, req.ActionType, summary, detail, actor.ID)
	if err != nil {
		return nil, err
	}
	return &respond.EnsureActionRespond{Created: created, Action: respond.NewTrendActionItem(a)}, nil
}

// ensure 已有未解决的同类动作时直接返回它
func (s *actionServiceImpl) ensure(ctx context.Context, assetType, assetID, actionType, summary string, detail action.Detail, actorID string) (*action.TrendAction, bool, error) {
	existing, err := s.repo.FindActive(ctx, assetType, assetID, actionType)
	if err != nil {
		zlog.Error("trend action find active failed", zap.String("asset_id", assetID), zap.String("action_type", actionType), zap.Error(err))
		return nil, false, fmt.Errorf("find active trend action: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	now := s.now()
	key := action.ActiveKeyFor(assetType, assetID, actionType)
	a := &action.TrendAction{
		ID:         util.GenerateUUID(),
		AssetType:  assetType,
		AssetID:    assetID,
		ActionType: actionType,
		Status:     action.StatusOpen,
		ActiveKey:  &key,
		Summary:    summary,
		Detail:     datatypes.NewJSONType(detail),
		CreatedAt:  now,
		CreatedBy:  actorID,
		UpdatedAt:  now,
	}
	created, err := s.repo.CreateIfNoActive(ctx, a)
	if err != nil {
		zlog.Error("trend action create failed", zap.String("asset_id", assetID), zap.String("action_type", actionType), zap.Error(err))
		return nil, false, fmt.Errorf("create trend action: %w", err)
	}
	if !created {
		// 并发创建被唯一索引拦下，返回胜出的那条
		existing, err = s.repo.FindActive(ctx, assetType, assetID, actionType)
		if err != nil {
			return nil, false, fmt.Errorf("find active trend action: %w", err)
		}
		if existing == nil {
			return nil, false, action.ErrActiveConflict
		}
		return existing, false, nil
	}

	zlog.Info("trend action opened",
		zap.String("action_id", a.ID),
		zap.String("asset_type", assetType),
		zap.String("asset_id", assetID),
		zap.String("action_type", actionType),
		zap.String("created_by", actorID))
	if s.publisher != nil {
		if err := s.publisher.PublishActionOpened(ctx, a); err != nil {
			zlog.Warn("trend action publish failed", zap.String("action_id", a.ID), zap.Error(err))
		}
	}
	return a, true, nil
}

func (s *actionServiceImpl) SetStatus(ctx context.Context, actionID string, req request.SetStatusRequest, actor userEntity.Actor) (*respond.TrendActionItem, error) {
	if !actor.CanManageTrendActions() {
		return nil, action.ErrForbidden
	}
	next := strings.TrimSpace(req.Status)
	if !action.ValidStatus(next) {
		return nil, action.ErrInvalidStatus
	}
	a, err := s.repo.GetByID(ctx, actionID)
	if err != nil {
		return nil, err
	}

	prev := a.Status
	if prev == next {
		item := respond.NewTrendActionItem(a)
		return &item, nil
	}
	a.Transition(next, actor.ID, s.now())
	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		zlog.Warn("trend action set status failed", zap.String("action_id", actionID), zap.String("status", next), zap.Error(err))
		return nil, err
	}
	zlog.Info("trend action status changed",
		zap.String("action_id", actionID),
		zap.String("from", prev),
		zap.String("to", next),
		zap.String("actor", actor.ID))
	item := respond.NewTrendActionItem(a)
	return &item, nil
}

func (s *actionServiceImpl) ListRecentActions(ctx context.Context, assetType, assetID string, limit int) ([]respond.TrendActionItem, error) {
	if !telemetryEntity.ValidAssetType(assetType) {
		return nil, action.ErrInvalidAssetType
	}
	if strings.TrimSpace(assetID) == "" {
		return nil, xerr.ErrParam
	}
	list, err := s.repo.ListRecent(ctx, assetType, assetID, util.ClampLimit(limit, 20, 100))
	if err != nil {
		return nil, err
	}
	out := make([]respond.TrendActionItem, 0, len(list))
	for i := range list {
		out = append(out, respond.NewTrendActionItem(&list[i]))
	}
	return out, nil
}

func (s *actionServiceImpl) EvaluateAsset(ctx context.Context, req request.EvaluateAssetRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error) {
	if !actor.CanManageTrendActions() {
		return nil, action.ErrForbidden
	}
	if !telemetryEntity.ValidAssetType(req.AssetType) {
		return nil, action.ErrInvalidAssetType
	}
	assetID := strings.TrimSpace(req.AssetID)
	if assetID == "" {
		return nil, xerr.ErrParam
	}
	out := &respond.EvaluateRespond{AssetType: req.AssetType, AssetID: assetID}
	for _, signal := range []string{telemetryEntity.SignalAssetHealth, telemetryEntity.SignalMechanicQuality} {
		ev, err := s.evaluateSignal(ctx, req.AssetType, assetID, signal, actor.ID)
		if err != nil {
			return nil, err
		}
		out.Signals = append(out.Signals, *ev)
	}
	return out, nil
}

func (s *actionServiceImpl) RecordTelemetry(ctx context.Context, req request.RecordTelemetryRequest, actor userEntity.Actor) (*respond.EvaluateRespond, error) {
	if !actor.CanManageTrendActions() {
		return nil, action.ErrForbidden
	}
	point := &telemetryEntity.TelemetryPoint{
		AssetType:  req.AssetType,
		AssetID:    strings.TrimSpace(req.AssetID),
		Signal:     req.Signal,
		Value:      req.Value,
		RecordedAt: req.RecordedAt,
	}
	return s.record(ctx, point, actor.ID)
}

func (s *actionServiceImpl) IngestTelemetry(ctx context.Context, point *telemetryEntity.TelemetryPoint) (*respond.EvaluateRespond, error) {
	return s.record(ctx, point, SystemTelemetryActor)
}

func (s *actionServiceImpl) record(ctx context.Context, point *telemetryEntity.TelemetryPoint, actorID string) (*respond.EvaluateRespond, error) {
	if err := point.Validate(); err != nil {
		return nil, xerr.New(xerr.BadRequest, err.Error())
	}
	if point.ID == "" {
		point.ID = util.GenerateUUID()
	}
	if point.RecordedAt.IsZero() {
		point.RecordedAt = s.now()
	}
	point.CreatedAt = s.now()
	if err := s.telemetryRepo.AppendPoint(ctx, point); err != nil {
		zlog.Error("telemetry append failed", zap.String("asset_id", point.AssetID), zap.String("signal", point.Signal), zap.Error(err))
		return nil, fmt.Errorf("append telemetry point: %w", err)
	}
	ev, err := s.evaluateSignal(ctx, point.AssetType, point.AssetID, point.Signal, actorID)
	if err != nil {
		return nil, err
	}
	return &respond.EvaluateRespond{
		AssetType: point.AssetType,
		AssetID:   point.AssetID,
		Signals:   []respond.SignalEvaluation{*ev},
	}, nil
}

func (s *actionServiceImpl) evaluateSignal(ctx context.Context, assetType, assetID, signal, actorID string) (*respond.SignalEvaluation, error) {
	actionType, ok := action.TypeForSignal(signal)
	if !ok {
		return nil, xerr.New(xerr.BadRequest, telemetryEntity.ErrInvalidSignal.Error())
	}
	series, err := s.telemetryRepo.RecentScores(ctx, assetType, assetID, signal, declineWindow)
	if err != nil {
		zlog.Error("telemetry read failed", zap.String("asset_id", assetID), zap.String("signal", signal), zap.Error(err))
		return nil, fmt.Errorf("read recent scores: %w", err)
	}
	values := make([]float64, 0, len(series))
	points := make([]action.ScorePoint, 0, len(series))
	for _, p := range series {
		values = append(values, p.Value)
		points = append(points, action.ScorePoint{Value: p.Value, RecordedAt: p.RecordedAt})
	}

	ev := &respond.SignalEvaluation{
		Signal:     signal,
		ActionType: actionType,
		Points:     len(values),
		Declining:  action.IsDeclining(values),
	}
	if len(values) > 0 {
		ev.Latest = values[len(values)-1]
	}
	if !ev.Declining {
		return ev, nil
	}

	a, created, err := s.ensure(ctx, assetType, assetID, actionType, composeSummary(actionType, points), action.NewDetail(actionType, points, ""), actorID)
	if err != nil {
		return nil, err
	}
	ev.Created = created
	ev.ActionID = a.ID
	return ev, nil
}

func composeSummary(actionType string, points []action.ScorePoint) string {
	label := "Asset health score"
	if actionType == action.TypeMechanicDecline {
		label = "Mechanic quality score"
	}
	if len(points) == 0 {
		return label + " is declining"
	}
	vals := make([]string, 0, len(points))
	for _, p := range points {
		vals = append(vals, formatScore(p.Value))
	}
	return fmt.Sprintf("%s declined %d readings in a row (%s)", label, len(points), strings.Join(vals, " -> "))
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

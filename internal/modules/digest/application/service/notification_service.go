package service

import (
	"context"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"
	"FleetOps/pkg/util"
	"FleetOps/pkg/xerr"
)

var ErrNotificationNotFound = xerr.New(xerr.NotFound, "notification not found")

type NotificationService interface {
	ListMine(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]digest.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}

type notificationServiceImpl struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationServiceImpl{repo: repo, now: time.Now}
}

func (s *notificationServiceImpl) ListMine(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]digest.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, util.ClampLimit(limit, 20, 100))
}

// MarkRead 只能标记自己的通知，别人的按不存在处理
func (s *notificationServiceImpl) MarkRead(ctx context.Context, recipientID, id string) error {
	ok, err := s.repo.MarkRead(ctx, recipientID, id, s.now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

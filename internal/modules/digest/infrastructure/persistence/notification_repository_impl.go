package persistence

import (
	"context"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/internal/modules/digest/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) InsertIgnore(ctx context.Context, n *digest.Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipient_id"}, {Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepositoryImpl) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]digest.Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var list []digest.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, recipientID, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&digest.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": gorm.Expr("COALESCE(read_at, ?)", at),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// 已读的行在 MySQL 下 RowsAffected 为 0，需要再确认是否存在
	var n int64
	if err := r.db.WithContext(ctx).Model(&digest.Notification{}).Where("id = ? AND recipient_id = ?", id, recipientID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

package digest

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RunSourceCron   = "cron"
	RunSourceManual = "manual"
)

const (
	SkipReasonOutsideWindow = "outside_window"
	SkipReasonCooldown      = "cooldown"
)

const (
	// ManualCooldownKey 手动触发共用一把冷却锁
	ManualCooldownKey = "trend_actions_digest_manual"
	DedupeKeyPrefix   = "trend-digest:"

	NotificationKind = "trend_digest"
	// EntityID 存放 dateKey，指向当天的摘要而不是某个动作
	NotificationEntityType = "trend_digest"
	SeverityWarning        = "warning"
	SeverityInfo           = "info"
)

type TopAsset struct {
	AssetType string `json:"asset_type"`
	AssetID   string `json:"asset_id"`
	Label     string `json:"label"`
	Status    string `json:"status"`
	Count     int    `json:"count"`
}

type RunMeta struct {
	Lines                []string       `json:"lines,omitempty"`
	TopAssets            []TopAsset     `json:"top_assets,omitempty"`
	ByActionType         map[string]int `json:"by_action_type,omitempty"`
	NotificationsCreated int            `json:"notifications_created"`
	RetryAfterSeconds    int            `json:"retry_after_seconds,omitempty"`
}

// DigestRun 每次执行（包括跳过）追加一行，只增不改
type DigestRun struct {
	ID             string                      `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	RunSource      string                      `gorm:"column:run_source;type:varchar(16)" json:"run_source"`
	InitiatedBy    *string                     `gorm:"column:initiated_by;type:varchar(64)" json:"initiated_by"`
	RanAt          time.Time                   `gorm:"column:ran_at;index" json:"ran_at"`
	Success        bool                        `gorm:"column:success" json:"success"`
	Skipped        bool                        `gorm:"column:skipped" json:"skipped"`
	SkipReason     string                      `gorm:"column:skip_reason;type:varchar(32)" json:"skip_reason,omitempty"`
	DateKey        string                      `gorm:"column:date_key;type:varchar(10);index" json:"date_key"`
	SentTo         int                         `gorm:"column:sent_to" json:"sent_to"`
	OpenCount      int                         `gorm:"column:open_count" json:"open_count"`
	InReviewCount  int                         `gorm:"column:in_review_count" json:"in_review_count"`
	EmailAttempted int                         `gorm:"column:email_attempted" json:"email_attempted"`
	EmailSent      int                         `gorm:"column:email_sent" json:"email_sent"`
	EmailFailed    int                         `gorm:"column:email_failed" json:"email_failed"`
	ErrorMessage   *string                     `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	Meta           datatypes.JSONType[RunMeta] `gorm:"column:meta;type:json" json:"meta"`
}

func (DigestRun) TableName() string {
	return "trend_digest_runs"
}

// Notification 站内通知，(recipient_id, dedupe_key) 唯一，重复写入直接忽略
type Notification struct {
	ID          string     `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	RecipientID string     `gorm:"column:recipient_id;type:varchar(36);uniqueIndex:uk_notification_dedupe,priority:1" json:"recipient_id"`
	DedupeKey   string     `gorm:"column:dedupe_key;type:varchar(64);uniqueIndex:uk_notification_dedupe,priority:2" json:"dedupe_key"`
	Title       string     `gorm:"column:title;type:varchar(255)" json:"title"`
	Body        string     `gorm:"column:body;type:text" json:"body"`
	Severity    string     `gorm:"column:severity;type:varchar(16)" json:"severity"`
	Kind        string     `gorm:"column:kind;type:varchar(32)" json:"kind"`
	EntityType  string     `gorm:"column:entity_type;type:varchar(32)" json:"entity_type"`
	EntityID    string     `gorm:"column:entity_id;type:varchar(64)" json:"entity_id"`
	IsRead      bool       `gorm:"column:is_read;default:false" json:"is_read"`
	ReadAt      *time.Time `gorm:"column:read_at" json:"read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// CooldownLock 单行表，按固定 key 记录上一次手动执行
type CooldownLock struct {
	LockKey   string    `gorm:"column:lock_key;primaryKey;type:varchar(64)" json:"lock_key"`
	LastRunAt time.Time `gorm:"column:last_run_at" json:"last_run_at"`
	LastRunBy string    `gorm:"column:last_run_by;type:varchar(64)" json:"last_run_by"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CooldownLock) TableName() string {
	return "cooldown_locks"
}

// CooldownResult TryAcquire 的结果，未获取时 NextAvailableAt 为最早可再次执行的时间
type CooldownResult struct {
	Acquired        bool
	LastRunAt       time.Time
	LastRunBy       string
	NextAvailableAt time.Time
}

func (r CooldownResult) RetryAfter(now time.Time) time.Duration {
	if r.Acquired || !r.NextAvailableAt.After(now) {
		return 0
	}
	return r.NextAvailableAt.Sub(now)
}

// Email 发出的一封摘要邮件
type Email struct {
	To      string
	From    string
	Subject string
	HTML    string
}

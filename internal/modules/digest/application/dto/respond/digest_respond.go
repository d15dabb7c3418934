package respond

import (
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
)

// RunResult 触发接口返回的结构化结果
type RunResult struct {
	RunID                string     `json:"run_id"`
	RunSource            string     `json:"run_source"`
	RanAt                time.Time  `json:"ran_at"`
	DateKey              string     `json:"date_key"`
	Success              bool       `json:"success"`
	Skipped              bool       `json:"skipped"`
	SkipReason           string     `json:"skip_reason,omitempty"`
	OpenCount            int        `json:"open_count"`
	InReviewCount        int        `json:"in_review_count"`
	SentTo               int        `json:"sent_to"`
	NotificationsCreated int        `json:"notifications_created"`
	EmailAttempted       int        `json:"email_attempted"`
	EmailSent            int        `json:"email_sent"`
	EmailFailed          int        `json:"email_failed"`
	Error                string     `json:"error,omitempty"`
	RetryAfterSeconds    int        `json:"retry_after_seconds,omitempty"`
	NextAvailableAt      *time.Time `json:"next_available_at,omitempty"`
}

func NewRunResult(run *digest.DigestRun) *RunResult {
	meta := run.Meta.Data()
	r := &RunResult{
		RunID:                run.ID,
		RunSource:            run.RunSource,
		RanAt:                run.RanAt,
		DateKey:              run.DateKey,
		Success:              run.Success,
		Skipped:              run.Skipped,
		SkipReason:           run.SkipReason,
		OpenCount:            run.OpenCount,
		InReviewCount:        run.InReviewCount,
		SentTo:               run.SentTo,
		NotificationsCreated: meta.NotificationsCreated,
		EmailAttempted:       run.EmailAttempted,
		EmailSent:            run.EmailSent,
		EmailFailed:          run.EmailFailed,
		RetryAfterSeconds:    meta.RetryAfterSeconds,
	}
	if run.ErrorMessage != nil {
		r.Error = *run.ErrorMessage
	}
	return r
}

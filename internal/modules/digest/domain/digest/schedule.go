package digest

import "time"

// InSendWindow 当地时间恰好为 hour 点整
func InSendWindow(now time.Time, loc *time.Location, hour int) bool {
	local := now.In(loc)
	return local.Hour() == hour && local.Minute() == 0
}

// DateKey 当地日期，用作通知去重
func DateKey(now time.Time, loc *time.Location) string {
	return now.In(loc).Format("2006-01-02")
}

func DedupeKey(dateKey string) string {
	return DedupeKeyPrefix + dateKey
}

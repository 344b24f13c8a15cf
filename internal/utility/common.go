package utility

import (
	"time"

	"slack_deals/internal/logger"
)

// GoProtect chạy một function trong goroutine với recover để tránh crash server
func GoProtect(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetErrorLogger().WithField("panic", r).Error("Recovered from panic in goroutine")
			}
		}()
		f()
	}()
}

// UnixMilli trả về thời gian tính bằng mili giây
func UnixMilli(t time.Time) int64 {
	return t.Round(time.Millisecond).UnixNano() / (int64(time.Millisecond) / int64(time.Nanosecond))
}

// CurrentTimeInMilli trả về thời gian hiện tại tính bằng mili giây
func CurrentTimeInMilli() int64 {
	return UnixMilli(time.Now())
}

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

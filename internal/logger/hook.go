package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ qua channel để không chặn request
type AsyncHook struct {
	writers   []io.Writer
	level     logrus.Level
	entryChan chan *logrus.Entry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAsyncHookWithWriters tạo async hook với danh sách writer
func NewAsyncHookWithWriters(writers []io.Writer, level logrus.Level) *AsyncHook {
	hook := &AsyncHook{
		writers:   writers,
		level:     level,
		entryChan: make(chan *logrus.Entry, 1000),
	}
	hook.wg.Add(1)
	go hook.processEntries()
	return hook
}

// Levels trả về các level mà hook xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	levels := []logrus.Level{}
	for _, l := range logrus.AllLevels {
		if l <= h.level {
			levels = append(levels, l)
		}
	}
	return levels
}

// Fire đẩy entry vào channel, bỏ qua nếu channel đầy để không chặn
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message
	select {
	case h.entryChan <- dup:
	default:
		// Channel đầy, ghi trực tiếp để không mất log lỗi
		if entry.Level <= logrus.ErrorLevel {
			h.writeEntry(dup)
		}
	}
	return nil
}

// processEntries xử lý các entry từ channel
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("logger: panic in processEntries: %v\n", r)
		}
	}()

	for entry := range h.entryChan {
		h.writeEntry(entry)
	}
}

func (h *AsyncHook) writeEntry(entry *logrus.Entry) {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return
	}
	for _, w := range h.writers {
		_, _ = w.Write(line)
	}
}

// Close đóng channel và chờ xử lý hết log còn lại
func (h *AsyncHook) Close() {
	h.closeOnce.Do(func() {
		close(h.entryChan)
		h.wg.Wait()
	})
}

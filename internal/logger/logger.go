package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// AppLogger ghi toàn bộ log của ứng dụng (info trở lên)
	AppLogger *logrus.Logger
	// ErrorLogger chỉ ghi log lỗi (error trở lên)
	ErrorLogger *logrus.Logger

	asyncHooks []*AsyncHook
)

// Init khởi tạo hệ thống logging với cấu hình
func Init(config *LogConfig) error {
	if config == nil {
		config = DefaultConfig()
	}

	// Tạo thư mục log nếu chưa tồn tại
	if config.Output != "stdout" {
		if err := os.MkdirAll(config.LogPath, 0755); err != nil {
			return err
		}
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	AppLogger = createLogger(config, config.AppFile, level)
	ErrorLogger = createLogger(config, config.ErrorFile, logrus.ErrorLevel)

	return nil
}

// createLogger tạo một logger với file output và rotation
func createLogger(config *LogConfig, filename string, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)

	if config.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	writers := []io.Writer{}
	if config.Output == "file" || config.Output == "both" {
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(config.LogPath, filename),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		writers = append(writers, fileWriter)
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	// Ghi log bất đồng bộ qua hook, output chính discard để tránh ghi 2 lần
	log.SetOutput(io.Discard)
	hook := NewAsyncHookWithWriters(writers, level)
	log.AddHook(hook)
	asyncHooks = append(asyncHooks, hook)

	return log
}

// GetAppLogger trả về app logger, khởi tạo mặc định nếu chưa có
func GetAppLogger() *logrus.Logger {
	if AppLogger == nil {
		_ = Init(DefaultConfig())
	}
	return AppLogger
}

// GetErrorLogger trả về error logger
func GetErrorLogger() *logrus.Logger {
	if ErrorLogger == nil {
		_ = Init(DefaultConfig())
	}
	return ErrorLogger
}

// Close đóng toàn bộ async hooks, flush các log còn lại
func Close() {
	for _, hook := range asyncHooks {
		hook.Close()
	}
	asyncHooks = nil
}

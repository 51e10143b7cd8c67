// Package logging 提供全局结构化日志。
package logging

import (
	"io"
	"os"
	"strings"

	chlog "github.com/charmbracelet/log"
)

// Logger is the application-wide structured logger.
var Logger *chlog.Logger

// EnvLevel 是日志级别的环境变量名。
const EnvLevel = "WIREFRAME_LOG_LEVEL"

// InitLogger 初始化全局 logger，输出到 stderr。level 为空时读取 WIREFRAME_LOG_LEVEL。
// Valid levels: debug, info, warn, error.
func InitLogger(level string) {
	if Logger != nil {
		return
	}
	Logger = New(os.Stderr, level)
}

// Current 返回全局 logger；尚未初始化时返回 charmbracelet/log 的默认 logger，
// 不修改全局状态。
func Current() *chlog.Logger {
	if Logger != nil {
		return Logger
	}
	return chlog.Default()
}

// New 创建一个独立的 logger，便于测试时写入缓冲区。
func New(w io.Writer, level string) *chlog.Logger {
	l := chlog.NewWithOptions(w, chlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05.000",
		Prefix:          "wireframe",
	})
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(EnvLevel)
	}
	l.SetLevel(parseLevel(level))
	return l
}

// SetLogLevel allows changing level at runtime.
func SetLogLevel(level string) {
	if Logger == nil {
		InitLogger(level)
		return
	}
	Logger.SetLevel(parseLevel(level))
}

func parseLevel(level string) chlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return chlog.DebugLevel
	case "warn", "warning":
		return chlog.WarnLevel
	case "error":
		return chlog.ErrorLevel
	default:
		return chlog.InfoLevel
	}
}

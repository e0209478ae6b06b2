package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
)

// New 创建日志器。level: debug/info/warn/error；format: text/json/logfmt
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch strings.ToLower(format) {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
	}), nil
}

// Init 创建日志器并设为全局默认
func Init(level, format string) (*log.Logger, error) {
	l, err := New(os.Stderr, level, format)
	if err != nil {
		return nil, err
	}
	log.SetDefault(l)
	return l, nil
}

// Discard 丢弃所有输出（测试用）
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// LogPanic logs a panic with stack trace
func LogPanic(l *log.Logger, r any, keyvals ...any) {
	if l == nil {
		l = log.Default()
	}
	l.Error("panic recovered", append(keyvals, "panic", r, "stack", string(debug.Stack()))...)
}

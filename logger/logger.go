// Package logger 는 gookit/slog 기반 JSON 로거를 전역으로 제공한다.
package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger 는 애플리케이션이 사용하는 최소 로거 인터페이스다.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields 는 구조화 로그의 최상위 키다.
type Fields map[string]any

// Log 는 전역 로거다. InitFromLevel 전에도 info 레벨로 동작한다.
var Log Logger = NewLogger("info")

// InitFromLevel 은 logging.level 값으로 전역 로거를 다시 만든다. 모르는 값이면 info.
func InitFromLevel(level string) {
	Log = NewLogger(level)
}

// levelsUpTo 는 name 이하 심각도의 레벨 목록이다.
func levelsUpTo(name string) slog.Levels {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "info"
	}
	max := slog.LevelByName(name)
	var out slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= max {
			out = append(out, lv)
		}
	}
	return out
}

// NewLogger 는 datetime, level, message 만 기본 필드로 두는 JSON 콘솔 로거를 만든다.
func NewLogger(level string) Logger {
	h := handler.NewConsoleHandler(levelsUpTo(level))
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{slog.FieldKeyDatetime, slog.FieldKeyLevel, slog.FieldKeyMessage}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))
	return slog.NewWithHandlers(h)
}

// withFields 는 service_name 을 채운 뒤 level 로 msg 를 남긴다.
// 전역 로거가 slog 가 아니면 필드 없이 메시지만 남긴다.
func withFields(level slog.Level, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields["service_name"]; !ok {
		if sn := os.Getenv("SERVICE_NAME"); sn != "" {
			fields["service_name"] = sn
		}
	}

	lg, ok := Log.(*slog.Logger)
	if !ok {
		switch level {
		case slog.ErrorLevel:
			Log.Error(msg)
		case slog.WarnLevel:
			Log.Warn(msg)
		default:
			Log.Info(msg)
		}
		return
	}
	lg.WithFields(slog.M(fields)).Log(level, msg)
}

// InfoWithFields 는 request_id, span_id 같은 필드를 붙인 info 로그다.
func InfoWithFields(msg string, fields Fields) { withFields(slog.InfoLevel, msg, fields) }

func WarnWithFields(msg string, fields Fields) { withFields(slog.WarnLevel, msg, fields) }

func ErrorWithFields(msg string, fields Fields) { withFields(slog.ErrorLevel, msg, fields) }

package utils

import (
	"log/slog"
	"os"
	"sync"
)

var (
	logger     *slog.Logger
	loggerOnce sync.Once
	debugMode  bool
)

// InitLogger 初始化全局日志 需要在配置加载后调用一次
func InitLogger(debug bool) {
	debugMode = debug
	loggerOnce.Do(initLogger)
}

func initLogger() {
	var level = slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.TimeKey {
				formattedTime := attr.Value.Time().Format("2006-01-02 15:04:05")
				return slog.String(slog.TimeKey, formattedTime)
			}
			return attr
		},
	})
	logger = slog.New(jsonHandler)
}

func GetComponentLogger(component string) *slog.Logger {
	loggerOnce.Do(initLogger)
	return logger.With("component", component)
}

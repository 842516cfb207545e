package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"agent-server/config"
)

// New 根据日志配置构造zerolog日志器，进程启动时调用一次。
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	switch cfg.Output {
	case "stderr":
		out = os.Stderr
	default:
		out = os.Stdout
	}

	// format=console 输出人类可读格式，其余情况走JSON
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

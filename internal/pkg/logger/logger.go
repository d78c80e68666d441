package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"quill/internal/config"
)

// Init 初始化全局日志
func Init(cfg *config.LogConfig) error {
	output, err := openOutput(cfg)
	if err != nil {
		return err
	}
	log.Logger = New(cfg, output)
	return nil
}

// New 按配置创建 logger，输出到 w
func New(cfg *config.LogConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	switch cfg.TimeFormat {
	case "Unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "UnixMs":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	default:
		zerolog.TimeFieldFormat = time.RFC3339
	}

	// Console 格式 (开发环境友好)
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(w).With().Timestamp().Caller().Logger()
}

func openOutput(cfg *config.LogConfig) (io.Writer, error) {
	if cfg.Output == "file" && cfg.FilePath != "" {
		return os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	}
	if cfg.Output == "stderr" {
		return os.Stderr, nil
	}
	return os.Stdout, nil
}

// Get 获取全局 logger
func Get() zerolog.Logger {
	return log.Logger
}

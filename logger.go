package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/svcconfig"
)

// initLogger 初始化全局 zerolog：控制台输出可读文本，文件输出 JSON 并按大小轮转。
// 返回的 cleanup 负责关闭日志文件。
func initLogger(cfg svcconfig.LogConfig) (func(), error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	fileLevel := parseLevel(cfg.Level, zerolog.DebugLevel)
	consoleLevel := parseLevel(cfg.ConsoleLevel, zerolog.InfoLevel)

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "go-service.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	writer := zerolog.MultiLevelWriter(
		&zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: console}, Level: consoleLevel},
		&zerolog.FilteredLevelWriter{Writer: zerolog.LevelWriterAdapter{Writer: lj}, Level: fileLevel},
	)

	zerolog.SetGlobalLevel(minLevel(fileLevel, consoleLevel))
	log.Logger = zerolog.New(writer).With().Timestamp().Caller().Logger()

	cleanup := func() {
		if err := lj.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return cleanup, nil
}

func parseLevel(s string, def zerolog.Level) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return def
	}
	return lvl
}

func minLevel(a, b zerolog.Level) zerolog.Level {
	if a < b {
		return a
	}
	return b
}

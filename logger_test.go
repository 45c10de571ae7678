package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/svcconfig"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"loud":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in, zerolog.InfoLevel); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if got := minLevel(zerolog.WarnLevel, zerolog.DebugLevel); got != zerolog.DebugLevel {
		t.Errorf("minLevel = %v", got)
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()

	cfg := svcconfig.Default().Log
	cfg.Dir = filepath.Join(t.TempDir(), "debug")
	cfg.ConsoleLevel = "error"

	cleanup, err := initLogger(cfg)
	if err != nil {
		t.Fatalf("initLogger: %v", err)
	}
	log.Debug().Msg("file only")
	cleanup()

	data, err := os.ReadFile(filepath.Join(cfg.Dir, "go-service.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "file only") {
		t.Errorf("log file missing entry: %s", data)
	}
}

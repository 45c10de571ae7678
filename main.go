package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/svcconfig"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfgPath := svcconfig.Path()
	cfg, cfgErr := svcconfig.Load(cfgPath)

	cleanup, err := initLogger(cfg.Log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize logger")
		return 1
	}
	defer cleanup()

	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", cfgPath).Msg("Failed to load config, using defaults")
	}

	log.Info().Str("version", Version).Msg("MaaYuan Agent Service")

	if len(os.Args) < 2 {
		log.Error().Msg("Usage: go-service <identifier>")
		return 1
	}

	identifier := os.Args[1]
	log.Info().Str("identifier", identifier).Msg("Starting agent server")

	libDir := cfg.MaaFW.LibDir
	if libDir == "" {
		libDir = filepath.Join(getCwd(), "maafw")
	}
	log.Info().Str("libDir", libDir).Msg("Initializing MAA framework")
	if err := maa.Init(maa.WithLibDir(libDir)); err != nil {
		log.Error().Err(err).Msg("Failed to initialize MAA framework")
		return 1
	}
	defer maa.Release()

	registerAll()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		maa.AgentServerShutDown()
	}()

	if !startAgent(identifier, maa.AgentServerStartUp) {
		return 1
	}

	maa.AgentServerJoin()

	// 幂等，信号处理里可能已经关过一次
	maa.AgentServerShutDown()
	log.Info().Msg("Agent server shutdown complete")
	return 0
}

func startAgent(identifier string, startUp func(string) error) bool {
	if err := startUp(identifier); err != nil {
		log.Error().Err(err).Str("identifier", identifier).Msg("Failed to start agent server")
		return false
	}
	log.Info().Msg("Agent server started")
	return true
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

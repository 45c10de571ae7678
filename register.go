package main

import (
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/aspectratio"
	"github.com/MaaYuan/MaaYuan/agent/go-service/chujianri"
	"github.com/MaaYuan/MaaYuan/agent/go-service/common"
	"github.com/MaaYuan/MaaYuan/agent/go-service/copilot"
	"github.com/MaaYuan/MaaYuan/agent/go-service/energycheck"
	"github.com/MaaYuan/MaaYuan/agent/go-service/nanyang"
	"github.com/MaaYuan/MaaYuan/agent/go-service/ocrreport"
)

func registerAll() {
	common.Register()
	nanyang.Register()
	copilot.Register()
	energycheck.Register()
	chujianri.Register()
	ocrreport.Register()

	// TaskerSink，只提醒不中断任务
	aspectratio.Register()

	log.Info().
		Msg("All custom components and sinks registered successfully")
}

// Package chujianri 初见日商铺按品质批量购买。
package chujianri

import (
	"strings"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
)

const purchaseEntry = "初见日-第二策略-购买"

type targetConfig struct {
	preTask     string
	recognition string
}

var targets = map[string]targetConfig{
	"green": {
		preTask:     "初见日-商铺-回顶",
		recognition: "初见日-商铺-检测绿色物品",
	},
	"blue": {
		preTask:     "初见日-商铺-下一页",
		recognition: "初见日-商铺-检测蓝色物品",
	},
	"purple": {
		preTask:     "初见日-商铺-下一页",
		recognition: "初见日-商铺-检测紫色物品",
	},
}

// ChujianriShopping 识别指定品质的物品并逐个点击购买。
//
// custom_action_param: {"target": "green" | "blue" | "purple"}，缺省为 green。
type ChujianriShopping struct{}

var _ maa.CustomActionRunner = &ChujianriShopping{}

func Register() {
	maa.AgentServerRegisterCustomAction("ChujianriShopping", &ChujianriShopping{})
}

func (a *ChujianriShopping) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return shop(maahost.FromContext(ctx), arg.CustomActionParam)
}

func shop(h maahost.Host, rawParam any) bool {
	target := strings.ToLower(param.String(param.Normalize(rawParam, "ChujianriShopping"), "target"))
	if target == "" {
		target = "green"
	}
	cfg, ok := targets[target]
	if !ok {
		log.Warn().Str("target", target).Msg("[Chujianri]无效参数 target")
		return false
	}

	log.Info().Str("target", target).Msg("[Chujianri]开始处理")
	if err := h.RunTask(cfg.preTask, nil); err != nil {
		log.Warn().Err(err).Str("task", cfg.preTask).Msg("[Chujianri]前置任务失败")
	}

	img, err := h.Screencap()
	if err != nil {
		log.Warn().Err(err).Msg("[Chujianri]截图失败")
		return false
	}
	detail, err := h.RunRecognition(cfg.recognition, img, nil)
	if err != nil {
		log.Warn().Err(err).Str("reco", cfg.recognition).Msg("[Chujianri]识别失败")
		return true
	}

	results := detail.Items()
	if len(results) == 0 {
		log.Info().Msg("[Chujianri]未识别到可购买物品")
		return true
	}

	executed := 0
	for _, res := range results {
		if !res.Box.Valid() {
			continue
		}
		override := map[string]any{
			purchaseEntry: map[string]any{
				"action": map[string]any{
					"type":  "Click",
					"param": map[string]any{"target": res.Box.Ints()},
				},
			},
		}
		executed++
		if err := h.RunTask(purchaseEntry, override); err != nil {
			log.Warn().Err(err).Str("roi", res.Box.String()).Msg("[Chujianri]执行购买失败")
		}
	}

	if executed == 0 {
		log.Info().Msg("[Chujianri]识别到结果但无有效 roi")
	}
	return true
}

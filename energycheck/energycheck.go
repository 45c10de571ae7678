// Package energycheck reads the stamina counter in 寒夜厄境 and ends the run
// early when it drops below what one more treasure costs.
package energycheck

import (
	"strings"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/textnum"
)

const (
	recoNode      = "EnergyCheck"
	treasureNode  = "寒夜厄境-获得雪山秘宝"
	switchNode    = "寒夜厄境-切换到资源牌"
	settleNode    = "寒夜厄境-确定结算"
	minimumEnergy = 10
)

var energyROI = roi.Box{X: 605, Y: 63, W: 38, H: 28}

type EnergyCheck struct{}

var _ maa.CustomActionRunner = &EnergyCheck{}

func Register() {
	maa.AgentServerRegisterCustomAction("EnergyCheck", &EnergyCheck{})
}

func (a *EnergyCheck) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return check(maahost.FromContext(ctx))
}

func ocrOverride() map[string]any {
	return map[string]any{
		recoNode: map[string]any{
			"recognition": map[string]any{
				"type": "OCR",
				"param": map[string]any{
					"roi":      energyROI.Ints(),
					"model":    "en",
					"only_rec": true,
				},
			},
		},
	}
}

// check 识别失败一律保持原流程并返回成功。
func check(h maahost.Host) bool {
	energy, ok := readEnergy(h)
	if !ok {
		log.Info().Msg("[EnergyCheck]未能识别到体力值，保持原流程")
		return true
	}
	log.Info().Int("energy", energy).Msg("[EnergyCheck]识别到体力值")

	if energy >= minimumEnergy {
		log.Info().Msg("[EnergyCheck]体力大于等于10，继续刷取雪山秘宝")
		return true
	}

	if err := h.OverrideNext(treasureNode, []string{switchNode}); err != nil {
		log.Warn().Err(err).Str("node", treasureNode).Msg("[EnergyCheck]改写 next 失败")
	}
	if err := h.OverrideNext(settleNode, []string{"stop"}); err != nil {
		log.Warn().Err(err).Str("node", settleNode).Msg("[EnergyCheck]改写 next 失败")
	}
	log.Info().Msg("[EnergyCheck]体力小于10，尝试开启所有雪山秘宝并结束任务")
	return true
}

func readEnergy(h maahost.Host) (int, bool) {
	img, err := h.Screencap()
	if err != nil {
		log.Warn().Err(err).Msg("[EnergyCheck]截图失败")
		return 0, false
	}
	detail, err := h.RunRecognition(recoNode, img, ocrOverride())
	if err != nil {
		log.Warn().Err(err).Msg("[EnergyCheck]OCR 失败")
		return 0, false
	}
	if detail == nil || detail.Best == nil {
		return 0, false
	}
	text := strings.TrimSpace(detail.Best.Text)
	n, ok := textnum.FirstInt(text)
	if !ok {
		log.Info().Str("text", text).Msg("[EnergyCheck]无法解析体力值")
		return 0, false
	}
	return n, true
}

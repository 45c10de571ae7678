// Package copilot 抄作业相关动作：打印作业信息，以及按站位检查密探状态决定是否重开。
package copilot

import (
	"fmt"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

const (
	infoNode    = "作业信息"
	restartNode = "抄作业点左上角重开"
)

// slotROIs 一到五号位的检测区域，下标即站位。
var slotROIs = [...]roi.Box{
	1: {X: 21, Y: 811, W: 124, H: 378},
	2: {X: 156, Y: 810, W: 128, H: 375},
	3: {X: 298, Y: 811, W: 129, H: 378},
	4: {X: 439, Y: 809, W: 127, H: 376},
	5: {X: 579, Y: 808, W: 126, H: 378},
}

// CopilotInfo 执行作业文件中的“作业信息”节点。
// 可选参数 node_name 替换默认节点名。
type CopilotInfo struct{}

func (a *CopilotInfo) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return runInfo(maahost.FromContext(ctx), arg.CustomActionParam)
}

func runInfo(h maahost.Host, rawParam any) bool {
	node := param.String(param.Normalize(rawParam, "CopilotInfo"), "node_name")
	if node == "" {
		node = infoNode
	}
	if err := h.RunTask(node, nil); err != nil {
		log.Warn().Err(err).Str("node", node).Msg("[Copilot]作业信息节点执行失败")
	}
	return true
}

// restartCheck 描述一种站位检查：在 slot ROI 内跑 reco，
// 命中与否决定是否把当前节点的 next 改为左上角重开。
type restartCheck struct {
	action       string
	reco         string
	restartOnHit bool
	restartMsg   string
	keepMsg      string
}

var (
	downCheck = restartCheck{
		action:       "DownRestart",
		reco:         "downTest",
		restartOnHit: true,
		restartMsg:   "检测到%d号位阵亡，正在尝试点左上角重开",
		keepMsg:      "检测到%d号位存活，正常执行后续动作",
	}
	retreatCheck = restartCheck{
		action:       "RetreatRestart",
		reco:         "RetreatCheck",
		restartOnHit: true,
		restartMsg:   "检测到%d号位已退场，正在尝试点左上角重开",
		keepMsg:      "检测到%d号位未退场，正常执行后续动作",
	}
	birdCheck = restartCheck{
		action:       "BirdRestart",
		reco:         "BirdCheck",
		restartOnHit: false,
		restartMsg:   "检测到%d号位无鹦鹉，正在尝试点左上角重开",
		keepMsg:      "检测到%d号位有鹦鹉，正常执行后续动作",
	}
)

// DownRestart ColorMatch 检测指定站位密探是否阵亡，阵亡则重开。
//
// custom_action_param: {"node": "当前节点名称", "position": 1-5}
type DownRestart struct{}

// RetreatRestart OCR 检测指定站位密探是否已退场，退场则重开。
type RetreatRestart struct{}

// BirdRestart 模板匹配指定站位是否有鹦鹉，没有则重开。
type BirdRestart struct{}

func (a *DownRestart) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return downCheck.run(maahost.FromContext(ctx), arg.CustomActionParam)
}

func (a *RetreatRestart) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return retreatCheck.run(maahost.FromContext(ctx), arg.CustomActionParam)
}

func (a *BirdRestart) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return birdCheck.run(maahost.FromContext(ctx), arg.CustomActionParam)
}

func slotROI(position int) (roi.Box, error) {
	if position < 1 || position >= len(slotROIs) {
		return roi.Box{}, fmt.Errorf("position %d out of range [1, %d]", position, len(slotROIs)-1)
	}
	return slotROIs[position], nil
}

func (c restartCheck) run(h maahost.Host, rawParam any) bool {
	params := param.Normalize(rawParam, c.action)
	node := param.String(params, "node")
	if node == "" {
		log.Warn().Str("action", c.action).Msg("[Copilot]缺少 node 参数")
		return false
	}
	position := param.Int(params, "position", 0)
	box, err := slotROI(position)
	if err != nil {
		log.Warn().Err(err).Str("action", c.action).Msg("[Copilot]position 参数无效")
		return false
	}

	img, err := h.Screencap()
	if err != nil {
		log.Warn().Err(err).Str("action", c.action).Msg("[Copilot]截图失败")
		return false
	}

	detail, err := h.RunRecognition(c.reco, img, map[string]any{
		c.reco: map[string]any{"roi": box.Ints()},
	})
	if err != nil {
		log.Warn().Err(err).Str("reco", c.reco).Msg("[Copilot]识别失败")
		return false
	}

	hit := detail != nil && detail.Hit
	if hit != c.restartOnHit {
		log.Info().Msgf(c.keepMsg, position)
		return true
	}
	if err := h.OverrideNext(node, []string{restartNode}); err != nil {
		log.Warn().Err(err).Str("node", node).Msg("[Copilot]改写 next 失败")
		return false
	}
	log.Info().Msgf(c.restartMsg, position)
	return true
}

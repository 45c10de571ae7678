package common

import (
	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
)

// RunNode 按传入节点名执行对应节点。
// custom_action_param 为 JSON，必须包含：
// - node_name: 需要执行的节点名。
type RunNode struct{}

var _ maa.CustomActionRunner = (*RunNode)(nil)

// Run 实现 maa.CustomActionRunner。
// 参数中 node_name 为空时返回 false；节点运行失败时记录错误并返回 false。
func (a *RunNode) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return runNode(maahost.FromContext(ctx), arg.CustomActionParam)
}

func runNode(h maahost.Host, rawParam any) bool {
	params := param.Normalize(rawParam, "RunNode")
	nodeName := param.String(params, "node_name")
	if nodeName == "" {
		log.Error().
			Interface("raw_param", rawParam).
			Msg("[RunNode] node_name is required")
		return false
	}

	if err := h.RunTask(nodeName, nil); err != nil {
		log.Error().
			Err(err).
			Str("node_name", nodeName).
			Msg("[RunNode] failed to run node")
		return false
	}

	log.Info().
		Str("node_name", nodeName).
		Msg("[RunNode] node executed")
	return true
}

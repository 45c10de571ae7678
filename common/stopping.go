package common

import (
	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
)

// CheckStopping 任务即将停止时命中，供 pipeline 提前收尾。
type CheckStopping struct{}

var _ maa.CustomRecognitionRunner = (*CheckStopping)(nil)

type stoppingDetail struct {
	Node     string `json:"node"`
	Stopping bool   `json:"stopping"`
}

func (r *CheckStopping) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	detail, ok := checkStopping(maahost.FromContext(ctx))
	if !ok {
		return nil, false
	}
	return &maa.CustomRecognitionResult{
		Box:    maa.Rect{0, 0, 0, 0},
		Detail: detail,
	}, true
}

func checkStopping(h maahost.Host) (string, bool) {
	if !h.Stopping() {
		return "", false
	}
	data, err := sonic.MarshalString(stoppingDetail{Node: "CheckStopping", Stopping: true})
	if err != nil {
		return `{"node":"CheckStopping","stopping":true}`, true
	}
	return data, true
}

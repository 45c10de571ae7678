// Package maafocus pushes operator-facing text to the host UI through the
// pipeline "focus" field.
package maafocus

import (
	"errors"
	"strings"

	"github.com/MaaXYZ/maa-framework-go/v4"
)

const nodeName = "_MAAYUAN_FOCUS_"

// ErrNilContext indicates the provided context is nil.
var ErrNilContext = errors.New("context is nil")

// NodeActionStarting runs a throwaway node whose only effect is to display
// content when its action starts.
func NodeActionStarting(ctx *maa.Context, content string) error {
	if ctx == nil {
		return ErrNilContext
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}

	pp := maa.NewPipeline()
	pp.AddNode(startingNode(content))
	_, err := ctx.RunTask(nodeName, pp)
	return err
}

func startingNode(content string) *maa.Node {
	return maa.NewNode(nodeName).
		SetFocus(map[string]any{
			maa.EventNodeAction.Starting(): content,
		}).
		SetPreDelay(0).
		SetPostDelay(0)
}

// NodeOverride 生成把 node 的 focus 文本替换为 content 的 pipeline override 片段。
func NodeOverride(node, content string) map[string]any {
	return map[string]any{
		node: map[string]any{"focus": content},
	}
}

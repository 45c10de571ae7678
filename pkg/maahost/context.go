package maahost

import (
	"fmt"
	"image"

	maa "github.com/MaaXYZ/maa-framework-go/v4"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maafocus"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

// contextHost 把 *maa.Context 适配为 Host。
type contextHost struct {
	ctx *maa.Context
}

var _ Host = (*contextHost)(nil)

// FromContext wraps the callback context handed over by the framework.
func FromContext(ctx *maa.Context) Host {
	return &contextHost{ctx: ctx}
}

func (h *contextHost) RunTask(entry string, override map[string]any) error {
	var err error
	if override == nil {
		_, err = h.ctx.RunTask(entry)
	} else {
		_, err = h.ctx.RunTask(entry, override)
	}
	if err != nil {
		return fmt.Errorf("run task %s: %w", entry, err)
	}
	return nil
}

func (h *contextHost) RunRecognition(entry string, img image.Image, override map[string]any) (*Detail, error) {
	var (
		detail *maa.RecognitionDetail
		err    error
	)
	if override == nil {
		detail, err = h.ctx.RunRecognition(entry, img)
	} else {
		detail, err = h.ctx.RunRecognition(entry, img, override)
	}
	if err != nil {
		return nil, fmt.Errorf("run recognition %s: %w", entry, err)
	}
	return detailFromMaa(detail), nil
}

// detailFromMaa 统一 Go 绑定返回的识别详情；结果集一律从 DetailJson 解析。
func detailFromMaa(detail *maa.RecognitionDetail) *Detail {
	if detail == nil {
		return &Detail{}
	}
	box := roi.Box{
		X: detail.Box.X(),
		Y: detail.Box.Y(),
		W: detail.Box.Width(),
		H: detail.Box.Height(),
	}
	return ParseDetail(detail.Hit, box, detail.DetailJson)
}

func (h *contextHost) OverrideNext(name string, next []string) error {
	items := make([]maa.NextItem, 0, len(next))
	for _, n := range next {
		items = append(items, maa.NextItem{Name: n})
	}
	if err := h.ctx.OverrideNext(name, items); err != nil {
		return fmt.Errorf("override next of %s: %w", name, err)
	}
	return nil
}

func (h *contextHost) OverridePipeline(override map[string]any) error {
	if err := h.ctx.OverridePipeline(override); err != nil {
		return fmt.Errorf("override pipeline: %w", err)
	}
	return nil
}

func (h *contextHost) controller() (*maa.Controller, error) {
	tasker := h.ctx.GetTasker()
	if tasker == nil {
		return nil, ErrNoTasker
	}
	ctrl := tasker.GetController()
	if ctrl == nil {
		return nil, ErrNoController
	}
	return ctrl, nil
}

func (h *contextHost) Screencap() (image.Image, error) {
	ctrl, err := h.controller()
	if err != nil {
		return nil, err
	}
	ctrl.PostScreencap().Wait()
	img, err := ctrl.CacheImage()
	if err != nil {
		return nil, fmt.Errorf("cache image: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("cache image: empty frame")
	}
	return img, nil
}

func (h *contextHost) Click(x, y int) error {
	ctrl, err := h.controller()
	if err != nil {
		return err
	}
	if !ctrl.PostClick(int32(x), int32(y)).Wait().Done() {
		return fmt.Errorf("click (%d, %d) failed", x, y)
	}
	return nil
}

func (h *contextHost) Focus(content string) error {
	return maafocus.NodeActionStarting(h.ctx, content)
}

func (h *contextHost) Stopping() bool {
	if h.ctx == nil {
		return true
	}
	t := h.ctx.GetTasker()
	if t == nil {
		return true
	}
	return t.Stopping() || !t.Running()
}

package nanyang

import (
	"errors"
	"image"
	"time"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

const (
	findNode         = "南阳-找到要卖的菌"
	priceNode        = "南阳-检测菌的价格"
	scrollBottomTask = "南阳-下滑到回收底端"
	prepareUpTask    = "南阳-准备向上寻找要卖的菌"
	scrollUpTask     = "南阳-向上寻找要卖的菌"
	setMaxTask       = "南阳-设置最大卖出数量"

	pixelDiffThreshold  = 2
	maxScrollUp         = 20
	scrollSettle        = time.Second
	defaultSetMaxRepeat = 5
)

var (
	findROI    = roi.Box{X: 71, Y: 443, W: 574, H: 394}
	compareROI = roi.Box{X: 88, Y: 467, W: 541, H: 182}
)

// sellTarget 一种待卖的菌。expectedPrice 为空表示不校验价格。
type sellTarget struct {
	template      string
	label         string
	expectedPrice string
	repeat        int
}

// 顺序即卖出顺序。
var sellTargets = []sellTarget{
	{template: "nanyang/forsell1.png", label: "普通老土草帽菌", expectedPrice: "3", repeat: 25},
	{template: "nanyang/forsell2.png", label: "常见实习泡泡菌", expectedPrice: "9"},
	{template: "nanyang/forsell3.png", label: "未能长大的草帽菌", expectedPrice: "1"},
	{template: "nanyang/forsell4.png", label: "未能长大的泡泡菌"},
}

func (t sellTarget) setMaxRepeat() int {
	if t.repeat > 0 {
		return t.repeat
	}
	return defaultSetMaxRepeat
}

var errStopped = errors.New("task stopping")

// NanyangSell 依次在回收列表里查找并卖出各类菌子。
type NanyangSell struct {
	sleep func(time.Duration)
}

var _ maa.CustomActionRunner = &NanyangSell{}

// Run implements maa.CustomActionRunner.
func (a *NanyangSell) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return a.run(maahost.FromContext(ctx))
}

func (a *NanyangSell) run(h maahost.Host) bool {
	sleep := a.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	f := &sellFlow{
		host:  h,
		sleep: sleep,
		log:   nyLog.With().Str("run", uuid.NewString()).Logger(),
	}
	if err := f.run(); err != nil {
		if errors.Is(err, errStopped) {
			f.log.Info().Msg("检测到任务终止")
		} else {
			f.log.Error().Err(err).Msg("卖菌流程失败")
		}
		return false
	}
	return true
}

type sellFlow struct {
	host  maahost.Host
	sleep func(time.Duration)
	log   zerolog.Logger
}

func (f *sellFlow) checkStop() error {
	if f.host.Stopping() {
		return errStopped
	}
	return nil
}

// runTask 执行任务节点；节点本身失败只记日志，流程继续。
func (f *sellFlow) runTask(entry string, override map[string]any) error {
	if err := f.checkStop(); err != nil {
		return err
	}
	if err := f.host.RunTask(entry, override); err != nil {
		f.log.Warn().Err(err).Str("task", entry).Msg("任务执行失败")
	}
	return nil
}

// screencap 截图失败时返回 nil 图像，调用方按“未找到”处理。
func (f *sellFlow) screencap() (image.Image, error) {
	if err := f.checkStop(); err != nil {
		return nil, err
	}
	img, err := f.host.Screencap()
	if err != nil {
		f.log.Warn().Err(err).Msg("截图失败")
		return nil, nil
	}
	return img, nil
}

func (f *sellFlow) run() error {
	for _, target := range sellTargets {
		if err := f.checkStop(); err != nil {
			return err
		}
		found, err := f.sellOne(target)
		if err != nil {
			return err
		}
		if found {
			if err := f.runTask(setMaxTask, map[string]any{
				setMaxTask: map[string]any{"repeat": target.setMaxRepeat()},
			}); err != nil {
				return err
			}
			continue
		}
		f.log.Info().Str("template", target.template).Msgf("未找到目标 %s", target.label)
	}
	return nil
}

// sellOne 先在底部找，找不到再逐屏上滑，直到列表不再变化。
func (f *sellFlow) sellOne(target sellTarget) (bool, error) {
	f.log.Info().Str("template", target.template).Msgf("开始寻找 %s", target.label)
	if err := f.host.Focus("正在寻找 " + target.label); err != nil {
		f.log.Debug().Err(err).Msg("focus failed")
	}

	if err := f.runTask(scrollBottomTask, nil); err != nil {
		return false, err
	}
	img, err := f.screencap()
	if err != nil {
		return false, err
	}
	if found, err := f.tryFindAndClick(img, target); found || err != nil {
		return found, err
	}

	if err := f.checkStop(); err != nil {
		return false, err
	}
	if err := f.runTask(prepareUpTask, nil); err != nil {
		return false, err
	}
	prepareImg, err := f.screencap()
	if err != nil {
		return false, err
	}
	if found, err := f.tryFindAndClick(prepareImg, target); found || err != nil {
		return found, err
	}

	baseline, ok := cropImage(prepareImg, compareROI)
	if !ok {
		f.log.Warn().Msg("无法获取对比区域")
		return false, nil
	}

	for i := 0; i < maxScrollUp; i++ {
		if err := f.runTask(scrollUpTask, nil); err != nil {
			return false, err
		}
		if err := f.checkStop(); err != nil {
			return false, err
		}
		f.sleep(scrollSettle)

		img, err := f.screencap()
		if err != nil {
			return false, err
		}
		current, ok := cropImage(img, compareROI)
		if !ok {
			return false, nil
		}
		if !roi.Changed(baseline, current, pixelDiffThreshold) {
			f.log.Debug().Int("scroll", i+1).Msg("列表已到顶")
			return false, nil
		}
		baseline = current

		found, err := f.tryFindAndClick(img, target)
		if found || err != nil {
			return found, err
		}
	}
	return false, nil
}

func cropImage(img image.Image, box roi.Box) (image.Image, bool) {
	if img == nil {
		return nil, false
	}
	crop, ok := roi.Crop(img, box)
	if !ok {
		return nil, false
	}
	return crop, true
}

func (f *sellFlow) tryFindAndClick(img image.Image, target sellTarget) (bool, error) {
	if err := f.checkStop(); err != nil {
		return false, err
	}
	if img == nil {
		return false, nil
	}

	detail, err := f.host.RunRecognition(findNode, img, findOverride(target.template))
	if err != nil {
		f.log.Warn().Err(err).Str("template", target.template).Msg("模板匹配失败")
		return false, nil
	}
	boxes := detail.HitBoxes()
	if len(boxes) == 0 {
		return false, nil
	}

	for _, box := range boxes {
		if err := f.checkStop(); err != nil {
			return false, err
		}
		if target.expectedPrice != "" && !f.priceMatches(img, box, target.expectedPrice) {
			continue
		}
		if f.click(box) {
			return true, nil
		}
	}
	return false, nil
}

func (f *sellFlow) priceMatches(img image.Image, box roi.Box, expected string) bool {
	detail, err := f.host.RunRecognition(priceNode, img, priceOverride(box, expected))
	if err != nil {
		f.log.Warn().Err(err).Str("box", box.String()).Msg("价格识别失败")
		return false
	}
	return detail != nil && detail.Hit
}

func (f *sellFlow) click(box roi.Box) bool {
	if f.host.Stopping() || !box.Valid() {
		return false
	}
	x, y := box.Center()
	if err := f.host.Click(x, y); err != nil {
		f.log.Warn().Err(err).Int("x", x).Int("y", y).Msg("点击失败")
		return false
	}
	return true
}

func findOverride(template string) map[string]any {
	return map[string]any{
		findNode: map[string]any{
			"recognition": map[string]any{
				"type": "TemplateMatch",
				"param": map[string]any{
					"template": []string{template},
					"roi":      findROI.Ints(),
					"order_by": "Score",
				},
			},
		},
	}
}

func priceOverride(box roi.Box, expected string) map[string]any {
	return map[string]any{
		priceNode: map[string]any{
			"recognition": map[string]any{
				"param": map[string]any{
					"expected":   expected,
					"roi":        box.Ints(),
					"roi_offset": priceOffset(box).Ints(),
				},
			},
		},
	}
}

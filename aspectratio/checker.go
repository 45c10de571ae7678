package aspectratio

import (
	"errors"
	"fmt"
	"image"
	"sync"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"
)

const (
	expectedW = 9
	expectedH = 16
	// 允许的相对误差，兼容 1080x1921 这类带状态栏偏差的截图
	tolerance = 0.01
)

const warningMessage = `<span style="color:#ff9800">当前截图比例不是 9:16 竖屏，识别坐标可能偏移，建议将模拟器分辨率设为 720x1280。</span>`

var errNoController = errors.New("tasker has no controller")

// AspectRatioChecker 在首个任务启动时截一帧，比例不是 9:16 竖屏时提醒一次，不中断任务。
type AspectRatioChecker struct {
	mu     sync.Mutex
	warned bool

	capture func(*maa.Tasker) (image.Image, error)
	notify  func(string)
}

var _ maa.TaskerEventSink = &AspectRatioChecker{}

// NewChecker 返回使用控制器截图的检查器。
func NewChecker() *AspectRatioChecker {
	return &AspectRatioChecker{
		capture: screencap,
		notify:  func(msg string) { fmt.Println(msg) },
	}
}

// OnTaskerTask 只在任务开始时检查。
func (c *AspectRatioChecker) OnTaskerTask(tasker *maa.Tasker, event maa.EventStatus, detail maa.TaskerTaskDetail) {
	if event != maa.EventStatusStarting {
		return
	}
	c.mu.Lock()
	done := c.warned
	c.mu.Unlock()
	if done {
		return
	}

	log.Debug().
		Uint64("task_id", detail.TaskID).
		Str("entry", detail.Entry).
		Msg("[AspectRatio]checking capture size before task execution")

	img, err := c.capture(tasker)
	if err != nil {
		log.Warn().Err(err).Msg("[AspectRatio]failed to capture frame")
		return
	}
	c.check(img)
}

// check 比例不符时记录并提示；返回是否发出了提示。
func (c *AspectRatioChecker) check(img image.Image) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	if isPortrait916(b.Dx(), b.Dy()) {
		log.Debug().Int("width", b.Dx()).Int("height", b.Dy()).Msg("[AspectRatio]check passed")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warned {
		return false
	}
	c.warned = true

	log.Warn().
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("[AspectRatio]capture is not 9:16 portrait")
	if c.notify != nil {
		c.notify(warningMessage)
	}
	return true
}

func isPortrait916(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	got := float64(w) / float64(h)
	want := float64(expectedW) / float64(expectedH)
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= want*tolerance
}

func screencap(tasker *maa.Tasker) (image.Image, error) {
	if tasker == nil {
		return nil, errNoController
	}
	ctrl := tasker.GetController()
	if ctrl == nil {
		return nil, errNoController
	}
	ctrl.PostScreencap().Wait()
	return ctrl.CacheImage()
}

// Register 注册比例检查 sink。
func Register() {
	maa.AgentServerAddTaskerSink(NewChecker())
}

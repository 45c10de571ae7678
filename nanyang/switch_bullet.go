package nanyang

import (
	"image"
	"time"

	maa "github.com/MaaXYZ/maa-framework-go/v4"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

const (
	hatCurrentReco   = "南阳-当前为草帽菌"
	coralCurrentReco = "南阳-当前为珊瑚"
	gemCurrentReco   = "南阳-当前为宝石菌"

	switchClickDelay = 500 * time.Millisecond
)

var (
	coralButton   = roi.Box{X: 355, Y: 620, W: 30, H: 25}
	hatButton     = roi.Box{X: 156, Y: 619, W: 32, H: 28}
	confirmButton = roi.Box{X: 346, Y: 825, W: 56, H: 26}
)

type bulletKind int

const (
	bulletNone bulletKind = iota
	bulletHat
	bulletCoral
	bulletGem
)

// NanyangSwitchBullet 把当前子弹降一级：宝石菌 → 珊瑚，珊瑚 → 草帽菌。
// 已是草帽菌时执行 stop 节点并返回失败。
type NanyangSwitchBullet struct {
	sleep func(time.Duration)
}

var _ maa.CustomActionRunner = &NanyangSwitchBullet{}

func (a *NanyangSwitchBullet) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return a.run(maahost.FromContext(ctx))
}

func (a *NanyangSwitchBullet) run(h maahost.Host) bool {
	sleep := a.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	img, err := h.Screencap()
	if err != nil {
		nyLog.Warn().Err(err).Msg("NanyangSwitchBullet: no screenshot")
		return false
	}

	switch currentBullet(h, img) {
	case bulletNone:
		nyLog.Warn().Msg("NanyangSwitchBullet: cannot detect current bullet")
		return false
	case bulletHat:
		nyLog.Info().Msg("NanyangSwitchBullet: already at lowest bullet")
		if err := h.RunTask("stop", nil); err != nil {
			nyLog.Warn().Err(err).Msg("NanyangSwitchBullet: run stop failed")
		}
		return false
	case bulletGem:
		if !clickBox(h, coralButton) {
			return false
		}
	case bulletCoral:
		if !clickBox(h, hatButton) {
			return false
		}
	}

	sleep(switchClickDelay)

	if !clickBox(h, confirmButton) {
		nyLog.Warn().Msg("NanyangSwitchBullet: failed to click confirm")
		return false
	}
	nyLog.Info().Msg("NanyangSwitchBullet: bullet switched")
	return true
}

// currentBullet 三个识别都跑一遍，按 宝石菌 > 珊瑚 > 草帽菌 取最高档。
func currentBullet(h maahost.Host, img image.Image) bulletKind {
	hit := func(entry string) bool {
		detail, err := h.RunRecognition(entry, img, nil)
		if err != nil {
			nyLog.Warn().Err(err).Str("reco", entry).Msg("NanyangSwitchBullet: recognition failed")
			return false
		}
		return detail != nil && detail.Hit
	}
	hatHit := hit(hatCurrentReco)
	coralHit := hit(coralCurrentReco)
	gemHit := hit(gemCurrentReco)

	switch {
	case gemHit:
		return bulletGem
	case coralHit:
		return bulletCoral
	case hatHit:
		return bulletHat
	}
	return bulletNone
}

func clickBox(h maahost.Host, box roi.Box) bool {
	x, y := box.Center()
	if err := h.Click(x, y); err != nil {
		nyLog.Warn().Err(err).Str("box", box.String()).Msg("NanyangSwitchBullet: click failed")
		return false
	}
	return true
}

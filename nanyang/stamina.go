package nanyang

import (
	"fmt"
	"image"

	maa "github.com/MaaXYZ/maa-framework-go/v4"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/textnum"
)

const (
	staminaReco     = "南阳-识别当前体力"
	potatoReco      = "南阳-识别当前白薯数"
	hatBulletReco   = "南阳-ocr草帽菌数量"
	coralBulletReco = "南阳-ocr公孙珊珊瑚数量"
	gemBulletReco   = "南阳-ocr酥酪宝石菌数量"

	potatoStamina = 10
	hatDamage     = 10
	coralDamage   = 20
	gemDamage     = 30
)

// NanyangStamina 体力 + 白薯*10 达到阈值才命中。
//
// custom_recognition_param: {"threshold": 120}
type NanyangStamina struct{}

// NanyangCheckBullets 三种子弹折算攻击力达到阈值才命中。
//
// custom_recognition_param: {"threshold": 60}
type NanyangCheckBullets struct{}

var (
	_ maa.CustomRecognitionRunner = &NanyangStamina{}
	_ maa.CustomRecognitionRunner = &NanyangCheckBullets{}
)

// gateResult 阈值判定通过时的伪命中结果。
type gateResult struct {
	detail string
}

func toRecognitionResult(res *gateResult) (*maa.CustomRecognitionResult, bool) {
	if res == nil {
		return nil, false
	}
	return &maa.CustomRecognitionResult{
		Box:    maa.Rect{0, 0, 0, 0},
		Detail: res.detail,
	}, true
}

func (r *NanyangStamina) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	threshold := param.Int(param.Normalize(arg.CustomRecognitionParam, "NanyangStamina"), "threshold", 0)
	return toRecognitionResult(checkStamina(maahost.FromContext(ctx), arg.Img, threshold))
}

func checkStamina(h maahost.Host, img image.Image, threshold int) *gateResult {
	stamina, ok := readCurrent(h, img, staminaReco, "当前体力")
	if !ok {
		return nil
	}
	potatoes, ok := readCurrent(h, img, potatoReco, "白薯数量")
	if !ok {
		return nil
	}

	sum := stamina + potatoes*potatoStamina
	if sum < threshold {
		nyLog.Info().Msgf("可用体力%d < %d，探索行动取消", sum, threshold)
		return nil
	}
	nyLog.Info().Msgf("可用体力%d >= %d", sum, threshold)
	return &gateResult{detail: fmt.Sprintf("%d+%d*%d=%d", stamina, potatoes, potatoStamina, sum)}
}

func readCurrent(h maahost.Host, img image.Image, entry, what string) (int, bool) {
	detail, err := h.RunRecognition(entry, img, nil)
	if err != nil {
		nyLog.Warn().Err(err).Str("reco", entry).Msg("识别失败")
		return 0, false
	}
	text := detail.BestText()
	if text == "" {
		nyLog.Info().Msgf("未识别到%s文本", what)
		return 0, false
	}
	n, ok := textnum.Current(text)
	if !ok {
		nyLog.Info().Msgf("%s识别失败，识别到文本：'%s'", what, text)
		return 0, false
	}
	return n, true
}

func (r *NanyangCheckBullets) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	threshold := param.Int(param.Normalize(arg.CustomRecognitionParam, "NanyangCheckBullets"), "threshold", 0)
	return toRecognitionResult(checkBullets(maahost.FromContext(ctx), arg.Img, threshold))
}

func checkBullets(h maahost.Host, img image.Image, threshold int) *gateResult {
	hats, ok := readCount(h, img, hatBulletReco, "草帽菌")
	if !ok {
		return nil
	}
	corals, ok := readCount(h, img, coralBulletReco, "珊瑚菌")
	if !ok {
		return nil
	}
	gems, ok := readCount(h, img, gemBulletReco, "宝石菌")
	if !ok {
		return nil
	}

	sum := hats*hatDamage + corals*coralDamage + gems*gemDamage
	if sum < threshold {
		nyLog.Info().Msgf("当前总攻击力 %d < %d，取消宇宙探索计划", sum, threshold)
		return nil
	}
	nyLog.Info().Msgf("当前总攻击力 %d >= %d，可以进行宇宙探索", sum, threshold)
	return &gateResult{detail: fmt.Sprintf("%d*%d+%d*%d+%d*%d=%d",
		hats, hatDamage, corals, coralDamage, gems, gemDamage, sum)}
}

func readCount(h maahost.Host, img image.Image, entry, what string) (int, bool) {
	detail, err := h.RunRecognition(entry, img, nil)
	if err != nil {
		nyLog.Warn().Err(err).Str("reco", entry).Msg("识别失败")
		return 0, false
	}
	n, ok := textnum.Count(detail.Texts())
	if !ok {
		nyLog.Info().Msgf("%s数量识别失败", what)
		return 0, false
	}
	return n, true
}

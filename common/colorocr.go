package common

import (
	"errors"
	"fmt"
	"image"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

const (
	defaultTolerance = 55
	fallbackOCRNode  = "TargetStageName_OCR"
)

var (
	defaultTargetColor = [3]int{255, 255, 255}
	fallbackOCRROI     = roi.Box{X: 63, Y: 533, W: 1156, H: 62}
)

var (
	errInvalidColor  = errors.New("target_color must be three numbers")
	errNoRecognition = errors.New("recognition is required")
)

// ColorOCR 颜色过滤后进行 OCR 识别。
//
// custom_recognition_param:
//   - target_color: [R, G, B]，默认白色
//   - tolerance: 逐通道容差，默认 55
//   - recognition: 在过滤后图像上运行的 OCR 节点
type ColorOCR struct{}

// ColorOCRWithFallback 先做颜色过滤 OCR，失败后在原图上做纯 OCR。
type ColorOCRWithFallback struct{}

var (
	_ maa.CustomRecognitionRunner = (*ColorOCR)(nil)
	_ maa.CustomRecognitionRunner = (*ColorOCRWithFallback)(nil)
)

type colorOCRParams struct {
	target      [3]int
	tolerance   int
	recognition string
}

func parseColorOCRParams(raw any, name string) (colorOCRParams, error) {
	params := param.Normalize(raw, name)
	p := colorOCRParams{
		target:      defaultTargetColor,
		tolerance:   param.Int(params, "tolerance", defaultTolerance),
		recognition: param.String(params, "recognition"),
	}
	if _, ok := params["target_color"]; ok {
		color, ok := param.Ints(params, "target_color")
		if !ok || len(color) != 3 {
			return p, fmt.Errorf("%w: %v", errInvalidColor, params["target_color"])
		}
		copy(p.target[:], color)
	}
	if p.recognition == "" {
		return p, errNoRecognition
	}
	return p, nil
}

// colorOCRResult 识别命中后回传给框架的框与 detail。
type colorOCRResult struct {
	box    roi.Box
	detail string
}

func (r *colorOCRResult) toMaa() (*maa.CustomRecognitionResult, bool) {
	if r == nil {
		return nil, false
	}
	return &maa.CustomRecognitionResult{
		Box:    maa.Rect{r.box.X, r.box.Y, r.box.W, r.box.H},
		Detail: r.detail,
	}, true
}

func (r *ColorOCR) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	return colorOCR(maahost.FromContext(ctx), arg.Img, arg.CustomRecognitionParam).toMaa()
}

func (r *ColorOCRWithFallback) Run(ctx *maa.Context, arg *maa.CustomRecognitionArg) (*maa.CustomRecognitionResult, bool) {
	return colorOCRWithFallback(maahost.FromContext(ctx), arg.Img, arg.CustomRecognitionParam).toMaa()
}

func colorOCR(h maahost.Host, img image.Image, rawParam any) *colorOCRResult {
	p, err := parseColorOCRParams(rawParam, "ColorOCR")
	if err != nil {
		log.Error().Err(err).Msg("[ColorOCR]参数无效")
		return nil
	}
	detail, ok := runFiltered(h, img, p)
	if !ok {
		return nil
	}
	log.Debug().Str("text", detail.BestText()).Msg("[ColorOCR]识别成功")
	return &colorOCRResult{box: detail.Box, detail: detail.Raw}
}

func colorOCRWithFallback(h maahost.Host, img image.Image, rawParam any) *colorOCRResult {
	p, err := parseColorOCRParams(rawParam, "ColorOCRWithFallback")
	if err != nil {
		log.Error().Err(err).Msg("[ColorOCRWithFallback]参数无效")
		return nil
	}

	if detail, ok := runFiltered(h, img, p); ok {
		log.Debug().Msg("[ColorOCRWithFallback]颜色过滤 OCR 识别成功")
		return &colorOCRResult{box: detail.Box, detail: methodDetail("color_ocr", detail.Raw)}
	}

	detail, err := h.RunRecognition(p.recognition, img, map[string]any{
		fallbackOCRNode: map[string]any{
			"recognition": map[string]any{
				"param": map[string]any{"roi": fallbackOCRROI.Ints()},
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Str("recognition", p.recognition).Msg("[ColorOCRWithFallback]纯 OCR 失败")
		return nil
	}
	if detail == nil || !detail.Hit {
		return nil
	}
	log.Debug().Msg("[ColorOCRWithFallback]纯 OCR 识别成功")
	return &colorOCRResult{box: detail.Box, detail: methodDetail("pure_ocr", detail.Raw)}
}

func runFiltered(h maahost.Host, img image.Image, p colorOCRParams) (*maahost.Detail, bool) {
	if img == nil {
		log.Error().Msg("[ColorOCR]图像为空")
		return nil, false
	}
	filtered := roi.ColorFilter(img, p.target, p.tolerance)
	detail, err := h.RunRecognition(p.recognition, filtered, nil)
	if err != nil {
		log.Error().Err(err).Str("recognition", p.recognition).Msg("[ColorOCR]识别失败")
		return nil, false
	}
	if detail == nil || !detail.Hit {
		return nil, false
	}
	return detail, true
}

// methodDetail 记录命中方式；原始 detail 能解析就内嵌为对象，否则按字符串保存。
func methodDetail(method, raw string) string {
	var rawDetail any = raw
	var decoded any
	if raw != "" && sonic.UnmarshalString(raw, &decoded) == nil {
		rawDetail = decoded
	}
	data, err := sonic.MarshalString(map[string]any{
		"method":     method,
		"raw_detail": rawDetail,
	})
	if err != nil {
		return fmt.Sprintf(`{"method":%q}`, method)
	}
	return data
}

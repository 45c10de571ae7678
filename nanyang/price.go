package nanyang

import (
	"math"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

// 价格区域标定：由商品框 (x, y, w, h) 线性推算价格数字所在框。
// 每项都是 num/den 形式的有理系数。
type ratio struct{ num, den float64 }

func (r ratio) of(v float64) float64 { return v * r.num / r.den }

func (r ratio) value() float64 { return r.num / r.den }

var (
	priceXCoeff  = ratio{267, 271}
	priceXWCoeff = ratio{8504, 13279}
	priceXBias   = ratio{-152689, 13279}
	priceYCoeff  = ratio{137, 134}
	priceYHCoeff = ratio{641, 268}
	priceYBias   = ratio{-3276, 67}
	priceWCoeff  = ratio{1481, 13279}
	priceWXCoeff = ratio{3, 271}
	priceWBias   = ratio{639918, 13279}
	priceHCoeff  = ratio{-245, 268}
	priceHYCoeff = ratio{-7, 134}
	priceHBias   = ratio{8113, 67}
)

// priceOffset 返回价格框相对商品框的偏移 (dx, dy, dw, dh)，用作 roi_offset。
// 取整为四舍六入五成双。
func priceOffset(box roi.Box) roi.Box {
	x, y, w, h := float64(box.X), float64(box.Y), float64(box.W), float64(box.H)

	tx := int(math.RoundToEven(priceXCoeff.of(x) + priceXWCoeff.of(w) + priceXBias.value()))
	ty := int(math.RoundToEven(priceYCoeff.of(y) + priceYHCoeff.of(h) + priceYBias.value()))
	tw := int(math.RoundToEven(priceWCoeff.of(w) + priceWXCoeff.of(x) + priceWBias.value()))
	th := int(math.RoundToEven(priceHCoeff.of(h) + priceHYCoeff.of(y) + priceHBias.value()))

	return roi.Box{X: tx - box.X, Y: ty - box.Y, W: tw - box.W, H: th - box.H}
}

// priceOffsetAny 接受未经校验的框；无法转成四个整数时返回全零偏移。
func priceOffsetAny(v any) roi.Box {
	box, ok := roi.FromAny(v)
	if !ok {
		return roi.Box{}
	}
	return priceOffset(box)
}

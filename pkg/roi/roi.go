// Package roi holds the pixel-rectangle helpers shared by the custom actions:
// box validation, clamping to a frame, cropping and click centres.
package roi

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Box 屏幕像素坐标下的矩形 (x, y, width, height)。
type Box struct {
	X, Y, W, H int
}

// Zero 是识别器“伪命中”时回传的空框。
var Zero = Box{}

// Valid 宽高都为正才算有效框。
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Center 返回点击中心点。
func (b Box) Center() (int, int) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Ints 转为 pipeline override 使用的 [x, y, w, h]。
func (b Box) Ints() []int {
	return []int{b.X, b.Y, b.W, b.H}
}

// Rect 转为 image.Rectangle。
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

func (b Box) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d]", b.X, b.Y, b.W, b.H)
}

// FromInts builds a box from a 4-element slice.
func FromInts(v []int) (Box, bool) {
	if len(v) < 4 {
		return Box{}, false
	}
	return Box{X: v[0], Y: v[1], W: v[2], H: v[3]}, true
}

// FromAny coerces a decoded JSON value (a list of four numbers or numeric
// strings) into a box. Anything else is rejected.
func FromAny(v any) (Box, bool) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []int:
		return FromInts(t)
	case []float64:
		items = make([]any, len(t))
		for i, f := range t {
			items[i] = f
		}
	case Box:
		return t, true
	default:
		return Box{}, false
	}
	if len(items) < 4 {
		return Box{}, false
	}
	var out [4]int
	for i := 0; i < 4; i++ {
		n, ok := toInt(items[i])
		if !ok {
			return Box{}, false
		}
		out[i] = n
	}
	return Box{X: out[0], Y: out[1], W: out[2], H: out[3]}, true
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// Clamp 将框限制在 bounds 内；x/y 落在 [0, size-1]，宽高至少为 1。
// 输入框本身无效或 bounds 为空时返回 false。
func Clamp(b Box, bounds image.Rectangle) (Box, bool) {
	if !b.Valid() || bounds.Empty() {
		return Box{}, false
	}
	width, height := bounds.Dx(), bounds.Dy()
	x := clampInt(b.X, 0, width-1)
	y := clampInt(b.Y, 0, height-1)
	w := clampInt(b.W, 1, width-x)
	h := clampInt(b.H, 1, height-y)
	out := Box{X: x, Y: y, W: w, H: h}
	if !out.Valid() {
		return Box{}, false
	}
	return out, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Crop 把 ROI 拷贝成独立的 RGBA 图像，坐标原点归零，便于逐像素比较。
func Crop(img image.Image, b Box) (*image.RGBA, bool) {
	if img == nil {
		return nil, false
	}
	bounds := img.Bounds()
	clamped, ok := Clamp(b, bounds)
	if !ok {
		return nil, false
	}
	src := clamped.Rect().Add(bounds.Min)
	dst := image.NewRGBA(image.Rect(0, 0, clamped.W, clamped.H))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst, true
}

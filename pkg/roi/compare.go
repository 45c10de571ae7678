package roi

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Changed 逐像素比较两张同尺寸图像，任一像素任一通道差值超过 threshold 即视为变化。
// 任一为空或尺寸不同也视为变化。
func Changed(before, after image.Image, threshold int) bool {
	if before == nil || after == nil {
		return true
	}
	ba, bb := before.Bounds(), after.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return true
	}
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			r1, g1, b1, _ := before.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			r2, g2, b2, _ := after.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if absDiff8(r1, r2) > threshold || absDiff8(g1, g2) > threshold || absDiff8(b1, b2) > threshold {
				return true
			}
		}
	}
	return false
}

func absDiff8(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}

// ColorFilter 把落在 target±tolerance（逐通道，截断到 [0,255]）内的像素涂黑，其余涂白，
// 用于给 OCR 提供高对比度输入。
func ColorFilter(img image.Image, target [3]int, tolerance int) *image.RGBA {
	bounds := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(src, image.Point{}, img, bounds, draw.Src, nil)

	var lower, upper [3]int
	for i, c := range target {
		lower[i] = clampInt(c-tolerance, 0, 255)
		upper[i] = clampInt(c+tolerance, 0, 255)
	}

	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	out := image.NewRGBA(src.Bounds())
	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			p := src.RGBAAt(x, y)
			ch := [3]int{int(p.R), int(p.G), int(p.B)}
			match := true
			for i := range ch {
				if ch[i] < lower[i] || ch[i] > upper[i] {
					match = false
					break
				}
			}
			if match {
				out.SetRGBA(x, y, black)
			} else {
				out.SetRGBA(x, y, white)
			}
		}
	}
	return out
}

package roi

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestClampRejectsNonPositive(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	for _, b := range []Box{{0, 0, 0, 10}, {0, 0, 10, 0}, {5, 5, -3, 4}, {5, 5, 4, -1}} {
		if _, ok := Clamp(b, bounds); ok {
			t.Errorf("expected %v to be rejected", b)
		}
	}
}

func TestClampInsideBounds(t *testing.T) {
	got, ok := Clamp(Box{X: 90, Y: -5, W: 50, H: 20}, image.Rect(0, 0, 100, 100))
	if !ok {
		t.Fatalf("expected clamp to succeed")
	}
	want := Box{X: 90, Y: 0, W: 10, H: 20}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	got, ok = Clamp(Box{X: 500, Y: 500, W: 10, H: 10}, image.Rect(0, 0, 100, 100))
	if !ok {
		t.Fatalf("expected clamp of off-screen box to succeed")
	}
	if got != (Box{X: 99, Y: 99, W: 1, H: 1}) {
		t.Errorf("unexpected clamp result %v", got)
	}
}

func TestCropNilImage(t *testing.T) {
	if _, ok := Crop(nil, Box{0, 0, 10, 10}); ok {
		t.Errorf("expected nil image to be rejected")
	}
	if _, ok := Crop(solid(10, 10, color.RGBA{A: 255}), Box{0, 0, 0, 5}); ok {
		t.Errorf("expected empty box to be rejected")
	}
}

func TestCropCopiesPixels(t *testing.T) {
	img := solid(20, 20, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(5, 6, color.RGBA{R: 200, A: 255})

	crop, ok := Crop(img, Box{X: 5, Y: 6, W: 4, H: 4})
	if !ok {
		t.Fatalf("expected crop to succeed")
	}
	if crop.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected crop bounds %v", crop.Bounds())
	}
	if got := crop.RGBAAt(0, 0); got.R != 200 {
		t.Errorf("expected top-left pixel from source (5,6), got %v", got)
	}
	if got := crop.RGBAAt(1, 1); got.R != 10 || got.G != 20 || got.B != 30 {
		t.Errorf("unexpected pixel %v", got)
	}
}

func TestChanged(t *testing.T) {
	a := solid(8, 8, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	b := solid(8, 8, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	if Changed(a, b, 2) {
		t.Errorf("identical images should be unchanged")
	}

	b.SetRGBA(3, 3, color.RGBA{R: 102, G: 100, B: 100, A: 255})
	if Changed(a, b, 2) {
		t.Errorf("diff of exactly the threshold should be unchanged")
	}

	b.SetRGBA(4, 4, color.RGBA{R: 100, G: 100, B: 103, A: 255})
	if !Changed(a, b, 2) {
		t.Errorf("diff above threshold in one channel should be changed")
	}

	if !Changed(a, solid(8, 9, color.RGBA{A: 255}), 2) {
		t.Errorf("different sizes should be changed")
	}
	if !Changed(nil, b, 2) {
		t.Errorf("nil input should be changed")
	}
}

func TestColorFilter(t *testing.T) {
	img := solid(2, 1, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, G: 250, B: 250, A: 255})

	out := ColorFilter(img, [3]int{255, 255, 255}, 55)
	if got := out.RGBAAt(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("expected matching pixel to be black, got %v", got)
	}
	if got := out.RGBAAt(1, 0); got.R != 255 {
		t.Errorf("expected non-matching pixel to be white, got %v", got)
	}
}

func TestFromAny(t *testing.T) {
	b, ok := FromAny([]any{1.0, "2", 3.0, 4.0})
	if !ok || b != (Box{1, 2, 3, 4}) {
		t.Errorf("unexpected result %v %v", b, ok)
	}
	if _, ok := FromAny([]any{1.0, 2.0, "x", 4.0}); ok {
		t.Errorf("expected non-numeric element to be rejected")
	}
	if _, ok := FromAny([]any{1.0, 2.0}); ok {
		t.Errorf("expected short slice to be rejected")
	}
	if _, ok := FromAny(nil); ok {
		t.Errorf("expected nil to be rejected")
	}
}

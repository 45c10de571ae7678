package maahost

import (
	"testing"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

func TestParseDetailBestObject(t *testing.T) {
	raw := `{
		"best": {"box": [10, 20, 30, 40], "text": "45/120", "score": 0.98},
		"filtered": [{"box": [10, 20, 30, 40], "text": "45/120", "score": 0.98}],
		"all": [{"box": [1, 2, 3, 4], "text": "noise", "score": 0.2}]
	}`
	d := ParseDetail(true, roi.Box{X: 10, Y: 20, W: 30, H: 40}, raw)
	if d.Best == nil || d.Best.Text != "45/120" {
		t.Fatalf("unexpected best %+v", d.Best)
	}
	if d.BestText() != "45/120" {
		t.Errorf("unexpected BestText %q", d.BestText())
	}
	box, ok := d.HitBox()
	if !ok || box != (roi.Box{X: 10, Y: 20, W: 30, H: 40}) {
		t.Errorf("unexpected HitBox %v %v", box, ok)
	}
	if len(d.All) != 1 || d.All[0].Score != 0.2 {
		t.Errorf("unexpected all results %+v", d.All)
	}
}

func TestParseDetailBestList(t *testing.T) {
	raw := `{"best": [{"box": [5, 6, 7, 8], "text": "3"}], "filtered": [], "all": []}`
	d := ParseDetail(true, roi.Box{}, raw)
	if d.Best == nil || d.Best.Box != (roi.Box{X: 5, Y: 6, W: 7, H: 8}) {
		t.Fatalf("expected best from list form, got %+v", d.Best)
	}
	boxes := d.HitBoxes()
	if len(boxes) != 1 || boxes[0] != d.Best.Box {
		t.Errorf("expected HitBoxes to fall back to best, got %v", boxes)
	}
}

func TestParseDetailGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "{", "null", `{"best": 3}`} {
		d := ParseDetail(false, roi.Box{}, raw)
		if d == nil {
			t.Fatalf("ParseDetail(%q) returned nil", raw)
		}
		if d.BestText() != "" || len(d.Items()) != 0 {
			t.Errorf("ParseDetail(%q) expected empty detail, got %+v", raw, d)
		}
	}
}

func TestAccessorsNil(t *testing.T) {
	var d *Detail
	if d.BestText() != "" || d.Texts() != nil || d.Items() != nil || d.HitBoxes() != nil {
		t.Errorf("nil detail accessors should return empty values")
	}
	if _, ok := d.HitBox(); ok {
		t.Errorf("nil detail should not have a hit box")
	}
}

func TestHitBoxesRequireHit(t *testing.T) {
	d := &Detail{
		Hit:      false,
		Filtered: []Result{{Box: roi.Box{X: 1, Y: 1, W: 2, H: 2}}},
	}
	if boxes := d.HitBoxes(); boxes != nil {
		t.Errorf("miss should produce no boxes, got %v", boxes)
	}
	if _, ok := d.HitBox(); ok {
		t.Errorf("miss should produce no hit box")
	}
}

func TestHitBoxesSkipInvalid(t *testing.T) {
	d := &Detail{
		Hit: true,
		Filtered: []Result{
			{Box: roi.Box{}},
			{Box: roi.Box{X: 3, Y: 4, W: 5, H: 6}},
		},
		All: []Result{{Box: roi.Box{X: 9, Y: 9, W: 9, H: 9}}},
	}
	boxes := d.HitBoxes()
	if len(boxes) != 1 || boxes[0] != (roi.Box{X: 3, Y: 4, W: 5, H: 6}) {
		t.Errorf("unexpected boxes %v", boxes)
	}
}

func TestTexts(t *testing.T) {
	best := Result{Box: roi.Box{X: 1, Y: 1, W: 5, H: 5}, Text: "12"}
	d := &Detail{
		Hit:  true,
		Best: &best,
		Filtered: []Result{
			best,
			{Box: roi.Box{X: 9, Y: 1, W: 5, H: 5}, Text: "12"},
			{Text: ""},
			{Text: "x3"},
		},
		All: []Result{{Text: "ignored"}},
	}
	got := d.Texts()
	want := []string{"12", "12", "x3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestBestTextFallsBack(t *testing.T) {
	d := &Detail{All: []Result{{Text: ""}, {Text: "abc"}}}
	if d.BestText() != "abc" {
		t.Errorf("expected fallback to all results, got %q", d.BestText())
	}
}

func TestDeepText(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"text": "top"}`, "top"},
		{`{"best": {"text": "inner"}}`, "inner"},
		{`{"raw_detail": {"detail": {"best": {"text": "deep"}}}}`, "deep"},
		{`{"filtered": [{"text": ""}, {"text": "second"}]}`, "second"},
		{`{"raw_detail": "{\"best\":{\"text\":\"encoded\"}}"}`, "encoded"},
		{`{"detail": {"detail": {"detail": {"detail": {"detail": {"text": "too deep"}}}}}}`, ""},
		{`not json`, ""},
		{``, ""},
	}
	for _, c := range cases {
		if got := DeepText(c.raw); got != c.want {
			t.Errorf("DeepText(%s) expected %q, got %q", c.raw, c.want, got)
		}
	}
}

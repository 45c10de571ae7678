// Package maahosttest provides a scripted maahost.Host for unit tests.
package maahosttest

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

// ErrNoFrame is returned by Screencap when no frame has been scripted.
var ErrNoFrame = errors.New("no frame scripted")

// TaskCall records one RunTask invocation.
type TaskCall struct {
	Entry    string
	Override map[string]any
}

// RecoCall records one RunRecognition invocation.
type RecoCall struct {
	Entry    string
	Override map[string]any
}

// Host is a fake maahost.Host. Zero value is usable: every recognition
// misses, every task succeeds, Screencap returns a blank frame.
type Host struct {
	mu sync.Mutex

	// Details maps an entry name to a fixed recognition result.
	Details map[string]*maahost.Detail
	// Recognize overrides Details when set.
	Recognize func(entry string, img image.Image, override map[string]any) (*maahost.Detail, error)
	// OnTask is called for every RunTask after it has been recorded.
	OnTask func(entry string, override map[string]any) error
	// Frames are returned in order by Screencap; the last one repeats.
	Frames       []image.Image
	ScreencapErr error
	OverrideErr  error
	// StopAfterTasks flips Stopping to true once that many tasks have run.
	StopAfterTasks int
	Stopped        bool

	Tasks     []TaskCall
	Recos     []RecoCall
	Clicks    []image.Point
	Nexts     map[string][]string
	Pipelines []map[string]any
	Focuses   []string
	frame     int
}

var _ maahost.Host = (*Host)(nil)

// New returns an empty fake host.
func New() *Host {
	return &Host{Details: map[string]*maahost.Detail{}}
}

func (h *Host) RunTask(entry string, override map[string]any) error {
	h.mu.Lock()
	h.Tasks = append(h.Tasks, TaskCall{Entry: entry, Override: override})
	if h.StopAfterTasks > 0 && len(h.Tasks) >= h.StopAfterTasks {
		h.Stopped = true
	}
	fn := h.OnTask
	h.mu.Unlock()
	if fn != nil {
		return fn(entry, override)
	}
	return nil
}

func (h *Host) RunRecognition(entry string, img image.Image, override map[string]any) (*maahost.Detail, error) {
	h.mu.Lock()
	h.Recos = append(h.Recos, RecoCall{Entry: entry, Override: override})
	fn := h.Recognize
	d := h.Details[entry]
	h.mu.Unlock()
	if fn != nil {
		return fn(entry, img, override)
	}
	if d == nil {
		return &maahost.Detail{}, nil
	}
	return d, nil
}

func (h *Host) OverrideNext(name string, next []string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.OverrideErr != nil {
		return h.OverrideErr
	}
	if h.Nexts == nil {
		h.Nexts = map[string][]string{}
	}
	h.Nexts[name] = append([]string(nil), next...)
	return nil
}

func (h *Host) OverridePipeline(override map[string]any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.OverrideErr != nil {
		return h.OverrideErr
	}
	h.Pipelines = append(h.Pipelines, override)
	return nil
}

func (h *Host) Screencap() (image.Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ScreencapErr != nil {
		return nil, h.ScreencapErr
	}
	if len(h.Frames) == 0 {
		return Blank(720, 1280), nil
	}
	idx := h.frame
	if idx >= len(h.Frames) {
		idx = len(h.Frames) - 1
	}
	h.frame++
	img := h.Frames[idx]
	if img == nil {
		return nil, ErrNoFrame
	}
	return img, nil
}

func (h *Host) Click(x, y int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Clicks = append(h.Clicks, image.Pt(x, y))
	return nil
}

func (h *Host) Focus(content string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Focuses = append(h.Focuses, content)
	return nil
}

func (h *Host) Stopping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Stopped
}

// TaskNames lists the entries run so far, in order.
func (h *Host) TaskNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.Tasks))
	for _, t := range h.Tasks {
		out = append(out, t.Entry)
	}
	return out
}

// CountTask counts how many times entry has been run.
func (h *Host) CountTask(entry string) int {
	n := 0
	for _, name := range h.TaskNames() {
		if name == entry {
			n++
		}
	}
	return n
}

// Blank returns a black w×h frame.
func Blank(w, h int) *image.RGBA {
	return Solid(w, h, color.RGBA{A: 255})
}

// Solid returns a w×h frame filled with c.
func Solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Hit builds a hit detail whose filtered results carry the given boxes.
func Hit(boxes ...[4]int) *maahost.Detail {
	d := &maahost.Detail{Hit: true}
	for _, b := range boxes {
		r := maahost.Result{Box: boxOf(b), Score: 0.9}
		d.Filtered = append(d.Filtered, r)
		d.All = append(d.All, r)
	}
	if len(d.Filtered) > 0 {
		best := d.Filtered[0]
		d.Best = &best
		d.Box = best.Box
	}
	return d
}

// OCR builds a hit detail whose results carry the given texts.
func OCR(texts ...string) *maahost.Detail {
	d := &maahost.Detail{Hit: len(texts) > 0}
	for i, t := range texts {
		r := maahost.Result{Box: boxOf([4]int{10 * i, 0, 10, 10}), Text: t, Score: 0.99}
		d.Filtered = append(d.Filtered, r)
		d.All = append(d.All, r)
	}
	if len(d.Filtered) > 0 {
		best := d.Filtered[0]
		d.Best = &best
		d.Box = best.Box
	}
	return d
}

func boxOf(b [4]int) roi.Box {
	return roi.Box{X: b[0], Y: b[1], W: b[2], H: b[3]}
}

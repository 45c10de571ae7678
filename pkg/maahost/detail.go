package maahost

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/roi"
)

// Result 单条识别结果。OCR 有 Text，模板匹配只有 Box 和 Score。
type Result struct {
	Box   roi.Box
	Text  string
	Score float64
}

// Detail 识别详情，所有访问器都对空值安全。
type Detail struct {
	Hit      bool
	Box      roi.Box
	Best     *Result
	Filtered []Result
	All      []Result
	Raw      string
}

// BestText 优先取 best 的文本，其次 filtered、all 中第一条非空文本。
func (d *Detail) BestText() string {
	if d == nil {
		return ""
	}
	if d.Best != nil && d.Best.Text != "" {
		return d.Best.Text
	}
	for _, group := range [][]Result{d.Filtered, d.All} {
		for _, r := range group {
			if r.Text != "" {
				return r.Text
			}
		}
	}
	return ""
}

// Texts 返回 best 文本加上第一个非空结果集中的全部文本。
// 结果集里与 best 完全相同的那一条（同框同文本）不重复计入。
func (d *Detail) Texts() []string {
	if d == nil {
		return nil
	}
	var out []string
	if d.Best != nil && d.Best.Text != "" {
		out = append(out, d.Best.Text)
	}
	for _, r := range d.Items() {
		if r.Text == "" {
			continue
		}
		if d.Best != nil && r.Text == d.Best.Text && r.Box == d.Best.Box {
			continue
		}
		out = append(out, r.Text)
	}
	return out
}

// Items returns filtered results, falling back to all results.
func (d *Detail) Items() []Result {
	if d == nil {
		return nil
	}
	if len(d.Filtered) > 0 {
		return d.Filtered
	}
	return d.All
}

// HitBox 命中时返回最佳框，没有则取结果集第一条的框。
func (d *Detail) HitBox() (roi.Box, bool) {
	if d == nil || !d.Hit {
		return roi.Box{}, false
	}
	if d.Best != nil && d.Best.Box.Valid() {
		return d.Best.Box, true
	}
	for _, group := range [][]Result{d.Filtered, d.All} {
		if len(group) > 0 && group[0].Box.Valid() {
			return group[0].Box, true
		}
	}
	return roi.Box{}, false
}

// HitBoxes 命中时返回第一个非空结果集的全部有效框，都没有则退回 best。
func (d *Detail) HitBoxes() []roi.Box {
	if d == nil || !d.Hit {
		return nil
	}
	for _, group := range [][]Result{d.Filtered, d.All} {
		var boxes []roi.Box
		for _, r := range group {
			if r.Box.Valid() {
				boxes = append(boxes, r.Box)
			}
		}
		if len(boxes) > 0 {
			return boxes
		}
	}
	if d.Best != nil && d.Best.Box.Valid() {
		return []roi.Box{d.Best.Box}
	}
	return nil
}

type rawResult struct {
	Box   []any   `json:"box"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

func (r rawResult) toResult() Result {
	box, _ := roi.FromAny(r.Box)
	return Result{Box: box, Text: r.Text, Score: r.Score}
}

// ParseDetail 解析识别详情 JSON（{"best":…, "filtered":[…], "all":[…]}）。
// best 可能是对象也可能是单元素数组；解析失败时只保留原始串。
func ParseDetail(hit bool, box roi.Box, raw string) *Detail {
	d := &Detail{Hit: hit, Box: box, Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return d
	}

	var payload struct {
		Best     any         `json:"best"`
		Filtered []rawResult `json:"filtered"`
		All      []rawResult `json:"all"`
	}
	if err := sonic.UnmarshalString(raw, &payload); err != nil {
		return d
	}

	for _, r := range payload.Filtered {
		d.Filtered = append(d.Filtered, r.toResult())
	}
	for _, r := range payload.All {
		d.All = append(d.All, r.toResult())
	}

	switch best := payload.Best.(type) {
	case map[string]any:
		r := resultFromMap(best)
		d.Best = &r
	case []any:
		if len(best) > 0 {
			if m, ok := best[0].(map[string]any); ok {
				r := resultFromMap(m)
				d.Best = &r
			}
		}
	}
	return d
}

func resultFromMap(m map[string]any) Result {
	box, _ := roi.FromAny(m["box"])
	text, _ := m["text"].(string)
	score, _ := m["score"].(float64)
	return Result{Box: box, Text: text, Score: score}
}

const deepTextMaxDepth = 4

var deepTextKeys = []string{"best", "raw_detail", "detail", "filtered", "all"}

// DeepText 在原始识别详情里逐层寻找第一个非空 text 字段，最多下探四层。
func DeepText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	var v any
	if err := sonic.UnmarshalString(raw, &v); err != nil {
		return ""
	}
	return deepText(v, 0)
}

func deepText(v any, depth int) string {
	if depth > deepTextMaxDepth {
		return ""
	}
	switch val := v.(type) {
	case map[string]any:
		if text, ok := val["text"].(string); ok && text != "" {
			return text
		}
		for _, key := range deepTextKeys {
			child, ok := val[key]
			if !ok {
				continue
			}
			// raw_detail 有时是再次编码过的 JSON 字符串
			if s, ok := child.(string); ok {
				if text := DeepText(s); text != "" {
					return text
				}
				continue
			}
			if text := deepText(child, depth+1); text != "" {
				return text
			}
		}
	case []any:
		for _, item := range val {
			if text := deepText(item, depth+1); text != "" {
				return text
			}
		}
	}
	return ""
}

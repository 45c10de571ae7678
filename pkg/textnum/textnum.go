// Package textnum pulls integers out of OCR text.
package textnum

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	digitsRe  = regexp.MustCompile(`\d+`)
	currentRe = regexp.MustCompile(`(\d+)\s*/`)
)

// narrow 把 OCR 常见的全角数字和斜杠折叠成半角。
func narrow(text string) string {
	return width.Fold.String(text)
}

// FirstInt 返回文本中第一段连续数字，全角数字同样识别。
func FirstInt(text string) (int, bool) {
	m := digitsRe.FindString(narrow(text))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Current 解析 "45/120" 形式的当前值：优先取斜杠前的数字，否则取第一段数字。
func Current(text string) (int, bool) {
	cleaned := strings.TrimSpace(narrow(text))
	if cleaned == "" {
		return 0, false
	}
	if m := currentRe.FindStringSubmatch(cleaned); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return FirstInt(cleaned)
}

// Count 把多条候选文本拼接后取第一段数字；拼接后没有数字时逐条再试。
func Count(texts []string) (int, bool) {
	if len(texts) == 0 {
		return 0, false
	}
	if n, ok := FirstInt(strings.Join(texts, "")); ok {
		return n, true
	}
	for _, t := range texts {
		if n, ok := FirstInt(t); ok {
			return n, true
		}
	}
	return 0, false
}

// Package param normalises custom_action_param / custom_recognition_param
// payloads. The host may hand over an empty string, a JSON object, or an
// already-decoded mapping; callers always get a usable map back.
package param

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// Normalize 将原始参数解析为 map，任何失败都只记录 warning 并返回空 map。
func Normalize(raw any, name string) map[string]any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case string:
		return decode([]byte(v), name)
	case []byte:
		return decode(v, name)
	default:
		log.Warn().
			Str("component", name).
			Str("type", typeName(raw)).
			Msg("[Param]参数类型错误")
		return map[string]any{}
	}
}

func decode(data []byte, name string) map[string]any {
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]any{}
	}
	var decoded any
	if err := sonic.Unmarshal(data, &decoded); err != nil {
		log.Warn().
			Err(err).
			Str("component", name).
			Str("raw_param", string(data)).
			Msg("[Param]参数解析失败")
		return map[string]any{}
	}
	m, ok := decoded.(map[string]any)
	if !ok {
		log.Warn().
			Str("component", name).
			Str("type", typeName(decoded)).
			Msg("[Param]参数类型错误")
		return map[string]any{}
	}
	return m
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "bool"
	default:
		return "unknown"
	}
}

// String 读取字符串字段并去除首尾空白；非字符串返回空串。
func String(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// Int 读取整数字段，兼容 JSON 数字与数字字符串。
func Int(m map[string]any, key string, def int) int {
	n, ok := ToInt(m[key])
	if !ok {
		return def
	}
	return n
}

// ToInt converts a decoded JSON scalar into an int.
func ToInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case int64:
		return int(val), true
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i), true
		}
		if f, err := val.Float64(); err == nil {
			return int(f), true
		}
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

// Bool 读取布尔开关；非零数字与 "true"/"yes"/"1"/"on" 视为真。
func Bool(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "on":
			return true
		}
	}
	return false
}

// Ints 读取数字数组；任何元素不是数字都返回 false。
func Ints(m map[string]any, key string) ([]int, bool) {
	items, ok := m[key].([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := ToInt(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

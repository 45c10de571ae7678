package nanyang

import (
	"sort"
	"strings"
	"sync"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/google/uuid"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maafocus"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/param"
)

const (
	tendingNode        = "南阳-自动护理"
	tendingFocusPrefix = "【躬耕南阳】正在进行自动护理"
)

type tendingItem struct {
	label   string
	enabled bool
}

// 展示顺序固定；除虫默认关闭。
var tendingItems = []tendingItem{
	{label: "营养不足", enabled: true},
	{label: "营养过剩", enabled: true},
	{label: "除虫", enabled: false},
}

var validTendingTasks = map[string]bool{
	"营养过剩": true,
	"营养不足": true,
}

// TendingSession 记录本次任务中已放弃的护理项，任务开始时清空。
type TendingSession struct {
	mu       sync.Mutex
	id       string
	disabled map[string]bool
}

func NewTendingSession() *TendingSession {
	return &TendingSession{id: uuid.NewString(), disabled: map[string]bool{}}
}

// Disable 加入 task 并返回当前全部已放弃项（有序）。
func (s *TendingSession) Disable(task string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled[task] = true
	return s.snapshotLocked()
}

func (s *TendingSession) Disabled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *TendingSession) snapshotLocked() []string {
	out := make([]string, 0, len(s.disabled))
	for name := range s.disabled {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reset 清空已放弃项并换一个会话 id。
func (s *TendingSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = map[string]bool{}
	s.id = uuid.NewString()
}

func (s *TendingSession) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// OnTaskerTask 在每次任务开始时重置会话。
func (s *TendingSession) OnTaskerTask(tasker *maa.Tasker, event maa.EventStatus, detail maa.TaskerTaskDetail) {
	if event != maa.EventStatusStarting {
		return
	}
	s.Reset()
	nyLog.Debug().
		Uint64("task_id", detail.TaskID).
		Str("entry", detail.Entry).
		Str("session", s.ID()).
		Msg("tending session reset")
}

func tendingFocus(disabled []string) string {
	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}
	parts := make([]string, 0, len(tendingItems))
	for _, item := range tendingItems {
		mark := "❌"
		if item.enabled && !off[item.label] {
			mark = "✅"
		}
		parts = append(parts, mark+item.label)
	}
	return tendingFocusPrefix + " " + strings.Join(parts, " ")
}

// NanyangTendingAbandon 按参数禁用对应的自动护理任务。
//
// custom_action_param: {"task": "营养过剩" | "营养不足"}
type NanyangTendingAbandon struct {
	session *TendingSession
}

var _ maa.CustomActionRunner = &NanyangTendingAbandon{}

func (a *NanyangTendingAbandon) Run(ctx *maa.Context, arg *maa.CustomActionArg) bool {
	return a.run(maahost.FromContext(ctx), arg.CustomActionParam)
}

func (a *NanyangTendingAbandon) run(h maahost.Host, rawParam any) bool {
	params := param.Normalize(rawParam, "NanyangTendingAbandon")
	task := param.String(params, "task")
	if !validTendingTasks[task] {
		nyLog.Warn().Str("task", task).Msg("NanyangTendingAbandon: 无效 task 参数")
		return false
	}

	disabled := a.session.Disable(task)
	override := maafocus.NodeOverride(tendingNode, tendingFocus(disabled))
	for _, name := range disabled {
		override[name] = map[string]any{"enabled": false}
	}

	if err := h.OverridePipeline(override); err != nil {
		nyLog.Warn().Err(err).Str("task", task).Msg("NanyangTendingAbandon: override_pipeline 失败")
		return false
	}
	nyLog.Info().Str("task", task).Str("session", a.session.ID()).Msg("NanyangTendingAbandon: 已禁用任务")
	return true
}

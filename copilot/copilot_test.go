package copilot

import (
	"testing"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost/maahosttest"
)

func TestCopilotInfo(t *testing.T) {
	h := maahosttest.New()
	if !runInfo(h, "") {
		t.Fatalf("expected success")
	}
	if names := h.TaskNames(); len(names) != 1 || names[0] != infoNode {
		t.Errorf("expected %s, got %v", infoNode, names)
	}

	h = maahosttest.New()
	runInfo(h, `{"node_name": "作业信息-自定义"}`)
	if names := h.TaskNames(); len(names) != 1 || names[0] != "作业信息-自定义" {
		t.Errorf("expected overridden node, got %v", names)
	}
}

func TestSlotROI(t *testing.T) {
	box, err := slotROI(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if box.X != 298 || box.Y != 811 || box.W != 129 || box.H != 378 {
		t.Errorf("unexpected slot 3 roi %v", box)
	}
	for _, p := range []int{0, -1, 6, 100} {
		if _, err := slotROI(p); err == nil {
			t.Errorf("expected position %d to be rejected", p)
		}
	}
}

func TestDownRestartOnHit(t *testing.T) {
	h := maahosttest.New()
	h.Details["downTest"] = &maahost.Detail{Hit: true}

	if !downCheck.run(h, `{"node": "抄作业-第3步", "position": 2}`) {
		t.Fatalf("expected success")
	}
	if next := h.Nexts["抄作业-第3步"]; len(next) != 1 || next[0] != restartNode {
		t.Errorf("expected next override to restart, got %v", h.Nexts)
	}
	if len(h.Recos) != 1 {
		t.Fatalf("expected one recognition, got %d", len(h.Recos))
	}
	node, _ := h.Recos[0].Override["downTest"].(map[string]any)
	r, _ := node["roi"].([]int)
	if len(r) != 4 || r[0] != 156 || r[1] != 810 || r[2] != 128 || r[3] != 375 {
		t.Errorf("unexpected roi override %v", node)
	}
}

func TestDownRestartAlive(t *testing.T) {
	h := maahosttest.New()
	if !downCheck.run(h, `{"node": "n", "position": 1}`) {
		t.Fatalf("expected success")
	}
	if len(h.Nexts) != 0 {
		t.Errorf("expected no override when alive, got %v", h.Nexts)
	}
}

func TestRetreatRestart(t *testing.T) {
	h := maahosttest.New()
	h.Details["RetreatCheck"] = &maahost.Detail{Hit: true}
	if !retreatCheck.run(h, map[string]any{"node": "n", "position": 5.0}) {
		t.Fatalf("expected success")
	}
	if len(h.Nexts["n"]) != 1 {
		t.Errorf("expected restart override, got %v", h.Nexts)
	}
}

func TestBirdRestartInverted(t *testing.T) {
	h := maahosttest.New()
	h.Details["BirdCheck"] = &maahost.Detail{Hit: true}
	if !birdCheck.run(h, `{"node": "n", "position": 4}`) {
		t.Fatalf("expected success")
	}
	if len(h.Nexts) != 0 {
		t.Errorf("bird present must not restart, got %v", h.Nexts)
	}

	h = maahosttest.New()
	if !birdCheck.run(h, `{"node": "n", "position": 4}`) {
		t.Fatalf("expected success")
	}
	if next := h.Nexts["n"]; len(next) != 1 || next[0] != restartNode {
		t.Errorf("missing bird must restart, got %v", h.Nexts)
	}
}

func TestRestartInvalidParams(t *testing.T) {
	for _, raw := range []any{
		"",
		"{bad",
		`{"position": 2}`,
		`{"node": "n"}`,
		`{"node": "n", "position": 0}`,
		`{"node": "n", "position": 6}`,
		`{"node": "n", "position": "x"}`,
	} {
		h := maahosttest.New()
		if downCheck.run(h, raw) {
			t.Errorf("expected failure for %v", raw)
		}
		if len(h.Recos) != 0 || len(h.Nexts) != 0 {
			t.Errorf("expected no host calls for %v", raw)
		}
	}
}

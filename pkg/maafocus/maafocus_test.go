package maafocus

import (
	"testing"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
)

func TestNodeOverride(t *testing.T) {
	got := NodeOverride("南阳-自动护理", "正在护理")
	node, ok := got["南阳-自动护理"].(map[string]any)
	if !ok {
		t.Fatalf("expected node entry, got %v", got)
	}
	if node["focus"] != "正在护理" {
		t.Errorf("unexpected focus %v", node["focus"])
	}
}

func TestStartingNode(t *testing.T) {
	n := startingNode("正在出售")
	if n.Name != nodeName {
		t.Fatalf("unexpected node name %s", n.Name)
	}
	focus, ok := n.Focus.(map[string]any)
	if !ok {
		t.Fatalf("expected focus map, got %T", n.Focus)
	}
	if focus[maa.EventNodeAction.Starting()] != "正在出售" {
		t.Errorf("unexpected focus %v", focus)
	}
	if n.PreDelay == nil || *n.PreDelay != 0 || n.PostDelay == nil || *n.PostDelay != 0 {
		t.Errorf("expected zero delays, got pre=%v post=%v", n.PreDelay, n.PostDelay)
	}
}

func TestNodeActionStartingNilContext(t *testing.T) {
	if err := NodeActionStarting(nil, "x"); err != ErrNilContext {
		t.Errorf("expected ErrNilContext, got %v", err)
	}
}

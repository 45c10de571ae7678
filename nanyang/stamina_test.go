package nanyang

import (
	"testing"

	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost"
	"github.com/MaaYuan/MaaYuan/agent/go-service/pkg/maahost/maahosttest"
)

func staminaHost(stamina, potatoes string) *maahosttest.Host {
	h := maahosttest.New()
	h.Details[staminaReco] = maahosttest.OCR(stamina)
	h.Details[potatoReco] = maahosttest.OCR(potatoes)
	return h
}

func TestStaminaHitAtThreshold(t *testing.T) {
	h := staminaHost("45/120", "3")
	res := checkStamina(h, maahosttest.Blank(10, 10), 70)
	if res == nil {
		t.Fatalf("expected hit for 45+3*10 >= 70")
	}
	if res.detail != "45+3*10=75" {
		t.Errorf("unexpected detail %q", res.detail)
	}

	if res := checkStamina(h, maahosttest.Blank(10, 10), 75); res == nil {
		t.Errorf("expected hit when sum equals threshold")
	}
}

func TestStaminaMissBelowThreshold(t *testing.T) {
	h := staminaHost("45/120", "3")
	if res := checkStamina(h, maahosttest.Blank(10, 10), 80); res != nil {
		t.Errorf("expected miss for 75 < 80, got %+v", res)
	}
}

func TestStaminaUnreadable(t *testing.T) {
	h := staminaHost("--", "3")
	if res := checkStamina(h, nil, 0); res != nil {
		t.Errorf("expected miss on unparsable stamina")
	}

	h = maahosttest.New()
	h.Details[staminaReco] = maahosttest.OCR("10/120")
	if res := checkStamina(h, nil, 0); res != nil {
		t.Errorf("expected miss when potato text is missing")
	}
}

func TestStaminaRecognitionFallsBackToFilteredText(t *testing.T) {
	h := maahosttest.New()
	h.Details[staminaReco] = &maahost.Detail{
		Hit:      true,
		Filtered: []maahost.Result{{Text: ""}, {Text: "12/120"}},
	}
	h.Details[potatoReco] = maahosttest.OCR("0")
	res := checkStamina(h, nil, 12)
	if res == nil || res.detail != "12+0*10=12" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestBullets(t *testing.T) {
	h := maahosttest.New()
	h.Details[hatBulletReco] = maahosttest.OCR("x2")
	h.Details[coralBulletReco] = maahosttest.OCR("1")
	h.Details[gemBulletReco] = maahosttest.OCR("0")

	res := checkBullets(h, nil, 40)
	if res == nil {
		t.Fatalf("expected hit for 2*10+1*20+0*30 >= 40")
	}
	if res.detail != "2*10+1*20+0*30=40" {
		t.Errorf("unexpected detail %q", res.detail)
	}
	if res := checkBullets(h, nil, 41); res != nil {
		t.Errorf("expected miss above sum")
	}
}

func TestBulletsUnreadableCount(t *testing.T) {
	h := maahosttest.New()
	h.Details[hatBulletReco] = maahosttest.OCR("2")
	h.Details[coralBulletReco] = maahosttest.OCR("??")
	h.Details[gemBulletReco] = maahosttest.OCR("3")
	if res := checkBullets(h, nil, 0); res != nil {
		t.Errorf("expected miss when a count cannot be read")
	}
}

func TestToRecognitionResult(t *testing.T) {
	if _, ok := toRecognitionResult(nil); ok {
		t.Errorf("nil gate result must be a miss")
	}
	res, ok := toRecognitionResult(&gateResult{detail: "1+0*10=1"})
	if !ok || res == nil || res.Detail != "1+0*10=1" {
		t.Fatalf("unexpected result %+v %v", res, ok)
	}
	if res.Box.X() != 0 || res.Box.Y() != 0 || res.Box.Width() != 0 || res.Box.Height() != 0 {
		t.Errorf("expected zero box, got %v", res.Box)
	}
}

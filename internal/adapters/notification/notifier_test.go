package notification

import (
	"strings"
	"testing"

	"github.com/dvidx/tempo/internal/domain"
)

func testNotifier(roll float64) *Notifier {
	return &Notifier{
		rand: func() float64 { return roll },
		pick: func(n int) int { return 0 },
	}
}

func TestCompose_WorkWithMotivation(t *testing.T) {
	n := testNotifier(0.2)
	_, body := n.Compose(domain.PhaseWork)
	if !strings.Contains(body, motivations[0]) {
		t.Errorf("body = %q, want motivational suffix", body)
	}
}

func TestCompose_WorkWithoutMotivation(t *testing.T) {
	n := testNotifier(0.9)
	_, body := n.Compose(domain.PhaseWork)
	if body != "Time for a break." {
		t.Errorf("body = %q, want plain body", body)
	}
}

func TestCompose_BreakTitles(t *testing.T) {
	n := testNotifier(0.9)

	title, _ := n.Compose(domain.PhaseShortBreak)
	if !strings.Contains(title, "Break over") {
		t.Errorf("short break title = %q", title)
	}

	title, _ = n.Compose(domain.PhaseLongBreak)
	if !strings.Contains(title, "Long break over") {
		t.Errorf("long break title = %q", title)
	}
}

func TestPhaseComplete_DisabledIsNoop(t *testing.T) {
	n := New(nil)
	if err := n.PhaseComplete(domain.PhaseWork); err != nil {
		t.Errorf("PhaseComplete() error = %v, want nil when disabled", err)
	}
	if n.IsEnabled() {
		t.Error("IsEnabled() = true, want false without config")
	}
}

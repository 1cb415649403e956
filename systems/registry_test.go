package systems

import (
	"testing"

	"github.com/pthm-cable/bearing/telemetry"
)

func TestSystemRegistryDefaults(t *testing.T) {
	reg := NewSystemRegistry()

	ids := reg.IDs()
	if len(ids) == 0 {
		t.Fatal("no steps registered")
	}

	for _, id := range ids {
		info, ok := reg.Get(id)
		if !ok {
			t.Errorf("Get(%q) missed", id)
		}
		if info.Name == "" || info.Category == "" {
			t.Errorf("step %q has empty metadata: %+v", id, info)
		}
		if reg.GetName(id) != info.Name {
			t.Errorf("GetName(%q) = %q, want %q", id, reg.GetName(id), info.Name)
		}
	}

	if got := reg.GetName("nonesuch"); got != "nonesuch" {
		t.Errorf("GetName fallback = %q, want id echoed", got)
	}

	if len(reg.All()) != len(ids) {
		t.Errorf("All/IDs length mismatch: %d vs %d", len(reg.All()), len(ids))
	}
}

func TestSystemRegistryIDsArePerfPhases(t *testing.T) {
	want := []string{
		telemetry.PhaseSteering,
		telemetry.PhaseOrientationSync,
		telemetry.PhaseTransformSync,
		telemetry.PhaseTelemetry,
	}

	got := NewSystemRegistry().IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

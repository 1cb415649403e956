package systems

import "github.com/pthm-cable/bearing/telemetry"

// SystemInfo describes a simulation step for logging and perf tracking.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this step does
	Category    string // Grouping (e.g., "sync", "behavior")
}

// SystemRegistry holds metadata about all steps of an update cycle.
// This centralizes naming so logs and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known steps.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known steps to the registry. The IDs are
// the perf-tracker phase names; update this when adding new steps.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseSteering, Name: "Steering", Description: "Turns entities towards their waypoints", Category: "behavior"})
	r.Register(SystemInfo{ID: telemetry.PhaseOrientationSync, Name: "Orientation Sync", Description: "Reconciles angle and vector headings", Category: "sync"})
	r.Register(SystemInfo{ID: telemetry.PhaseTransformSync, Name: "Transform Sync", Description: "Reconciles headings and positions with transforms", Category: "sync"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Counts entities per compass partition and flushes CSV output", Category: "telemetry"})
}

// Register adds a step to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns step info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a step ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered steps.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all step IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}

package settings

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/oomph-ac/pathrecall/oerror"
)

// Settings contains everything that can be configured for pathrecall.
type Settings struct {
	Tracker Tracker
	World   World
}

// Tracker holds the constants a path tracker is constructed with. They are fixed for the lifetime of
// the tracker.
type Tracker struct {
	// RecordFrequency is the interval between two recorded waypoints while the body moves. Idle decay
	// removes waypoints at the same interval, and replay aims to cover each leg in this time.
	RecordFrequency time.Duration
	// RecallMaxTime is how long a body has to stay idle before its history starts to decay.
	RecallMaxTime time.Duration
	// MaxPathPoints is the capacity of the history.
	MaxPathPoints int
	// ArrivalThreshold is the distance at which a replay destination counts as reached.
	ArrivalThreshold float32
	// IdleSpeedEpsilon is the speed at or below which a body is considered idle.
	IdleSpeedEpsilon float32
}

// World holds the settings of the fixed-step loop driving a set of trackers.
type World struct {
	// Step is the fixed time step of the simulation.
	Step time.Duration
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Tracker: DefaultTracker(),
		World:   World{Step: 20 * time.Millisecond},
	}
}

// DefaultTracker returns the default tracker constants: a waypoint every 50ms, decay after 10s of
// idling and at most 120 waypoints.
func DefaultTracker() Tracker {
	return Tracker{
		RecordFrequency:  50 * time.Millisecond,
		RecallMaxTime:    10 * time.Second,
		MaxPathPoints:    120,
		ArrivalThreshold: 0.1,
		IdleSpeedEpsilon: 1e-4,
	}
}

// Validate returns an error if any of the tracker constants cannot be used.
func (t Tracker) Validate() error {
	switch {
	case t.RecordFrequency <= 0:
		return oerror.New("settings: record frequency must be positive, got %v", t.RecordFrequency)
	case t.RecallMaxTime < 0:
		return oerror.New("settings: recall max time must not be negative, got %v", t.RecallMaxTime)
	case t.MaxPathPoints <= 0:
		return oerror.New("settings: max path points must be positive, got %d", t.MaxPathPoints)
	case !finite(t.ArrivalThreshold) || t.ArrivalThreshold < 0:
		return oerror.New("settings: arrival threshold must be finite and not negative, got %v", t.ArrivalThreshold)
	case !finite(t.IdleSpeedEpsilon) || t.IdleSpeedEpsilon < 0:
		return oerror.New("settings: idle speed epsilon must be finite and not negative, got %v", t.IdleSpeedEpsilon)
	}
	return nil
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Validate returns an error if any of the settings cannot be used.
func (s Settings) Validate() error {
	if err := s.Tracker.Validate(); err != nil {
		return err
	}
	if s.World.Step <= 0 {
		return oerror.New("settings: world step must be positive, got %v", s.World.Step)
	}
	return nil
}

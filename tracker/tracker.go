package tracker

import (
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/assert"
	"github.com/oomph-ac/pathrecall/game"
	"github.com/oomph-ac/pathrecall/oerror"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/sirupsen/logrus"
)

// Mode is the mode a Tracker is in. A tracker is always in exactly one mode.
type Mode uint8

const (
	// ModeRecording samples the body while it moves and decays the history while it idles.
	ModeRecording Mode = iota
	// ModeRecalling drives the body back through the history, newest waypoint first.
	ModeRecalling
)

func (m Mode) String() string {
	switch m {
	case ModeRecording:
		return "recording"
	case ModeRecalling:
		return "recalling"
	}
	return "unknown"
}

// Body is the physical body a Tracker is attached to. Its motion is owned by an external physics
// engine; the tracker only reads its state, and places it directly while recalling.
type Body interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
	// Speed returns the magnitude of the body's linear velocity.
	Speed() float32
	// SetKinematic enables or disables the kinematic override. A kinematic body is not moved by
	// physics forces.
	SetKinematic(kinematic bool)
	// Place sets the position and rotation of the body directly.
	Place(pos mgl32.Vec3, rot mgl32.Quat)
}

// Tracker records the recent path of a Body and replays it in reverse on request. A Tracker is not safe
// for concurrent use: Tick, StartRecallingPath and CancelRecall must be called from the goroutine that
// steps the simulation.
type Tracker struct {
	log  *logrus.Logger
	body Body
	conf settings.Tracker
	h    Handler

	history *History
	mode    Mode
	// dest is the waypoint the body is being driven towards. It is only valid while recalling.
	dest Waypoint

	// sampleTimer counts down to the next recorded waypoint while moving.
	sampleTimer time.Duration
	// idleTimer counts down the idle time left before the history starts to decay.
	idleTimer time.Duration
	// decayTimer counts down to the next decayed waypoint once idleTimer has run out.
	decayTimer time.Duration
}

// New creates a Tracker attached to body. A nil logger discards all log output.
func New(body Body, conf settings.Tracker, log *logrus.Logger) (*Tracker, error) {
	if body == nil {
		return nil, oerror.New("tracker: body must not be nil")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	t := &Tracker{
		log:     log,
		body:    body,
		conf:    conf,
		h:       NopHandler{},
		history: NewHistory(conf.MaxPathPoints),
	}
	t.resetTimers()
	return t, nil
}

// Handle sets the handler that receives the events of the tracker. Passing nil resets it to a
// NopHandler. The handler is told the current size of the history through HandleAttach.
func (t *Tracker) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	t.h = h
	h.HandleAttach(t.history.Len())
}

// Settings returns the constants the tracker was created with.
func (t *Tracker) Settings() settings.Tracker {
	return t.conf
}

// Mode returns the current mode of the tracker.
func (t *Tracker) Mode() Mode {
	return t.mode
}

// Recalling returns true if the tracker is driving the body back along its path.
func (t *Tracker) Recalling() bool {
	return t.mode == ModeRecalling
}

// Destination returns the waypoint the body is currently being driven towards. ok is false if the
// tracker is not recalling.
func (t *Tracker) Destination() (w Waypoint, ok bool) {
	if t.mode != ModeRecalling {
		return w, false
	}
	return t.dest, true
}

// History returns the history of the tracker. Its waypoints can only be read.
func (t *Tracker) History() *History {
	return t.history
}

// Positions returns the recorded positions, oldest first.
func (t *Tracker) Positions() []mgl32.Vec3 {
	return t.history.Positions()
}

// Rotations returns the recorded rotations, oldest first.
func (t *Tracker) Rotations() []mgl32.Quat {
	return t.history.Rotations()
}

// Tick advances the tracker by one fixed step of length dt.
func (t *Tracker) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	switch t.mode {
	case ModeRecalling:
		t.tickRecall(dt)
	default:
		t.tickRecord(dt)
	}
	assert.IsTrue(t.history.Len() <= t.conf.MaxPathPoints, "history holds %d waypoints, max is %d", t.history.Len(), t.conf.MaxPathPoints)
	assert.IsTrue(t.mode == ModeRecording || t.mode == ModeRecalling, "invalid tracker mode %d", t.mode)
}

// StartRecallingPath pops the newest waypoint off the history and makes it the destination the body is
// driven towards, entering the recalling mode. If the history is empty the tracker returns to the
// recording mode instead; calling it on an idle tracker with no history does nothing.
func (t *Tracker) StartRecallingPath() {
	w, ok := t.history.popNewest()
	if !ok {
		if t.mode == ModeRecalling {
			t.log.Debug("path tracker: recall finished")
			t.stopRecalling()
			t.h.HandleRecallEnd(false)
		}
		return
	}
	if t.mode != ModeRecalling {
		t.log.WithField("waypoints", t.history.Len()+1).Debug("path tracker: recall started")
	}
	t.mode = ModeRecalling
	t.dest = w
	t.h.HandleDestination(w)
}

// CancelRecall stops an ongoing recall and returns the tracker to the recording mode. The waypoints
// that were not yet replayed stay in the history. CancelRecall does nothing if the tracker is not
// recalling.
func (t *Tracker) CancelRecall() {
	if t.mode != ModeRecalling {
		return
	}
	t.log.WithField("waypoints", t.history.Len()).Debug("path tracker: recall cancelled")
	t.stopRecalling()
	t.h.HandleRecallEnd(true)
}

// tickRecord records a waypoint every RecordFrequency while the body moves. Once the body idled for
// RecallMaxTime, the oldest waypoint is dropped every RecordFrequency instead.
func (t *Tracker) tickRecord(dt time.Duration) {
	t.body.SetKinematic(false)

	if t.body.Speed() > t.conf.IdleSpeedEpsilon {
		t.idleTimer = t.conf.RecallMaxTime
		t.decayTimer = t.conf.RecordFrequency

		t.sampleTimer -= dt
		if t.sampleTimer <= 0 {
			t.record(Waypoint{Position: t.body.Position(), Rotation: t.body.Rotation()})
			t.sampleTimer = t.conf.RecordFrequency
		}
		return
	}

	t.idleTimer -= dt
	if t.idleTimer > 0 {
		return
	}
	if t.history.Len() == 0 {
		t.idleTimer = t.conf.RecallMaxTime
		return
	}
	t.decayTimer -= dt
	if t.decayTimer <= 0 {
		if w, ok := t.history.popOldest(); ok {
			t.h.HandleDecay(w)
		}
		t.decayTimer = t.conf.RecordFrequency
	}
}

func (t *Tracker) record(w Waypoint) {
	if oldest, evicted := t.history.record(w); evicted {
		t.h.HandleEvict(oldest)
	}
	t.h.HandleRecord(w)
}

// tickRecall drives the body towards the current destination, at a speed that would cover the remaining
// distance and angle in one RecordFrequency. The next waypoint is popped once the destination is within
// ArrivalThreshold.
func (t *Tracker) tickRecall(dt time.Duration) {
	t.body.SetKinematic(true)

	pos := t.body.Position()
	dist := pos.Sub(t.dest.Position).Len()
	if dist <= t.conf.ArrivalThreshold {
		t.StartRecallingPath()
		return
	}

	period, step := float32(t.conf.RecordFrequency.Seconds()), float32(dt.Seconds())
	rot := t.body.Rotation()
	angle := game.QuatAngle(rot, t.dest.Rotation)

	t.body.Place(
		game.MoveTowards(pos, t.dest.Position, dist/period*step),
		game.RotateTowards(rot, t.dest.Rotation, angle/period*step),
	)
}

func (t *Tracker) stopRecalling() {
	t.mode = ModeRecording
	t.dest = Waypoint{}
	t.resetTimers()
}

func (t *Tracker) resetTimers() {
	t.sampleTimer = t.conf.RecordFrequency
	t.idleTimer = t.conf.RecallMaxTime
	t.decayTimer = t.conf.RecordFrequency
}

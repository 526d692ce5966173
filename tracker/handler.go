package tracker

// Handler handles events emitted by a Tracker. Methods are called synchronously from within Tick or
// StartRecallingPath, so implementations should not block.
type Handler interface {
	// HandleAttach is called when the handler is set on a tracker, with the number of waypoints the
	// history already holds.
	HandleAttach(historyLen int)
	// HandleRecord is called when a new waypoint is appended to the history.
	HandleRecord(w Waypoint)
	// HandleEvict is called when the oldest waypoint is dropped to make room for a new one.
	HandleEvict(w Waypoint)
	// HandleDecay is called when the oldest waypoint is removed after the body idled for too long.
	HandleDecay(w Waypoint)
	// HandleDestination is called when a waypoint is popped as the next replay destination.
	HandleDestination(w Waypoint)
	// HandleRecallEnd is called when the tracker leaves the recalling mode, either because the
	// history ran out or because the recall was cancelled.
	HandleRecallEnd(cancelled bool)
}

// NopHandler implements the Handler interface but does not execute any code when an event is called.
type NopHandler struct{}

// Compile time check to make sure NopHandler implements Handler.
var _ Handler = NopHandler{}

func (NopHandler) HandleAttach(int) {}
func (NopHandler) HandleRecord(Waypoint) {}
func (NopHandler) HandleEvict(Waypoint) {}
func (NopHandler) HandleDecay(Waypoint) {}
func (NopHandler) HandleDestination(Waypoint) {}
func (NopHandler) HandleRecallEnd(bool) {}

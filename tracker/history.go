package tracker

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/assert"
	"github.com/oomph-ac/pathrecall/internal"
	"github.com/oomph-ac/pathrecall/utils"
	"github.com/zeebo/xxh3"
)

// History is a bounded, chronologically ordered buffer of waypoints, oldest first. Only the Tracker owning
// it adds or removes waypoints; everyone else gets read access.
type History struct {
	waypoints *utils.CircularQueue[Waypoint]
}

// NewHistory creates an empty history holding at most capacity waypoints.
func NewHistory(capacity int) *History {
	return &History{waypoints: utils.NewCircularQueue[Waypoint](capacity)}
}

// Len returns the number of waypoints in the history.
func (h *History) Len() int {
	return h.waypoints.Len()
}

// Cap returns the maximum number of waypoints the history holds.
func (h *History) Cap() int {
	return h.waypoints.Cap()
}

// record appends w as the newest waypoint. If the history is full, the oldest waypoint is removed
// first and returned with evicted set to true.
func (h *History) record(w Waypoint) (oldest Waypoint, evicted bool) {
	oldest, evicted, err := h.waypoints.Append(w)
	assert.IsTrue(err == nil, "history: %v", err)
	return oldest, evicted
}

// popOldest removes and returns the oldest waypoint.
func (h *History) popOldest() (Waypoint, bool) {
	return h.waypoints.Pop()
}

// popNewest removes and returns the newest waypoint.
func (h *History) popNewest() (Waypoint, bool) {
	return h.waypoints.PopBack()
}

// Waypoints returns a copy of the history, oldest first.
func (h *History) Waypoints() []Waypoint {
	out := make([]Waypoint, 0, h.Len())
	for w := range h.waypoints.Iter() {
		out = append(out, w)
	}
	return out
}

// Positions returns the recorded positions, oldest first. It always has the same length as the
// slice returned by Rotations.
func (h *History) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, h.Len())
	for w := range h.waypoints.Iter() {
		out = append(out, w.Position)
	}
	return out
}

// Rotations returns the recorded rotations, oldest first.
func (h *History) Rotations() []mgl32.Quat {
	out := make([]mgl32.Quat, 0, h.Len())
	for w := range h.waypoints.Iter() {
		out = append(out, w.Rotation)
	}
	return out
}

// Bounds returns the smallest box containing every recorded position. ok is false if the history is
// empty.
func (h *History) Bounds() (bb cube.BBox, ok bool) {
	if h.Len() == 0 {
		return bb, false
	}
	lo := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	hi := mgl32.Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32}
	for w := range h.waypoints.Iter() {
		for i := 0; i < 3; i++ {
			lo[i] = math32.Min(lo[i], w.Position[i])
			hi[i] = math32.Max(hi[i], w.Position[i])
		}
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]), true
}

// Digest returns a 64-bit fingerprint of the recorded waypoints. Two histories holding the same
// waypoints in the same order have the same digest.
func (h *History) Digest() uint64 {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	var scratch [4]byte
	put := func(f float32) {
		binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(f))
		buf.Write(scratch[:])
	}
	for w := range h.waypoints.Iter() {
		put(w.Position[0])
		put(w.Position[1])
		put(w.Position[2])
		put(w.Rotation.W)
		put(w.Rotation.V[0])
		put(w.Rotation.V[1])
		put(w.Rotation.V[2])
	}
	return xxh3.Hash(buf.Bytes())
}

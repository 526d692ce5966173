package world

import (
	"context"
	"io"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/pathrecall/entity"
	"github.com/oomph-ac/pathrecall/metrics"
	"github.com/oomph-ac/pathrecall/oerror"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/oomph-ac/pathrecall/tracker"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Actor is a body together with the tracker recording its path.
type Actor struct {
	Name    string
	Body    *entity.Body
	Tracker *tracker.Tracker
}

// World steps a set of actors at a fixed rate. Every tick, the body of each actor is integrated first and
// its tracker ticked after, in the order the actors were added. All methods are safe for concurrent use.
type World struct {
	log     *logrus.Logger
	conf    settings.Settings
	metrics *metrics.Collector

	actors      *orderedmap.OrderedMap[string, *Actor]
	currentTick uint64

	deadlock.Mutex
}

// New creates an empty World. The collector passed may be nil, in which case no metrics are recorded. A
// nil logger discards all log output.
func New(conf settings.Settings, log *logrus.Logger, collector *metrics.Collector) (*World, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &World{
		log:     log,
		conf:    conf,
		metrics: collector,
		actors:  orderedmap.NewOrderedMap[string, *Actor](),
	}, nil
}

// Add attaches a new tracker to body and adds both to the world under name.
func (w *World) Add(name string, body *entity.Body) (*Actor, error) {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.actors.Get(name); ok {
		return nil, oerror.New("world: actor %q already exists", name)
	}
	t, err := tracker.New(body, w.conf.Tracker, w.log)
	if err != nil {
		return nil, err
	}
	if w.metrics != nil {
		t.Handle(w.metrics.Handler(name))
	}
	a := &Actor{Name: name, Body: body, Tracker: t}
	w.actors.Set(name, a)
	w.log.WithField("actor", name).Debug("world: actor added")
	return a, nil
}

// Remove removes the actor with the name passed. It returns false if no such actor exists.
func (w *World) Remove(name string) bool {
	w.Lock()
	defer w.Unlock()

	if !w.actors.Delete(name) {
		return false
	}
	if w.metrics != nil {
		w.metrics.Forget(name)
	}
	w.log.WithField("actor", name).Debug("world: actor removed")
	return true
}

// Actor returns the actor with the name passed.
func (w *World) Actor(name string) (*Actor, bool) {
	w.Lock()
	defer w.Unlock()
	return w.actors.Get(name)
}

// Names returns the names of all actors in the order they were added.
func (w *World) Names() []string {
	w.Lock()
	defer w.Unlock()

	names := make([]string, 0, w.actors.Len())
	for el := w.actors.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Recall starts driving the actor with the name passed back along its recorded path.
func (w *World) Recall(name string) error {
	w.Lock()
	defer w.Unlock()

	a, ok := w.actors.Get(name)
	if !ok {
		return oerror.New("world: unknown actor %q", name)
	}
	a.Tracker.StartRecallingPath()
	return nil
}

// Cancel stops an ongoing recall of the actor with the name passed.
func (w *World) Cancel(name string) error {
	w.Lock()
	defer w.Unlock()

	a, ok := w.actors.Get(name)
	if !ok {
		return oerror.New("world: unknown actor %q", name)
	}
	a.Tracker.CancelRecall()
	return nil
}

// CurrentTick returns the number of ticks the world has run.
func (w *World) CurrentTick() uint64 {
	w.Lock()
	defer w.Unlock()
	return w.currentTick
}

// Tick advances every actor in the world by one fixed step.
func (w *World) Tick() {
	w.Lock()
	defer w.Unlock()

	step := w.conf.World.Step
	for el := w.actors.Front(); el != nil; el = el.Next() {
		el.Value.Body.Tick(step)
		el.Value.Tracker.Tick(step)
	}
	w.currentTick++
}

// Run ticks the world at its fixed step until ctx is cancelled. A panic raised while ticking is reported
// to sentry and returned as an error.
func (w *World) Run(ctx context.Context) (err error) {
	t := time.NewTicker(w.conf.World.Step)
	defer t.Stop()

	defer func() {
		if r := recover(); r != nil {
			hub := sentry.CurrentHub().Clone()
			err = oerror.New("world: tick %d crashed: %v", w.CurrentTick(), r)
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			w.Tick()
		}
	}
}

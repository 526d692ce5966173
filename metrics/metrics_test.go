package metrics

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/entity"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/oomph-ac/pathrecall/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHandlerCountsTrackerEvents(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.Register(prometheus.NewRegistry()))

	conf := settings.DefaultTracker()
	conf.MaxPathPoints = 4
	body := entity.NewBody(mgl32.Vec3{}, mgl32.QuatIdent(), false)
	tr, err := tracker.New(body, conf, nil)
	require.NoError(t, err)
	tr.Handle(c.Handler("ball"))

	step := 10 * time.Millisecond
	body.SetVelocity(mgl32.Vec3{5, 0, 0})
	for range 30 {
		body.Tick(step)
		tr.Tick(step)
	}
	require.Equal(t, 6.0, testutil.ToFloat64(c.recorded.WithLabelValues("ball")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.evicted.WithLabelValues("ball")))
	require.Equal(t, 4.0, testutil.ToFloat64(c.historySize.WithLabelValues("ball")))

	body.SetVelocity(mgl32.Vec3{})
	tr.StartRecallingPath()
	for i := 0; tr.Recalling(); i++ {
		require.Less(t, i, 10000, "recall did not finish")
		body.Tick(step)
		tr.Tick(step)
	}
	require.Equal(t, 4.0, testutil.ToFloat64(c.destinations.WithLabelValues("ball")))
	require.Equal(t, 1.0, testutil.ToFloat64(c.recalls.WithLabelValues("ball", "completed")))
	require.Equal(t, 0.0, testutil.ToFloat64(c.historySize.WithLabelValues("ball")))
}

func TestHandlerSeedsHistorySize(t *testing.T) {
	c := NewCollector()
	body := entity.NewBody(mgl32.Vec3{}, mgl32.QuatIdent(), false)
	tr, err := tracker.New(body, settings.DefaultTracker(), nil)
	require.NoError(t, err)

	step := 10 * time.Millisecond
	body.SetVelocity(mgl32.Vec3{1, 0, 0})
	for range 20 {
		body.Tick(step)
		tr.Tick(step)
	}
	n := tr.History().Len()
	require.NotZero(t, n)

	tr.Handle(c.Handler("late"))
	require.Equal(t, float64(n), testutil.ToFloat64(c.historySize.WithLabelValues("late")))

	body.SetVelocity(mgl32.Vec3{})
	tr.StartRecallingPath()
	require.Equal(t, float64(n-1), testutil.ToFloat64(c.historySize.WithLabelValues("late")))
}

func TestRegisterTwiceFails(t *testing.T) {
	c := NewCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))
	require.Error(t, c.Register(reg))
}

func TestForget(t *testing.T) {
	c := NewCollector()
	h := c.Handler("a")
	h.HandleRecallEnd(true)
	require.Equal(t, 2, testutil.CollectAndCount(c.recalls))

	c.Forget("a")
	require.Equal(t, 0, testutil.CollectAndCount(c.recalls))
}

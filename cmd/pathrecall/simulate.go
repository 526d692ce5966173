package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/entity"
	"github.com/oomph-ac/pathrecall/metrics"
	"github.com/oomph-ac/pathrecall/oerror"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/oomph-ac/pathrecall/world"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// maxRecallTicks bounds the number of ticks a recall may take before the simulation gives up.
const maxRecallTicks = 1_000_000

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Move a body, let it idle and recall it along its path",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd)

		path, _ := cmd.Flags().GetString("config")
		conf, err := settings.Load(path)
		if err != nil {
			return err
		}

		if dsn, _ := cmd.Flags().GetString("sentry-dsn"); dsn != "" {
			if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
				return fmt.Errorf("init sentry: %w", err)
			}
			defer sentry.Flush(time.Second * 5)
		}

		addr, _ := cmd.Flags().GetString("statsview")
		if addr != "" {
			// set configurations before calling `statsview.New()` method
			viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(addr))
			mgr := statsview.New()
			go mgr.Start()
			defer mgr.Stop()
			log.Infof("statsview listening on http://%s/debug/statsview", addr)
		}

		var sc scenario
		sc.move, _ = cmd.Flags().GetDuration("move")
		sc.idle, _ = cmd.Flags().GetDuration("idle")
		sc.speed, _ = cmd.Flags().GetFloat32("speed")

		res, err := sc.run(conf, log)
		if err != nil {
			return err
		}
		res.print(cmd.OutOrStdout())

		if addr != "" {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			log.Info("simulation finished, press ctrl+c to stop statsview")
			<-ctx.Done()
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().Duration("move", 2*time.Second, "How long the body moves before it stops")
	simulateCmd.Flags().Duration("idle", time.Second, "How long the body idles before it is recalled")
	simulateCmd.Flags().Float32("speed", 3, "Speed of the body in units per second")
	simulateCmd.Flags().String("statsview", "", "Address to serve runtime statistics on, e.g. localhost:18066")
	simulateCmd.Flags().String("sentry-dsn", "", "Sentry DSN crashes are reported to")
	rootCmd.AddCommand(simulateCmd)
}

// scenario moves a single body along +X for the first half of move and along +Z for the second half,
// lets it idle and then recalls it.
type scenario struct {
	move, idle time.Duration
	speed      float32
}

// result summarises a scenario run.
type result struct {
	ticks      uint64
	recorded   int
	digest     uint64
	min, max   mgl32.Vec3
	origin     mgl32.Vec3
	final      mgl32.Vec3
	recallTick uint64
}

func (sc scenario) run(conf settings.Settings, log *logrus.Logger) (result, error) {
	var res result

	collector := metrics.NewCollector()
	if err := collector.Register(prometheus.NewRegistry()); err != nil {
		return res, err
	}
	w, err := world.New(conf, log, collector)
	if err != nil {
		return res, err
	}
	body := entity.NewBody(mgl32.Vec3{}, mgl32.QuatIdent(), true)
	a, err := w.Add("body", body)
	if err != nil {
		return res, err
	}

	step := conf.World.Step
	ticks := func(d time.Duration) int { return int(d / step) }

	body.SetVelocity(mgl32.Vec3{sc.speed, 0, 0})
	for range ticks(sc.move / 2) {
		w.Tick()
	}
	body.SetVelocity(mgl32.Vec3{0, 0, sc.speed})
	for range ticks(sc.move - sc.move/2) {
		w.Tick()
	}
	body.SetVelocity(mgl32.Vec3{})
	for range ticks(sc.idle) {
		w.Tick()
	}

	history := a.Tracker.History()
	res.recorded = history.Len()
	res.digest = history.Digest()
	if bb, ok := history.Bounds(); ok {
		res.min, res.max = bb.Min(), bb.Max()
	}
	if res.recorded > 0 {
		res.origin = a.Tracker.Positions()[0]
	}
	log.WithFields(logrus.Fields{
		"waypoints": res.recorded,
		"position":  body.Position(),
	}).Info("recalling body")

	res.recallTick = w.CurrentTick()
	if err := w.Recall("body"); err != nil {
		return res, err
	}
	for a.Tracker.Recalling() {
		if w.CurrentTick()-res.recallTick > maxRecallTicks {
			return res, oerror.New("recall did not finish within %d ticks", maxRecallTicks)
		}
		w.Tick()
	}
	res.ticks = w.CurrentTick()
	res.final = body.Position()
	return res, nil
}

func (res result) print(out io.Writer) {
	fmt.Fprintf(out, "waypoints recorded: %d\n", res.recorded)
	fmt.Fprintf(out, "path digest:        %016x\n", res.digest)
	fmt.Fprintf(out, "path bounds:        %v - %v\n", res.min, res.max)
	fmt.Fprintf(out, "path origin:        %v\n", res.origin)
	fmt.Fprintf(out, "final position:     %v\n", res.final)
	fmt.Fprintf(out, "recall ticks:       %d\n", res.ticks-res.recallTick)
}

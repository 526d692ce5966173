package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pathrecall/settings"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestScenarioReturnsToOrigin(t *testing.T) {
	conf := settings.DefaultSettings()
	conf.World.Step = 10 * time.Millisecond

	sc := scenario{move: time.Second, idle: 500 * time.Millisecond, speed: 2}
	res, err := sc.run(conf, quietLogger())
	require.NoError(t, err)

	require.Equal(t, 20, res.recorded)
	require.LessOrEqual(t, res.final.Sub(res.origin).Len(), conf.Tracker.ArrivalThreshold)
	require.Greater(t, res.max.X(), res.min.X())
	require.Greater(t, res.max.Z(), res.min.Z())
	require.Greater(t, res.ticks, res.recallTick)
}

func TestScenarioIdleDecayEmptiesHistory(t *testing.T) {
	conf := settings.DefaultSettings()
	conf.World.Step = 10 * time.Millisecond
	conf.Tracker.RecallMaxTime = 200 * time.Millisecond

	sc := scenario{move: 500 * time.Millisecond, idle: 2 * time.Second, speed: 2}
	res, err := sc.run(conf, quietLogger())
	require.NoError(t, err)

	require.Zero(t, res.recorded)
	require.Equal(t, res.recallTick, res.ticks)
	require.Equal(t, mgl32.Vec3{}, res.origin)
}

func TestConfigCommandWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", path})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), path)

	s, err := settings.Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.DefaultSettings(), s)

	rootCmd.SetArgs([]string{"config", "--config", path})
	require.Error(t, rootCmd.Execute())
}

func TestSimulateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"simulate", "--config", path, "--move", "500ms", "--idle", "100ms"})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "waypoints recorded: 8")
}

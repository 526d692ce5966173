package settings

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

// file is the on-disk layout of Settings. Durations are stored as seconds.
type file struct {
	Tracker struct {
		RecordFrequency  float64 `toml:"record_frequency" comment:"Seconds between two recorded waypoints."`
		RecallMaxTime    float64 `toml:"recall_max_time" comment:"Seconds of idling before history decays."`
		MaxPathPoints    int     `toml:"max_path_points"`
		ArrivalThreshold float32 `toml:"arrival_threshold"`
		IdleSpeedEpsilon float32 `toml:"idle_speed_epsilon"`
	} `toml:"tracker"`
	World struct {
		Step float64 `toml:"step" comment:"Seconds per fixed step."`
	} `toml:"world"`
}

// Load reads settings from the TOML file at path. If the file does not yet exist, it is created with
// the default settings, which are then returned. Keys missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, Save(path, s)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	return Decode(data)
}

// Decode decodes TOML encoded settings and validates the result. Keys missing from data keep their
// default values.
func Decode(data []byte) (Settings, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	var f file
	if err := tree.Unmarshal(&f); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}

	def := toFile(DefaultSettings())
	defaults := []struct {
		key   string
		apply func()
	}{
		{"tracker.record_frequency", func() { f.Tracker.RecordFrequency = def.Tracker.RecordFrequency }},
		{"tracker.recall_max_time", func() { f.Tracker.RecallMaxTime = def.Tracker.RecallMaxTime }},
		{"tracker.max_path_points", func() { f.Tracker.MaxPathPoints = def.Tracker.MaxPathPoints }},
		{"tracker.arrival_threshold", func() { f.Tracker.ArrivalThreshold = def.Tracker.ArrivalThreshold }},
		{"tracker.idle_speed_epsilon", func() { f.Tracker.IdleSpeedEpsilon = def.Tracker.IdleSpeedEpsilon }},
		{"world.step", func() { f.World.Step = def.World.Step }},
	}
	for _, d := range defaults {
		if !tree.Has(d.key) {
			d.apply()
		}
	}

	s := f.settings()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Encode encodes s as TOML.
func Encode(s Settings) ([]byte, error) {
	data, err := toml.Marshal(toFile(s))
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}

// Save writes s to path as TOML.
func Save(path string, s Settings) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func toFile(s Settings) file {
	var f file
	f.Tracker.RecordFrequency = s.Tracker.RecordFrequency.Seconds()
	f.Tracker.RecallMaxTime = s.Tracker.RecallMaxTime.Seconds()
	f.Tracker.MaxPathPoints = s.Tracker.MaxPathPoints
	f.Tracker.ArrivalThreshold = s.Tracker.ArrivalThreshold
	f.Tracker.IdleSpeedEpsilon = s.Tracker.IdleSpeedEpsilon
	f.World.Step = s.World.Step.Seconds()
	return f
}

func (f file) settings() Settings {
	return Settings{
		Tracker: Tracker{
			RecordFrequency:  seconds(f.Tracker.RecordFrequency),
			RecallMaxTime:    seconds(f.Tracker.RecallMaxTime),
			MaxPathPoints:    f.Tracker.MaxPathPoints,
			ArrivalThreshold: f.Tracker.ArrivalThreshold,
			IdleSpeedEpsilon: f.Tracker.IdleSpeedEpsilon,
		},
		World: World{Step: seconds(f.World.Step)},
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

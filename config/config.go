// Package config loads a scenario — a full linesim.Config plus a
// replication count — from a single YAML file, following the same
// directory/decode shape as the teacher's snmp_collector config loader
// (single Load entry point, lenient decoding, errors wrapped with the
// file path). Validate reports the first problem it finds; it does not
// collect every bad field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/allardneijmeijer/linesim"
)

// StationSpec is one station's parameters as they appear in a scenario
// file. A zero MTBF or MaintInterval means that station never fails or
// is never serviced, per linesim.Config's own convention
// (linesim.samplerForMean).
type StationSpec struct {
	Mu            float64 `yaml:"mu"`
	Capacity      int     `yaml:"capacity"`
	MTBF          float64 `yaml:"mtbf"`
	MTTR          float64 `yaml:"mttr"`
	MaintInterval float64 `yaml:"maint_interval"`
	MaintDuration float64 `yaml:"maint_duration"`
}

// Scenario is the top-level shape of a scenario YAML file: the run's size
// (N, Lambda, Seed), a chain of stations, and how many independent
// replications to run.
type Scenario struct {
	Name          string        `yaml:"name"`
	N             uint64        `yaml:"n"`
	Lambda        float64       `yaml:"lambda"`
	Seed          int64         `yaml:"seed"`
	Replications  int           `yaml:"replications"`
	Stations      []StationSpec `yaml:"stations"`
}

// Load reads and decodes a scenario file at path.
func Load(path string) (Scenario, error) {
	var sc Scenario
	f, err := os.Open(path)
	if err != nil {
		return sc, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(false)
	if err := dec.Decode(&sc); err != nil {
		return sc, fmt.Errorf("config: decode %q: %w", path, err)
	}
	if sc.Replications <= 0 {
		sc.Replications = 1
	}
	return sc, nil
}

// Validate checks the scenario's shape before it is turned into a
// linesim.Config, surfacing the same class of problem as a degenerate
// linesim.Config would, but with a scenario-file-relative message.
func (s Scenario) Validate() error {
	if s.N == 0 {
		return fmt.Errorf("config: %q: n must be positive: %w", s.Name, linesim.ErrInputShape)
	}
	if s.Lambda <= 0 {
		return fmt.Errorf("config: %q: lambda must be positive: %w", s.Name, linesim.ErrInputShape)
	}
	if len(s.Stations) == 0 {
		return fmt.Errorf("config: %q: at least one station is required: %w", s.Name, linesim.ErrInputShape)
	}
	for i, st := range s.Stations {
		if st.Capacity < 1 {
			return fmt.Errorf("config: %q: station %d: capacity must be >= 1, got %d: %w", s.Name, i, st.Capacity, linesim.ErrInputShape)
		}
		if st.Mu <= 0 {
			return fmt.Errorf("config: %q: station %d: mu must be positive: %w", s.Name, i, linesim.ErrInputShape)
		}
	}
	return nil
}

// ToLinesimConfig converts a validated Scenario into a linesim.Config
// ready for linesim.NewTopology.
func (s Scenario) ToLinesimConfig() linesim.Config {
	m := len(s.Stations)
	cfg := linesim.Config{
		N:             s.N,
		Lambda:        s.Lambda,
		Seed:          s.Seed,
		Mu:            make([]float64, m),
		Capacity:      make([]int, m),
		MTBF:          make([]float64, m),
		MTTR:          make([]float64, m),
		MaintInterval: make([]float64, m),
		MaintDuration: make([]float64, m),
	}
	for i, st := range s.Stations {
		cfg.Mu[i] = st.Mu
		cfg.Capacity[i] = st.Capacity
		cfg.MTBF[i] = st.MTBF
		cfg.MTTR[i] = st.MTTR
		cfg.MaintInterval[i] = st.MaintInterval
		cfg.MaintDuration[i] = st.MaintDuration
	}
	return cfg
}

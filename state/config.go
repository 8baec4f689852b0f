package state

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// SimCfg is the on-disk simulation configuration. Command line flags override it.
type SimCfg struct {
	Topology   string        `yaml:"topology"`              // path to the topology file
	Engine     string        `yaml:"engine"`                // dv, ls or both
	RoundDelay time.Duration `yaml:"round_delay,omitempty"` // simulated per-round network delay
	LogPath    string        `yaml:"log_path,omitempty"`    // if not empty, logs are also written to this file
	Verbose    bool          `yaml:"verbose,omitempty"`     // log router events at debug level
	DebugAddr  string        `yaml:"debug_addr,omitempty"`  // if not empty, serve /debug/metrics and /debug/vars here
	Quiet      bool          `yaml:"quiet,omitempty"`       // only print the final tables
}

func DefaultSimConfig() SimCfg {
	return SimCfg{
		Engine:     DefaultEngine,
		RoundDelay: DefaultRoundDelay,
	}
}

func ReadSimConfig(cfgPath string) (*SimCfg, error) {
	cfg := DefaultSimConfig()
	file, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

package bell

import (
	"os"
	"strconv"
	"time"
)

// Config controls the rejection tone
type Config struct {
	Enabled   bool
	Volume    float64 // 0.0-1.0
	Frequency float64 // Hz
	Duration  time.Duration
	Wave      WaveType
}

// DefaultConfig returns a disabled bell with a short A5 ding
func DefaultConfig() Config {
	return Config{
		Enabled:   false,
		Volume:    0.5,
		Frequency: 880,
		Duration:  80 * time.Millisecond,
		Wave:      WaveSine,
	}
}

// ApplyEnv overrides cfg from TERMGRAPH_BELL and TERMGRAPH_BELL_VOLUME
func ApplyEnv(cfg Config) Config {
	if enabled := os.Getenv("TERMGRAPH_BELL"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volume is given as 0-100
	if volume := os.Getenv("TERMGRAPH_BELL_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = clampVolume(float64(val) / 100.0)
		}
	}
	return cfg
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

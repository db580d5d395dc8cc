package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/pulsefield/parameter"
)

// Config holds audio settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0-1.0, scales every tone
	SampleRate   int
}

// DefaultConfig returns audio on at full master volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 1.0,
		SampleRate:   parameter.AudioSampleRate,
	}
}

// LoadConfig loads audio configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("PULSEFIELD_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := os.Getenv("PULSEFIELD_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("PULSEFIELD_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

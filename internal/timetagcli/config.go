package timetagcli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phillip-england/timetag/internal/classify"
	"github.com/phillip-england/timetag/internal/envutil"
)

// Config is the optional tuning file. Only knobs that are safe to vary
// per deployment live here; the parsing heuristics are fixed.
type Config struct {
	// FullShiftMinutes is the full-shift threshold. Defaults to nine
	// hours; TIMETAG_FULL_SHIFT_MINUTES overrides the default, the
	// yaml file overrides both.
	FullShiftMinutes int `yaml:"fullShiftMinutes"`
}

// LoadConfig reads the yaml tuning file. A missing file yields the
// defaults; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		FullShiftMinutes: envutil.Int("TIMETAG_FULL_SHIFT_MINUTES", classify.FullShiftMinutes),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.FullShiftMinutes <= 0 {
		return Config{}, fmt.Errorf("config %s: fullShiftMinutes must be positive", path)
	}
	return cfg, nil
}

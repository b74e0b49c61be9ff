package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/emalab/ema8314/internal/protocol"
)

// Duration wraps time.Duration with YAML support for strings like "1s" or
// "500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// ChannelSelect chooses which channels contribute a column family to the
// log line. All short-circuits the per-channel flags.
type ChannelSelect struct {
	All      bool                       `yaml:"all"`
	Channels [protocol.NumChannels]bool `yaml:"channels,flow"`
}

// Enabled reports whether the given channel is selected.
func (c ChannelSelect) Enabled(ch int) bool {
	if c.All {
		return true
	}
	if ch < 0 || ch >= protocol.NumChannels {
		return false
	}
	return c.Channels[ch]
}

// Any reports whether any channel is selected.
func (c ChannelSelect) Any() bool {
	if c.All {
		return true
	}
	for _, on := range c.Channels {
		if on {
			return true
		}
	}
	return false
}

// Columns picks which readings appear in each log line, per channel.
type Columns struct {
	Temperature ChannelSelect `yaml:"temperature"` // measured temperature, NaN when broken
	Sensor      ChannelSelect `yaml:"sensor"`      // connected / disconnected
	Output      ChannelSelect `yaml:"output"`      // on / off
}

// Config is the ema-log configuration file.
type Config struct {
	// Listen is the local UDP endpoint to bind, "ip:port".
	Listen string `yaml:"listen"`
	// Device is the module's UDP endpoint, "ip:port".
	Device string `yaml:"device"`
	// Password is the device password; empty selects the factory default.
	Password string `yaml:"password,omitempty"`
	// Interval is the time between polls.
	Interval Duration `yaml:"interval"`
	// Separator goes between log line fields.
	Separator string `yaml:"separator"`
	// LogDir is where the date-rotated measurement logs are written.
	LogDir string `yaml:"log_dir"`
	// Columns selects what each line contains.
	Columns Columns `yaml:"columns"`
}

// Default returns the configuration matching the vendor tooling's defaults:
// poll every second, tab-separated, all temperatures logged.
func Default() *Config {
	return &Config{
		Listen:    "0.0.0.0:17120",
		Device:    "192.168.1.100:6936",
		Interval:  Duration(time.Second),
		Separator: "\t",
		LogDir:    ".",
		Columns: Columns{
			Temperature: ChannelSelect{All: true},
		},
	}
}

// Load reads a YAML configuration file, layering it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("device endpoint is required")
	}
	if c.Interval.Std() <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if !c.Columns.Temperature.Any() && !c.Columns.Sensor.Any() && !c.Columns.Output.Any() {
		return fmt.Errorf("no columns selected, nothing to log")
	}
	return nil
}

package app

import (
	"flag"
	"strconv"
)

// Config holds the front-end settings shared by the GUI and terminal viewers.
type Config struct {
	Sim        string
	ConfigPath string
	Width      int
	Height     int
	Seed       int64
	Scale      int
	TPS        int
	HUDWidth   int
	LogLevel   string
}

// NewConfig returns the default front-end configuration.
func NewConfig() *Config {
	return &Config{
		Sim:      "terrarium",
		Seed:     1337,
		Scale:    2,
		TPS:      60,
		HUDWidth: 260,
		LogLevel: "info",
	}
}

// Bind registers the configuration flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with simulation settings")
	fs.IntVar(&c.Width, "w", c.Width, "grid width (0 keeps the configured value)")
	fs.IntVar(&c.Height, "h", c.Height, "grid height (0 keeps the configured value)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// SimOptions converts the settings into the key/value map sim factories read.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.ConfigPath != "" {
		opts["config"] = c.ConfigPath
	}
	if c.Width > 0 {
		opts["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		opts["h"] = strconv.Itoa(c.Height)
	}
	return opts
}

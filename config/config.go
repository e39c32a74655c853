// Package config loads daemon settings from defaults, an optional YAML file
// and ARCOLOGY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"arcology/catalog"
	"arcology/controller"
	"arcology/lights"
)

const (
	// MemoryPort selects the in-memory light instead of a serial controller.
	MemoryPort = "memory"
	// AutoPort asks for the port to be found by USB vendor and product ID.
	AutoPort = "auto"

	defaultBaudRate          = 9600
	defaultHeartbeatInterval = 5 * time.Minute
)

var ErrInvalid = errors.New("invalid configuration")

type PortConfig struct {
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	VendorID  string `yaml:"vendor_id"`
	ProductID string `yaml:"product_id"`
}

type HeartbeatConfig struct {
	URL      string        `yaml:"url"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	NodeName        string               `yaml:"node_name"`
	Revision        string               `yaml:"revision"`
	LogLevel        string               `yaml:"log_level"`
	Receiver        PortConfig           `yaml:"receiver"`
	Light           PortConfig           `yaml:"light"`
	APIAddr         string               `yaml:"api_addr"`
	Heartbeat       HeartbeatConfig      `yaml:"heartbeat"`
	NotifyURL       string               `yaml:"notify_url"`
	ConnectivityURL string               `yaml:"connectivity_url"`
	Slots           map[int]lights.Color `yaml:"slots"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Revision: "a",
		LogLevel: "info",
		Receiver: PortConfig{Port: "/dev/ttyUSB0", Baud: defaultBaudRate},
		Light:    PortConfig{Port: MemoryPort, Baud: defaultBaudRate},
		APIAddr:  ":8080",
		Heartbeat: HeartbeatConfig{
			Interval: defaultHeartbeatInterval,
		},
	}
}

// Load reads path (or $ARCOLOGY_CONFIG when path is empty), applies
// environment overrides and validates the result.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv("ARCOLOGY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if cfg.NodeName == "" {
		cfg.NodeName = nodeName(getenv)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"ARCOLOGY_REVISION":         &c.Revision,
		"ARCOLOGY_LOG_LEVEL":        &c.LogLevel,
		"ARCOLOGY_RECEIVER_PORT":    &c.Receiver.Port,
		"ARCOLOGY_LIGHT_PORT":       &c.Light.Port,
		"ARCOLOGY_API_ADDR":         &c.APIAddr,
		"ARCOLOGY_HEARTBEAT_URL":    &c.Heartbeat.URL,
		"ARCOLOGY_NOTIFY_URL":       &c.NotifyURL,
		"ARCOLOGY_CONNECTIVITY_URL": &c.ConnectivityURL,
	}
	for name, dst := range strs {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"ARCOLOGY_RECEIVER_BAUD": &c.Receiver.Baud,
		"ARCOLOGY_LIGHT_BAUD":    &c.Light.Baud,
	}
	for name, dst := range ints {
		v := getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, name, v, err)
		}
		*dst = n
	}

	if v := getenv("ARCOLOGY_HEARTBEAT_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: ARCOLOGY_HEARTBEAT_INTERVAL=%q: %v", ErrInvalid, v, err)
		}
		c.Heartbeat.Interval = d
	}
	return nil
}

// nodeName falls back from NODE_NAME to HOSTNAME to "unknown".
func nodeName(getenv func(string) string) string {
	name := getenv("NODE_NAME")
	if name == "" {
		name = getenv("HOSTNAME")
	}
	if name == "" {
		name = "unknown"
	}
	return name
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if _, err := catalog.Canonical(c.Revision); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	ports := []struct {
		name string
		PortConfig
	}{
		{"receiver", c.Receiver},
		{"light", c.Light},
	}
	for _, p := range ports {
		name := p.name
		if p.Port == "" {
			return fmt.Errorf("%w: %s port is empty", ErrInvalid, name)
		}
		if p.Port != MemoryPort && p.Baud <= 0 {
			return fmt.Errorf("%w: %s baud rate %d", ErrInvalid, name, p.Baud)
		}
		if p.Port == AutoPort && (p.VendorID == "" || p.ProductID == "") {
			return fmt.Errorf("%w: %s port auto needs vendor_id and product_id", ErrInvalid, name)
		}
	}
	if c.Heartbeat.URL != "" && c.Heartbeat.Interval <= 0 {
		return fmt.Errorf("%w: heartbeat interval %v", ErrInvalid, c.Heartbeat.Interval)
	}
	for slot := range c.Slots {
		if slot < 1 || slot > controller.SlotCount {
			return fmt.Errorf("%w: DIY slot %d", ErrInvalid, slot)
		}
	}
	return nil
}

// SlotColors returns the starting DIY slot colours, white where unset.
func (c *Config) SlotColors() [controller.SlotCount]lights.Color {
	var out [controller.SlotCount]lights.Color
	for i := range out {
		color, ok := c.Slots[i+1]
		if !ok {
			color = lights.White
		}
		out[i] = color
	}
	return out
}

// Package config loads the HCL file that describes a table: who sits where,
// how automated seats behave and where logs go.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/game"
)

// DefaultFile is the config file looked for when none is named
const DefaultFile = "adna.hcl"

var ErrInvalid = errors.New("invalid config")

// Config represents the complete table configuration
type Config struct {
	Seed          int64        `hcl:"seed,optional"`
	BotDelay      string       `hcl:"bot_delay,optional"`
	LogLevel      string       `hcl:"log_level,optional"`
	LogFile       string       `hcl:"log_file,optional"`
	Color         *bool        `hcl:"color,optional"`
	ShowReasoning bool         `hcl:"show_reasoning,optional"`
	MaxTurns      int          `hcl:"max_turns,optional"`
	HistoryDir    string       `hcl:"history_dir,optional"` // Empty means games are not recorded
	Seats         []SeatConfig `hcl:"seat,block"`
}

// SeatConfig binds a seat name to a policy
type SeatConfig struct {
	Name   string `hcl:"name,label"`
	Policy string `hcl:"policy"`
}

// Default returns the table of the original game: two people sharing the
// terminal at A and C, an aggressive bot at B and a conservative one at D
func Default() *Config {
	color := true
	return &Config{
		BotDelay: "600ms",
		LogLevel: "info",
		LogFile:  "adna.log",
		Color:    &color,
		Seats:    defaultSeats(),
	}
}

func defaultSeats() []SeatConfig {
	return []SeatConfig{
		{Name: "A", Policy: bot.PolicyHuman},
		{Name: "B", Policy: bot.PolicyAggressive},
		{Name: "C", Policy: bot.PolicyHuman},
		{Name: "D", Policy: bot.PolicyConservative},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()
	if config.BotDelay == "" {
		config.BotDelay = defaults.BotDelay
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.LogFile == "" {
		config.LogFile = defaults.LogFile
	}
	if config.Color == nil {
		config.Color = defaults.Color
	}
	if len(config.Seats) == 0 {
		config.Seats = defaults.Seats
	}

	return &config, nil
}

// Validate validates the table configuration
func (c *Config) Validate() error {
	if len(c.Seats) != game.NumSeats {
		return fmt.Errorf("%w: need %d seats, got %d", ErrInvalid, game.NumSeats, len(c.Seats))
	}

	seen := make(map[string]bool, len(c.Seats))
	for _, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("%w: seat name cannot be empty", ErrInvalid)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate seat %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if !bot.IsPolicy(s.Policy) {
			return fmt.Errorf("%w: seat %q has unknown policy %q", ErrInvalid, s.Name, s.Policy)
		}
	}

	delay, err := time.ParseDuration(c.BotDelay)
	if err != nil {
		return fmt.Errorf("%w: bot_delay: %w", ErrInvalid, err)
	}
	if delay < 0 {
		return fmt.Errorf("%w: bot_delay cannot be negative", ErrInvalid)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}

	if c.MaxTurns < 0 {
		return fmt.Errorf("%w: max_turns cannot be negative", ErrInvalid)
	}
	return nil
}

// Delay returns the pause before each automated decision. Call Validate
// first; an unparsable value reads as no delay.
func (c *Config) Delay() time.Duration {
	d, _ := time.ParseDuration(c.BotDelay)
	return d
}

// Level returns the configured log level, defaulting to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether output should be coloured
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Policies returns the policy of each seat in seat order
func (c *Config) Policies() [game.NumSeats]string {
	var p [game.NumSeats]string
	for i := range min(len(c.Seats), game.NumSeats) {
		p[i] = c.Seats[i].Policy
	}
	return p
}

// Humans marks the seats played by people
func (c *Config) Humans() [game.NumSeats]bool {
	var h [game.NumSeats]bool
	for i, p := range c.Policies() {
		h[i] = p == bot.PolicyHuman
	}
	return h
}

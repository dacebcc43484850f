// Package config loads table definitions from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/holdemengine/internal/bot"
	"github.com/lox/holdemengine/internal/game"
	"github.com/lox/holdemengine/internal/table"
)

// Defaults applied to values left out of a file.
const (
	DefaultLogLevel      = "info"
	DefaultStartingChips = 1000
	DefaultActionTimeout = "30s"
	DefaultBot           = "call"
)

// Config is the complete configuration.
type Config struct {
	LogLevel string        `hcl:"log_level,optional"`
	Tables   []TableConfig `hcl:"table,block"`
}

// TableConfig defines one table and who sits at it.
type TableConfig struct {
	Name          string         `hcl:"name,label"`
	SmallBlind    int            `hcl:"small_blind"`
	BigBlind      int            `hcl:"big_blind,optional"`
	StartingChips int            `hcl:"starting_chips,optional"`
	ActionTimeout string         `hcl:"action_timeout,optional"`
	TimeoutAction string         `hcl:"timeout_action,optional"`
	Seed          int64          `hcl:"seed,optional"`
	Players       []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig seats a bot at a table.
type PlayerConfig struct {
	Name  string `hcl:"name,label"`
	Bot   string `hcl:"bot,optional"`
	Chips int    `hcl:"chips,optional"`
}

// Default returns one three-handed table.
func Default() *Config {
	c := &Config{
		Tables: []TableConfig{{
			Name:       "main",
			SmallBlind: 5,
			Players: []PlayerConfig{
				{Name: "alice", Bot: "chart"},
				{Name: "bob", Bot: "random"},
				{Name: "carol", Bot: "call"},
			},
		}},
	}
	c.applyDefaults()
	return c
}

// Load reads the configuration at path. A missing file gives Default.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. filename is only used in error messages.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.BigBlind == 0 {
			t.BigBlind = 2 * t.SmallBlind
		}
		if t.StartingChips == 0 {
			t.StartingChips = DefaultStartingChips
		}
		if t.ActionTimeout == "" {
			t.ActionTimeout = DefaultActionTimeout
		}
		if t.TimeoutAction == "" {
			t.TimeoutAction = string(table.TimeoutCheck)
		}
		for j := range t.Players {
			p := &t.Players[j]
			if p.Bot == "" {
				p.Bot = DefaultBot
			}
			if p.Chips == 0 {
				p.Chips = t.StartingChips
			}
		}
	}
}

// Validate checks the configuration describes tables that can be played.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	known := make(map[string]bool)
	for _, name := range bot.Names() {
		known[name] = true
	}
	tables := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if tables[t.Name] {
			return fmt.Errorf("table %s: defined twice", t.Name)
		}
		tables[t.Name] = true

		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind < t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be at least the small blind", t.Name)
		}
		if n := len(t.Players); n < game.MinPlayers || n > game.MaxPlayers {
			return fmt.Errorf("table %s: needs %d-%d players, has %d", t.Name, game.MinPlayers, game.MaxPlayers, n)
		}
		if _, err := t.Timeout(); err != nil {
			return fmt.Errorf("table %s: %w", t.Name, err)
		}
		switch table.TimeoutAction(t.TimeoutAction) {
		case table.TimeoutCheck, table.TimeoutFold:
		default:
			return fmt.Errorf("table %s: timeout_action must be check or fold, got %q", t.Name, t.TimeoutAction)
		}

		players := make(map[string]bool, len(t.Players))
		for _, p := range t.Players {
			if players[p.Name] {
				return fmt.Errorf("table %s: player %s seated twice", t.Name, p.Name)
			}
			players[p.Name] = true
			if !known[p.Bot] {
				return fmt.Errorf("table %s: player %s: unknown bot %q", t.Name, p.Name, p.Bot)
			}
			if p.Chips <= 0 {
				return fmt.Errorf("table %s: player %s: chips must be positive", t.Name, p.Name)
			}
		}
	}
	return nil
}

// Timeout parses the action timeout. "0s" disables it.
func (t TableConfig) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(t.ActionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid action_timeout %q: %w", t.ActionTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("action_timeout must not be negative")
	}
	return d, nil
}

// TableSettings converts the table definition for table.New.
func (t TableConfig) TableSettings() (table.Config, error) {
	timeout, err := t.Timeout()
	if err != nil {
		return table.Config{}, err
	}
	return table.Config{
		Game: game.Config{
			SmallBlind: t.SmallBlind,
			BigBlind:   t.BigBlind,
			Seed:       t.Seed,
		},
		ActionTimeout: timeout,
		TimeoutAction: table.TimeoutAction(t.TimeoutAction),
	}, nil
}

// Seats lists the table's players in seat order.
func (t TableConfig) Seats() []game.Seat {
	seats := make([]game.Seat, len(t.Players))
	for i, p := range t.Players {
		seats[i] = game.Seat{ID: p.Name, Name: p.Name, Chips: p.Chips}
	}
	return seats
}

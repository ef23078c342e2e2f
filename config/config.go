package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBoardSize    = 3
	DefaultGames        = 10 // Per match up
	DefaultOutput       = "experiments"
	DefaultLogLevel     = "info"
	DefaultMinimaxDepth = 10
	DefaultSimulations  = 1000
	DefaultAddr         = ":8080"
)

// Agent names an agent configuration string, see agent.New.
type Agent struct {
	Name   string `yaml:"name"`
	Config string `yaml:"config"`
}

type Server struct {
	Addr  string `yaml:"addr"`
	Agent string `yaml:"agent"` // Name of the agent to serve
}

type Config struct {
	LogLevel  string     `yaml:"log_level"`
	BoardSize int        `yaml:"board_size"`
	Output    string     `yaml:"output"`
	Games     int        `yaml:"games"`
	Agents    []Agent    `yaml:"agents"`
	MatchUps  [][]string `yaml:"matchups"` // Pairs of agent names
	Server    Server     `yaml:"server"`
}

// Default pits the default MCTS agent against the default minimax agent.
func Default() Config {
	return Config{
		LogLevel:  DefaultLogLevel,
		BoardSize: DefaultBoardSize,
		Output:    DefaultOutput,
		Games:     DefaultGames,
		Agents: []Agent{
			{Name: "mcts", Config: fmt.Sprintf("mcts:simulations=%d", DefaultSimulations)},
			{Name: "minimax", Config: fmt.Sprintf("minimax:depth=%d", DefaultMinimaxDepth)},
			{Name: "random", Config: "random"},
		},
		MatchUps: [][]string{{"mcts", "minimax"}, {"mcts", "random"}},
		Server:   Server{Addr: DefaultAddr, Agent: "mcts"},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}
	if c.BoardSize < 2 {
		return errors.Errorf("board_size must be at least 2, got %d", c.BoardSize)
	}
	if c.Games <= 0 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}

	seen := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name == "" {
			return errors.Errorf("agent %d has no name", i+1)
		}
		if seen[a.Name] {
			return errors.Errorf("duplicate agent %q", a.Name)
		}
		if a.Config == "" {
			return errors.Errorf("agent %q has no config", a.Name)
		}
		seen[a.Name] = true
	}

	for i, m := range c.MatchUps {
		if len(m) != 2 {
			return errors.Errorf("matchup %d must name 2 agents, got %d", i+1, len(m))
		}
		for _, name := range m {
			if !seen[name] {
				return errors.Errorf("matchup %d names unknown agent %q", i+1, name)
			}
		}
	}

	if c.Server.Agent != "" && !seen[c.Server.Agent] {
		return errors.Errorf("server names unknown agent %q", c.Server.Agent)
	}
	return nil
}

// Level is the parsed LogLevel. It assumes c has been validated.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Agent looks up an agent by name.
func (c Config) Agent(name string) (Agent, bool) {
	for _, a := range c.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return Agent{}, false
}

package agent

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"zerosum/game"
	"zerosum/searcher"
)

// DefaultConfig is used when New is given an empty configuration.
const DefaultConfig = "mcts"

// New creates an agent from a configuration string: the agent name, optionally
// followed by a colon and comma-separated key=value parameters.
//
//	minimax:depth=10
//	mcts:simulations=2000,c=1.4,seed=7
//	random:seed=3
//	remote:url=http://localhost:8080
func New[S any](model game.Model[S], config string) (Agent[S], error) {
	if config == "" {
		config = DefaultConfig
	}

	name := config
	rest := ""
	if split := strings.Index(config, ":"); split != -1 {
		name = config[:split]
		rest = config[split+1:]
	}
	params := splitConfigString(rest)

	agent, err := build(model, name, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q", name)
	}
	for key := range params {
		return nil, errors.Errorf("unknown parameter %q for agent %q", key, name)
	}
	return agent, nil
}

func build[S any](model game.Model[S], name string, params map[string]string) (Agent[S], error) {
	switch name {
	case "minimax":
		depth, err := popParamOr(params, "depth", DefaultDepth)
		if err != nil {
			return nil, err
		}
		if depth < 0 {
			return nil, errors.Errorf("depth must be non-negative, got %d", depth)
		}
		return NewMinimax(model, depth), nil

	case "mcts":
		simulations, err := popParamOr(params, "simulations", searcher.DefaultSimulations)
		if err != nil {
			return nil, err
		}
		if simulations <= 0 {
			return nil, errors.Errorf("simulations must be positive, got %d", simulations)
		}
		c, err := popParamOr(params, "c", searcher.Exploration)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			return nil, errors.Errorf("exploration must be non-negative, got %g", c)
		}
		seed, err := popParamOr(params, "seed", uint64(time.Now().UnixNano()))
		if err != nil {
			return nil, err
		}
		mcts := searcher.NewMCTS(model,
			searcher.WithSimulations(simulations),
			searcher.WithExploration(c),
			searcher.WithSeed(seed),
			searcher.WithMetrics(),
		)
		return NewMCTS(model, mcts), nil

	case "random":
		seed, err := popParamOr(params, "seed", uint64(time.Now().UnixNano()))
		if err != nil {
			return nil, err
		}
		return NewRandom(model, seed), nil

	case "remote":
		url, err := popParamOr(params, "url", "")
		if err != nil {
			return nil, err
		}
		if url == "" {
			return nil, errors.New("remote agent requires url=...")
		}
		timeout, err := popParamOr(params, "timeout", 30*time.Second)
		if err != nil {
			return nil, err
		}
		return NewRemote[S](url, &http.Client{Timeout: timeout}), nil
	}
	return nil, errors.Errorf("unknown agent %q", name)
}

// splitConfigString splits "a=1,b" into {"a": "1", "b": ""}.
func splitConfigString(config string) map[string]string {
	params := make(map[string]string)
	if config == "" {
		return params
	}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[key] = value
	}
	return params
}

// popParamOr parses and removes params[key], or returns defaultValue if the key
// is absent or empty.
func popParamOr[T interface {
	int | uint64 | float64 | string | time.Duration
}](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists || value == "" {
		delete(params, key)
		return defaultValue, nil
	}
	delete(params, key)

	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case int:
		parsed, err = strconv.Atoi(value)
	case uint64:
		parsed, err = strconv.ParseUint(value, 10, 64)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case time.Duration:
		parsed, err = time.ParseDuration(value)
	case string:
		parsed = value
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q", key, value)
	}
	return parsed.(T), nil
}

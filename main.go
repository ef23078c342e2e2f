package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"zerosum/agent"
	"zerosum/config"
	"zerosum/experiments"
	"zerosum/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	agent1 := flag.String("agent1", "", "Agent 1 config, e.g. mcts:simulations=2000,c=1.4")
	agent2 := flag.String("agent2", "", "Agent 2 config, e.g. minimax:depth=10")
	games := flag.Int("games", config.DefaultGames, "Number of games per match up")
	boardSize := flag.Int("board", config.DefaultBoardSize, "Tic-tac-toe board size")
	output := flag.String("output", config.DefaultOutput, "Directory for experiment records, empty to skip")
	logLevel := flag.String("log-level", config.DefaultLogLevel, "Log level")
	serve := flag.Bool("serve", false, "Serve an agent over HTTP instead of playing")
	addr := flag.String("addr", config.DefaultAddr, "Listen address for -serve")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Flags given on the command line override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "board":
			cfg.BoardSize = *boardSize
		case "output":
			cfg.Output = *output
		case "log-level":
			cfg.LogLevel = *logLevel
		case "addr":
			cfg.Server.Addr = *addr
		}
	})
	if *agent1 != "" || *agent2 != "" {
		cfg.Agents = []config.Agent{
			{Name: "agent1", Config: *agent1},
			{Name: "agent2", Config: *agent2},
		}
		cfg.MatchUps = [][]string{{"agent1", "agent2"}}
		cfg.Server.Agent = "agent1"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *serve {
		runServer(cfg)
		return
	}

	results, err := experiments.RunConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, r := range results {
		log.Info().Msgf("%s vs %s: %d-%d with %d draws", r.One.Name, r.Two.Name, r.OneWon, r.TwoWon, r.Draws)
	}
}

func runServer(cfg config.Config) {
	a, ok := cfg.Agent(cfg.Server.Agent)
	if !ok {
		log.Fatal().Msgf("no agent %q to serve", cfg.Server.Agent)
	}

	model := game.NewTicTacToe(cfg.BoardSize)
	served, err := agent.New[game.Board](model, a.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create agent")
	}
	if err := agent.ListenAndServe(cfg.Server.Addr, served); err != nil {
		log.Fatal().Err(err).Msg("agent server stopped")
	}
}

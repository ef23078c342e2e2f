package experiments

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"zerosum/agent"
	"zerosum/config"
	"zerosum/engine"
	"zerosum/experiments/metrics"
	"zerosum/game"
)

type MatchUp struct {
	One metrics.AgentConfig
	Two metrics.AgentConfig
}

type Result struct {
	MatchUp
	engine.Tally
}

// FromConfig numbers the configured agents from 1 and resolves the match ups.
func FromConfig(cfg config.Config) ([]metrics.AgentConfig, []MatchUp) {
	configs := make([]metrics.AgentConfig, len(cfg.Agents))
	byName := make(map[string]metrics.AgentConfig, len(cfg.Agents))
	for i, a := range cfg.Agents {
		configs[i] = metrics.AgentConfig{ID: i + 1, Name: a.Name, Config: a.Config}
		byName[a.Name] = configs[i]
	}

	matchUps := make([]MatchUp, 0, len(cfg.MatchUps))
	for _, m := range cfg.MatchUps {
		matchUps = append(matchUps, MatchUp{One: byName[m[0]], Two: byName[m[1]]})
	}
	return configs, matchUps
}

// RunConfig plays the configured match ups on a tic-tac-toe board and writes
// the records under cfg.Output.
func RunConfig(cfg config.Config) ([]Result, error) {
	configs, matchUps := FromConfig(cfg)
	model := game.NewTicTacToe(cfg.BoardSize)
	return Run[game.Board](model, "arena", configs, matchUps, cfg.Games, cfg.Output)
}

// Run plays numGames games for each match up. Records are written to
// outDir/name/<timestamp> unless outDir is empty.
func Run[S any](model game.Model[S], name string, configs []metrics.AgentConfig, matchUps []MatchUp, numGames int, outDir string) ([]Result, error) {
	count := 0
	results := make([]Result, 0, len(matchUps))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%s and agent2=%s...",
			mi+1, len(matchUps), matchUp.One.Config, matchUp.Two.Config)

		// Fresh agents per match up so seeded agents replay identically
		one, err := agent.New(model, matchUp.One.Config)
		if err != nil {
			return results, errors.WithMessagef(err, "matchup %d", mi+1)
		}
		two, err := agent.New(model, matchUp.Two.Config)
		if err != nil {
			return results, errors.WithMessagef(err, "matchup %d", mi+1)
		}

		tally, games, err := engine.NewArena(model, one, two).PlayGames(numGames)
		if err != nil {
			return results, errors.WithMessagef(err, "matchup %d", mi+1)
		}
		results = append(results, Result{MatchUp: matchUp, Tally: tally})

		for _, g := range games {
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     matchUp.One.ID,
				Agent2:     matchUp.Two.ID,
				GameMetric: g.GameMetric,
			})
			for _, mm := range g.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
		}

		log.Info().Msgf("completed matchup %d of %d: %s won %d, %s won %d, %d draws",
			mi+1, len(matchUps), matchUp.One.Name, tally.OneWon, matchUp.Two.Name, tally.TwoWon, tally.Draws)
	}

	log.Info().Msgf("completed %s experiment", name)

	if outDir == "" {
		return results, nil
	}
	return results, write(outDir, name, configs, gameRecords, moveRecords)
}

func write(outDir, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return errors.WithMessage(err, "failed to create experiment writer")
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

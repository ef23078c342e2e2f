package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// AgentConfig identifies an agent taking part in an experiment.
type AgentConfig struct {
	ID     int
	Name   string
	Config string // Agent configuration string, e.g. "mcts:simulations=500"
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	dir string
}

// NewWriter creates baseDir/name/<timestamp> to hold the experiment files.
func NewWriter(baseDir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	dir := filepath.Join(baseDir, name, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create directory")
	}

	return &Writer{dir: dir}, nil
}

func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "config"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Config,
		})
	}
	return errors.WithMessage(w.write("agent_configs.csv", header, rows), "agent configs")
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_agent", "winner", "total_moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingAgent),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	return errors.WithMessage(w.write("game_records.csv", header, rows), "game records")
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "actor", "agent", "action", "duration",
		"simulations", "exploration", "episodes", "full_playouts", "terminal_hits", "tree_size"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Actor),
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Action),
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.FormatFloat(record.Exploration, 'g', -1, 64),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.TerminalHits),
			strconv.Itoa(record.TreeSize),
		})
	}
	return errors.WithMessage(w.write("move_records.csv", header, rows), "move records")
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, file))
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if err := writer.WriteAll(rows); err != nil {
		return errors.Wrap(err, "failed to write rows")
	}
	return nil
}

package engine

import "zerosum/experiments/metrics"

// MaxMoves caps a game so that a pair of passing agents cannot loop forever.
// A game stopped by the cap is scored as a draw.
const MaxMoves = 10000

type Engine interface {
	// Run plays one game until it is resolved or MaxMoves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

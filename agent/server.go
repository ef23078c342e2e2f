package agent

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"zerosum/game"
)

const chooseActionPath = "/chooseaction"

type chooseActionRequest[S any] struct {
	State S `json:"state"`
}

type chooseActionResponse struct {
	Action game.Action `json:"action"`
}

type server[S any] struct {
	mu    sync.Mutex // Agents are not safe for concurrent use
	agent Agent[S]
}

// NewServer exposes agent over HTTP. Clients POST {"state": ...} to
// /chooseaction and receive {"action": n}.
func NewServer[S any](agent Agent[S]) http.Handler {
	s := &server[S]{agent: agent}

	// Create a local mux rather than using the global DefaultServeMux
	mux := http.NewServeMux()
	mux.HandleFunc(chooseActionPath, s.handleChooseAction)
	return mux
}

// ListenAndServe serves agent on addr until the server fails.
func ListenAndServe[S any](addr string, agent Agent[S]) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, NewServer(agent))
}

func (s *server[S]) handleChooseAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload chooseActionRequest[S]
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	action, err := s.agent.ChooseAction(payload.State)
	s.mu.Unlock()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, game.ErrPreconditionViolated) || errors.Is(err, game.ErrInvalidAction) {
			status = http.StatusUnprocessableEntity
		}
		log.Warn().Err(err).Int("status", status).Msg("agent failed to choose an action")
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chooseActionResponse{Action: action}); err != nil {
		http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
	}
}

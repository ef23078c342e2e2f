package agent

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"zerosum/game"
)

type remoteAgent[S any] struct {
	serverURL string
	client    *http.Client
}

// NewRemote returns an agent that asks an agent server for its moves.
func NewRemote[S any](serverURL string, client *http.Client) Agent[S] {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteAgent[S]{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    client,
	}
}

func (a *remoteAgent[S]) ChooseAction(state S) (game.Action, error) {
	data, err := json.Marshal(chooseActionRequest[S]{State: state})
	if err != nil {
		return game.NoAction, errors.Wrap(err, "failed to encode state")
	}

	resp, err := a.client.Post(a.serverURL+chooseActionPath, "application/json", bytes.NewReader(data))
	if err != nil {
		return game.NoAction, errors.Wrapf(err, "failed to reach agent server %s", a.serverURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return game.NoAction, errors.Wrap(game.ErrPreconditionViolated, msg)
		}
		return game.NoAction, errors.Errorf("agent server returned %s: %s", resp.Status, msg)
	}

	var payload chooseActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return game.NoAction, errors.Wrap(err, "failed to decode action")
	}
	return payload.Action, nil
}

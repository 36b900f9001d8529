package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/MolchanovArt/exocortex/internal/classify"
	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/keyring"
	"github.com/MolchanovArt/exocortex/internal/planner"
	"github.com/MolchanovArt/exocortex/internal/profile"
	"github.com/MolchanovArt/exocortex/internal/storage"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store   storage.Provider
	Profile *profile.Provider
	Debug   bool
}

// Engine builds a slot suggestion engine from the loaded profile and the
// store.
func (c *Context) Engine() *planner.Engine {
	return planner.New(c.Store, c.Profile.Preferences(), c.Profile.EnergyProfile())
}

// Classifier builds the classification client, resolving the API key from
// the environment first and the OS keyring second.
func (c *Context) Classifier() (*classify.Client, error) {
	key := os.Getenv(constants.EnvOpenAIAPIKey)
	if key == "" {
		var err error
		key, err = keyring.GetOpenAIKey()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no API key configured: set %s or run 'exocortex keyring set-api-key'", constants.EnvOpenAIAPIKey)
			}
			return nil, err
		}
	}

	var opts []classify.Option
	if base := os.Getenv(constants.EnvOpenAIBaseURL); base != "" {
		opts = append(opts, classify.WithBaseURL(base))
	}
	return classify.New(key, opts...), nil
}

package cmd

import (
	"net/http"

	"github.com/esanchezm/megaverse/internal/cli"
	"github.com/esanchezm/megaverse/internal/megaverse"
	"github.com/esanchezm/megaverse/internal/reconciler"
	"github.com/esanchezm/megaverse/pkg/logging"
)

// newReconciler builds the API client and reconciler for a command from
// its arguments, flags and the loaded configuration.
func newReconciler(args []string, flags *cli.CommandFlags) (*reconciler.Reconciler, error) {
	candidateID, err := cli.ResolveCandidateID(args, loadedConfig)
	if err != nil {
		return nil, err
	}

	client, err := megaverse.NewClient(candidateID,
		megaverse.WithBaseURL(flags.ResolveBaseURL(loadedConfig)),
		megaverse.WithHTTPClient(&http.Client{Timeout: loadedConfig.Timeout()}),
		megaverse.WithRetry(loadedConfig.ClientRetry()),
		megaverse.WithLogger(logging.Logger("MegaverseClient")),
	)
	if err != nil {
		return nil, err
	}
	activeEndpoint = client.BaseURL()

	logging.Debug("CLI", "Using API %s for candidate %s", client.BaseURL(), candidateID)
	return reconciler.New(reconciler.ClientsFrom(client), reconciler.WithCandidateID(candidateID))
}

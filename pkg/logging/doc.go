// Package logging provides the structured logging used across megaverse.
//
// It is a thin layer over Go's standard slog package that adds a subsystem
// attribute to every entry and filters by level.
//
// # Initialization
//
// Nothing is configured when the package is imported. The entry point
// calls InitForCLI once, before running any command:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
// Until then every log call is dropped, so libraries and tests may log
// freely without producing output.
//
// # Usage
//
//	logging.Info("Reconciler", "Reconciling map for candidate %s", candidateID)
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("MegaverseClient", "Transient failure, retrying")
//	logging.Error("Reconciler", err, "Unknown goal token %q, skipping", token)
//
// Components that take an explicit *slog.Logger (for example the HTTP
// client) obtain one tagged with their subsystem via Logger:
//
//	client, err := megaverse.NewClient(id, megaverse.WithLogger(logging.Logger("MegaverseClient")))
//
// # Subsystems
//
//   - Bootstrap: command start-up
//   - Config: configuration loading
//   - MegaverseClient: HTTP calls and retries
//   - Reconciler: diffing and dispatching
package logging

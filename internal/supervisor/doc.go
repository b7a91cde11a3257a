// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

/*
Package supervisor runs Roommatch's long-lived services under suture v4.

# Overview

	RootSupervisor ("roommatch")
	├── ModelSupervisor ("model-layer")
	│   └── RetrainService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A crash in the retrain loop restarts only that service; the API keeps
serving with the model already installed, or with the heuristic.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddModelService(services.NewRetrainService(engine, retrainCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))

	errCh := tree.ServeBackground(ctx)

Supervisor events (starts, failures, backoff) are logged through sutureslog
into the zerolog-backed slog handler.
*/
package supervisor

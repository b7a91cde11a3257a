// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig tunes restart behavior for every supervisor in the tree.
// Zero fields are replaced by DefaultTreeConfig values.
type TreeConfig struct {
	// FailureThreshold failures within the decay window trigger backoff.
	FailureThreshold float64

	// FailureDecay is the failure half-life in seconds.
	FailureDecay float64

	// FailureBackoff pauses restarts once the threshold is crossed.
	FailureBackoff time.Duration

	// ShutdownTimeout bounds how long each service gets to return after cancel.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig mirrors suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold <= 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay <= 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff <= 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the process supervisor:
//
//	roommatch
//	├── model-layer  (retrain service)
//	└── api-layer    (HTTP server)
//
// A crash loop in one layer backs off without restarting the other.
type SupervisorTree struct {
	root   *suture.Supervisor
	layers map[string]*suture.Supervisor
	config TreeConfig
}

const (
	layerModel = "model-layer"
	layerAPI   = "api-layer"
)

// NewSupervisorTree builds the tree. Supervisor events are logged through logger.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	if logger == nil {
		return nil, errors.New("supervisor: nil logger")
	}
	config = config.withDefaults()

	events := &sutureslog.Handler{Logger: logger}
	t := &SupervisorTree{
		root:   suture.New("roommatch", config.spec(events.MustHook())),
		layers: make(map[string]*suture.Supervisor, 2),
		config: config,
	}
	for _, name := range []string{layerModel, layerAPI} {
		// Nil hook: children inherit the root's hook on Add.
		layer := suture.New(name, config.spec(nil))
		t.root.Add(layer)
		t.layers[name] = layer
	}
	return t, nil
}

// Root returns the top-level supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor { return t.root }

// AddModelService registers a model-layer service such as the retrain loop.
func (t *SupervisorTree) AddModelService(svc suture.Service) suture.ServiceToken {
	return t.layers[layerModel].Add(svc)
}

// AddAPIService registers an API-layer service such as the HTTP server.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.layers[layerAPI].Add(svc)
}

// Serve blocks until ctx is canceled or the root gives up.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree and returns a channel that yields its exit error.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services still running after ShutdownTimeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}

// Package topology decides whether the system under test is ready to be tested at all.
package topology

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/config"
	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/probe"
	"github.com/selimhorri/ecommerce-contract-tests/readiness"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Stage identifies which part of the gate failed.
type Stage string

const (
	StageRegistry     Stage = "registry health"
	StageRegistration Stage = "service registration"
	StageRoutes       Stage = "gateway routes"
)

// GateError is returned by EnsureReady for the first target that did not become ready.
type GateError struct {
	Stage Stage
	Err   error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("topology not ready (%s): %s", e.Stage, e.Err)
}

func (e *GateError) Unwrap() error {
	return e.Err
}

// Gate waits, in order, for the registry, for every service to be registered, and for a list
// of gateway routes.
type Gate struct {
	RegistryBaseURL string
	Poller          readiness.Poller

	// Timeout and Interval apply to every registry target, and to any route target that does
	// not set its own.
	Timeout  time.Duration
	Interval time.Duration

	Logger framework.Logger
}

// NewGate creates a Gate from the session configuration.
func NewGate(cfg config.Config, prober probe.Prober) Gate {
	return Gate{
		RegistryBaseURL: cfg.RegistryBaseURL,
		Poller:          readiness.NewPoller(prober),
		Timeout:         cfg.TopologyTimeout,
		Interval:        cfg.PollInterval,
		Logger:          framework.NullLogger(),
	}
}

// EnsureReady returns nil once every target is ready, or a *GateError for the first one that
// is not. Each target gets its own full timeout.
func (g Gate) EnsureReady(ctx context.Context, serviceIDs []string, routes []readiness.Target) error {
	if err := g.wait(ctx, StageRegistry, g.registryTarget(servicedef.RegistryHealthPath)); err != nil {
		return err
	}

	ids := append([]string(nil), serviceIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		target := g.registryTarget(servicedef.RegistryAppsPath + id)
		target.Description = fmt.Sprintf("registration of %s", id)
		if err := g.wait(ctx, StageRegistration, target); err != nil {
			return err
		}
	}

	for _, route := range routes {
		if route.Timeout <= 0 {
			route.Timeout = g.Timeout
		}
		if route.Interval <= 0 {
			route.Interval = g.Interval
		}
		if err := g.wait(ctx, StageRoutes, route); err != nil {
			return err
		}
	}
	return nil
}

func (g Gate) wait(ctx context.Context, stage Stage, target readiness.Target) error {
	if err := ctx.Err(); err != nil {
		return &GateError{Stage: stage, Err: err}
	}
	logger := g.logger()
	logger.Printf("Waiting for %s", target.Name())
	poller := g.Poller
	if poller.Logger == nil {
		poller.Logger = logger
	}
	result := poller.Poll(ctx, target)
	if err := result.Err(target); err != nil {
		return &GateError{Stage: stage, Err: err}
	}
	logger.Printf("%s is ready (%d attempts, %s)", target.Name(), result.Attempts, result.Elapsed.Round(time.Millisecond))
	return nil
}

func (g Gate) registryTarget(path string) readiness.Target {
	return readiness.Target{
		Method:         http.MethodGet,
		URL:            gateway.BuildURL(g.RegistryBaseURL, path),
		Header:         http.Header{"Accept": []string{"application/json"}},
		ExpectedStatus: ldvalue.NewOptionalInt(http.StatusOK),
		Interval:       g.Interval,
		Timeout:        g.Timeout,
	}
}

func (g Gate) logger() framework.Logger {
	if g.Logger == nil {
		return framework.NullLogger()
	}
	return g.Logger
}

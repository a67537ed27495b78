package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/selimhorri/ecommerce-contract-tests/e2etests"
	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"
	"github.com/selimhorri/ecommerce-contract-tests/probe"
	"github.com/selimhorri/ecommerce-contract-tests/servicedef"
	"github.com/selimhorri/ecommerce-contract-tests/topology"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var errTestsFailed = errors.New("tests failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := &cli.Command{
		Name:   "ecommerce-contract-tests",
		Usage:  "Run end-to-end contract tests against the ecommerce API gateway",
		Flags:  commandFlags(),
		Action: run,
	}
	if err := cmd.Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, command *cli.Command) error {
	params, err := readParams(command)
	if err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{"module": "contract-tests"})
	if params.debugAll {
		log.SetLevel(log.DebugLevel)
	}

	fmt.Printf("Reproduce with: %s\n\n", params.reproduceCommand(os.Args[0]))

	httpClient := &http.Client{}
	defer httpClient.CloseIdleConnections()
	client := gateway.NewClient(params.config, httpClient)

	gate := topology.NewGate(params.config, probe.NewHTTPProber(httpClient, params.config.RequestTimeout))
	gate.Logger = logger
	gate.Poller.Logger = debugLogger{logger}
	notReady := waitForTopology(ctx, gate, client, params)
	if notReady != nil {
		logger.WithError(notReady).Error("System under test is not ready, skipping all tests")
	}

	framework.PrintFilterDescription(os.Stdout, params.filters)
	fmt.Println("Running test suite")

	testLogger := framework.MultiTestLogger(
		&ConsoleTestLogger{
			Out:                  os.Stdout,
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
		},
		sessionTestLogger{entry: logger},
	)
	results := e2etests.RunTestSuite(
		ctx,
		e2etests.Params{Client: client, NotReady: notReady},
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if notReady != nil || !results.OK() {
		return errTestsFailed
	}
	return nil
}

func waitForTopology(ctx context.Context, gate topology.Gate, client *gateway.Client, params commandParams) error {
	routes, err := topology.DefaultRoutes(client, params.config.TopologyTimeout)
	if err != nil {
		return err
	}
	return gate.EnsureReady(ctx, servicedef.CoreServices, routes)
}

// debugLogger sends Printf output to the debug level.
type debugLogger struct {
	entry *log.Entry
}

func (d debugLogger) Printf(format string, args ...interface{}) {
	d.entry.Debugf(format, args...)
}

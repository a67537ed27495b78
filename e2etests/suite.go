package e2etests

import (
	"context"
	"fmt"

	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"
)

// Params configures a suite run.
type Params struct {
	Client *gateway.Client

	// NotReady is the reason the topology gate failed, if it did. Every test is then reported
	// as skipped without making any requests.
	NotReady error
}

func RunTestSuite(
	ctx context.Context,
	params Params,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{ctx: ctx, client: params.Client}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)
		if params.Client != nil {
			c.Defer(params.Client.CloseIdleConnections)
		}

		run := func(name string, action func(*T)) {
			if params.NotReady != nil {
				action = func(t *T) {
					t.context.SkipWithReason(fmt.Sprintf("topology not ready: %s", params.NotReady))
				}
			}
			t.Run(name, action)
		}

		run("health", DoHealthTests)
		run("listings", DoListingTests)
		run("catalog", DoCatalogTests)
		run("checkout", DoCheckoutTests)
	})
}

package e2etests

import (
	"context"

	"github.com/selimhorri/ecommerce-contract-tests/framework"
	"github.com/selimhorri/ecommerce-contract-tests/gateway"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type environment struct {
	ctx    context.Context
	client *gateway.Client
}

// T represents a test or subtest in the end-to-end suite.
//
// It implements the same basic functionality as Go's testing.T, on top of the framework
// package's Context, so the assert and require packages can be used with a *T directly. It
// also carries a gateway client whose request log goes to this test's debug output.
type T struct {
	context *framework.Context
	env     *environment
	client  *gateway.Client
}

func newTestScope(context *framework.Context, env *environment) *T {
	t := &T{context: context, env: env}
	if env.client != nil {
		t.client = env.client.WithLogger(context.DebugLogger())
	}
	return t
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Client returns the gateway client for this test.
func (t *T) Client() *gateway.Client {
	return t.client
}

// Request makes a gateway request, failing the test if the status is not the expected one.
func (t *T) Request(method, path string, opts ...gateway.Option) *gateway.Response {
	return t.client.Request(t, method, path, opts...)
}

// JSON makes a gateway request and decodes the response, failing the test if the status is
// not the expected one or the body is not JSON.
func (t *T) JSON(method, path string, opts ...gateway.Option) ldvalue.Value {
	return t.client.JSON(t, method, path, opts...)
}

// WaitFor polls a gateway route until it responds with the expected status, failing the test
// if it does not do so within the readiness timeout.
func (t *T) WaitFor(method, path string, opts ...gateway.Option) *gateway.Response {
	return t.client.WaitFor(t, method, path, opts...)
}

// Package framework contains the test runner used by the contract test suite, independent of
// what is being tested.
//
// The general model is:
//
// 1. A run starts with Run, which creates a root Context. Tests and groups of tests are
// subtests created with Context.Run, and each one gets its own Context.
//
// 2. A Context is similar to Go's *testing.T: it implements require.TestingT, so assertions
// from testify can fail the test, and Defer registers cleanup functions that run however the
// test exits. Unlike *testing.T it runs outside of "go test", so the suite can be shipped as a
// standalone binary and pointed at a deployed system.
//
// 3. Each Context has a capturing debug logger. The TestLogger decides whether to show the
// captured output, typically only for failed tests.
//
// The domain-specific code that knows what is being tested is responsible for providing a
// test API on top of Context.
package framework

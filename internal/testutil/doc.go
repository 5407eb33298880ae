// Package testutil provides the shared harness for integration tests: it
// writes configuration files into a temporary directory, runs the sweep
// application against them and collects the outcome.
package testutil

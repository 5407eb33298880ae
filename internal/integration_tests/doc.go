// Package integration_tests holds end-to-end sweep scenarios. Each scenario
// writes a configuration file, runs the sweep application through
// testutil.RunSweepTest and checks the files and logs it produced.
package integration_tests

// Package registry provides the explicit name -> function table that sweep
// configurations select their target from.
//
// The Registry stores each Target under its (module, func) pair, together with
// the parameter list used to classify and validate configuration values. Go
// packages contribute targets by implementing Module; registration happens once
// at startup and a duplicate name is a programmer error.
package registry

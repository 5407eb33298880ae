// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package sweep evaluates a registered target over the cartesian product of
// its configured parameter values.
//
// A sweep runs in two phases. NewPlan resolves the section's expressions,
// classifies every target parameter as inner (bound to a plot role), outer
// (one figure per value) or constant, and validates role cardinalities before
// anything is evaluated. Run then walks the product in a fixed nested order,
// producing render-ready Figures and the flat list of Rows exported as CSV.
package sweep

// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package config defines the format-agnostic model of a sweep configuration
// section, along with the Loader interface implemented by the format-specific
// adapters (HCL, TOML, YAML).
//
// The `config.Section` is the single source of truth for the `sweep` package.
// It keeps parameter values as raw hcl.Expression values so that evaluation can
// be deferred until the target function, and therefore its defaults, is known.
package config

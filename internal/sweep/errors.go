// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sweep

import "errors"

var (
	// ErrConfig marks malformed or incomplete configuration: unknown target,
	// missing parameters, values that cannot be converted or evaluated.
	ErrConfig = errors.New("configuration error")
	// ErrValidation marks configuration that is well formed but cannot be
	// plotted: non-iterable or empty role values, overlapping roles, caps.
	ErrValidation = errors.New("validation error")
)

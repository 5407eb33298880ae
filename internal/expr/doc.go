// Package expr evaluates sweep parameter expressions.
//
// Expressions use HCL native syntax with a fixed function table (ranges,
// spacing helpers, list and math helpers) and can reference any name that
// becomes known while a section is resolved: target function defaults, other
// entries and the constants pi and e. It is a constrained literal language,
// not a general-purpose evaluator.
package expr

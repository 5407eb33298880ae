// Package hclutil collects small helpers for working with HCL expressions that
// are shared by the configuration adapters and the expression evaluator.
package hclutil

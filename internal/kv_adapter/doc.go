// Package kv_adapter implements config.Loader for key/value sweep files in
// TOML and YAML. Each top-level table (TOML) or mapping (YAML) is a section;
// top-level scalar keys are shared defaults inherited by every section, the
// way an INI DEFAULT section behaves.
//
// String values are parsed as expressions, so `t = "linspace(0, 10, 200)"`
// behaves exactly like the HCL form. Strings that are not valid expressions
// are kept verbatim.
package kv_adapter

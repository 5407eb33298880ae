// Package hcl_adapter implements config.Loader for HCL sweep files.
//
// A file contains one or more labeled `sweep` blocks; each block is a section:
//
//	sweep "default" {
//	  module    = "waves"
//	  func      = "damped_sine"
//	  x_var     = t
//	  color_var = damping
//
//	  t       = linspace(0, 10, 200)
//	  damping = [0.1, 0.2, 0.5]
//	}
package hcl_adapter

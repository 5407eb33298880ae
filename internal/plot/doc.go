// Package plot renders sweep figures to PNG.
//
// Every facet is drawn as an independent go-chart chart and composited into a
// single row x column grid under the figure title.
package plot

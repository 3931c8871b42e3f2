// Package script runs declarative chart scripts against a page.
//
// A script is an ordered list of steps, each selecting elements and applying
// one lifecycle action to them:
//
//	steps:
//	  - select: "#sales"
//	    type: bar
//	    data: {q1: [3, 5, 2]}
//	    options: {title: Sales}
//	  - select: "#sales"
//	    action: update
//	    data_file: sales-q2.yaml
//
// Scripts load from YAML (.yaml, .yml) or TOML (.toml, using [[steps]]).
// data_file datasets are read only when the step is applied.
package script

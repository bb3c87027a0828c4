// Package wari explores the Workforce AI Risk Index: occupations scored by
// how exposed they are to AI-driven automation.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/wari/engine"
//	    "github.com/spektr-org/wari/loader"
//	)
//
//	records, err := loader.LoadWithFallback(ctx, loader.Source{Location: url})
//	view := engine.Derive(records, engine.DefaultQueryState())
//
// The engine package holds the pure query stages (filter, sort, paginate,
// aggregate, export). The loader fetches and normalizes records, the
// session package owns the query state and its commands, and cli wires
// them into the wari command.
package wari

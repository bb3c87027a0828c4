package main

import (
	"os"

	"github.com/spektr-org/wari/cli"
)

// ============================================================================
// WARI CLI — Workforce AI Risk Index explorer
// ============================================================================

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

/*
Copyright © 2024 huimingz

PRBuddy - MCP server that helps agents write pull requests
*/
package main

import (
	"os"

	"github.com/huimingz/prbuddy/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the lolinsights CLI tool, which fetches
// League of Legends matches from the Riot API and computes tactical insights.
package main

import "github.com/pable/go-lol-insights/cmd"

func main() {
	cmd.Execute()
}

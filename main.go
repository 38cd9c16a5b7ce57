// Package main is the entry point for the lolcoach CLI tool, which analyzes
// League of Legends match timelines and produces coaching reports.
package main

import "github.com/pable/lol-coach/cmd"

func main() {
	cmd.Execute()
}

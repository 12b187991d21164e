package main

import (
	"fmt"
	"os"
)

const usageText = `studio is a terminal workbench for ScribeEngine projects.

Usage:
  studio <command> [flags]

Commands:
  ui       run the editor UI
  config   print configuration (effective or defaults)
  tree     print the classified project tree
  routes   list registered routes
  db       browse database connections and tables
  help     show help

Flags:
  -h, --help   show help

Examples:
  studio ui
  studio config --scope core --format toml
  studio tree
  studio db --connection default --table users --page 2
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}

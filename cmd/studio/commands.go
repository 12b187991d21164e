package main

import (
	"fmt"
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newStudioClient,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":     NewUICommand(wiring.stderr, wiring.newClient),
		"config": NewConfigCommand(wiring.stdout, wiring.stderr),
		"tree":   NewTreeCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"routes": NewRoutesCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"db":     NewDBCommand(wiring.stdout, wiring.stderr, wiring.newClient),
	}
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

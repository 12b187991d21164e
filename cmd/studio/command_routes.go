package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type RoutesCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewRoutesCommand(stdout, stderr io.Writer, newClient clientFactory) *RoutesCommand {
	return &RoutesCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *RoutesCommand) Run(args []string) error {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	routes, err := client.ListRoutes(ctx)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "METHODS\tPATH\tFILE")
	for _, route := range routes {
		fmt.Fprintf(writer, "%s\t%s\t%s\n",
			strings.Join(route.Methods, ","), route.Path, route.File)
	}
	return writer.Flush()
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type DBCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewDBCommand(stdout, stderr io.Writer, newClient clientFactory) *DBCommand {
	return &DBCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

// Run descends as far as the flags allow: no flags lists connections, a
// connection lists its tables, a connection plus table prints a page of rows.
func (c *DBCommand) Run(args []string) error {
	fs := flag.NewFlagSet("db", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	connection := fs.String("connection", "", "database connection name")
	table := fs.String("table", "", "table to page through (requires --connection)")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 50, "rows per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table != "" && *connection == "" {
		return fmt.Errorf("--table requires --connection")
	}
	if *page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}

	if *connection == "" {
		connections, err := client.ListConnections(ctx)
		if err != nil {
			return err
		}
		for _, conn := range connections {
			fmt.Fprintln(c.stdout, conn)
		}
		return nil
	}

	if *table == "" {
		tables, err := client.ListTables(ctx, *connection)
		if err != nil {
			return err
		}
		for _, name := range tables {
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	}

	data, err := client.TableData(ctx, *connection, *table, *page, *perPage)
	if err != nil {
		return err
	}
	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, strings.ToUpper(strings.Join(data.Columns, "\t")))
	for _, row := range data.Data {
		cells := make([]string, 0, len(data.Columns))
		for _, col := range data.Columns {
			cells = append(cells, fmt.Sprintf("%v", row[col]))
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "page %d/%d · %d rows total\n", data.Page, data.PageCount(), data.Total)
	return nil
}

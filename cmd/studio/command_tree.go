package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"studio/internal/classify"
	"studio/internal/types"
)

type TreeCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewTreeCommand(stdout, stderr io.Writer, newClient clientFactory) *TreeCommand {
	return &TreeCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *TreeCommand) Run(args []string) error {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	paths := fs.Bool("paths", false, "print full project paths instead of names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	files, err := client.ListFiles(ctx)
	if err != nil {
		return err
	}

	result := classify.Classify(files, types.NewCollapseState())
	printClassified(c.stdout, result, *paths)
	return nil
}

func printClassified(out io.Writer, result *classify.Result, fullPaths bool) {
	label := func(ref classify.FileRef) string {
		if fullPaths {
			return ref.Path
		}
		return ref.Name
	}
	for _, kind := range classify.Kinds {
		cat := result.Category(kind)
		fmt.Fprintf(out, "%s %s (%d)\n", kind.Icon(), kind.Label(), cat.Count())
		for _, ref := range cat.Files {
			fmt.Fprintf(out, "  %s\n", label(ref))
		}
		for _, ref := range cat.RootFiles {
			fmt.Fprintf(out, "  %s\n", label(ref))
		}
		for _, folder := range cat.SortedFolders() {
			printFolder(out, folder, 1, label)
		}
	}
	for _, ref := range result.ConfigFiles {
		fmt.Fprintf(out, "⚙ %s\n", label(ref))
	}
}

func printFolder(out io.Writer, folder *classify.Folder, depth int, label func(classify.FileRef) string) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(out, "%s%s/\n", indent, folder.Name)
	for _, ref := range folder.Files {
		fmt.Fprintf(out, "%s  %s\n", indent, label(ref))
	}
	for _, sub := range folder.SortedSubfolders() {
		printFolder(out, sub, depth+1, label)
	}
}

// Package main provides the CLI entrypoint for typeforge.
//
// typeforge composes types declared in a YAML definition file and prints
// a summary of every synthesized type: members, kinds, origins, flags.
// Useful for checking definition files before embedding them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"

	"typeforge/forge"
	"typeforge/schema"
)

func main() {
	verbose := flag.Bool("v", false, "dump full type descriptors")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: typeforge [-v] <definitions.yaml>")
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(flag.Arg(0), *verbose, logger); err != nil {
		logger.Error("compose failed", "err", err)
		os.Exit(1)
	}
}

func run(path string, verbose bool, logger *slog.Logger) error {
	f, err := schema.LoadFile(path)
	if err != nil {
		return err
	}

	reg := forge.NewRegistry(logger)

	composed, err := f.Apply(reg, nil, nil)
	if err != nil {
		return err
	}

	for _, t := range composed {
		fmt.Printf("%s (sealed=%v serializable=%v notifying=%v)\n",
			t.Name(), t.Sealed(), t.Serializable(), t.Notifying())

		for _, m := range t.Members() {
			typ := "-"
			if m.Type != nil {
				typ = m.Type.String()
			}

			fmt.Printf("  %-20s %-12s %-10s %s\n", m.Name, m.Kind, m.Origin, typ)
		}

		if verbose {
			spew.Dump(t)
		}
	}

	return nil
}

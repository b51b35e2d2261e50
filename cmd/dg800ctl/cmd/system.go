// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gotmc/dg800"
	"github.com/gotmc/dg800/lib/profile"
)

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "idn",
			Short: "Show the instrument identification",
			Args:  cobra.NoArgs,
			RunE:  runWithGenerator(printQuery((*dg800.Generator).Identify)),
		},
		&cobra.Command{
			Use:   "error",
			Short: "Show the oldest entry of the error queue",
			Args:  cobra.NoArgs,
			RunE:  runWithGenerator(printQuery((*dg800.Generator).LastError)),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the instrument to its default settings",
			Args:  cobra.NoArgs,
			RunE: runWithGenerator(func(_ context.Context, g *dg800.Generator, _ []string) error {
				return g.Reset()
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the status registers and the error queue",
			Args:  cobra.NoArgs,
			RunE: runWithGenerator(func(_ context.Context, g *dg800.Generator, _ []string) error {
				return g.ClearErrors()
			}),
		},
		&cobra.Command{
			Use:   "apply <profile.yaml>",
			Short: "Apply a setup profile",
			Args:  cobra.ExactArgs(1),
			RunE:  runWithGenerator(apply),
		},
	)
}

func printQuery(q func(*dg800.Generator) (string, error)) func(context.Context, *dg800.Generator, []string) error {
	return func(_ context.Context, g *dg800.Generator, _ []string) error {
		s, err := q(g)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(s))
		return nil
	}
}

func apply(_ context.Context, g *dg800.Generator, args []string) error {
	p, err := profile.LoadFile(args[0])
	if err != nil {
		return err
	}
	return p.Apply(g)
}

// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotmc/dg800"
)

var counterFlags = struct {
	enable   bool
	coupling string
	clear    bool
}{}

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Read the frequency counter",
	Args:  cobra.NoArgs,
	RunE:  runWithGenerator(counter),
}

func init() {
	rootCmd.AddCommand(counterCmd)

	counterCmd.Flags().BoolVar(&counterFlags.enable, "enable", false, "turn the counter on before measuring")
	counterCmd.Flags().StringVar(&counterFlags.coupling, "coupling", "", "input coupling, AC or DC")
	counterCmd.Flags().BoolVar(&counterFlags.clear, "clear", false, "clear the statistics before measuring")
}

func counter(_ context.Context, g *dg800.Generator, _ []string) error {
	c := g.Counter()
	if counterFlags.coupling != "" {
		if err := c.SetCoupling(counterFlags.coupling); err != nil {
			return err
		}
	}
	if counterFlags.enable {
		if err := c.SetState("ON"); err != nil {
			return err
		}
	}
	if counterFlags.clear {
		if err := c.ClearStatistics(); err != nil {
			return err
		}
	}
	m, err := c.Measure()
	if err != nil {
		return err
	}
	fmt.Println(m)
	return nil
}

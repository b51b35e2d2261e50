// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/gotmc/dg800"
)

var sweepFlags = struct {
	mode string
}{}

var sweepCmd = &cobra.Command{
	Use:   "sweep <channel> <start Hz> <stop Hz> <time s>",
	Short: "Configure and start a frequency sweep",
	Args:  cobra.ExactArgs(4),
	RunE:  runWithGenerator(sweep),
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepFlags.mode, "mode", "", "sweep mode, LINear or LOGarithmic")
}

func sweep(_ context.Context, g *dg800.Generator, args []string) error {
	ch, err := parseChannel(args[0])
	if err != nil {
		return err
	}
	values, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	freq := g.Frequency()
	if sweepFlags.mode != "" {
		if err := freq.SetSweepMode(ch, sweepFlags.mode); err != nil {
			return err
		}
	}
	return freq.SetSweep(ch, values[0], values[1], values[2])
}

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

// channelSetting describes a per-channel value that can be read or set.
type channelSetting struct {
	name string
	unit string
	set  func(*dg800.Generator, dg800.Channel, float64) error
	get  func(*dg800.Generator, dg800.Channel) (string, error)
}

var channelSettings = []channelSetting{
	{"amplitude", "Vpp", (*dg800.Generator).SetChannelAmplitude, (*dg800.Generator).ChannelAmplitude},
	{"frequency", "Hz", (*dg800.Generator).SetChannelFrequency, (*dg800.Generator).ChannelFrequency},
	{"offset", "Vdc", (*dg800.Generator).SetChannelOffset, (*dg800.Generator).ChannelOffset},
	{"phase", "degrees", (*dg800.Generator).SetPhase, (*dg800.Generator).Phase},
}

var outputCmd = &cobra.Command{
	Use:   "output <channel> [ON|OFF]",
	Short: "Show or switch the output of a channel",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runWithGenerator(output),
}

func init() {
	rootCmd.AddCommand(outputCmd)
	for _, s := range channelSettings {
		rootCmd.AddCommand(newChannelCmd(s))
	}
}

func newChannelCmd(s channelSetting) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <channel> [value]", s.name),
		Short: fmt.Sprintf("Show or set the %s of a channel in %s", s.name, s.unit),
		Args:  cobra.RangeArgs(1, 2),
		RunE: runWithGenerator(func(_ context.Context, g *dg800.Generator, args []string) error {
			ch, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				values, err := parseFloats(args[1:])
				if err != nil {
					return err
				}
				return s.set(g, ch, values[0])
			}
			v, err := s.get(g, ch)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", v, s.unit)
			return nil
		}),
	}
}

func output(_ context.Context, g *dg800.Generator, args []string) error {
	ch, err := parseChannel(args[0])
	if err != nil {
		return err
	}
	if len(args) == 2 {
		return g.SetChannelState(ch, args[1])
	}
	on, err := g.OutputEnabled(ch)
	if err != nil {
		return err
	}
	if on {
		fmt.Println("ON")
	} else {
		fmt.Println("OFF")
	}
	return nil
}

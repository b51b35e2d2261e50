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
)

var sendCmd = &cobra.Command{
	Use:   "send <scpi>...",
	Short: "Send raw SCPI commands, printing the response of queries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWithGenerator(send),
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func send(_ context.Context, g *dg800.Generator, args []string) error {
	for _, cmd := range args {
		resp, err := g.Raw(cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		if strings.HasSuffix(strings.TrimSpace(cmd), "?") {
			fmt.Println(strings.TrimSpace(resp))
		}
	}
	return nil
}

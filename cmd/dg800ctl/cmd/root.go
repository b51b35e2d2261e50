// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gotmc/dg800"
	"github.com/gotmc/dg800/lib/cmdlog"
	"github.com/gotmc/dg800/lib/connutil"
)

var rootFlags = struct {
	cfgFile string
}{}

var rootCmd = &cobra.Command{
	Use:   "dg800ctl",
	Short: "Control a Rigol DG800 series waveform generator.",
	Long: "Sends SCPI commands to a Rigol DG800 series waveform generator over LAN, " +
		"USB (usbtmc) or GPIB (Prologix adapter).",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.cfgFile, "config", "", "config file (default $HOME/.dg800ctl.yaml)")
	pf.StringP("resource", "r", "", "instrument resource, e.g. TCPIP0::192.168.1.20::5555::SOCKET or GPIB0::10::INSTR")
	pf.String("serial-port", "", "serial port of the Prologix adapter (located automatically if empty)")
	pf.Bool("ar488", false, "the GPIB adapter is an Arduino AR488")
	pf.Duration("timeout", 5*time.Second, "I/O timeout")
	pf.Duration("settle", dg800.DefaultSettleDelay, "delay after output changes")
	pf.BoolP("verbose", "v", false, "log every command and response")
	pf.String("log-file", "", "write the log to this file, rotated at 10 MB")

	for _, name := range []string{"resource", "serial-port", "ar488", "timeout", "settle", "verbose", "log-file"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
	viper.SetEnvPrefix("DG800")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if rootFlags.cfgFile != "" {
		viper.SetConfigFile(rootFlags.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".dg800ctl")
		viper.SetConfigType("yaml")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if rootFlags.cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatalf("cannot read config: %v", err)
		}
	}
}

func setupLogging(*cobra.Command, []string) error {
	log.SetFlags(log.Lmicroseconds)
	if path := viper.GetString("log-file"); path != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}
	return nil
}

// runWithGenerator opens the configured resource, hands a generator to f and
// closes the session afterwards.
func runWithGenerator(f func(context.Context, *dg800.Generator, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		resource := viper.GetString("resource")
		if resource == "" {
			return errors.New("no resource given, use --resource or DG800_RESOURCE")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		m := connutil.Manager{
			SerialPort: viper.GetString("serial-port"),
			AR488:      viper.GetBool("ar488"),
			Timeout:    viper.GetDuration("timeout"),
		}
		sess, err := m.Open(ctx, resource)
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", resource, err)
		}
		if viper.GetBool("verbose") {
			sess = cmdlog.Wrap(sess, nil)
		}

		opts := []dg800.Option{dg800.WithSettleDelay(viper.GetDuration("settle"))}
		if viper.GetBool("verbose") {
			opts = append(opts, dg800.WithLogger(log.Default()))
		}
		g := dg800.New(sess, opts...)
		defer func() {
			if cerr := g.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return f(ctx, g, args)
	}
}

func parseChannel(arg string) (dg800.Channel, error) {
	ch, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid channel %q", arg)
	}
	return dg800.Channel(ch), nil
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		values[i] = v
	}
	return values, nil
}

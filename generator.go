// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package dg800 drives the Rigol DG800 series (DG832) dual-channel arbitrary
// waveform generator using SCPI commands sent over an already open Session.
package dg800

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// DefaultSettleDelay is the pause inserted after most operations to give the
// generator time to apply a setting.
const DefaultSettleDelay = 500 * time.Millisecond

// Session is an open communication channel to the instrument. The gpib,
// socket, usbtmc, and sim packages under lib provide implementations.
type Session interface {
	// Command formats according to a format specifier if arguments are
	// provided and writes the resulting command to the instrument.
	Command(format string, a ...any) error
	// Query writes the given query and returns the instrument's response.
	Query(cmd string) (string, error)
	Close() error
}

// Channel identifies one of the generator's two outputs. Values are sent to
// the instrument as is, without range checking.
type Channel int

// Available output channels.
const (
	Channel1 Channel = 1
	Channel2 Channel = 2
)

// Generator models a DG800 series waveform generator.
type Generator struct {
	sess   Session
	settle time.Duration
	logger *log.Logger
	debug  bool // if true, log every command before sending. Set via WithDebug().
	sleep  func(time.Duration)
	closed bool
}

// Option applies an option to the generator.
type Option func(*Generator)

// WithSettleDelay sets the delay applied after operations that change or read
// the output configuration. A zero delay disables settling.
func WithSettleDelay(d time.Duration) Option {
	return func(g *Generator) { g.settle = d }
}

// WithLogger sets the logger receiving human readable status lines.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithDebug causes commands and queries to be logged before being sent. It
// uses the logger set with WithLogger, or the standard logger if none.
func WithDebug() Option { return func(g *Generator) { g.debug = true } }

// New creates a generator driving the instrument over the given session. The
// session must already be open; closing it is the responsibility of the
// generator's Close method from then on.
func New(sess Session, opts ...Option) *Generator {
	g := Generator{
		sess:   sess,
		settle: DefaultSettleDelay,
		sleep:  time.Sleep,
	}

	// Apply options using the functional option pattern.
	for _, opt := range opts {
		opt(&g)
	}
	if g.debug {
		g.sess = &debugSession{Session: sess, logger: g.debugLogger()}
	}
	g.wait()
	return &g
}

// Close closes the session to the waveform generator. Only the first call
// reaches the session; later calls return nil.
func (g *Generator) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.logf("The device has been closed.")
	err := g.sess.Close()
	g.wait()
	return err
}

// Counter returns the frequency counter command group.
func (g *Generator) Counter() Counter { return Counter{sess: g.sess} }

// Coupling returns the channel coupling command group.
func (g *Generator) Coupling() Coupling { return Coupling{sess: g.sess} }

// Frequency returns the frequency and sweep command group.
func (g *Generator) Frequency() Frequency { return Frequency{sess: g.sess} }

// Trigger returns the trigger command group.
func (g *Generator) Trigger() Trigger { return Trigger{sess: g.sess} }

// Reset resets the instrument to its default settings.
func (g *Generator) Reset() error {
	return g.sess.Command("*RST")
}

// ClearErrors clears the status registers and the error queue.
func (g *Generator) ClearErrors() error {
	return g.sess.Command("*CLS")
}

// LastError asks the instrument for the oldest entry in its error queue and
// returns the response as received.
func (g *Generator) LastError() (string, error) {
	return g.sess.Query("SYSTem:ERRor?")
}

// Identify returns the instrument's identification string.
func (g *Generator) Identify() (string, error) {
	return g.sess.Query("*IDN?")
}

// Raw sends an arbitrary SCPI command. Commands ending in a question mark are
// sent as queries and their response returned; others return "".
func (g *Generator) Raw(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if strings.HasSuffix(cmd, "?") {
		return g.sess.Query(cmd)
	}
	return "", g.sess.Command(cmd)
}

func (g *Generator) wait() {
	if g.settle > 0 {
		g.sleep(g.settle)
	}
}

func (g *Generator) logf(format string, a ...any) {
	if g.logger != nil {
		g.logger.Printf(format, a...)
	}
}

func (g *Generator) debugLogger() *log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return log.Default()
}

// debugSession logs commands and queries before passing them on.
type debugSession struct {
	Session
	logger *log.Logger
}

func (d *debugSession) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	d.logger.Printf("cmd %q", cmd)
	return d.Session.Command(cmd)
}

func (d *debugSession) Query(cmd string) (string, error) {
	d.logger.Printf("query %q", cmd)
	s, err := d.Session.Query(cmd)
	if err == nil {
		d.logger.Printf("read data: %q", s)
	}
	return s, err
}

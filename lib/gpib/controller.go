// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package gpib provides a session to a GPIB instrument through a Prologix
// GPIB-USB controller, or an Arduino AR488 emulating one.
package gpib

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// DefaultReadTimeout is the Prologix read timeout configured on creation.
const DefaultReadTimeout = 500 * time.Millisecond

// Controller models a Prologix GPIB controller-in-charge addressing one
// instrument.
type Controller struct {
	rw               io.ReadWriter
	r                *bufio.Reader
	primaryAddr      int
	hasSecondaryAddr bool
	secondaryAddr    int
	auto             bool
	usbTerm          byte
	eotChar          byte
	readTimeout      time.Duration
	writeDelay       time.Duration
	debug            bool // if true, log controller commands before sending. Set via WithDebug().
	ar488            bool // compatibility with Arduino AR488. See WithAR488.
}

// ControllerOption applies an option to the controller.
type ControllerOption func(*Controller)

// NewController creates a GPIB controller-in-charge for the instrument at the
// given primary address, using rw to talk to the Prologix adapter (normally a
// serial port). Enable clear to send the Selected Device Clear (SDC) message
// to the instrument once configured.
func NewController(
	rw io.ReadWriter,
	addr int,
	clear bool,
	opts ...ControllerOption,
) (*Controller, error) {
	c := Controller{
		rw:          rw,
		r:           bufio.NewReader(rw),
		primaryAddr: addr,
		usbTerm:     '\n',
		eotChar:     '\n',
		readTimeout: DefaultReadTimeout,
	}

	for _, opt := range opts {
		opt(&c)
	}

	if !isPrimaryAddressValid(c.primaryAddr) {
		return nil, fmt.Errorf("invalid primary address %d (must be 0-30)", c.primaryAddr)
	}
	addrCmd := fmt.Sprintf("addr %d", c.primaryAddr)
	if c.hasSecondaryAddr {
		if !isSecondaryAddressValid(c.secondaryAddr) {
			return nil, fmt.Errorf("invalid secondary address %d (must be 96-126)", c.secondaryAddr)
		}
		addrCmd = fmt.Sprintf("addr %d %d", c.primaryAddr, c.secondaryAddr)
	}

	for _, cmd := range c.setupCommands(addrCmd, clear) {
		if err := c.CommandController(cmd); err != nil {
			return nil, fmt.Errorf("configuring controller with %q: %w", cmd, err)
		}
	}
	return &c, nil
}

func (c *Controller) setupCommands(addrCmd string, clear bool) []string {
	var cmds []string
	if !c.ar488 {
		cmds = append(cmds,
			"verbose 0", // turn off verbosity if on
			"savecfg 0", // don't save the following to EPROM
		)
	}
	cmds = append(cmds,
		addrCmd,
		"mode 1", // controller mode
		"auto 0", // no read-after-write
		"eoi 1",  // assert EOI with last character
		"eos 0",  // CR+LF GPIB termination
		fmt.Sprintf("read_tmo_ms %d", c.readTimeout.Milliseconds()),
		fmt.Sprintf("eot_char %d", c.eotChar),
		"eot_enable 1", // append eot_char when EOI detected
	)
	if !c.ar488 {
		cmds = append(cmds, "savecfg 1")
	}
	if clear {
		cmds = append(cmds, "clr")
	}
	return cmds
}

// WithSecondaryAddress sets a secondary address, which must be in the range of
// 96 and 126, inclusive.
func WithSecondaryAddress(addr int) ControllerOption {
	return func(c *Controller) {
		c.hasSecondaryAddr = true
		c.secondaryAddr = addr
	}
}

// WithReadTimeout sets the time the Prologix waits for the instrument when
// reading. The adapter accepts 1 to 3000 ms.
func WithReadTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) { c.readTimeout = d }
}

// WithWriteDelay pauses before every controller (++) command. Slow adapters
// such as the AR488 drop commands sent back to back.
func WithWriteDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.writeDelay = d }
}

// WithDebug causes commands and responses to be logged.
func WithDebug() ControllerOption { return func(c *Controller) { c.debug = true } }

// WithAR488 slightly alters the init commands, for compatibility with the
// Arduino-based AR488. Specifically, we do not emit 'verbose 0', nor do
// we toggle savecfg.
func WithAR488() ControllerOption { return func(c *Controller) { c.ar488 = true } }

// Command formats according to a format specifier if provided and sends a
// SCPI command to the instrument. Leading and trailing whitespace is removed
// before the USB terminator is appended.
func (c *Controller) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	cmd = fmt.Sprintf("%s%c", strings.TrimSpace(cmd), c.usbTerm)
	if c.debug {
		log.Printf("cmd %q", cmd)
	}
	_, err := io.WriteString(c.rw, cmd)
	return err
}

// Query sends the given SCPI query to the instrument and returns the response
// without the EOT character. When read-after-write is disabled the Prologix
// is told to read until EOI.
func (c *Controller) Query(cmd string) (string, error) {
	cmd = fmt.Sprintf("%s%c", strings.TrimSpace(cmd), c.usbTerm)
	if c.debug {
		log.Printf("query: %q", cmd)
	}
	if _, err := io.WriteString(c.rw, cmd); err != nil {
		return "", fmt.Errorf("error writing command: %w", err)
	}
	if !c.auto {
		if err := c.CommandController("read eoi"); err != nil {
			return "", fmt.Errorf("error sending `++read eoi` command: %w", err)
		}
	}
	return c.readLine()
}

// QueryController sends the given command to the Prologix controller and
// returns its response.
func (c *Controller) QueryController(cmd string) (string, error) {
	if err := c.CommandController(cmd); err != nil {
		return "", err
	}
	return c.readLine()
}

// CommandController sends the given command to the Prologix controller. Two
// plus signs are prepended, so the command is not transmitted over GPIB, and
// the USB terminator is appended.
func (c *Controller) CommandController(cmd string) error {
	cmd = fmt.Sprintf("++%s%c", strings.ToLower(strings.TrimSpace(cmd)), c.usbTerm)
	if c.writeDelay > 0 {
		time.Sleep(c.writeDelay)
	}
	if c.debug {
		log.Printf("cmd %q (%2x)", cmd, cmd)
	}
	_, err := io.WriteString(c.rw, cmd)
	return err
}

// FrontPanel returns the instrument to local (front panel) control when local
// is true, and sends it back to remote otherwise.
func (c *Controller) FrontPanel(local bool) error {
	if local {
		return c.CommandController("loc")
	}
	return c.CommandController("llo")
}

// Version returns the Prologix controller's version string.
func (c *Controller) Version() (string, error) {
	return c.QueryController("ver")
}

// Close returns the instrument to front panel control and closes the
// underlying port if it is an io.Closer.
func (c *Controller) Close() error {
	err := c.FrontPanel(true)
	if closer, ok := c.rw.(io.Closer); ok {
		err = multierr.Append(err, closer.Close())
	}
	return err
}

func (c *Controller) readLine() (string, error) {
	s, err := c.r.ReadString(c.eotChar)
	if c.debug {
		log.Printf("read data: %q", s)
	}
	if err == io.EOF && len(s) > 0 {
		err = nil
	}
	return strings.TrimRight(s, string([]byte{c.eotChar, '\r'})), err
}

// isPrimaryAddressValid checks that the primary GPIB address is between 0 and
// 30, inclusive.
func isPrimaryAddressValid(addr int) bool {
	return addr >= 0 && addr <= 30
}

// isSecondaryAddressValid checks that the secondary GPIB address is between 96
// and 126, inclusive.
func isSecondaryAddressValid(addr int) bool {
	return addr >= 96 && addr <= 126
}

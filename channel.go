// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import (
	"fmt"

	"github.com/gotmc/query"
)

// SetChannelState turns the output of the given channel on or off. The state
// is sent as is, normally "ON" or "OFF".
func (g *Generator) SetChannelState(ch Channel, state string) error {
	g.logf("Channel %d has been turned %s.", ch, state)
	err := g.sess.Command("OUTPut%d %s", ch, state)
	g.wait()
	return err
}

// ChannelState returns the output state of the given channel.
func (g *Generator) ChannelState(ch Channel) (string, error) {
	s, err := g.sess.Query(fmt.Sprintf("OUTPut%d:STATe?", ch))
	if err != nil {
		return "", err
	}
	g.logf("Output of channel %d is %s", ch, s)
	g.wait()
	return s, nil
}

// OutputEnabled reports whether the output of the given channel is on.
func (g *Generator) OutputEnabled(ch Channel) (bool, error) {
	return query.Boolf(g.sess, "OUTPut%d:STATe?", ch)
}

// SetChannelAmplitude sets the amplitude of the given channel in volts peak
// to peak.
func (g *Generator) SetChannelAmplitude(ch Channel, vpp float64) error {
	g.logf("The amplitude of channel %d has been set to %v Vpp.", ch, vpp)
	err := g.sess.Command("SOURce%d:VOLTAGE:AMPLITUDE %v", ch, vpp)
	g.wait()
	return err
}

// ChannelAmplitude returns the amplitude of the given channel in Vpp.
func (g *Generator) ChannelAmplitude(ch Channel) (string, error) {
	g.wait()
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:VOLTAGE:AMPLITUDE?", ch))
	if err != nil {
		return "", err
	}
	g.logf("The amplitude for channel %d is %s Vpp.", ch, s)
	return s, nil
}

// SetChannelFrequency sets the output frequency of the given channel in Hz.
func (g *Generator) SetChannelFrequency(ch Channel, hz float64) error {
	g.logf("The frequency of channel %d has been set to %v Hz.", ch, hz)
	return g.sess.Command("SOURce%d:FREQuency %v", ch, hz)
}

// ChannelFrequency returns the output frequency of the given channel in Hz.
func (g *Generator) ChannelFrequency(ch Channel) (string, error) {
	g.wait()
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:FREQuency?", ch))
	if err != nil {
		return "", err
	}
	g.logf("The frequency for channel %d is %s Hz.", ch, s)
	return s, nil
}

// SetChannelOffset sets the DC offset of the given channel in volts.
func (g *Generator) SetChannelOffset(ch Channel, volts float64) error {
	g.logf("Channel %d has been set to %v Vdc offset.", ch, volts)
	err := g.sess.Command("SOURce%d:VOLTAGE:OFFSET %v", ch, volts)
	g.wait()
	return err
}

// ChannelOffset returns the DC offset of the given channel in volts.
func (g *Generator) ChannelOffset(ch Channel) (string, error) {
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:VOLTAGE:OFFSET?", ch))
	if err != nil {
		return "", err
	}
	g.logf("Offset for channel %d is %s Vdc.", ch, s)
	g.wait()
	return s, nil
}

// SetPhase sets the start phase of the given channel in degrees and reads the
// applied value back from the instrument.
func (g *Generator) SetPhase(ch Channel, degrees float64) error {
	if err := g.sess.Command("SOURce%d:PHASe %v", ch, degrees); err != nil {
		return err
	}
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:PHASe?", ch))
	if err != nil {
		return err
	}
	g.logf("The phase of channel %d is set to %s degrees.", ch, s)
	g.wait()
	return nil
}

// Phase returns the phase of the given channel in degrees.
func (g *Generator) Phase(ch Channel) (string, error) {
	g.wait()
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:PHASesource?", ch))
	if err != nil {
		return "", err
	}
	g.logf("Phase of channel %d is %s degrees.", ch, s)
	return s, nil
}

// SetPhaseSyncState enables or disables phase synchronization of the given
// channel.
func (g *Generator) SetPhaseSyncState(ch Channel, state string) error {
	err := g.sess.Command("SOURce%d:PHASesource:SYNC %s", ch, state)
	g.wait()
	return err
}

// PhaseSyncState returns the phase synchronization state of the given
// channel.
func (g *Generator) PhaseSyncState(ch Channel) (string, error) {
	g.wait()
	return g.sess.Query(fmt.Sprintf("SOURce%d:PHASesource:SYNC?", ch))
}

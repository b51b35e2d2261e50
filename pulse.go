// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import "fmt"

// SetPulseWidth sets the pulse width of the given channel in seconds.
func (g *Generator) SetPulseWidth(ch Channel, width float64) error {
	return g.sess.Command("SOURce%d:PULSe:WIDTH %v", ch, width)
}

// PulseWidth returns the pulse width of the given channel.
func (g *Generator) PulseWidth(ch Channel) (string, error) {
	s, err := g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:WIDTH?", ch))
	if err != nil {
		return "", err
	}
	g.logf("Pulse width for channel %d is %s", ch, s)
	return s, nil
}

// SetPulsePeriod sets the pulse period of the given channel in seconds.
func (g *Generator) SetPulsePeriod(ch Channel, period float64) error {
	return g.sess.Command("SOURce%d:PULSe:PERiod %v", ch, period)
}

// PulsePeriod returns the pulse period of the given channel.
func (g *Generator) PulsePeriod(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:PERiod?", ch))
}

// SetPulseDelay sets the delay between the trigger and the start of the pulse
// for the given channel.
func (g *Generator) SetPulseDelay(ch Channel, delay float64) error {
	return g.sess.Command("SOURce%d:PULSe:DELay %v", ch, delay)
}

// PulseDelay returns the pulse delay of the given channel.
func (g *Generator) PulseDelay(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:DELay?", ch))
}

// SetPulseWidthModulationState enables or disables pulse width modulation.
func (g *Generator) SetPulseWidthModulationState(ch Channel, state string) error {
	return g.sess.Command("SOURce%d:PULSe:WMODulation %s", ch, state)
}

// PulseWidthModulationState returns the pulse width modulation state.
func (g *Generator) PulseWidthModulationState(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:WMODulation?", ch))
}

// SetPulseWidthModulationMode selects the modulation source, INTernal or
// EXTernal.
func (g *Generator) SetPulseWidthModulationMode(ch Channel, mode string) error {
	return g.sess.Command("SOURce%d:PULSe:WMODulation:MODE %s", ch, mode)
}

// PulseWidthModulationMode returns the modulation source.
func (g *Generator) PulseWidthModulationMode(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:WMODulation:MODE?", ch))
}

// SetPulseWidthModulationFrequency sets the modulating frequency in Hz.
func (g *Generator) SetPulseWidthModulationFrequency(ch Channel, hz float64) error {
	return g.sess.Command("SOURce%d:PULSe:WMODulation:FREQuency %v", ch, hz)
}

// PulseWidthModulationFrequency returns the modulating frequency.
func (g *Generator) PulseWidthModulationFrequency(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:WMODulation:FREQuency?", ch))
}

// SetPulseWidthModulationDepth sets the modulation depth.
func (g *Generator) SetPulseWidthModulationDepth(ch Channel, depth float64) error {
	return g.sess.Command("SOURce%d:PULSe:WMODulation:DEPTh %v", ch, depth)
}

// PulseWidthModulationDepth returns the modulation depth.
func (g *Generator) PulseWidthModulationDepth(ch Channel) (string, error) {
	return g.sess.Query(fmt.Sprintf("SOURce%d:PULSe:WMODulation:DEPTh?", ch))
}

// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import "fmt"

// Frequency groups the frequency and frequency sweep commands.
type Frequency struct {
	sess Session
}

// Set sets the output frequency of the given channel in Hz.
func (f Frequency) Set(ch Channel, hz float64) error {
	return f.sess.Command("SOURce%d:FREQuency %v", ch, hz)
}

// Get returns the output frequency of the given channel.
func (f Frequency) Get(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency?", ch))
}

// SetDeviation sets the frequency deviation of the given channel.
func (f Frequency) SetDeviation(ch Channel, deviation float64) error {
	return f.sess.Command("SOURce%d:FREQuency:DEViation %v", ch, deviation)
}

// Deviation returns the frequency deviation of the given channel.
func (f Frequency) Deviation(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:DEViation?", ch))
}

// SetResolution sets the frequency resolution of the given channel.
func (f Frequency) SetResolution(ch Channel, resolution float64) error {
	return f.sess.Command("SOURce%d:FREQuency:RESolution %v", ch, resolution)
}

// Resolution returns the frequency resolution of the given channel.
func (f Frequency) Resolution(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:RESolution?", ch))
}

// SetSweep configures a sweep from start to stop Hz lasting sweepTime seconds
// and turns it on. The four commands are sent in order and the first failure
// is returned; settings already applied are left in place.
func (f Frequency) SetSweep(ch Channel, start, stop, sweepTime float64) error {
	cmds := []struct {
		format string
		value  any
	}{
		{"SOURce%d:FREQuency:STARt %v", start},
		{"SOURce%d:FREQuency:STOP %v", stop},
		{"SOURce%d:FREQuency:SWEep:TIME %v", sweepTime},
		{"SOURce%d:FREQuency:SWEep:STATe %v", "ON"},
	}
	for _, cmd := range cmds {
		if err := f.sess.Command(cmd.format, ch, cmd.value); err != nil {
			return err
		}
	}
	return nil
}

// SweepState returns the sweep state of the given channel.
func (f Frequency) SweepState(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:SWEep:STATe?", ch))
}

// SetSweepTime sets the sweep time of the given channel in seconds.
func (f Frequency) SetSweepTime(ch Channel, seconds float64) error {
	return f.sess.Command("SOURce%d:FREQuency:SWEep:TIME %v", ch, seconds)
}

// SweepTime returns the sweep time of the given channel.
func (f Frequency) SweepTime(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:SWEep:TIME?", ch))
}

// SetSweepStart sets the sweep start frequency of the given channel.
func (f Frequency) SetSweepStart(ch Channel, hz float64) error {
	return f.sess.Command("SOURce%d:FREQuency:SWEep:STARt %v", ch, hz)
}

// SweepStart returns the sweep start frequency of the given channel.
func (f Frequency) SweepStart(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:SWEep:STARt?", ch))
}

// SetSweepStop sets the sweep stop frequency of the given channel.
func (f Frequency) SetSweepStop(ch Channel, hz float64) error {
	return f.sess.Command("SOURce%d:FREQuency:SWEep:STOP %v", ch, hz)
}

// SweepStop returns the sweep stop frequency of the given channel.
func (f Frequency) SweepStop(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:SWEep:STOP?", ch))
}

// SetSweepMode sets the sweep mode, LINear or LOGarithmic.
func (f Frequency) SetSweepMode(ch Channel, mode string) error {
	return f.sess.Command("SOURce%d:FREQuency:SWEep:MODE %s", ch, mode)
}

// SweepMode returns the sweep mode of the given channel.
func (f Frequency) SweepMode(ch Channel) (string, error) {
	return f.sess.Query(fmt.Sprintf("SOURce%d:FREQuency:SWEep:MODE?", ch))
}

// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import "fmt"

// Coupling groups the channel coupling commands.
type Coupling struct {
	sess Session
}

// SetAmplitudeDeviation sets the amplitude deviation applied between the
// coupled channels.
func (c Coupling) SetAmplitudeDeviation(ch Channel, deviation float64) error {
	return c.sess.Command("COUPLING:AMPLitude:DEViation %d, %v", ch, deviation)
}

// AmplitudeDeviation returns the amplitude coupling deviation.
func (c Coupling) AmplitudeDeviation(ch Channel) (string, error) {
	return c.sess.Query(fmt.Sprintf("COUPLING:AMPLitude:DEViation? %d", ch))
}

// SetAmplitudeState enables or disables amplitude coupling.
func (c Coupling) SetAmplitudeState(ch Channel, state string) error {
	return c.sess.Command("COUPLING:AMPLitude:STATe %d, %s", ch, state)
}

// AmplitudeState returns the amplitude coupling state.
func (c Coupling) AmplitudeState(ch Channel) (string, error) {
	return c.sess.Query(fmt.Sprintf("COUPLING:AMPLitude:STATe? %d", ch))
}

// SetPhaseState enables or disables phase coupling.
func (c Coupling) SetPhaseState(state string) error {
	return c.sess.Command("COUPLING:PHASesource:STATe %s", state)
}

// PhaseState returns the phase coupling state.
func (c Coupling) PhaseState() (string, error) {
	return c.sess.Query("COUPLING:PHASesource:STATe?")
}

// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

// Trigger groups the trigger commands.
type Trigger struct {
	sess Session
}

// SetSource sets the trigger source, INTernal or EXTernal.
func (t Trigger) SetSource(source string) error {
	return t.sess.Command("TRIGger:SOURce %s", source)
}

// Source returns the trigger source.
func (t Trigger) Source() (string, error) {
	return t.sess.Query("TRIGger:SOURce?")
}

// SetDelay sets the trigger delay in seconds.
func (t Trigger) SetDelay(delay float64) error {
	return t.sess.Command("TRIGger:DELay %v", delay)
}

// Delay returns the trigger delay.
func (t Trigger) Delay() (string, error) {
	return t.sess.Query("TRIGger:DELay?")
}

// SetSlope sets the trigger slope, POSitive or NEGative.
func (t Trigger) SetSlope(slope string) error {
	return t.sess.Command("TRIGger:SLOPe %s", slope)
}

// Slope returns the trigger slope.
func (t Trigger) Slope() (string, error) {
	return t.sess.Query("TRIGger:SLOPe?")
}

// SetLevel sets the trigger level in volts.
func (t Trigger) SetLevel(level float64) error {
	return t.sess.Command("TRIGger:LEVel %v", level)
}

// Level returns the trigger level.
func (t Trigger) Level() (string, error) {
	return t.sess.Query("TRIGger:LEVel?")
}

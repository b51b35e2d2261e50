// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

// Counter groups the frequency counter commands. The counter settings are
// global to the instrument rather than per channel.
type Counter struct {
	sess Session
}

// SetState enables or disables the frequency counter.
func (c Counter) SetState(state string) error {
	return c.sess.Command("COUNTER:STATE %s", state)
}

// State returns the state of the frequency counter.
func (c Counter) State() (string, error) {
	return c.sess.Query("COUNTER:STATE?")
}

// SetCoupling sets the input coupling, AC or DC.
func (c Counter) SetCoupling(coupling string) error {
	return c.sess.Command("COUNTER:COUPLING %s", coupling)
}

// Coupling returns the input coupling.
func (c Counter) Coupling() (string, error) {
	return c.sess.Query("COUNTER:COUPLING?")
}

// SetGateTime sets the gate time.
func (c Counter) SetGateTime(gateTime string) error {
	return c.sess.Command("COUNTER:GATEtime %s", gateTime)
}

// GateTime returns the gate time.
func (c Counter) GateTime() (string, error) {
	return c.sess.Query("COUNTER:GATEtime?")
}

// SetHighFrequency enables or disables the high-frequency rejection filter.
func (c Counter) SetHighFrequency(state string) error {
	return c.sess.Command("COUNTER:HF %s", state)
}

// HighFrequency returns the high-frequency rejection state.
func (c Counter) HighFrequency() (string, error) {
	return c.sess.Query("COUNTER:HF?")
}

// SetLevel sets the trigger level in volts.
func (c Counter) SetLevel(volts float64) error {
	return c.sess.Command("COUNTER:LEVEL %v", volts)
}

// Level returns the trigger level.
func (c Counter) Level() (string, error) {
	return c.sess.Query("COUNTER:LEVEL?")
}

// Measure returns the latest counter measurement.
func (c Counter) Measure() (string, error) {
	return c.sess.Query("COUNTER:MEASURE?")
}

// SetSensitivity sets the trigger sensitivity in percent.
func (c Counter) SetSensitivity(percent float64) error {
	return c.sess.Command("COUNTER:SENSITIVE %v", percent)
}

// Sensitivity returns the trigger sensitivity.
func (c Counter) Sensitivity() (string, error) {
	return c.sess.Query("COUNTER:SENSITIVE?")
}

// ClearStatistics clears the counter statistics.
func (c Counter) ClearStatistics() error {
	return c.sess.Command("COUNTER:STATISTICS:CLEAR")
}

// SetStatisticsState enables or disables the counter statistics.
func (c Counter) SetStatisticsState(state string) error {
	return c.sess.Command("COUNTER:STATISTICS:STATE %s", state)
}

// StatisticsState returns the counter statistics state.
func (c Counter) StatisticsState() (string, error) {
	return c.sess.Query("COUNTER:STATISTICS:STATE?")
}

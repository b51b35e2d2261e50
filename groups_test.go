// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSweep(t *testing.T) {
	g, sess := newTestGenerator(nil)
	require.NoError(t, g.Frequency().SetSweep(Channel1, 100, 1000, 2))
	assert.Equal(t, []string{
		"SOURce1:FREQuency:STARt 100",
		"SOURce1:FREQuency:STOP 1000",
		"SOURce1:FREQuency:SWEep:TIME 2",
		"SOURce1:FREQuency:SWEep:STATe ON",
	}, sess.Sent())
}

func TestSetSweepStopsAtFirstFailure(t *testing.T) {
	failure := errors.New("device not responding")
	g, sess := newTestGenerator(nil)
	sess.FailAfter(2, failure)
	err := g.Frequency().SetSweep(Channel2, 20, 20000, 0.5)
	assert.Same(t, failure, err)
	assert.Equal(t, []string{
		"SOURce2:FREQuency:STARt 20",
		"SOURce2:FREQuency:STOP 20000",
	}, sess.Sent())
}

func TestGroupCommands(t *testing.T) {
	g, sess := newTestGenerator(nil)
	counter, coupling, freq, trig := g.Counter(), g.Coupling(), g.Frequency(), g.Trigger()
	tt := []struct {
		call     func() error
		expected string
	}{
		{func() error { return counter.SetState("ON") }, "COUNTER:STATE ON"},
		{func() error { return counter.SetCoupling("AC") }, "COUNTER:COUPLING AC"},
		{func() error { return counter.SetGateTime("USER1") }, "COUNTER:GATEtime USER1"},
		{func() error { return counter.SetHighFrequency("OFF") }, "COUNTER:HF OFF"},
		{func() error { return counter.SetLevel(0.25) }, "COUNTER:LEVEL 0.25"},
		{func() error { return counter.SetSensitivity(50) }, "COUNTER:SENSITIVE 50"},
		{counter.ClearStatistics, "COUNTER:STATISTICS:CLEAR"},
		{func() error { return counter.SetStatisticsState("ON") }, "COUNTER:STATISTICS:STATE ON"},
		{func() error { return coupling.SetAmplitudeDeviation(Channel1, 1.5) }, "COUPLING:AMPLitude:DEViation 1, 1.5"},
		{func() error { return coupling.SetAmplitudeState(Channel2, "ON") }, "COUPLING:AMPLitude:STATe 2, ON"},
		{func() error { return coupling.SetPhaseState("OFF") }, "COUPLING:PHASesource:STATe OFF"},
		{func() error { return freq.Set(Channel1, 4) }, "SOURce1:FREQuency 4"},
		{func() error { return freq.SetDeviation(Channel2, 100) }, "SOURce2:FREQuency:DEViation 100"},
		{func() error { return freq.SetResolution(Channel1, 0.01) }, "SOURce1:FREQuency:RESolution 0.01"},
		{func() error { return freq.SetSweepTime(Channel1, 3) }, "SOURce1:FREQuency:SWEep:TIME 3"},
		{func() error { return freq.SetSweepStart(Channel2, 10) }, "SOURce2:FREQuency:SWEep:STARt 10"},
		{func() error { return freq.SetSweepStop(Channel2, 10000) }, "SOURce2:FREQuency:SWEep:STOP 10000"},
		{func() error { return freq.SetSweepMode(Channel1, "LOGarithmic") }, "SOURce1:FREQuency:SWEep:MODE LOGarithmic"},
		{func() error { return trig.SetSource("EXTernal") }, "TRIGger:SOURce EXTernal"},
		{func() error { return trig.SetDelay(0.001) }, "TRIGger:DELay 0.001"},
		{func() error { return trig.SetSlope("NEGative") }, "TRIGger:SLOPe NEGative"},
		{func() error { return trig.SetLevel(1.2) }, "TRIGger:LEVel 1.2"},
	}
	for _, tc := range tt {
		t.Run(tc.expected, func(t *testing.T) {
			sess.Reset()
			require.NoError(t, tc.call())
			assert.Equal(t, []string{tc.expected}, sess.Sent())
		})
	}
}

func TestGroupQueries(t *testing.T) {
	g, sess := newTestGenerator(nil)
	sess.Default = "canned"
	counter, coupling, freq, trig := g.Counter(), g.Coupling(), g.Frequency(), g.Trigger()
	tt := []struct {
		call     func() (string, error)
		expected string
	}{
		{counter.State, "COUNTER:STATE?"},
		{counter.Coupling, "COUNTER:COUPLING?"},
		{counter.GateTime, "COUNTER:GATEtime?"},
		{counter.HighFrequency, "COUNTER:HF?"},
		{counter.Level, "COUNTER:LEVEL?"},
		{counter.Measure, "COUNTER:MEASURE?"},
		{counter.Sensitivity, "COUNTER:SENSITIVE?"},
		{counter.StatisticsState, "COUNTER:STATISTICS:STATE?"},
		{func() (string, error) { return coupling.AmplitudeDeviation(Channel2) }, "COUPLING:AMPLitude:DEViation? 2"},
		{func() (string, error) { return coupling.AmplitudeState(Channel1) }, "COUPLING:AMPLitude:STATe? 1"},
		{coupling.PhaseState, "COUPLING:PHASesource:STATe?"},
		{func() (string, error) { return freq.Get(Channel1) }, "SOURce1:FREQuency?"},
		{func() (string, error) { return freq.Deviation(Channel1) }, "SOURce1:FREQuency:DEViation?"},
		{func() (string, error) { return freq.Resolution(Channel2) }, "SOURce2:FREQuency:RESolution?"},
		{func() (string, error) { return freq.SweepState(Channel1) }, "SOURce1:FREQuency:SWEep:STATe?"},
		{func() (string, error) { return freq.SweepTime(Channel1) }, "SOURce1:FREQuency:SWEep:TIME?"},
		{func() (string, error) { return freq.SweepStart(Channel2) }, "SOURce2:FREQuency:SWEep:STARt?"},
		{func() (string, error) { return freq.SweepStop(Channel2) }, "SOURce2:FREQuency:SWEep:STOP?"},
		{func() (string, error) { return freq.SweepMode(Channel1) }, "SOURce1:FREQuency:SWEep:MODE?"},
		{trig.Source, "TRIGger:SOURce?"},
		{trig.Delay, "TRIGger:DELay?"},
		{trig.Slope, "TRIGger:SLOPe?"},
		{trig.Level, "TRIGger:LEVel?"},
	}
	for _, tc := range tt {
		t.Run(tc.expected, func(t *testing.T) {
			sess.Reset()
			actual, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, "canned", actual)
			assert.Equal(t, []string{tc.expected}, sess.Sent())
		})
	}
}

func TestGroupsShareSession(t *testing.T) {
	g, sess := newTestGenerator(nil)
	require.NoError(t, g.Counter().SetState("ON"))
	require.NoError(t, g.Trigger().SetSource("INTernal"))
	require.NoError(t, g.Close())
	assert.Equal(t, 1, sess.CloseCount())
	assert.Error(t, g.Coupling().SetPhaseState("ON"))
}

func TestPulseQueries(t *testing.T) {
	g, sess := newTestGenerator(nil)
	sess.Default = "1"
	tt := []struct {
		call     func(Channel) (string, error)
		expected string
	}{
		{g.PulsePeriod, "SOURce2:PULSe:PERiod?"},
		{g.PulseDelay, "SOURce2:PULSe:DELay?"},
		{g.PulseWidthModulationState, "SOURce2:PULSe:WMODulation?"},
		{g.PulseWidthModulationFrequency, "SOURce2:PULSe:WMODulation:FREQuency?"},
		{g.PulseWidthModulationDepth, "SOURce2:PULSe:WMODulation:DEPTh?"},
	}
	for _, tc := range tt {
		sess.Reset()
		actual, err := tc.call(Channel2)
		require.NoError(t, err)
		assert.Equal(t, "1", actual)
		assert.Equal(t, []string{tc.expected}, sess.Sent())
	}
}

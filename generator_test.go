// Copyright (c) 2024 The dg800 developers. All rights reserved.
// Project site: https://github.com/gotmc/dg800
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package dg800

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotmc/dg800/lib/sim"
)

func newTestGenerator(responses map[string]string, opts ...Option) (*Generator, *sim.Session) {
	sess := sim.New(responses)
	opts = append([]Option{WithSettleDelay(0)}, opts...)
	return New(sess, opts...), sess
}

func TestSetChannelState(t *testing.T) {
	for _, ch := range []Channel{Channel1, Channel2} {
		for _, state := range []string{"ON", "OFF"} {
			t.Run(fmt.Sprintf("%d_%s", ch, state), func(t *testing.T) {
				g, sess := newTestGenerator(nil)
				require.NoError(t, g.SetChannelState(ch, state))
				assert.Equal(t, []string{fmt.Sprintf("OUTPut%d %s", ch, state)}, sess.Sent())
			})
		}
	}
}

func TestSetChannelAmplitude(t *testing.T) {
	tt := []struct {
		ch       Channel
		vpp      float64
		expected string
	}{
		{Channel1, 2.5, "SOURce1:VOLTAGE:AMPLITUDE 2.5"},
		{Channel2, 10, "SOURce2:VOLTAGE:AMPLITUDE 10"},
		{Channel1, 0.001, "SOURce1:VOLTAGE:AMPLITUDE 0.001"},
	}
	for _, tc := range tt {
		t.Run(tc.expected, func(t *testing.T) {
			g, sess := newTestGenerator(nil)
			require.NoError(t, g.SetChannelAmplitude(tc.ch, tc.vpp))
			assert.Equal(t, tc.expected, sess.Last())
		})
	}
}

func TestChannelCommands(t *testing.T) {
	g, sess := newTestGenerator(nil)
	tt := []struct {
		name     string
		call     func() error
		expected string
	}{
		{"frequency", func() error { return g.SetChannelFrequency(Channel2, 1000) }, "SOURce2:FREQuency 1000"},
		{"offset", func() error { return g.SetChannelOffset(Channel1, -0.5) }, "SOURce1:VOLTAGE:OFFSET -0.5"},
		{"phase sync", func() error { return g.SetPhaseSyncState(Channel1, "ON") }, "SOURce1:PHASesource:SYNC ON"},
		{"pulse width", func() error { return g.SetPulseWidth(Channel1, 0.0002) }, "SOURce1:PULSe:WIDTH 0.0002"},
		{"pulse period", func() error { return g.SetPulsePeriod(Channel2, 0.001) }, "SOURce2:PULSe:PERiod 0.001"},
		{"pulse delay", func() error { return g.SetPulseDelay(Channel1, 0.5) }, "SOURce1:PULSe:DELay 0.5"},
		{"pwm state", func() error { return g.SetPulseWidthModulationState(Channel1, "ON") }, "SOURce1:PULSe:WMODulation ON"},
		{"pwm mode", func() error { return g.SetPulseWidthModulationMode(Channel2, "EXTernal") }, "SOURce2:PULSe:WMODulation:MODE EXTernal"},
		{"pwm frequency", func() error { return g.SetPulseWidthModulationFrequency(Channel1, 100) }, "SOURce1:PULSe:WMODulation:FREQuency 100"},
		{"pwm depth", func() error { return g.SetPulseWidthModulationDepth(Channel1, 20) }, "SOURce1:PULSe:WMODulation:DEPTh 20"},
		{"reset", g.Reset, "*RST"},
		{"clear errors", g.ClearErrors, "*CLS"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			sess.Reset()
			require.NoError(t, tc.call())
			assert.Equal(t, []string{tc.expected}, sess.Sent())
		})
	}
}

func TestChannelQueries(t *testing.T) {
	responses := map[string]string{
		"OUTPut1:STATe?":                  "ON",
		"SOURce2:VOLTAGE:AMPLITUDE?":      "5.000000E+00",
		"SOURce1:FREQuency?":              "1.000000E+03",
		"SOURce1:VOLTAGE:OFFSET?":         "0.000000E+00",
		"SOURce2:PHASesource?":            "90",
		"SOURce1:PHASesource:SYNC?":       "OFF",
		"SOURce1:PULSe:WIDTH?":            "2.000000E-04",
		"SOURce2:PULSe:WMODulation:MODE?": "INT",
		"SYSTem:ERRor?":                   `-113,"Undefined header"`,
		"*IDN?":                           "Rigol Technologies,DG832,DG8A220800213,00.02.03",
	}
	g, sess := newTestGenerator(responses)
	tt := []struct {
		query string
		call  func() (string, error)
	}{
		{"OUTPut1:STATe?", func() (string, error) { return g.ChannelState(Channel1) }},
		{"SOURce2:VOLTAGE:AMPLITUDE?", func() (string, error) { return g.ChannelAmplitude(Channel2) }},
		{"SOURce1:FREQuency?", func() (string, error) { return g.ChannelFrequency(Channel1) }},
		{"SOURce1:VOLTAGE:OFFSET?", func() (string, error) { return g.ChannelOffset(Channel1) }},
		{"SOURce2:PHASesource?", func() (string, error) { return g.Phase(Channel2) }},
		{"SOURce1:PHASesource:SYNC?", func() (string, error) { return g.PhaseSyncState(Channel1) }},
		{"SOURce1:PULSe:WIDTH?", func() (string, error) { return g.PulseWidth(Channel1) }},
		{"SOURce2:PULSe:WMODulation:MODE?", func() (string, error) { return g.PulseWidthModulationMode(Channel2) }},
		{"SYSTem:ERRor?", g.LastError},
		{"*IDN?", g.Identify},
	}
	for _, tc := range tt {
		t.Run(tc.query, func(t *testing.T) {
			sess.Reset()
			actual, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, responses[tc.query], actual)
			assert.Equal(t, []string{tc.query}, sess.Sent())
		})
	}
}

func TestSetPhaseReadsBack(t *testing.T) {
	var buf bytes.Buffer
	g, sess := newTestGenerator(map[string]string{"SOURce1:PHASe?": "45"}, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, g.SetPhase(Channel1, 45))
	assert.Equal(t, []string{"SOURce1:PHASe 45", "SOURce1:PHASe?"}, sess.Sent())
	assert.Contains(t, buf.String(), "The phase of channel 1 is set to 45 degrees.")
}

func TestOutputEnabled(t *testing.T) {
	g, _ := newTestGenerator(map[string]string{"OUTPut2:STATe?": "1"})
	on, err := g.OutputEnabled(Channel2)
	require.NoError(t, err)
	assert.True(t, on)
}

func TestErrorsPassThrough(t *testing.T) {
	failure := errors.New("read timeout")
	g, sess := newTestGenerator(nil)
	sess.FailAfter(0, failure)
	assert.Same(t, failure, g.SetChannelState(Channel1, "ON"))
	_, err := g.ChannelAmplitude(Channel1)
	assert.Same(t, failure, err)
	_, err = g.LastError()
	assert.Same(t, failure, err)
}

func TestCloseOnce(t *testing.T) {
	g, sess := newTestGenerator(nil)
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
	assert.Equal(t, 1, sess.CloseCount())
}

func TestSettleDelay(t *testing.T) {
	var slept []time.Duration
	sess := sim.New(nil)
	g := New(sess, WithSettleDelay(250*time.Millisecond), func(g *Generator) {
		g.sleep = func(d time.Duration) { slept = append(slept, d) }
	})
	require.NoError(t, g.SetChannelState(Channel1, "ON"))
	require.NoError(t, g.SetChannelFrequency(Channel1, 10))
	require.NoError(t, g.Reset())
	// once after construction, once after the output change
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, slept)
}

func TestDebugLogsCommands(t *testing.T) {
	var buf bytes.Buffer
	g, sess := newTestGenerator(map[string]string{"*IDN?": "DG832"}, WithLogger(log.New(&buf, "", 0)), WithDebug())
	require.NoError(t, g.SetChannelOffset(Channel2, 1.5))
	_, err := g.Identify()
	require.NoError(t, err)
	assert.Equal(t, []string{"SOURce2:VOLTAGE:OFFSET 1.5", "*IDN?"}, sess.Sent())
	out := buf.String()
	assert.Contains(t, out, `cmd "SOURce2:VOLTAGE:OFFSET 1.5"`)
	assert.Contains(t, out, `query "*IDN?"`)
	assert.Contains(t, out, `read data: "DG832"`)
}

func TestRaw(t *testing.T) {
	g, sess := newTestGenerator(map[string]string{"SOURce1:APPLy?": `"SIN,1000,5,0,0"`})
	resp, err := g.Raw("SOURce1:APPLy:SQUare 1000,5,0,0 ")
	require.NoError(t, err)
	assert.Empty(t, resp)
	resp, err = g.Raw("SOURce1:APPLy?")
	require.NoError(t, err)
	assert.Equal(t, `"SIN,1000,5,0,0"`, resp)
	assert.Equal(t, []string{"SOURce1:APPLy:SQUare 1000,5,0,0", "SOURce1:APPLy?"}, sess.Sent())
}

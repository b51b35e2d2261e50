// Package profile loads generator setups from YAML files and applies them.
//
// A profile looks like:
//
//	reset: true
//	channels:
//	  - channel: 1
//	    frequency: 1000
//	    amplitude: 2.5
//	    offset: 0
//	    output: "ON"
//	    sweep: {start: 100, stop: 1000, time: 2, mode: LINear}
//	counter: {state: "ON", coupling: AC}
//	trigger: {source: INTernal, slope: POSitive}
//
// Settings left out of the file are not sent.
package profile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gotmc/dg800"
)

// Profile is a complete generator setup.
type Profile struct {
	Reset    bool      `yaml:"reset,omitempty"`
	Channels []Channel `yaml:"channels,omitempty"`
	Counter  *Counter  `yaml:"counter,omitempty"`
	Trigger  *Trigger  `yaml:"trigger,omitempty"`
}

// Channel holds the settings of one output.
type Channel struct {
	Channel   dg800.Channel `yaml:"channel"`
	Frequency *float64      `yaml:"frequency,omitempty"`
	Amplitude *float64      `yaml:"amplitude,omitempty"`
	Offset    *float64      `yaml:"offset,omitempty"`
	Phase     *float64      `yaml:"phase,omitempty"`
	Sweep     *Sweep        `yaml:"sweep,omitempty"`
	Output    string        `yaml:"output,omitempty"`
}

// Sweep configures a frequency sweep.
type Sweep struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop"`
	Time  float64 `yaml:"time"`
	Mode  string  `yaml:"mode,omitempty"`
}

// Counter holds the frequency counter settings.
type Counter struct {
	State    string   `yaml:"state,omitempty"`
	Coupling string   `yaml:"coupling,omitempty"`
	GateTime string   `yaml:"gate_time,omitempty"`
	Level    *float64 `yaml:"level,omitempty"`
}

// Trigger holds the trigger settings.
type Trigger struct {
	Source string   `yaml:"source,omitempty"`
	Delay  *float64 `yaml:"delay,omitempty"`
	Slope  string   `yaml:"slope,omitempty"`
	Level  *float64 `yaml:"level,omitempty"`
}

// Load decodes a profile. Unknown keys are rejected.
func Load(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	for i, ch := range p.Channels {
		if ch.Channel == 0 {
			return nil, fmt.Errorf("channels[%d]: channel is required", i)
		}
	}
	return &p, nil
}

// LoadFile reads the profile in the named file.
func LoadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Apply sends the profile to the generator: the reset first, then each
// channel in file order with its output switched last, then the counter and
// the trigger. It stops at the first failing command.
func (p *Profile) Apply(g *dg800.Generator) error {
	if p.Reset {
		if err := g.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	for _, ch := range p.Channels {
		if err := ch.apply(g); err != nil {
			return fmt.Errorf("channel %d: %w", ch.Channel, err)
		}
	}
	if p.Counter != nil {
		if err := p.Counter.apply(g.Counter()); err != nil {
			return fmt.Errorf("counter: %w", err)
		}
	}
	if p.Trigger != nil {
		if err := p.Trigger.apply(g.Trigger()); err != nil {
			return fmt.Errorf("trigger: %w", err)
		}
	}
	return nil
}

// step runs fn unless skip is set.
type step struct {
	skip bool
	fn   func() error
}

func run(steps []step) error {
	for _, s := range steps {
		if s.skip {
			continue
		}
		if err := s.fn(); err != nil {
			return err
		}
	}
	return nil
}

func (c Channel) apply(g *dg800.Generator) error {
	ch := c.Channel
	return run([]step{
		{c.Frequency == nil, func() error { return g.SetChannelFrequency(ch, *c.Frequency) }},
		{c.Amplitude == nil, func() error { return g.SetChannelAmplitude(ch, *c.Amplitude) }},
		{c.Offset == nil, func() error { return g.SetChannelOffset(ch, *c.Offset) }},
		{c.Phase == nil, func() error { return g.SetPhase(ch, *c.Phase) }},
		{c.Sweep == nil || c.Sweep.Mode == "", func() error { return g.Frequency().SetSweepMode(ch, c.Sweep.Mode) }},
		{c.Sweep == nil, func() error {
			return g.Frequency().SetSweep(ch, c.Sweep.Start, c.Sweep.Stop, c.Sweep.Time)
		}},
		{c.Output == "", func() error { return g.SetChannelState(ch, c.Output) }},
	})
}

func (c *Counter) apply(counter dg800.Counter) error {
	return run([]step{
		{c.Coupling == "", func() error { return counter.SetCoupling(c.Coupling) }},
		{c.GateTime == "", func() error { return counter.SetGateTime(c.GateTime) }},
		{c.Level == nil, func() error { return counter.SetLevel(*c.Level) }},
		{c.State == "", func() error { return counter.SetState(c.State) }},
	})
}

func (t *Trigger) apply(trig dg800.Trigger) error {
	return run([]step{
		{t.Source == "", func() error { return trig.SetSource(t.Source) }},
		{t.Delay == nil, func() error { return trig.SetDelay(*t.Delay) }},
		{t.Slope == "", func() error { return trig.SetSlope(t.Slope) }},
		{t.Level == nil, func() error { return trig.SetLevel(*t.Level) }},
	})
}

// Package sim provides an in-memory instrument session that records every
// command it is sent and answers queries from canned responses. It stands in
// for a real waveform generator in tests and dry runs.
package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned for commands sent after Close.
var ErrClosed = errors.New("sim: session closed")

// Session is a simulated instrument session.
type Session struct {
	// Responses maps a query, as sent, to the response returned for it.
	Responses map[string]string
	// Default is returned for queries missing from Responses.
	Default string

	sent       []string
	failAfter  int
	failErr    error
	closeCount int
}

// New returns a session answering queries from the given responses.
func New(responses map[string]string) *Session {
	if responses == nil {
		responses = map[string]string{}
	}
	return &Session{Responses: responses, failAfter: -1}
}

// FailAfter makes every command or query after the first n fail with err.
func (s *Session) FailAfter(n int, err error) {
	s.failAfter = n
	s.failErr = err
}

// Command formats according to a format specifier if arguments are provided
// and records the resulting command.
func (s *Session) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	return s.record(cmd)
}

// Query records the query and returns the canned response for it.
func (s *Session) Query(cmd string) (string, error) {
	if err := s.record(cmd); err != nil {
		return "", err
	}
	if r, ok := s.Responses[cmd]; ok {
		return r, nil
	}
	return s.Default, nil
}

// Close records the close. It may be called any number of times; CloseCount
// reports how often it was.
func (s *Session) Close() error {
	s.closeCount++
	return nil
}

// Sent returns the commands and queries received so far, in order.
func (s *Session) Sent() []string {
	return append([]string(nil), s.sent...)
}

// Last returns the most recent command or query, or "" if none was sent.
func (s *Session) Last() string {
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1]
}

// Reset forgets the recorded commands.
func (s *Session) Reset() { s.sent = s.sent[:0] }

// CloseCount returns the number of times Close was called.
func (s *Session) CloseCount() int { return s.closeCount }

// String lists the recorded commands, one per line.
func (s *Session) String() string { return strings.Join(s.sent, "\n") }

func (s *Session) record(cmd string) error {
	if s.closeCount > 0 {
		return ErrClosed
	}
	if s.failAfter >= 0 && len(s.sent) >= s.failAfter {
		return s.failErr
	}
	s.sent = append(s.sent, strings.TrimSpace(cmd))
	return nil
}

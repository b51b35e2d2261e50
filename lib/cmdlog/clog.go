// Package cmdlog wraps a session so that every command and response is
// logged with terminal colors.
package cmdlog

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gotmc/dg800"
)

func isASCII(s string) bool {
	return !strings.ContainsFunc(s, func(r rune) bool {
		switch {
		case r < 7:
			return true
		case r > 6 && r < 14:
			return false
		case r > 13 && r < 32:
			return true
		case r > 127:
			return true
		}
		return false
	})
}

var (
	CmdStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	ReplyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	ErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Session logs traffic to and from the wrapped session.
type Session struct {
	dg800.Session
	logger *log.Logger
}

// Wrap returns a logging session around sess. A nil logger uses the standard
// logger.
func Wrap(sess dg800.Session, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{Session: sess, logger: logger}
}

// Command logs and forwards the command.
func (s *Session) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	if err := s.Session.Command(cmd); err != nil {
		s.logger.Printf("cmd %s: %s", CmdStyle.Render(cmd), ErrStyle.Render(err.Error()))
		return err
	}
	s.logger.Printf("%s", CmdStyle.Render(cmd))
	return nil
}

// Query logs the query and its response.
func (s *Session) Query(q string) (string, error) {
	a, err := s.Session.Query(q)
	styled := CmdStyle.Render(q)
	if err != nil {
		s.logger.Printf("query %s: %s", styled, ErrStyle.Render(err.Error()))
		return a, err
	}
	switch {
	case len(a) == 0:
		s.logger.Printf("%s: %s", styled, ReplyStyle.Render("<no response>"))
	case isASCII(a):
		s.logger.Printf("%s: [%d] %s", styled, len(a), ReplyStyle.Render(fmt.Sprintf("%q", a)))
	case len(a) < 32:
		s.logger.Printf("%s: [%d] %q (% 2x)", styled, len(a), a, []byte(a))
	default:
		s.logger.Printf("%s: [%d] % 2x", styled, len(a), []byte(a))
	}
	return a, nil
}

// Package socket provides a session to a LAN instrument speaking raw SCPI over
// TCP, as the DG800 series does on port 5555.
package socket

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultPort is the Rigol raw SCPI socket port.
const DefaultPort = 5555

// Conn is a raw SCPI socket session.
type Conn struct {
	conn    net.Conn
	r       *bufio.Reader
	timeout time.Duration
}

// Option applies an option to the connection.
type Option func(*Conn)

// WithTimeout bounds every write and every read. Zero disables deadlines.
func WithTimeout(d time.Duration) Option {
	return func(c *Conn) { c.timeout = d }
}

// Dial connects to the instrument at addr (host:port). The context bounds
// the connect phase only.
func Dial(ctx context.Context, addr string, opts ...Option) (*Conn, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", addr, err)
	}
	c := &Conn{
		conn:    nc,
		r:       bufio.NewReader(nc),
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Command formats according to a format specifier if provided and writes the
// newline terminated command.
func (c *Conn) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	return c.writeLine(cmd)
}

// Query writes the query and reads one response line.
func (c *Conn) Query(cmd string) (string, error) {
	if err := c.writeLine(cmd); err != nil {
		return "", err
	}
	if c.timeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return "", err
		}
	}
	s, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Close closes the TCP connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) writeLine(cmd string) error {
	if c.timeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(c.conn, "%s\n", strings.TrimSpace(cmd))
	return err
}

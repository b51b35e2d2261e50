// Package usbtmc provides a session to a USB instrument through the Linux
// usbtmc kernel driver, which exposes each instrument as /dev/usbtmcN.
package usbtmc

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// maxResponse is the largest response read for a single query.
const maxResponse = 64 * 1024

// Device is an open usbtmc character device.
type Device struct {
	rw   io.ReadWriteCloser
	path string
}

// Open opens the usbtmc device at path, for example /dev/usbtmc0.
func Open(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("opening usbtmc device: %w", err)
	}
	return &Device{rw: f, path: path}, nil
}

// Command formats according to a format specifier if provided and writes the
// command as one USBTMC transfer.
func (d *Device) Command(format string, a ...any) error {
	cmd := format
	if a != nil {
		cmd = fmt.Sprintf(format, a...)
	}
	_, err := io.WriteString(d.rw, strings.TrimSpace(cmd)+"\n")
	return err
}

// Query writes the query and returns one response transfer. The kernel driver
// returns a complete message per read.
func (d *Device) Query(cmd string) (string, error) {
	if err := d.Command(cmd); err != nil {
		return "", err
	}
	buf := make([]byte, maxResponse)
	n, err := d.rw.Read(buf)
	if err != nil && !(err == io.EOF && n > 0) {
		return "", fmt.Errorf("reading %s: %w", d.path, err)
	}
	return strings.TrimRight(string(buf[:n]), "\r\n"), nil
}

// Close closes the device.
func (d *Device) Close() error {
	return d.rw.Close()
}

// String returns the device path.
func (d *Device) String() string { return d.path }

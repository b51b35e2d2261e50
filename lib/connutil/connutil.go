// Package connutil resolves VISA style resource strings, such as
// "TCPIP0::192.168.1.20::5555::SOCKET" or "GPIB0::10::INSTR", and opens the
// matching session.
package connutil

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.uber.org/multierr"

	"github.com/gotmc/dg800"
	"github.com/gotmc/dg800/lib/find"
	"github.com/gotmc/dg800/lib/gpib"
	"github.com/gotmc/dg800/lib/sim"
	"github.com/gotmc/dg800/lib/socket"
	"github.com/gotmc/dg800/lib/usbtmc"
)

// ErrUnsupportedResource is returned for resource strings naming an interface
// that cannot be opened.
var ErrUnsupportedResource = errors.New("unsupported resource")

// Interface types.
const (
	TCPIP = "TCPIP"
	GPIB  = "GPIB"
	USB   = "USB"
	SIM   = "SIM"
)

// Resource is a parsed resource string.
type Resource struct {
	Interface string // TCPIP, GPIB, USB or SIM
	Board     int
	Host      string // TCPIP
	Port      int    // TCPIP
	Primary   int    // GPIB
	Secondary int    // GPIB; -1 when absent
	VendorID  string // USB
	ProductID string // USB
	Serial    string // USB
}

// ParseResource parses a resource string. Interface names and the INSTR and
// SOCKET suffixes are case insensitive.
func ParseResource(s string) (Resource, error) {
	parts := strings.Split(strings.TrimSpace(s), "::")
	if len(parts) < 2 {
		return Resource{}, fmt.Errorf("%w %q", ErrUnsupportedResource, s)
	}
	iface, board, err := splitBoard(parts[0])
	if err != nil {
		return Resource{}, fmt.Errorf("%q: %w", s, err)
	}
	r := Resource{Interface: iface, Board: board, Secondary: -1}
	suffix := strings.ToUpper(parts[len(parts)-1])
	fields := parts[1 : len(parts)-1]

	switch {
	case iface == TCPIP && suffix == "SOCKET" && len(fields) == 2:
		r.Host = fields[0]
		if r.Port, err = strconv.Atoi(fields[1]); err != nil {
			return Resource{}, fmt.Errorf("%q: invalid port: %w", s, err)
		}
	case iface == TCPIP && suffix == "SOCKET" && len(fields) == 1,
		iface == TCPIP && suffix == "INSTR" && len(fields) == 1:
		r.Host, r.Port = fields[0], socket.DefaultPort
	case iface == GPIB && suffix == "INSTR" && (len(fields) == 1 || len(fields) == 2):
		if r.Primary, err = strconv.Atoi(fields[0]); err != nil {
			return Resource{}, fmt.Errorf("%q: invalid primary address: %w", s, err)
		}
		if len(fields) == 2 {
			if r.Secondary, err = strconv.Atoi(fields[1]); err != nil {
				return Resource{}, fmt.Errorf("%q: invalid secondary address: %w", s, err)
			}
		}
	case iface == USB && suffix == "INSTR" && (len(fields) == 2 || len(fields) == 3):
		r.VendorID, r.ProductID = fields[0], fields[1]
		if len(fields) == 3 {
			r.Serial = fields[2]
		}
	case iface == SIM && suffix == "INSTR" && len(fields) == 0:
	default:
		return Resource{}, fmt.Errorf("%w %q", ErrUnsupportedResource, s)
	}
	return r, nil
}

func splitBoard(s string) (string, int, error) {
	s = strings.ToUpper(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return s, 0, nil
	}
	board, err := strconv.Atoi(s[i:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid board number: %w", err)
	}
	return s[:i], board, nil
}

// Manager opens sessions for resource strings.
type Manager struct {
	// SerialPort is the Prologix adapter's serial port used for GPIB
	// resources. When empty it is located with find.PrologixFilter.
	SerialPort string
	// BaudRate of the Prologix serial port; zero means 115200.
	BaudRate int
	// Timeout bounds socket I/O and the serial read timeout; zero means 5 s.
	Timeout time.Duration
	// WriteDelay is passed to the Prologix controller.
	WriteDelay time.Duration
	// AR488 selects the Arduino AR488 dialect for GPIB resources.
	AR488 bool
	// Debug logs Prologix controller traffic.
	Debug bool
	// Finder locates serial ports and usbtmc devices.
	Finder find.Finder
	// Sim is returned for SIM resources; a fresh one is created if nil.
	Sim *sim.Session
}

// Open parses the resource string and opens a session to it.
func (m *Manager) Open(ctx context.Context, resource string) (dg800.Session, error) {
	r, err := ParseResource(resource)
	if err != nil {
		return nil, err
	}
	switch r.Interface {
	case TCPIP:
		addr := net.JoinHostPort(r.Host, strconv.Itoa(r.Port))
		log.Printf("connecting to %s", addr)
		conn, err := socket.Dial(ctx, addr, socket.WithTimeout(m.timeout()))
		if err != nil {
			return nil, err
		}
		return conn, nil
	case GPIB:
		return m.openGPIB(r)
	case USB:
		dev, err := m.Finder.Find(find.USBTMC, find.USBFilter(r.VendorID, r.ProductID, r.Serial))
		if err != nil {
			return nil, fmt.Errorf("locating %s: %w", resource, err)
		}
		d, err := usbtmc.Open("/dev/" + dev)
		if err != nil {
			return nil, err
		}
		return d, nil
	case SIM:
		if m.Sim != nil {
			return m.Sim, nil
		}
		return sim.New(nil), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedResource, resource)
}

// OpenGenerator opens a session to the resource and builds a generator on it.
func (m *Manager) OpenGenerator(ctx context.Context, resource string, opts ...dg800.Option) (*dg800.Generator, error) {
	sess, err := m.Open(ctx, resource)
	if err != nil {
		return nil, err
	}
	return dg800.New(sess, opts...), nil
}

func (m *Manager) openGPIB(r Resource) (dg800.Session, error) {
	portName := m.SerialPort
	if portName == "" {
		tty, err := m.Finder.Find(find.TTY, find.PrologixFilter)
		if err != nil {
			return nil, fmt.Errorf("locating Prologix adapter: %w", err)
		}
		portName = "/dev/" + tty
	}
	log.Printf("Serial port = %s", portName)

	baud := m.BaudRate
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(m.timeout()); err != nil {
		return nil, multierr.Append(err, port.Close())
	}

	var opts []gpib.ControllerOption
	if m.WriteDelay > 0 {
		opts = append(opts, gpib.WithWriteDelay(m.WriteDelay))
	}
	if r.Secondary >= 0 {
		opts = append(opts, gpib.WithSecondaryAddress(r.Secondary))
	}
	if m.AR488 {
		opts = append(opts, gpib.WithAR488())
	}
	if m.Debug {
		opts = append(opts, gpib.WithDebug())
	}
	// AR488 does not like CLR so only clear real Prologix adapters.
	c, err := gpib.NewController(port, r.Primary, !m.AR488, opts...)
	if err != nil {
		return nil, multierr.Append(err, port.Close())
	}
	return c, nil
}

func (m *Manager) timeout() time.Duration {
	if m.Timeout == 0 {
		return 5 * time.Second
	}
	return m.Timeout
}

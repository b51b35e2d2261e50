// Package find locates USB attached instruments and adapters by walking the
// Linux sysfs device tree.
package find

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no device matches a filter.
var ErrNotFound = errors.New("no matching device found")

// Device classes under /sys/class.
const (
	TTY    = "tty"     // serial ports, including the Prologix adapter
	USBTMC = "usbmisc" // usbtmc instruments
)

// FilterFn reports whether a device is the one wanted.
type FilterFn func(*Device) bool

// PrologixFilter matches a Prologix GPIB-USB controller. Older adapters
// report the FTDI defaults, so the PX serial prefix is accepted as well.
func PrologixFilter(d *Device) bool {
	return strings.Contains(d.Mfg, "Prologix") ||
		strings.Contains(d.Prod, "Prologix") ||
		(d.VendorID == "0403" && strings.HasPrefix(d.Serial, "PX"))
}

// ArduinoFilter matches an Arduino, as used by the AR488 GPIB adapter.
func ArduinoFilter(d *Device) bool {
	return strings.Contains(d.Mfg, "Arduino")
}

// SerialFilter matches the device with the given USB serial number.
func SerialFilter(s string) FilterFn {
	return func(d *Device) bool { return d.Serial == s }
}

// USBFilter matches the vendor and product IDs (hex, with or without a 0x
// prefix, case insensitive) and, if not empty, the serial number.
func USBFilter(vendorID, productID, serial string) FilterFn {
	vendorID, productID = normalizeID(vendorID), normalizeID(productID)
	return func(d *Device) bool {
		return normalizeID(d.VendorID) == vendorID &&
			normalizeID(d.ProductID) == productID &&
			(serial == "" || d.Serial == serial)
	}
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.TrimPrefix(id, "0x")
	for len(id) < 4 {
		id = "0" + id
	}
	return id
}

// Device describes a device node backed by a USB device.
type Device struct {
	Dev, Path           string
	VendorID, ProductID string
	Mfg, Prod           string
	Serial              string
}

func (d Device) String() string {
	return fmt.Sprintf("dev %s path %s vid/pid %s/%s mfg/prod %s/%s serial %s",
		d.Dev, d.Path, d.VendorID, d.ProductID, d.Mfg, d.Prod, d.Serial)
}

// Devices is a list of devices.
type Devices []Device

func (ds Devices) String() string {
	s := make([]string, 0, len(ds))
	for _, d := range ds {
		s = append(s, d.String())
	}
	return strings.Join(s, "\n")
}

// Finder scans a sysfs tree.
type Finder struct {
	// Root is prepended to /sys; empty means the real filesystem root.
	Root string
}

// Find returns the device node (e.g. "ttyUSB0") of the single device of the
// given class for which filter returns true. A nil filter matches any device.
func (f Finder) Find(class string, filter FilterFn) (string, error) {
	devs, err := f.All(class)
	if err != nil {
		return "", err
	}
	var matches Devices
	for i := range devs {
		if filter == nil || filter(&devs[i]) {
			matches = append(matches, devs[i])
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", class, ErrNotFound)
	case 1:
		return matches[0].Dev, nil
	}
	return "", fmt.Errorf("multiple %s devices match:\n%s", class, matches)
}

// Find searches the real sysfs. See Finder.Find.
func Find(class string, filter FilterFn) (string, error) {
	return Finder{}.Find(class, filter)
}

// All lists the USB backed devices of the given class. Entries that cannot be
// resolved are logged and skipped.
func (f Finder) All(class string) (Devices, error) {
	sys, err := filepath.EvalSymlinks(filepath.Join(f.root(), "sys"))
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(sys, "class", class)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var devs Devices
	for _, e := range entries {
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if class == USBTMC && !strings.HasPrefix(e.Name(), "usbtmc") {
			continue
		}
		// /sys/class/tty/ttyACM0 ->
		// /sys/devices/pci0000:00/0000:00:01.3/0000:02:00.0/usb1/1-10/1-10:1.0/tty/ttyACM0
		path := filepath.Join(dir, e.Name())
		abs, err := filepath.EvalSymlinks(path)
		if err != nil {
			log.Printf("error evaluating symlink %s; skipping: %s", path, err)
			continue
		}
		if !strings.Contains(strings.TrimPrefix(abs, sys), "/usb") {
			continue
		}
		usbDev, ok := usbDeviceDir(abs, sys)
		if !ok {
			log.Printf("%s: no USB device directory above %s", e.Name(), abs)
			continue
		}
		d := Device{Dev: e.Name(), Path: abs}
		if err := readUsbInfo(usbDev, &d); err != nil {
			log.Printf("%s: %s", abs, err)
		}
		devs = append(devs, d)
	}
	return devs, nil
}

func (f Finder) root() string {
	if f.Root == "" {
		return "/"
	}
	return f.Root
}

// usbDeviceDir walks up from a device node's directory to the first
// directory holding an idVendor file. Interfaces sit one level below the USB
// device for ACM ports and two levels for FTDI ports.
func usbDeviceDir(dir, stop string) (string, bool) {
	for dir != stop && len(dir) > len(stop) {
		if _, err := os.Stat(filepath.Join(dir, "idVendor")); err == nil {
			return dir, true
		}
		dir = filepath.Dir(dir)
	}
	return "", false
}

// readUsbInfo fills the vendor, product and string descriptors of d. It
// returns the last error encountered, ignoring os.ErrNotExist. Errors do not
// prevent reading the remaining files.
func readUsbInfo(dir string, d *Device) error {
	var err error
	fields := []struct {
		name string
		dst  *string
	}{
		{"idVendor", &d.VendorID},
		{"idProduct", &d.ProductID},
		{"manufacturer", &d.Mfg},
		{"product", &d.Prod},
		{"serial", &d.Serial},
	}
	for _, field := range fields {
		b, rerr := os.ReadFile(filepath.Join(dir, field.name))
		if rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			err = rerr
		}
		*field.dst = strings.TrimSpace(string(b))
	}
	return err
}

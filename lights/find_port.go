package lights

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SysUSBDevices is where Linux lists USB devices and their interfaces.
const SysUSBDevices = "/sys/bus/usb/devices"

var ErrPortNotFound = errors.New("no matching USB serial adapter found")

// FindPort searches sysfs for a USB serial adapter with the given vendor and
// product IDs (hex, as in lsusb) and returns its /dev node.
func FindPort(root, vendorID, productID string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("error searching for device: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.Contains(name, ":") {
			continue
		}
		devPath := filepath.Join(root, name)
		if !matchesID(filepath.Join(devPath, "idVendor"), vendorID) ||
			!matchesID(filepath.Join(devPath, "idProduct"), productID) {
			continue
		}

		// The tty hangs off one of the device's interfaces, e.g. 1-1.2:1.0/ttyUSB0
		// for usb-serial drivers or 1-1.2:1.0/tty/ttyACM0 for cdc-acm.
		for _, iface := range names {
			if !strings.HasPrefix(iface, name+":") {
				continue
			}
			if tty := findTTY(filepath.Join(root, iface)); tty != "" {
				return "/dev/" + tty, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s:%s", ErrPortNotFound, vendorID, productID)
}

func matchesID(path, want string) bool {
	got, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(string(got)), strings.TrimSpace(want))
}

func findTTY(ifacePath string) string {
	for _, dir := range []string{ifacePath, filepath.Join(ifacePath, "tty")} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), "tty") && e.Name() != "tty" {
				return e.Name()
			}
		}
	}
	return ""
}

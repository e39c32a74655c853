package lights

import (
	"fmt"
	"io"
)

// writeFrame sends one controller frame to the port
func writeFrame(port io.Writer, frame []byte) error {
	n, err := port.Write(frame)
	if err != nil {
		return fmt.Errorf("failed to send frame: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("failed to send frame: short write %d of %d", n, len(frame))
	}
	return nil
}
